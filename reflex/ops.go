package reflex

import (
	"slices"
	"unsafe"
)

// SliceOf returns an array schema for []T whose elements are described by elem.
func SliceOf[T any](elem *Schema) *Schema {
	name := "[]"
	if elem != nil {
		name += elem.Name
	}
	return &Schema{
		Name:      name,
		Primitive: Array,
		Size:      unsafe.Sizeof([]T(nil)),
		Element:   elem,
		Operations: &Operations{
			ArrayGetSize: func(arr unsafe.Pointer) int {
				return len(*(*[]T)(arr))
			},
			ArrayElementAt: func(arr unsafe.Pointer, index int) unsafe.Pointer {
				return unsafe.Pointer(&(*(*[]T)(arr))[index])
			},
			ArrayMutableElementAt: func(arr unsafe.Pointer, index int) unsafe.Pointer {
				return unsafe.Pointer(&(*(*[]T)(arr))[index])
			},
			ArrayMoveTo: func(arr unsafe.Pointer, to, from int) {
				s := *(*[]T)(arr)
				s[to] = s[from]
			},
			ArrayEraseAt: func(arr unsafe.Pointer, index int) {
				s := (*[]T)(arr)
				*s = slices.Delete(*s, index, index+1)
			},
			ArrayResize: func(arr unsafe.Pointer, size int) {
				s := (*[]T)(arr)
				if size <= len(*s) {
					clear((*s)[size:])
					*s = (*s)[:size]
					return
				}
				*s = append(*s, make([]T, size-len(*s))...)
			},
		},
	}
}

// AssetHolder is implemented by asset reference types. Asset returns the
// referenced object, or nil when the reference is unset.
type AssetHolder interface {
	Asset() unsafe.Pointer
	SetAsset(object unsafe.Pointer)
}

// AssetDeref returns the object referenced by the asset reference at ref.
func AssetDeref[T any, P interface {
	*T
	AssetHolder
}](ref unsafe.Pointer) unsafe.Pointer {
	return P((*T)(ref)).Asset()
}

// AssetMutableDeref is AssetDeref for callers that intend to modify the object.
func AssetMutableDeref[T any, P interface {
	*T
	AssetHolder
}](ref unsafe.Pointer) unsafe.Pointer {
	return P((*T)(ref)).Asset()
}

// AssetAssign points the asset reference at ref to object.
func AssetAssign[T any, P interface {
	*T
	AssetHolder
}](ref, object unsafe.Pointer) {
	P((*T)(ref)).SetAsset(object)
}
