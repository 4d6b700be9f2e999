package reflex

import "strconv"

// Primitive classifies the runtime representation of a schema.
type Primitive int

// List of primitives.
const (
	Null Primitive = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Int
	UInt
	Float
	Double
	String
	Uuid
	Enum
	Array
	Pointer
	Object
	AssetRef
)

var primitiveNames = [...]string{
	Null:     "null",
	Bool:     "bool",
	Int8:     "int8",
	Int16:    "int16",
	Int32:    "int32",
	Int64:    "int64",
	UInt8:    "uint8",
	UInt16:   "uint16",
	UInt32:   "uint32",
	UInt64:   "uint64",
	Int:      "int",
	UInt:     "uint",
	Float:    "float",
	Double:   "double",
	String:   "string",
	Uuid:     "uuid",
	Enum:     "enum",
	Array:    "array",
	Pointer:  "pointer",
	Object:   "object",
	AssetRef: "assetref",
}

// String returns the primitive name.
func (p Primitive) String() string {
	if p >= 0 && int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return "primitive(" + strconv.Itoa(int(p)) + ")"
}

// IsNumeric reports if the primitive holds an integer or floating point number.
func (p Primitive) IsNumeric() bool {
	return p >= Int8 && p <= Double
}
