package typedb

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for load and lookup failures.
var (
	// ErrUnsupportedKind indicates a type record with an unknown kind.
	ErrUnsupportedKind = errors.New("schemagen: unsupported kind")
	// ErrUnresolvedReference indicates a name that does not resolve to a type.
	ErrUnresolvedReference = errors.New("schemagen: unresolved reference")
	// ErrMissingAnnotationValue indicates an incomplete annotation payload.
	ErrMissingAnnotationValue = errors.New("schemagen: missing annotation value")
	// ErrNotFound indicates a lookup of an unknown type.
	ErrNotFound = errors.New("schemagen: type not found")
	// ErrAlreadyLoaded indicates a second call to Load.
	ErrAlreadyLoaded = errors.New("schemagen: database already loaded")
	// ErrSealed indicates an attempt to add a type once resolution started.
	ErrSealed = errors.New("schemagen: database is sealed")
)

// Reference roles reported by ReferenceError.
const (
	RoleBase       = "base"
	RoleField      = "field"
	RoleFieldType  = "field type"
	RoleAnnotation = "annotation"
	RoleExport     = "export"
)

// describe writes the location part shared by the error types.
func describe(b *strings.Builder, typ, field, annotation string) {
	if typ != "" {
		b.WriteString(" on type ")
		b.WriteString(typ)
	}
	if field != "" {
		b.WriteString(" field ")
		b.WriteString(field)
	}
	if annotation != "" {
		b.WriteString(" annotation ")
		b.WriteString(annotation)
	}
}

// KindError reports a type record whose kind discriminator is not one of
// struct, enum, attribute or opaque.
type KindError struct {
	Type  string
	Field string // set for composite field types
	Kind  string
}

// Error implements the error interface.
func (e *KindError) Error() string {
	var b strings.Builder
	b.WriteString("schemagen: unsupported kind ")
	fmt.Fprintf(&b, "%q", e.Kind)
	describe(&b, e.Type, e.Field, "")
	return b.String()
}

// Is reports whether the target matches the sentinel error for KindError.
func (e *KindError) Is(target error) bool {
	return target == ErrUnsupportedKind
}

// NewKindError creates a new KindError.
func NewKindError(typeName, fieldName, kind string) *KindError {
	return &KindError{Type: typeName, Field: fieldName, Kind: kind}
}

// ReferenceError reports a name that could not be resolved.
type ReferenceError struct {
	Type       string
	Field      string
	Annotation string
	Name       string // the unresolved name
	Role       string // what the name was used as, e.g. RoleBase
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *ReferenceError) Error() string {
	var b strings.Builder
	b.WriteString("schemagen: unresolved ")
	if e.Role != "" {
		b.WriteString(e.Role)
		b.WriteString(" ")
	}
	b.WriteString("reference")
	if e.Name != "" {
		fmt.Fprintf(&b, " %q", e.Name)
	}
	describe(&b, e.Type, e.Field, e.Annotation)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ReferenceError.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// NewReferenceError creates a new ReferenceError.
func NewReferenceError(typeName, fieldName, annotation, name, role string, cause error) *ReferenceError {
	return &ReferenceError{
		Type:       typeName,
		Field:      fieldName,
		Annotation: annotation,
		Name:       name,
		Role:       role,
		Cause:      cause,
	}
}

// AnnotationValueError reports an annotation payload that lacks a value
// for one of the fields of its attribute type.
type AnnotationValueError struct {
	Type       string
	Field      string
	Annotation string
	Value      string // the attribute field without a value
}

// Error implements the error interface.
func (e *AnnotationValueError) Error() string {
	var b strings.Builder
	b.WriteString("schemagen: missing annotation value ")
	fmt.Fprintf(&b, "%q", e.Value)
	describe(&b, e.Type, e.Field, e.Annotation)
	return b.String()
}

// Is reports whether the target matches the sentinel error for AnnotationValueError.
func (e *AnnotationValueError) Is(target error) bool {
	return target == ErrMissingAnnotationValue
}

// NewAnnotationValueError creates a new AnnotationValueError.
func NewAnnotationValueError(typeName, fieldName, annotation, value string) *AnnotationValueError {
	return &AnnotationValueError{
		Type:       typeName,
		Field:      fieldName,
		Annotation: annotation,
		Value:      value,
	}
}

// NotFoundError is returned by Lookup for unknown names.
type NotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schemagen: type %q not found", e.Name)
}

// Is reports whether the target matches the sentinel error for NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsKindError reports whether the error is a KindError.
func IsKindError(err error) bool {
	var kindErr *KindError
	return errors.As(err, &kindErr)
}

// IsReferenceError reports whether the error is a ReferenceError.
func IsReferenceError(err error) bool {
	var refErr *ReferenceError
	return errors.As(err, &refErr)
}

// IsAnnotationValueError reports whether the error is an AnnotationValueError.
func IsAnnotationValueError(err error) bool {
	var valErr *AnnotationValueError
	return errors.As(err, &valErr)
}

// IsNotFound reports whether the error is a NotFoundError.
func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}
