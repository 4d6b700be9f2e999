package typedb

// Kind discriminates the variants of a Type.
type Kind int

// List of type kinds.
const (
	_ Kind = iota
	KindStruct
	KindEnum
	KindAttribute
	KindOpaque
)

var kindNames = map[Kind]string{
	KindStruct:    "struct",
	KindEnum:      "enum",
	KindAttribute: "attribute",
	KindOpaque:    "opaque",
}

// String returns the document spelling of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// ParseKind returns the kind spelled s.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}
