package typing

// Scalar is a scalar type tag.  Every value in the language is one of these;
// the tag selects storage size, load/store width, and the comparison/print
// dispatch path during lowering.
type Scalar int

const (
	// Unknown is the placeholder tag for declarations whose type must be
	// inferred from the initializer during lowering (`let x = ...`)
	Unknown Scalar = iota

	I32
	I64
	F32
	F64
	Bool
	Str
)

// scalarNames maps type keywords as they appear in source to scalar tags
var scalarNames = map[string]Scalar{
	"i32":    I32,
	"i64":    I64,
	"f32":    F32,
	"f64":    F64,
	"bool":   Bool,
	"string": Str,
}

// FromName converts a declared type name into a scalar tag.  The boolean
// indicates whether the name is a recognized type.
func FromName(name string) (Scalar, bool) {
	s, ok := scalarNames[name]
	return s, ok
}

func (s Scalar) String() string {
	switch s {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Bool:
		return "bool"
	case Str:
		return "string"
	}

	return "<unknown>"
}

// IsNumeric returns whether the scalar is an integer or floating point type
func (s Scalar) IsNumeric() bool {
	return s == I32 || s == I64 || s == F32 || s == F64
}

// IsInteger returns whether the scalar is an integer type
func (s Scalar) IsInteger() bool {
	return s == I32 || s == I64
}

// IsFloat returns whether the scalar is a floating point type
func (s Scalar) IsFloat() bool {
	return s == F32 || s == F64
}

// FormatSpec returns the C format specifier used to convert a value of this
// scalar to text for printing.  Strings and booleans are printed without
// conversion and have no specifier.
func (s Scalar) FormatSpec() string {
	switch s {
	case I32:
		return "%d"
	case I64:
		return "%lld"
	case F32:
		return "%.2f"
	case F64:
		return "%.2lf"
	}

	return ""
}
