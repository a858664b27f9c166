package tensor

// DType identifies the element type of a tensor payload.
type DType uint8

const (
	// Uint8 is the 8-bit unsigned integer element type, the native type of
	// decoded image data.
	Uint8 DType = iota

	// Int32 is the 32-bit signed integer element type, used for categorical
	// class indices.
	Int32

	// Float32 is the single-precision floating point element type. This is
	// the default working precision of the library.
	Float32

	// Float64 is the double-precision floating point element type.
	Float64
)

// String returns a string representation of the element type.
func (d DType) String() string {
	switch d {
	case Uint8:
		return "uint8"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// IsValid reports whether d is one of the supported element types.
func (d DType) IsValid() bool {
	return d <= Float64
}

// IsFloat reports whether d is a floating point element type.
func (d DType) IsFloat() bool {
	return d == Float32 || d == Float64
}

// Scalar is the set of element types a Dense tensor can hold.
type Scalar interface {
	~uint8 | ~int32 | ~float32 | ~float64
}

// DTypeOf returns the DType for the scalar type T.
func DTypeOf[T Scalar]() DType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return Uint8
	case int32:
		return Int32
	case float32:
		return Float32
	default:
		return Float64
	}
}
