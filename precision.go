package augment

// Precision selects the floating point width used for ratio arithmetic when
// resolving affine specifications. The resolved map always carries float64
// entries; Precision controls how those entries are computed, so that
// single-precision pipelines reproduce single-precision ratios exactly.
type Precision uint8

const (
	// PrecisionFloat32 computes ratios in single precision. This is the
	// default working precision of the library.
	PrecisionFloat32 Precision = iota

	// PrecisionFloat64 computes ratios in double precision.
	PrecisionFloat64
)

// String returns a string representation of the precision.
func (p Precision) String() string {
	switch p {
	case PrecisionFloat32:
		return "float32"
	case PrecisionFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// ratio divides target by bound at the selected precision.
func (p Precision) ratio(target, bound float64) float64 {
	if p == PrecisionFloat32 {
		return float64(float32(target) / float32(bound))
	}
	return target / bound
}
