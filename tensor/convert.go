package tensor

import "fmt"

// AsType returns a copy of t with every element converted to the requested
// element type. If t already has that type, t itself is returned unchanged.
func AsType(t Tensor, dt DType) (Tensor, error) {
	if !dt.IsValid() {
		return nil, fmt.Errorf("tensor: unknown element type %d", dt)
	}
	if t.DType() == dt {
		return t, nil
	}
	switch src := t.(type) {
	case *Dense[uint8]:
		return convertFrom(src, dt)
	case *Dense[int32]:
		return convertFrom(src, dt)
	case *Dense[float32]:
		return convertFrom(src, dt)
	case *Dense[float64]:
		return convertFrom(src, dt)
	default:
		return nil, fmt.Errorf("tensor: unsupported tensor type %T", t)
	}
}

// ConvertInto copies src into dst, converting every element to dst's element
// type. The two tensors must have identical shapes.
func ConvertInto(dst, src Tensor) error {
	if !SameShape(dst, src) {
		return fmt.Errorf("%w: dst %v, src %v", ErrShapeMismatch, dst.Shape(), src.Shape())
	}
	switch s := src.(type) {
	case *Dense[uint8]:
		return convertInto(dst, s)
	case *Dense[int32]:
		return convertInto(dst, s)
	case *Dense[float32]:
		return convertInto(dst, s)
	case *Dense[float64]:
		return convertInto(dst, s)
	default:
		return fmt.Errorf("tensor: unsupported tensor type %T", src)
	}
}

// convertFrom allocates a tensor of the requested type and fills it from src.
func convertFrom[S Scalar](src *Dense[S], dt DType) (Tensor, error) {
	switch dt {
	case Uint8:
		return fill[uint8](src), nil
	case Int32:
		return fill[int32](src), nil
	case Float32:
		return fill[float32](src), nil
	case Float64:
		return fill[float64](src), nil
	default:
		return nil, fmt.Errorf("tensor: unknown element type %d", dt)
	}
}

// convertInto dispatches on dst's concrete type and copies with conversion.
func convertInto[S Scalar](dst Tensor, src *Dense[S]) error {
	switch d := dst.(type) {
	case *Dense[uint8]:
		copyConvert(d.data, src.data)
	case *Dense[int32]:
		copyConvert(d.data, src.data)
	case *Dense[float32]:
		copyConvert(d.data, src.data)
	case *Dense[float64]:
		copyConvert(d.data, src.data)
	default:
		return fmt.Errorf("tensor: unsupported tensor type %T", dst)
	}
	return nil
}

func fill[D, S Scalar](src *Dense[S]) *Dense[D] {
	out := &Dense[D]{
		shape: append([]int(nil), src.shape...),
		data:  make([]D, len(src.data)),
	}
	copyConvert(out.data, src.data)
	return out
}

func copyConvert[D, S Scalar](dst []D, src []S) {
	for i, v := range src {
		dst[i] = D(v)
	}
}
