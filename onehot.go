package augment

import (
	"fmt"
	"math/rand/v2"

	"github.com/isentropic/augment/tensor"
)

// OneHot encodes a categorical mask with n declared classes into a float32
// array with an extra trailing axis of extent n: a 1 at the active class
// slot and 0 elsewhere, for every position independently. Class indices are
// 1-based; the first class maps to the first slot.
//
// An index outside [1..n] fails fast on the first offending position; the
// error identifies it. Positions after the first bad one are not inspected.
type OneHot struct{}

// RandState implements Transform. One-hot encoding is deterministic.
func (OneHot) RandState(*rand.Rand) any { return nil }

// Apply allocates the encoded array and fills it from the mask.
func (t OneHot) Apply(item Item, _ any) (Item, error) {
	mask, ok := item.(*MaskItem)
	if !ok {
		return nil, kindMismatch(t, item)
	}
	shape := append(append([]int(nil), mask.Classes.Shape()...), mask.NumClasses)
	out, err := tensor.New[float32](shape...)
	if err != nil {
		return nil, err
	}
	if err := encodeOneHot(out.Data(), mask); err != nil {
		return nil, err
	}
	return &ArrayItem{Data: out}, nil
}

// ApplyTo zero-fills buf and sets the active class slots directly, avoiding
// reallocation of the class axis on every call. buf must be a float32 array
// item of shape (mask shape..., classes).
func (t OneHot) ApplyTo(buf Item, item Item, _ any) (Item, error) {
	mask, ok := item.(*MaskItem)
	if !ok {
		return nil, kindMismatch(t, item)
	}
	dst, ok := buf.(*ArrayItem)
	if !ok {
		return nil, fmt.Errorf("%w: buffer %s for %T", ErrKindMismatch, buf, t)
	}
	d, ok := dst.Data.(*tensor.Dense[float32])
	if !ok {
		return nil, fmt.Errorf("%w: buffer holds %s, want float32",
			ErrKindMismatch, dst.Data.DType())
	}
	want := append(append([]int(nil), mask.Classes.Shape()...), mask.NumClasses)
	shape := d.Shape()
	if len(shape) != len(want) {
		return nil, fmt.Errorf("%w: buffer shape %v, mask wants %v",
			tensor.ErrShapeMismatch, shape, want)
	}
	for i := range want {
		if shape[i] != want[i] {
			return nil, fmt.Errorf("%w: buffer shape %v, mask wants %v",
				tensor.ErrShapeMismatch, shape, want)
		}
	}
	d.Zero()
	if err := encodeOneHot(d.Data(), mask); err != nil {
		return nil, err
	}
	return dst, nil
}

// encodeOneHot sets the active class slot for every mask position.
// data must be zero-filled and sized (mask positions) * NumClasses.
func encodeOneHot(data []float32, mask *MaskItem) error {
	n := mask.NumClasses
	for pos, class := range mask.Classes.Data() {
		if class < 1 || int(class) > n {
			return fmt.Errorf("%w: class %d at position %d, declared classes 1..%d",
				ErrClassRange, class, pos, n)
		}
		data[pos*n+int(class)-1] = 1
	}
	return nil
}
