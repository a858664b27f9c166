package augment

import (
	"fmt"
	"math/rand/v2"

	"github.com/isentropic/augment/tensor"
)

// ElementConvert converts an array item's payload to a target element type.
// Converting an item that already has the target type is a no-op: the item
// is returned unchanged rather than copied.
type ElementConvert struct {
	dtype tensor.DType
}

// ConvertElement creates an element-type conversion transform.
func ConvertElement(dt tensor.DType) *ElementConvert {
	return &ElementConvert{dtype: dt}
}

// RandState implements Transform. Conversion is deterministic.
func (t *ElementConvert) RandState(*rand.Rand) any { return nil }

// Apply returns an array item with every element converted to the target
// type, or the input itself when it already has that type.
func (t *ElementConvert) Apply(item Item, _ any) (Item, error) {
	arr, ok := item.(*ArrayItem)
	if !ok {
		return nil, kindMismatch(t, item)
	}
	converted, err := tensor.AsType(arr.Data, t.dtype)
	if err != nil {
		return nil, err
	}
	if converted == arr.Data {
		return arr, nil
	}
	return &ArrayItem{Data: converted}, nil
}

// ApplyTo copies the source payload into buf with implicit element
// conversion. buf must be an array item of the target element type with the
// source's shape.
func (t *ElementConvert) ApplyTo(buf Item, item Item, _ any) (Item, error) {
	arr, ok := item.(*ArrayItem)
	if !ok {
		return nil, kindMismatch(t, item)
	}
	dst, ok := buf.(*ArrayItem)
	if !ok {
		return nil, fmt.Errorf("%w: buffer %s for %T", ErrKindMismatch, buf, t)
	}
	if dst.Data.DType() != t.dtype {
		return nil, fmt.Errorf("%w: buffer holds %s, transform targets %s",
			ErrKindMismatch, dst.Data.DType(), t.dtype)
	}
	if err := tensor.ConvertInto(dst.Data, arr.Data); err != nil {
		return nil, err
	}
	return dst, nil
}
