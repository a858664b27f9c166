package augment

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/isentropic/augment/tensor"
)

// Normalize shifts and scales a float array channel-wise: for every position
// the channel c value becomes (v - means[c]) / stds[c]. Channels run along
// the last axis; the channel vectors broadcast across all leading axes.
type Normalize struct {
	means, stds []float64
}

// NewNormalize creates a channel-wise normalization transform.
// The means and stds vectors must have the same length; a mismatch fails
// here, at construction, never at apply time.
func NewNormalize(means, stds []float64) (*Normalize, error) {
	if len(means) != len(stds) {
		return nil, fmt.Errorf("augment: %d means but %d stds", len(means), len(stds))
	}
	if len(means) == 0 {
		return nil, fmt.Errorf("augment: empty channel statistics")
	}
	return &Normalize{
		means: append([]float64(nil), means...),
		stds:  append([]float64(nil), stds...),
	}, nil
}

// RandState implements Transform. Normalization is deterministic.
func (t *Normalize) RandState(*rand.Rand) any { return nil }

// Apply returns a normalized copy of the array item's payload.
func (t *Normalize) Apply(item Item, _ any) (Item, error) {
	out, err := cloneFloatPayload(t, item)
	if err != nil {
		return nil, err
	}
	if err := t.normalizeInPlace(out.Data); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyTo copies the payload into buf, then normalizes the buffer in place.
func (t *Normalize) ApplyTo(buf Item, item Item, _ any) (Item, error) {
	dst, err := copyFloatPayload(t, buf, item)
	if err != nil {
		return nil, err
	}
	if err := t.normalizeInPlace(dst.Data); err != nil {
		return nil, err
	}
	return dst, nil
}

// normalizeInPlace applies the channel statistics to every element.
func (t *Normalize) normalizeInPlace(payload tensor.Tensor) error {
	if err := t.checkChannels(payload); err != nil {
		return err
	}
	switch d := payload.(type) {
	case *tensor.Dense[float32]:
		data := d.Data()
		n := len(t.means)
		for i, v := range data {
			c := i % n
			data[i] = (v - float32(t.means[c])) / float32(t.stds[c])
		}
	case *tensor.Dense[float64]:
		data := d.Data()
		n := len(t.means)
		for i, v := range data {
			c := i % n
			data[i] = (v - t.means[c]) / t.stds[c]
		}
	}
	return nil
}

// checkChannels verifies the payload's last axis matches the statistics.
func (t *Normalize) checkChannels(payload tensor.Tensor) error {
	shape := payload.Shape()
	last := shape[len(shape)-1]
	if last != len(t.means) {
		return fmt.Errorf("augment: payload has %d channels, statistics have %d",
			last, len(t.means))
	}
	return nil
}

// Denormalize is the inverse of Normalize: the channel c value becomes
// v*stds[c] + means[c]. It supports allocate-mode application only.
type Denormalize struct {
	means, stds []float64
}

// NewDenormalize creates the inverse of NewNormalize(means, stds).
// The same construction-time validation applies.
func NewDenormalize(means, stds []float64) (*Denormalize, error) {
	n, err := NewNormalize(means, stds)
	if err != nil {
		return nil, err
	}
	return &Denormalize{means: n.means, stds: n.stds}, nil
}

// RandState implements Transform. Denormalization is deterministic.
func (t *Denormalize) RandState(*rand.Rand) any { return nil }

// Apply returns a denormalized copy of the array item's payload.
func (t *Denormalize) Apply(item Item, _ any) (Item, error) {
	out, err := cloneFloatPayload(t, item)
	if err != nil {
		return nil, err
	}
	shape := out.Data.Shape()
	if last := shape[len(shape)-1]; last != len(t.means) {
		return nil, fmt.Errorf("augment: payload has %d channels, statistics have %d",
			last, len(t.means))
	}
	switch d := out.Data.(type) {
	case *tensor.Dense[float32]:
		data := d.Data()
		n := len(t.means)
		for i, v := range data {
			c := i % n
			data[i] = v*float32(t.stds[c]) + float32(t.means[c])
		}
	case *tensor.Dense[float64]:
		data := d.Data()
		n := len(t.means)
		for i, v := range data {
			c := i % n
			data[i] = v*t.stds[c] + t.means[c]
		}
	}
	return out, nil
}

// NormalizeIntensity normalizes an array item by statistics of the payload
// itself: subtract the global mean, divide by the global standard deviation.
// A payload whose deviation is zero (or undefined, fewer than two elements)
// is degenerate and fails with ErrZeroDeviation rather than producing Inf.
type NormalizeIntensity struct{}

// RandState implements Transform. Intensity normalization is deterministic.
func (NormalizeIntensity) RandState(*rand.Rand) any { return nil }

// Apply returns an intensity-normalized copy of the array item's payload.
func (t NormalizeIntensity) Apply(item Item, _ any) (Item, error) {
	out, err := cloneFloatPayload(t, item)
	if err != nil {
		return nil, err
	}
	switch d := out.Data.(type) {
	case *tensor.Dense[float32]:
		if err := intensityInPlace(d.Data()); err != nil {
			return nil, err
		}
	case *tensor.Dense[float64]:
		if err := intensityInPlace(d.Data()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// intensityInPlace normalizes data by its own mean and sample standard
// deviation.
func intensityInPlace[T ~float32 | ~float64](data []T) error {
	if len(data) < 2 {
		return fmt.Errorf("%w: %d elements", ErrZeroDeviation, len(data))
	}
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	mean := sum / float64(len(data))

	var sq float64
	for _, v := range data {
		d := float64(v) - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(data)-1))
	if std == 0 {
		return fmt.Errorf("%w: constant payload", ErrZeroDeviation)
	}

	for i, v := range data {
		data[i] = T((float64(v) - mean) / std)
	}
	return nil
}

// cloneFloatPayload checks that item is an array item with a floating point
// payload and returns a fresh deep copy of it.
func cloneFloatPayload(tfm Transform, item Item) (*ArrayItem, error) {
	arr, err := floatArrayItem(tfm, item)
	if err != nil {
		return nil, err
	}
	return &ArrayItem{Data: arr.Data.CloneTensor()}, nil
}

// copyFloatPayload checks buf and item and copies item's payload into buf's.
// The buffer must match the source in shape and element type.
func copyFloatPayload(tfm Transform, buf, item Item) (*ArrayItem, error) {
	arr, err := floatArrayItem(tfm, item)
	if err != nil {
		return nil, err
	}
	dst, ok := buf.(*ArrayItem)
	if !ok {
		return nil, fmt.Errorf("%w: buffer %s for %T", ErrKindMismatch, buf, tfm)
	}
	if dst.Data.DType() != arr.Data.DType() {
		return nil, fmt.Errorf("%w: buffer holds %s, payload is %s",
			ErrKindMismatch, dst.Data.DType(), arr.Data.DType())
	}
	if err := tensor.ConvertInto(dst.Data, arr.Data); err != nil {
		return nil, err
	}
	return dst, nil
}

// floatArrayItem validates the item kind shared by the normalization family.
func floatArrayItem(tfm Transform, item Item) (*ArrayItem, error) {
	arr, ok := item.(*ArrayItem)
	if !ok {
		return nil, kindMismatch(tfm, item)
	}
	if !arr.Data.DType().IsFloat() {
		return nil, fmt.Errorf("%w: %T requires a float payload, got %s",
			ErrKindMismatch, tfm, arr.Data.DType())
	}
	return arr, nil
}
