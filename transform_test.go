package augment

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/isentropic/augment/tensor"
)

func TestApplyBufferedUnsupported(t *testing.T) {
	denorm, err := NewDenormalize([]float64{0.5}, []float64{0.5})
	if err != nil {
		t.Fatalf("NewDenormalize failed: %v", err)
	}
	tests := []struct {
		name string
		tfm  Transform
	}{
		{"denormalize", denorm},
		{"intensity", NormalizeIntensity{}},
		{"tensor to image", TensorToImage{}},
		{"scale", ScaleRatio(0.5)},
	}
	payload, _ := tensor.New[float32](2, 2, 1)
	buf := NewArrayItem(payload)
	item := NewArrayItem(payload.Clone())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyBuffered(buf, tt.tfm, item, nil)
			if !errors.Is(err, ErrBufferedUnsupported) {
				t.Errorf("error = %v, want ErrBufferedUnsupported", err)
			}
		})
	}
}

// TestBufferedEquivalence checks the core contract: for every transform
// supporting buffered application, the buffered payload is identical to the
// allocated payload for the same (transform, item, state) triple.
func TestBufferedEquivalence(t *testing.T) {
	norm, err := NewNormalize([]float64{0.5, 0.4, 0.3}, []float64{0.2, 0.2, 0.25})
	if err != nil {
		t.Fatalf("NewNormalize failed: %v", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 11)
	}

	rgb, err := tensor.FromSlice([]float32{
		0.1, 0.2, 0.3, 0.4, 0.5, 0.6,
		0.7, 0.8, 0.9, 1.0, 0.0, 0.5,
	}, 2, 2, 3)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	bytes, err := tensor.FromSlice([]uint8{0, 1, 2, 3, 254, 255}, 2, 3)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	classes, err := tensor.FromSlice([]int32{1, 2, 2, 1}, 2, 2)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	mask, err := NewMaskItem(classes, 2)
	if err != nil {
		t.Fatalf("NewMaskItem failed: %v", err)
	}

	mkBuf := func(shape ...int) *ArrayItem {
		d, err := tensor.New[float32](shape...)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		// Dirty the buffer so stale content would be caught.
		for i := range d.Data() {
			d.Data()[i] = -99
		}
		return NewArrayItem(d)
	}

	tests := []struct {
		name string
		tfm  BufferedTransform
		item Item
		buf  *ArrayItem
	}{
		{"convert element", ConvertElement(tensor.Float32), NewArrayItem(bytes), mkBuf(2, 3)},
		{"normalize", norm, NewArrayItem(rgb), mkBuf(2, 2, 3)},
		{"image to tensor", ImageToTensor{}, NewImageItem(img), mkBuf(2, 3, 3)},
		{"one hot", OneHot{}, mask, mkBuf(2, 2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocated, err := tt.tfm.Apply(tt.item, nil)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			buffered, err := tt.tfm.ApplyTo(tt.buf, tt.item, nil)
			if err != nil {
				t.Fatalf("ApplyTo failed: %v", err)
			}
			if buffered != Item(tt.buf) {
				t.Error("ApplyTo did not return the buffer item")
			}
			want := allocated.(*ArrayItem).Data.(*tensor.Dense[float32]).Data()
			got := tt.buf.Data.(*tensor.Dense[float32]).Data()
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("buffered payload differs from allocated (-want +got):\n%s", diff)
			}
		})
	}
}

// TestBufferedRepeatedSlot exercises the intended usage: one buffer backing
// the same logical slot across repeated applications.
func TestBufferedRepeatedSlot(t *testing.T) {
	enc := OneHot{}
	buf := func() *ArrayItem {
		d, _ := tensor.New[float32](2, 2, 2)
		return NewArrayItem(d)
	}()

	for round := range 3 {
		classes, _ := tensor.FromSlice([]int32{1, 2, 2, 1}, 2, 2)
		if round%2 == 1 {
			classes, _ = tensor.FromSlice([]int32{2, 2, 1, 1}, 2, 2)
		}
		mask, _ := NewMaskItem(classes, 2)

		out, err := enc.ApplyTo(buf, mask, nil)
		if err != nil {
			t.Fatalf("round %d: ApplyTo failed: %v", round, err)
		}
		want, err := enc.Apply(mask, nil)
		if err != nil {
			t.Fatalf("round %d: Apply failed: %v", round, err)
		}
		got := out.(*ArrayItem).Data.(*tensor.Dense[float32]).Data()
		ref := want.(*ArrayItem).Data.(*tensor.Dense[float32]).Data()
		if diff := cmp.Diff(ref, got); diff != "" {
			t.Errorf("round %d payload mismatch (-want +got):\n%s", round, diff)
		}
	}
}
