package augment

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/isentropic/augment/tensor"
)

func TestImageToTensorGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	copy(img.Pix, []uint8{0, 51, 102, 153, 204, 255})

	out, err := ImageToTensor{}.Apply(NewImageItem(img), nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	d := out.(*ArrayItem).Data.(*tensor.Dense[float32])

	// Single-channel images still gain an explicit channel axis of size 1.
	shape := d.Shape()
	if len(shape) != 3 || shape[0] != 2 || shape[1] != 3 || shape[2] != 1 {
		t.Fatalf("shape = %v, want [2 3 1]", shape)
	}
	for i, b := range img.Pix {
		want := float32(b) / 255
		if d.Data()[i] != want {
			t.Errorf("tensor[%d] = %v, want %v", i, d.Data()[i], want)
		}
	}
}

func TestImageToTensorColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	copy(img.Pix, []uint8{
		255, 0, 0, 255, // red
		0, 128, 255, 255,
	})

	out, err := ImageToTensor{}.Apply(NewImageItem(img), nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	d := out.(*ArrayItem).Data.(*tensor.Dense[float32])
	shape := d.Shape()
	if len(shape) != 3 || shape[0] != 1 || shape[1] != 2 || shape[2] != 3 {
		t.Fatalf("shape = %v, want [1 2 3]", shape)
	}
	want := []float32{1, 0, 0, 0, float32(128) / 255, 1}
	for i := range want {
		if d.Data()[i] != want[i] {
			t.Errorf("tensor[%d] = %v, want %v", i, d.Data()[i], want[i])
		}
	}
}

func TestImageTensorRoundTrip(t *testing.T) {
	// Pure permutation plus the 0..255 <-> [0,1] scaling: the round trip
	// must reproduce every byte exactly.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(i * 7)
		img.Pix[i+1] = uint8(i * 13)
		img.Pix[i+2] = uint8(255 - i)
		img.Pix[i+3] = 255
	}

	tens, err := ImageToTensor{}.Apply(NewImageItem(img), nil)
	if err != nil {
		t.Fatalf("ImageToTensor failed: %v", err)
	}
	back, err := TensorToImage{}.Apply(tens, nil)
	if err != nil {
		t.Fatalf("TensorToImage failed: %v", err)
	}
	got := back.(*ImageItem).Image.(*image.NRGBA)
	if !bytes.Equal(got.Pix, img.Pix) {
		t.Error("round trip did not reproduce the image exactly")
	}
}

func TestImageTensorRoundTripGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 5, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 13)
	}
	tens, err := ImageToTensor{}.Apply(NewImageItem(img), nil)
	if err != nil {
		t.Fatalf("ImageToTensor failed: %v", err)
	}
	back, err := TensorToImage{}.Apply(tens, nil)
	if err != nil {
		t.Fatalf("TensorToImage failed: %v", err)
	}
	got := back.(*ImageItem).Image.(*image.Gray)
	if !bytes.Equal(got.Pix, img.Pix) {
		t.Error("gray round trip did not reproduce the image exactly")
	}
}

func TestTensorToImageAmbiguousChannels(t *testing.T) {
	d, _ := tensor.New[float32](2, 2, 2)
	_, err := TensorToImage{}.Apply(NewArrayItem(d), nil)
	if !errors.Is(err, ErrColorAmbiguous) {
		t.Errorf("error = %v, want ErrColorAmbiguous", err)
	}
}

func TestTensorToImageExplicitKind(t *testing.T) {
	// Four channels resolve only with an explicit color kind; the fourth
	// channel becomes alpha.
	d, _ := tensor.FromSlice([]float32{1, 0, 0, 0.5}, 1, 1, 4)
	out, err := TensorToImage{Color: ColorRGB}.Apply(NewArrayItem(d), nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	img := out.(*ImageItem).Image.(*image.NRGBA)
	want := []uint8{255, 0, 0, 128}
	if !bytes.Equal(img.Pix, want) {
		t.Errorf("Pix = %v, want %v", img.Pix, want)
	}
}

func TestTensorToImageKindChannelMismatch(t *testing.T) {
	d, _ := tensor.New[float32](2, 2, 3)
	_, err := TensorToImage{Color: ColorGray}.Apply(NewArrayItem(d), nil)
	if !errors.Is(err, ErrColorAmbiguous) {
		t.Errorf("error = %v, want ErrColorAmbiguous", err)
	}
}

func TestTensorToImageClamps(t *testing.T) {
	d, _ := tensor.FromSlice([]float32{-0.5, 1.5}, 2, 1, 1)
	out, err := TensorToImage{}.Apply(NewArrayItem(d), nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	img := out.(*ImageItem).Image.(*image.Gray)
	if img.Pix[0] != 0 || img.Pix[1] != 255 {
		t.Errorf("Pix = %v, want [0 255]", img.Pix)
	}
}
