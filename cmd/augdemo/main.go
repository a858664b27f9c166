// Command augdemo demonstrates the augment data-transform library.
//
// It loads a PNG, scales it so its shortest side meets a minimum length,
// converts it to a channel-last float tensor, normalizes it with ImageNet
// channel statistics, then inverts the preprocessing and writes the result
// back out.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/isentropic/augment"
)

var (
	imagenetMeans = []float64{0.485, 0.456, 0.406}
	imagenetStds  = []float64{0.229, 0.224, 0.225}
)

func main() {
	var (
		input   = flag.String("input", "input.png", "input PNG file")
		output  = flag.String("output", "augmented.png", "output PNG file")
		minSide = flag.Int("minside", 256, "minimum length of the shortest side")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		augment.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	img, err := loadPNG(*input)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *input, err)
	}

	norm, err := augment.NewNormalize(imagenetMeans, imagenetStds)
	if err != nil {
		log.Fatalf("Failed to build normalize: %v", err)
	}
	denorm, err := augment.NewDenormalize(imagenetMeans, imagenetStds)
	if err != nil {
		log.Fatalf("Failed to build denormalize: %v", err)
	}

	pipe := augment.NewPipeline(
		augment.ScaleKeepAspect(*minSide),
		augment.ImageToTensor{},
		norm,
	)

	item, err := pipe.Apply(augment.NewImageItem(img), nil)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}
	arr := item.(*augment.ArrayItem)
	log.Printf("Preprocessed tensor: %v", arr.Data.Shape())

	// Invert the preprocessing to visualize what the model would see.
	restore := augment.NewPipeline(denorm, augment.TensorToImage{})
	item, err = restore.Apply(arr, nil)
	if err != nil {
		log.Fatalf("Restore failed: %v", err)
	}

	if err := savePNG(*output, item.(*augment.ImageItem).Image); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Result saved to %s", *output)
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return png.Decode(f)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return png.Encode(f, img)
}
