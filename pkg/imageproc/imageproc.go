package imageproc

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

// Options control downscaling of uploaded images.
type Options struct {
	MaxDimension int
	JPEGQuality  int
}

// Result is the processed image and the format it ended up in.
type Result struct {
	Data        []byte
	Ext         string
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

// Process downscales images whose longest side exceeds MaxDimension,
// keeping the aspect ratio. GIFs pass through untouched to keep animation.
// Images within bounds are returned unchanged.
func Process(data []byte, ext string, opts Options) (Result, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode image: %w", err)
	}

	passthrough := Result{
		Data:        data,
		Ext:         ext,
		ContentType: "image/" + format,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}

	if format == "gif" || opts.MaxDimension <= 0 {
		return passthrough, nil
	}
	newW, newH := fitWithin(cfg.Width, cfg.Height, opts.MaxDimension)
	if newW == cfg.Width && newH == cfg.Height {
		return passthrough, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	resized := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	out := Result{Width: newW, Height: newH, Resized: true}

	if format == "jpeg" || resized.Opaque() {
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 85
		}
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
			return Result{}, fmt.Errorf("failed to encode image: %w", err)
		}
		out.Ext, out.ContentType = ".jpg", "image/jpeg"
	} else {
		if err := png.Encode(&buf, resized); err != nil {
			return Result{}, fmt.Errorf("failed to encode image: %w", err)
		}
		out.Ext, out.ContentType = ".png", "image/png"
	}

	out.Data = buf.Bytes()
	return out, nil
}

func fitWithin(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}
	if width >= height {
		h := int(float64(height) * float64(maxDimension) / float64(width))
		return maxDimension, max(h, 1)
	}
	w := int(float64(width) * float64(maxDimension) / float64(height))
	return max(w, 1), maxDimension
}
