// Package imaging downscales attached photos before upload: long edge
// capped at 1920px, re-encoded as JPEG at quality 85. Good enough for
// reports and LINE previews while cutting mobile upload sizes.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/vwin2537-arch/FireCheckPointReport/storage"
)

// Options controls the downscale bounds and JPEG quality.
type Options struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// DefaultOptions matches the field form's upload settings.
var DefaultOptions = Options{
	MaxWidth:  1920,
	MaxHeight: 1920,
	Quality:   85,
}

// Compress decodes a data-URI image, scales it down to fit the bounds
// while keeping aspect ratio, and returns a JPEG data URI. Images already
// inside the bounds are still re-encoded to JPEG.
func Compress(dataURI string, opts Options) (string, error) {
	raw, _, err := storage.DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if opts.MaxWidth > 0 && width > opts.MaxWidth {
		height = height * opts.MaxWidth / width
		width = opts.MaxWidth
	}
	if opts.MaxHeight > 0 && height > opts.MaxHeight {
		width = width * opts.MaxHeight / height
		height = opts.MaxHeight
	}

	out := src
	if width != bounds.Dx() || height != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return storage.EncodeDataURI(buf.Bytes()), nil
}

// CompressAll compresses a batch sequentially, reporting 0..100 progress
// after each image. Progress is monotone within one call.
func CompressAll(images []string, opts Options, onProgress func(int)) ([]string, error) {
	results := make([]string, 0, len(images))
	for i, img := range images {
		compressed, err := Compress(img, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, compressed)

		if onProgress != nil {
			onProgress((i + 1) * 100 / len(images))
		}
	}
	return results, nil
}
