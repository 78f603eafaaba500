package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vwin2537-arch/FireCheckPointReport/storage"
)

// pngURI renders a flat-color test image as a PNG data URI.
func pngURI(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decodeJPEGURI(t *testing.T, dataURI string) image.Image {
	t.Helper()
	require.True(t, strings.HasPrefix(dataURI, "data:image/jpeg;base64,"))

	raw, ext, err := storage.DecodeDataURI(dataURI)
	require.NoError(t, err)
	require.Equal(t, "jpg", ext)

	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestCompressDownscalesWideImage(t *testing.T) {
	out, err := Compress(pngURI(t, 400, 100), Options{MaxWidth: 200, MaxHeight: 200, Quality: 85})
	require.NoError(t, err)

	img := decodeJPEGURI(t, out)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestCompressDownscalesTallImage(t *testing.T) {
	out, err := Compress(pngURI(t, 100, 400), Options{MaxWidth: 200, MaxHeight: 200, Quality: 85})
	require.NoError(t, err)

	img := decodeJPEGURI(t, out)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestCompressKeepsSmallImageSize(t *testing.T) {
	out, err := Compress(pngURI(t, 80, 60), DefaultOptions)
	require.NoError(t, err)

	// Still re-encoded as JPEG, dimensions untouched.
	img := decodeJPEGURI(t, out)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
}

func TestCompressRejectsBadPayload(t *testing.T) {
	_, err := Compress("not a data uri", DefaultOptions)
	assert.Error(t, err)

	_, err = Compress("data:image/png;base64,aGVsbG8=", DefaultOptions)
	assert.Error(t, err)
}

func TestCompressAllProgress(t *testing.T) {
	images := []string{
		pngURI(t, 40, 40),
		pngURI(t, 40, 40),
		pngURI(t, 40, 40),
		pngURI(t, 40, 40),
	}

	var progress []int
	results, err := CompressAll(images, DefaultOptions, func(p int) {
		progress = append(progress, p)
	})
	require.NoError(t, err)
	assert.Len(t, results, 4)
	assert.Equal(t, []int{25, 50, 75, 100}, progress)
}

func TestCompressAllStopsOnBadImage(t *testing.T) {
	images := []string{pngURI(t, 40, 40), "broken"}

	results, err := CompressAll(images, DefaultOptions, nil)
	assert.Error(t, err)
	assert.Nil(t, results)
}
