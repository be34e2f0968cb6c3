package cli

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewImage(t *testing.T) {
	small := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	assert.Same(t, small, previewImage(small))

	large := image.NewNRGBA(image.Rect(0, 0, 2048, 1024))
	b := previewImage(large).Bounds()
	assert.Equal(t, previewMaxSize, b.Dx())
	assert.Equal(t, previewMaxSize/2, b.Dy())
}

func TestQuantize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
	}

	paletted := quantize(img)
	assert.Equal(t, img.Bounds(), paletted.Bounds())
	assert.LessOrEqual(t, len(paletted.Palette), 64)
	assert.NotEmpty(t, paletted.Palette)
}
