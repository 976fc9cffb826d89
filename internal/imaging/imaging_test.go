package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spottive/internal/core/apperror"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	out, err := Normalize(encodePNG(t, 640, 480))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", out.MIME)
	assert.Equal(t, 640, out.Width)
	assert.Equal(t, 480, out.Height)
	assert.NotEmpty(t, out.Data)
}

func TestNormalizeDownscalesLargeImages(t *testing.T) {
	out, err := Normalize(encodePNG(t, 3200, 1600))
	require.NoError(t, err)
	assert.Equal(t, 1600, out.Width)
	assert.Equal(t, 800, out.Height)
}

func TestNormalizeRejectsNonImages(t *testing.T) {
	_, err := Normalize([]byte("definitely not an image payload, just text"))
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "got %v", err)
}

func TestNormalizeRejectsTruncatedImage(t *testing.T) {
	data := encodePNG(t, 100, 100)
	_, err := Normalize(data[:40])
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "got %v", err)
}
