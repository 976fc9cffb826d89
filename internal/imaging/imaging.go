// Package imaging normalizes uploaded product photos before they are
// pushed to the asset host.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"golang.org/x/image/draw"

	"spottive/internal/core/apperror"
)

const (
	// maxDimension bounds the longer edge of stored product photos.
	maxDimension = 1600
	jpegQuality  = 85
)

// Image is a normalized product photo ready for upload.
type Image struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Normalize decodes an uploaded photo, downscales it when either edge
// exceeds the stored maximum, and re-encodes as JPEG. Unsupported or
// corrupt input yields a validation error.
func Normalize(data []byte) (*Image, error) {
	mime := http.DetectContentType(data)
	switch mime {
	case "image/jpeg", "image/png", "image/gif":
	default:
		return nil, apperror.Validation("unsupported image type").WithDetail("mime", mime)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperror.Validation("cannot decode image").WithDetail("mime", mime)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, apperror.Validation("empty image")
	}

	if width > maxDimension || height > maxDimension {
		scale := float64(maxDimension) / float64(max(width, height))
		width = int(float64(width) * scale)
		height = int(float64(height) * scale)
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	return &Image{
		Data:   buf.Bytes(),
		MIME:   "image/jpeg",
		Width:  width,
		Height: height,
	}, nil
}
