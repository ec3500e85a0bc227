package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Processor готовит превью-заглушку для защищенных картинок: уменьшенная
// копия, которую видит зритель, не прошедший гейт.
type Processor struct {
	maxWidth int
	quality  int // JPEG quality (1-100)
}

func NewProcessor(maxWidth, quality int) *Processor {
	if maxWidth <= 0 {
		maxWidth = 320
	}
	if quality <= 0 || quality > 100 {
		quality = 60
	}
	return &Processor{
		maxWidth: maxWidth,
		quality:  quality,
	}
}

// Preview декодирует картинку, уменьшает до maxWidth с сохранением пропорций
// и кодирует обратно в исходный формат.
func (p *Processor) Preview(reader io.Reader) (io.Reader, string, error) {
	img, imgFormat, err := image.Decode(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	resized := p.downscale(img)

	var buf bytes.Buffer
	switch imgFormat {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode JPEG: %w", err)
		}
		return &buf, "image/jpeg", nil
	case "png":
		if err := png.Encode(&buf, resized); err != nil {
			return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
		}
		return &buf, "image/png", nil
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", imgFormat)
	}
}

func (p *Processor) downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= p.maxWidth {
		return img
	}

	newWidth := p.maxWidth
	newHeight := height * newWidth / width
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
