// Package imageprep decodes still images into normalized model input tensors.
package imageprep

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
)

// Size is the square edge, in pixels, of the model input.
const Size = 224

// MaxPixels bounds width×height of an image accepted for decoding.
const MaxPixels = 50_000_000

// ImageNet channel statistics the image model was trained with.
var (
	Mean = [3]float32{0.485, 0.456, 0.406}
	Std  = [3]float32{0.229, 0.224, 0.225}
)

// Ensure Preprocessor implements the interface.
var _ driven.ImagePreprocessor = (*Preprocessor)(nil)

// Preprocessor decodes, resizes and normalizes images.
type Preprocessor struct {
	size   int
	scaler draw.Scaler
}

// New creates a preprocessor producing [1,3,224,224] tensors with bilinear resizing.
func New() *Preprocessor {
	return &Preprocessor{
		size:   Size,
		scaler: draw.BiLinear,
	}
}

// Prepare decodes data and returns the normalized, channel-first tensor.
func (p *Preprocessor) Prepare(data []byte) (domain.Tensor, error) {
	img, err := Decode(data)
	if err != nil {
		return domain.Tensor{}, err
	}

	rgb := image.NewRGBA(image.Rect(0, 0, p.size, p.size))
	p.scaler.Scale(rgb, rgb.Bounds(), dropAlpha(img), img.Bounds(), draw.Src, nil)

	plane := p.size * p.size
	out := make([]float32, 3*plane)
	for y := 0; y < p.size; y++ {
		for x := 0; x < p.size; x++ {
			off := rgb.PixOffset(x, y)
			idx := y*p.size + x
			for c := 0; c < 3; c++ {
				v := float32(rgb.Pix[off+c]) / 255
				out[c*plane+idx] = (v - Mean[c]) / Std[c]
			}
		}
	}

	return domain.NewFloatTensor("input", out, 1, 3, int64(p.size), int64(p.size)), nil
}

// dropAlpha returns an opaque copy of img holding its straight colour values,
// so transparent pixels keep their colour instead of turning black.
func dropAlpha(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	if src, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := src.PixOffset(b.Min.X, y)
			di := out.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				copy(out.Pix[di:di+3], src.Pix[si:si+3])
				out.Pix[di+3] = 0xff
				si += 4
				di += 4
			}
		}
		return out
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return out
}

// Decode decodes any registered image format. The header is checked first
// and images larger than MaxPixels are rejected without decoding.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("decode %s image: zero size", format)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("decode %s image: %dx%d exceeds %d pixels", format, cfg.Width, cfg.Height, MaxPixels)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s image: zero size", format)
	}
	return img, nil
}
