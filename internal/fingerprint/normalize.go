package fingerprint

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/AnyUserName/altprint-cli/internal/dct"
)

// Resample scales img to an edge×edge square, ignoring aspect ratio.
// The bilinear filter is fixed so the same source and edge always
// produce identical pixels.
func Resample(img image.Image, edge int) (*image.NRGBA, error) {
	if img == nil {
		return nil, errors.Wrap(ErrInvalidImage, "nil image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.Wrapf(ErrInvalidImage, "zero-sized image %dx%d", b.Dx(), b.Dy())
	}
	if edge <= 0 {
		return nil, errors.Wrapf(ErrInvalidImage, "bad target edge %d", edge)
	}
	return imaging.Resize(img, edge, edge, imaging.Linear), nil
}

// Greyscale reduces a square NRGBA buffer to an intensity matrix whose
// cells are the alpha-weighted channel mean, rounded into 0..255.
func Greyscale(img *image.NRGBA) (dct.Matrix, error) {
	if img == nil {
		return dct.Matrix{}, errors.Wrap(ErrInvalidImage, "nil buffer")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || w != h {
		return dct.Matrix{}, errors.Wrapf(ErrInvalidImage, "buffer must be square, got %dx%d", w, h)
	}

	m := dct.NewMatrix(w)
	for y := 0; y < h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			p := img.Pix[off : off+4 : off+4]
			m.Data[y*w+x] = intensity(p[0], p[1], p[2], p[3])
			off += 4
		}
	}
	return m, nil
}

func intensity(r, g, b, a uint8) float64 {
	v := float64(int(r)+int(g)+int(b)) * (float64(a) / 255)
	return math.Round(v / 765 * 255)
}
