package decode

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	return img
}

func TestBytesFormats(t *testing.T) {
	for _, f := range []imaging.Format{imaging.PNG, imaging.JPEG, imaging.GIF, imaging.BMP, imaging.TIFF} {
		var buf bytes.Buffer
		require.NoError(t, imaging.Encode(&buf, checker(12, 7), f))

		img, err := Bytes(buf.Bytes())
		require.NoError(t, err, "format %v", f)
		assert.Equal(t, 12, img.Bounds().Dx(), "format %v", f)
		assert.Equal(t, 7, img.Bounds().Dy(), "format %v", f)
	}
}

func TestBytesGarbage(t *testing.T) {
	_, err := Bytes([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.png")
	require.NoError(t, imaging.Save(checker(5, 5), path))

	img, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 5), img.Bounds())

	_, err = File(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
