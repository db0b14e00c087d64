// Package decode turns encoded image bytes into an image.Image. It is the
// only place in altprint that knows about codecs; fingerprinting starts from
// whatever this returns.
package decode

import (
	"bytes"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode wraps every decoder failure.
var ErrDecode = errors.New("decode failed")

// Decode reads an image in any registered format (gif, jpeg, png, bmp,
// tiff, webp). EXIF orientation is not applied.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "%v", err)
	}
	return img, nil
}

// Bytes decodes an in-memory image.
func Bytes(data []byte) (image.Image, error) {
	return Decode(bytes.NewReader(data))
}

// File decodes the image stored at path.
func File(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return img, nil
}
