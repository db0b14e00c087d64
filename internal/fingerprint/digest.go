package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"math"

	"github.com/pkg/errors"

	"github.com/AnyUserName/altprint-cli/internal/dct"
)

// Digest hashes m row-major, one byte per sample, and returns the SHA-256
// as lowercase hex. Every sample must be an integer in 0..255.
func Digest(m dct.Matrix) (string, error) {
	if err := m.Check(); err != nil {
		return "", invalidf(err, "digest")
	}
	buf := make([]byte, len(m.Data))
	for i, v := range m.Data {
		if v < 0 || v > 255 || v != math.Trunc(v) {
			return "", errors.Wrapf(ErrInvalidImage, "sample %v at (%d,%d) is not a byte", v, i/m.N, i%m.N)
		}
		buf[i] = byte(v)
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}
