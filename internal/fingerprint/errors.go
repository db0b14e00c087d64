package fingerprint

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidImage marks a source that cannot be fingerprinted: nil or
// zero-sized, or one whose samples are not finite. It is never retryable.
var ErrInvalidImage = errors.New("invalid image")

// invalidf marks cause as an ErrInvalidImage while keeping it reachable
// through errors.Is.
func invalidf(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidImage, fmt.Sprintf(format, args...), cause)
}
