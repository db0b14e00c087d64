package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentKey(t *testing.T) {
	// xxHash64 of the empty input with seed 0.
	assert.Equal(t, "ef46db3751d8e999", ContentKey(nil))

	k := ContentKey([]byte("same bytes"))
	assert.Len(t, k, KeyLen)
	assert.Equal(t, k, ContentKey([]byte("same bytes")))
	assert.NotEqual(t, k, ContentKey([]byte("same bytes!")))
}
