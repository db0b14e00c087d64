// Package hasher computes the xxHash64 content key of source files. The key
// identifies byte-identical inputs; it says nothing about visual similarity
// and is unrelated to the SHA-256 in a fingerprint.
package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// KeyLen is the number of hex chars kept in a content key (the full 64 bits).
const KeyLen = 16

// ContentKey returns the hex xxHash64 of data.
func ContentKey(data []byte) string {
	return encode(xxhash.Sum64(data))
}

func encode(v uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return hex.EncodeToString(b[:])
}
