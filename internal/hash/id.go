// Package hash computes content fingerprints of sequence data.
package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 of data.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}
