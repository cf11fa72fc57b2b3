package hasher

import "crypto/sha256"

// SHA256 hashes with the standard library SHA-256. It is the default
// algorithm for new trees.
type SHA256 struct{}

// Hash returns the SHA-256 digest of the concatenation of the given slices.
func (SHA256) Hash(data ...[]byte) [Size]byte {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var out [Size]byte
	h.Sum(out[:0])
	return out
}

// Name returns the algorithm identifier.
func (SHA256) Name() string { return AlgorithmSHA256 }
