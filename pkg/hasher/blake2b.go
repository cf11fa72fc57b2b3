package hasher

import "golang.org/x/crypto/blake2b"

// Blake2b hashes with BLAKE2b-256.
type Blake2b struct{}

// Hash returns the BLAKE2b-256 digest of the concatenation of the given
// slices.
func (Blake2b) Hash(data ...[]byte) [Size]byte {
	h, _ := blake2b.New256(nil) // cannot fail without a key
	for _, d := range data {
		h.Write(d)
	}
	var out [Size]byte
	h.Sum(out[:0])
	return out
}

// Name returns the algorithm identifier.
func (Blake2b) Name() string { return AlgorithmBlake2b }
