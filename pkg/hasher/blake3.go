package hasher

import "github.com/zeebo/blake3"

// Blake3 hashes with BLAKE3 at its default 256-bit output size.
type Blake3 struct{}

// Hash returns the BLAKE3 digest of the concatenation of the given slices.
func (Blake3) Hash(data ...[]byte) [Size]byte {
	h := blake3.New()
	for _, d := range data {
		_, _ = h.Write(d)
	}
	var out [Size]byte
	h.Sum(out[:0])
	return out
}

// Name returns the algorithm identifier.
func (Blake3) Name() string { return AlgorithmBlake3 }
