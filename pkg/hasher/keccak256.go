package hasher

import "golang.org/x/crypto/sha3"

// Keccak256 hashes with the legacy Keccak-256 variant used across the
// Ethereum ecosystem, which differs from standard SHA3-256 in padding.
type Keccak256 struct{}

// Hash returns the Keccak-256 digest of the concatenation of the given
// slices.
func (Keccak256) Hash(data ...[]byte) [Size]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out [Size]byte
	h.Sum(out[:0])
	return out
}

// Name returns the algorithm identifier.
func (Keccak256) Name() string { return AlgorithmKeccak256 }
