// Package hasher provides the digest algorithms available to merkle trees.
//
// Every algorithm produces a fixed 32-byte digest. Internal tree nodes are
// hashed as one pass over the ordered concatenation of their children, so
// the interface takes a variadic list of byte slices.
package hasher

import (
	"errors"
	"fmt"
)

// Size is the digest length in bytes for every supported algorithm.
const Size = 32

// Supported algorithm names. These are the values carried in proofs and
// accepted by New.
const (
	AlgorithmSHA256    = "sha256"
	AlgorithmKeccak256 = "keccak256"
	AlgorithmBlake2b   = "blake2b"
	AlgorithmBlake3    = "blake3"
)

// ErrUnknownAlgorithm is returned by New for unrecognized algorithm names.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Hasher digests data into fixed-size hashes for tree construction and
// proof verification.
type Hasher interface {
	// Hash returns the digest of the concatenation of the given slices.
	Hash(data ...[]byte) [Size]byte

	// Name identifies the algorithm, as captured in proofs.
	Name() string
}

// New returns the hasher registered under name.
func New(name string) (Hasher, error) {
	switch name {
	case AlgorithmSHA256:
		return SHA256{}, nil
	case AlgorithmKeccak256:
		return Keccak256{}, nil
	case AlgorithmBlake2b:
		return Blake2b{}, nil
	case AlgorithmBlake3:
		return Blake3{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Algorithms lists the supported algorithm names in stable order.
func Algorithms() []string {
	return []string{
		AlgorithmSHA256,
		AlgorithmKeccak256,
		AlgorithmBlake2b,
		AlgorithmBlake3,
	}
}
