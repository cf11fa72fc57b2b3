package merkle

import "errors"

// Sentinel errors returned by construction, proof generation and
// verification. Call sites wrap them with context; callers match with
// errors.Is.
var (
	// ErrNilArgument indicates a required argument was nil.
	ErrNilArgument = errors.New("required argument is nil")

	// ErrBadArgument indicates an argument outside the accepted domain,
	// or an operation on a destroyed tree.
	ErrBadArgument = errors.New("invalid argument")

	// ErrBadLength indicates an empty input set or an empty data block.
	ErrBadLength = errors.New("invalid length")

	// ErrTreeBuild indicates the reduction violated an internal invariant
	// while assembling the tree.
	ErrTreeBuild = errors.New("tree construction failed")

	// ErrInvalidIndex indicates a leaf index outside the tree.
	ErrInvalidIndex = errors.New("leaf index out of range")

	// ErrProofInvalid indicates a proof that does not reproduce the
	// expected root hash.
	ErrProofInvalid = errors.New("proof does not match root")

	// ErrNotFound indicates that no leaf matched the given predicate.
	ErrNotFound = errors.New("no matching leaf")
)
