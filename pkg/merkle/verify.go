package merkle

import (
	"fmt"

	"github.com/alderlab/merkle-go/pkg/hasher"
)

// VerifyProof checks that proof places leafData under expectedRoot, using
// the digest algorithm recorded in the proof; an empty algorithm means
// SHA-256. leafData is the original block, not its digest. Verification
// needs no live tree and takes no locks.
//
// A nil error means the proof is valid. ErrProofInvalid means the replayed
// root did not match; other errors indicate malformed input.
func VerifyProof(proof *Proof, expectedRoot [hasher.Size]byte, leafData []byte) error {
	if proof == nil {
		return fmt.Errorf("%w: proof", ErrNilArgument)
	}
	name := proof.Algorithm
	if name == "" {
		name = hasher.AlgorithmSHA256
	}
	h, err := hasher.New(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadArgument, err)
	}
	return VerifyProofUsing(proof, expectedRoot, leafData, h)
}

// VerifyProofUsing checks proof against expectedRoot with an explicit
// hasher, ignoring the algorithm recorded in the proof.
func VerifyProofUsing(proof *Proof, expectedRoot [hasher.Size]byte, leafData []byte, h hasher.Hasher) error {
	switch {
	case proof == nil:
		return fmt.Errorf("%w: proof", ErrNilArgument)
	case h == nil:
		return fmt.Errorf("%w: hasher", ErrNilArgument)
	case leafData == nil:
		return fmt.Errorf("%w: leaf data", ErrNilArgument)
	case len(leafData) == 0:
		return fmt.Errorf("%w: leaf data is empty", ErrBadLength)
	}

	current := h.Hash(leafData)

	for level, item := range proof.Items {
		// NodePosition may equal the sibling count: that places the
		// node after the last recorded sibling.
		if item.NodePosition < 0 || item.NodePosition > len(item.SiblingHashes) {
			return fmt.Errorf("%w: node position %d with %d siblings at level %d",
				ErrBadArgument, item.NodePosition, len(item.SiblingHashes), level)
		}

		// Rebuild the parent's ordered child list with the running
		// hash slotted back into its recorded position, then rehash.
		group := make([][]byte, 0, len(item.SiblingHashes)+1)
		for i := 0; i < item.NodePosition; i++ {
			group = append(group, item.SiblingHashes[i][:])
		}
		group = append(group, current[:])
		for i := item.NodePosition; i < len(item.SiblingHashes); i++ {
			group = append(group, item.SiblingHashes[i][:])
		}

		current = h.Hash(group...)
	}

	if current != expectedRoot {
		return fmt.Errorf("%w: replayed root %x", ErrProofInvalid, current)
	}
	return nil
}
