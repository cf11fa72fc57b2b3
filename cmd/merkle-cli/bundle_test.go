package main

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alderlab/merkle-go/pkg/hasher"
	"github.com/alderlab/merkle-go/pkg/merkle"
)

// TestProofBundleRoundTrip tests that a proof survives the JSON wire form
// and still verifies
func TestProofBundleRoundTrip(t *testing.T) {
	blocks := [][]byte{
		[]byte("alpha"), []byte("bravo"), []byte("charlie"),
		[]byte("delta"), []byte("echo"), []byte("foxtrot"),
	}
	tree, err := merkle.New(blocks, merkle.WithBranchingFactor(3))
	require.NoError(t, err)
	defer tree.Destroy()

	root, err := tree.RootHash()
	require.NoError(t, err)
	original, err := tree.GenerateProof(4)
	require.NoError(t, err)

	bundle := newProofBundle("echo.txt", root, original)
	require.NotEmpty(t, bundle.ID)
	require.Equal(t, 4, bundle.LeafIndex)
	require.Equal(t, hasher.AlgorithmSHA256, bundle.Algorithm)

	raw, err := json.Marshal(bundle)
	require.NoError(t, err)

	var decoded proofBundle
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, bundle.ID, decoded.ID)
	require.Equal(t, bundle.RootHash, decoded.RootHash)

	restored, err := decoded.proof()
	require.NoError(t, err)
	require.Equal(t, original.Items, restored.Items)
	require.Equal(t, original.LeafIndex, restored.LeafIndex)
	require.Equal(t, original.BranchingFactor, restored.BranchingFactor)
	require.Equal(t, original.Algorithm, restored.Algorithm)

	require.NoError(t, merkle.VerifyProof(restored, root, blocks[4]))
}

// TestProofBundleBadSibling tests rejection of corrupted hex in a bundle
func TestProofBundleBadSibling(t *testing.T) {
	bundle := &proofBundle{
		Items: []bundleItem{
			{NodePosition: 0, SiblingHashes: []string{"not-hex"}},
		},
	}
	_, err := bundle.proof()
	require.Error(t, err)

	short := &proofBundle{
		Items: []bundleItem{
			{NodePosition: 0, SiblingHashes: []string{"abcd"}},
		},
	}
	_, err = short.proof()
	require.Error(t, err)
}

// TestDecodeDigest tests hex digest parsing
func TestDecodeDigest(t *testing.T) {
	h := hasher.SHA256{}.Hash([]byte("x"))

	digest, err := decodeDigest(hex.EncodeToString(h[:]))
	require.NoError(t, err)
	require.Equal(t, h, digest)

	_, err = decodeDigest("abcd")
	require.Error(t, err)

	_, err = decodeDigest("zz")
	require.Error(t, err)
}

// TestLoadDirectory tests file loading order and filtering
func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("bee"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("ay"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "nested.txt"), []byte("nope"), 0o644))

	files, err := loadDirectory(dir, zap.NewNop())
	require.NoError(t, err)

	// Lexical order, empty file and subdirectory skipped
	require.Len(t, files, 2)
	require.Equal(t, "a.txt", files[0].name)
	require.Equal(t, []byte("ay"), files[0].data)
	require.Equal(t, "b.txt", files[1].name)
	require.Equal(t, []byte("bee"), files[1].data)
}

// TestLoadDirectoryEmpty tests the no-usable-files error
func TestLoadDirectoryEmpty(t *testing.T) {
	dir := t.TempDir()
	_, err := loadDirectory(dir, zap.NewNop())
	require.Error(t, err)
}
