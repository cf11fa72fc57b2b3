package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/alderlab/merkle-go/pkg/config"
	"github.com/alderlab/merkle-go/pkg/hasher"
	"github.com/alderlab/merkle-go/pkg/merkle"
)

// fileBlock pairs a file name with its content. Trees are built over the
// contents in lexical name order.
type fileBlock struct {
	name string
	data []byte
}

// loadDirectory reads every regular file in dir in lexical name order.
// Empty files cannot be tree leaves and are skipped with a warning.
func loadDirectory(dir string, l *zap.Logger) ([]fileBlock, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	files := make([]fileBlock, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", entry.Name())
		}
		if len(data) == 0 {
			l.Warn("skipping empty file", zap.String("file", entry.Name()))
			continue
		}
		files = append(files, fileBlock{name: entry.Name(), data: data})
	}

	if len(files) == 0 {
		return nil, errors.Errorf("no usable files in %s", dir)
	}
	return files, nil
}

// manifest describes a built tree for later auditing.
type manifest struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Algorithm       string    `json:"algorithm"`
	BranchingFactor int       `json:"branching_factor"`
	LeafCount       int       `json:"leaf_count"`
	Height          int       `json:"height"`
	RootHash        string    `json:"root_hash"`
	Files           []string  `json:"files"`
}

func newManifest(cfg *config.TreeConfig, tree *merkle.Tree, files []fileBlock, root [hasher.Size]byte) *manifest {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.name
	}
	return &manifest{
		ID:              uuid.New().String(),
		CreatedAt:       time.Now().UTC(),
		Algorithm:       cfg.Algorithm,
		BranchingFactor: cfg.BranchingFactor,
		LeafCount:       tree.LeafCount(),
		Height:          tree.Height(),
		RootHash:        hex.EncodeToString(root[:]),
		Files:           names,
	}
}

// proofBundle is the JSON wire form of an inclusion proof plus enough
// context to verify it later.
type proofBundle struct {
	ID              string       `json:"id"`
	CreatedAt       time.Time    `json:"created_at"`
	Algorithm       string       `json:"algorithm"`
	BranchingFactor int          `json:"branching_factor"`
	LeafIndex       int          `json:"leaf_index"`
	LeafFile        string       `json:"leaf_file"`
	RootHash        string       `json:"root_hash"`
	Items           []bundleItem `json:"items"`
}

// bundleItem mirrors one proof level with hex-encoded sibling hashes.
type bundleItem struct {
	NodePosition  int      `json:"node_position"`
	SiblingHashes []string `json:"sibling_hashes"`
}

func newProofBundle(file string, root [hasher.Size]byte, p *merkle.Proof) *proofBundle {
	items := make([]bundleItem, len(p.Items))
	for i, item := range p.Items {
		siblings := make([]string, len(item.SiblingHashes))
		for j, s := range item.SiblingHashes {
			siblings[j] = hex.EncodeToString(s[:])
		}
		items[i] = bundleItem{
			NodePosition:  item.NodePosition,
			SiblingHashes: siblings,
		}
	}
	return &proofBundle{
		ID:              uuid.New().String(),
		CreatedAt:       time.Now().UTC(),
		Algorithm:       p.Algorithm,
		BranchingFactor: p.BranchingFactor,
		LeafIndex:       p.LeafIndex,
		LeafFile:        file,
		RootHash:        hex.EncodeToString(root[:]),
		Items:           items,
	}
}

// proof converts the bundle back into a verifiable proof.
func (b *proofBundle) proof() (*merkle.Proof, error) {
	items := make([]merkle.ProofItem, len(b.Items))
	for i, item := range b.Items {
		siblings := make([][hasher.Size]byte, len(item.SiblingHashes))
		for j, s := range item.SiblingHashes {
			digest, err := decodeDigest(s)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid sibling hash %d at level %d", j, i)
			}
			siblings[j] = digest
		}
		items[i] = merkle.ProofItem{
			SiblingHashes: siblings,
			NodePosition:  item.NodePosition,
		}
	}
	return &merkle.Proof{
		Items:           items,
		LeafIndex:       b.LeafIndex,
		BranchingFactor: b.BranchingFactor,
		Algorithm:       b.Algorithm,
	}, nil
}

// readProofBundle loads and decodes a bundle from disk.
func readProofBundle(path string) (*proofBundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read proof bundle %s", path)
	}
	var bundle proofBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, errors.Wrapf(err, "failed to decode proof bundle %s", path)
	}
	return &bundle, nil
}

// writeJSON writes v as indented JSON with a trailing newline.
func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}
