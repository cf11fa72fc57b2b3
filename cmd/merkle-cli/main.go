package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/alderlab/merkle-go/pkg/config"
	"github.com/alderlab/merkle-go/pkg/hasher"
	"github.com/alderlab/merkle-go/pkg/logger"
	"github.com/alderlab/merkle-go/pkg/merkle"
)

func main() {
	app := &cli.App{
		Name:  "merkle-cli",
		Usage: "Build merkle trees over files and prove file inclusion",
		Description: `Hashes every regular file in a directory into an n-ary merkle tree.

The root hash commits to the full file set; a proof bundle shows that one
file belongs to that set and verifies against the root hash alone.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "branching-factor",
				Aliases: []string{"b"},
				Value:   config.DefaultBranchingFactor,
				Usage:   "Maximum children per internal node",
				EnvVars: []string{config.EnvMerkleBranchingFactor},
			},
			&cli.StringFlag{
				Name:    "algorithm",
				Aliases: []string{"a"},
				Value:   config.DefaultAlgorithm,
				Usage:   "Digest algorithm: " + config.SupportedAlgorithmsString(),
				EnvVars: []string{config.EnvMerkleAlgorithm},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				EnvVars: []string{config.EnvMerkleDebug},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "root",
				Usage:     "Print the root hash of a directory's files",
				ArgsUsage: "DIR",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "manifest",
						Aliases: []string{"m"},
						Usage:   "Write a JSON manifest of the tree to this path",
					},
				},
				Action: runRoot,
			},
			{
				Name:      "prove",
				Usage:     "Emit an inclusion proof bundle for one file in a directory",
				ArgsUsage: "DIR FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the proof bundle to this path instead of stdout",
					},
				},
				Action: runProve,
			},
			{
				Name:      "verify",
				Usage:     "Check a proof bundle against a file and a root hash",
				ArgsUsage: "BUNDLE FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "root",
						Aliases: []string{"r"},
						Usage:   "Expected root hash in hex; defaults to the root recorded in the bundle",
					},
				},
				Action: runVerify,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// parseConfig builds and validates the tree settings from flags and
// environment, plus the logger they select.
func parseConfig(c *cli.Context) (*config.TreeConfig, *zap.Logger, error) {
	cfg := &config.TreeConfig{
		BranchingFactor: c.Int("branching-factor"),
		Algorithm:       c.String("algorithm"),
		Debug:           c.Bool("debug"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid configuration")
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build logger")
	}
	return cfg, l, nil
}

// buildTree constructs the tree the flags describe over the loaded files.
func buildTree(cfg *config.TreeConfig, l *zap.Logger, files []fileBlock) (*merkle.Tree, error) {
	h, err := cfg.Hasher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve hash algorithm")
	}

	blocks := make([][]byte, len(files))
	for i, f := range files {
		blocks[i] = f.data
	}

	tree, err := merkle.New(blocks,
		merkle.WithBranchingFactor(cfg.BranchingFactor),
		merkle.WithHasher(h),
		merkle.WithLogger(l),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build merkle tree")
	}
	return tree, nil
}

func runRoot(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one directory argument")
	}

	cfg, l, err := parseConfig(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	files, err := loadDirectory(c.Args().Get(0), l)
	if err != nil {
		return err
	}

	tree, err := buildTree(cfg, l, files)
	if err != nil {
		return err
	}
	defer tree.Destroy()

	root, err := tree.RootHash()
	if err != nil {
		return errors.Wrap(err, "failed to read root hash")
	}
	fmt.Println(hex.EncodeToString(root[:]))

	if path := c.String("manifest"); path != "" {
		m := newManifest(cfg, tree, files, root)
		if err := writeJSON(path, m); err != nil {
			return errors.Wrapf(err, "failed to write manifest to %s", path)
		}
		l.Info("manifest written",
			zap.String("path", path),
			zap.String("id", m.ID),
			zap.Int("files", len(files)),
		)
	}
	return nil
}

func runProve(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("expected a directory and a file name")
	}

	cfg, l, err := parseConfig(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	files, err := loadDirectory(c.Args().Get(0), l)
	if err != nil {
		return err
	}

	name := c.Args().Get(1)
	leafIndex := -1
	for i, f := range files {
		if f.name == name {
			leafIndex = i
			break
		}
	}
	if leafIndex < 0 {
		return errors.Errorf("file %q is not part of the tree (%d files loaded)", name, len(files))
	}

	tree, err := buildTree(cfg, l, files)
	if err != nil {
		return err
	}
	defer tree.Destroy()

	root, err := tree.RootHash()
	if err != nil {
		return errors.Wrap(err, "failed to read root hash")
	}
	proof, err := tree.GenerateProof(leafIndex)
	if err != nil {
		return errors.Wrapf(err, "failed to prove file %q", name)
	}

	bundle := newProofBundle(name, root, proof)
	l.Info("proof generated",
		zap.String("id", bundle.ID),
		zap.String("file", name),
		zap.Int("leaf_index", leafIndex),
		zap.Int("levels", len(bundle.Items)),
	)

	if path := c.String("output"); path != "" {
		if err := writeJSON(path, bundle); err != nil {
			return errors.Wrapf(err, "failed to write proof bundle to %s", path)
		}
		fmt.Printf("proof bundle written to %s\n", path)
		return nil
	}
	return printJSON(bundle)
}

func runVerify(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("expected a proof bundle and a file")
	}

	// Verification replays the bundle as recorded; the tree construction
	// flags play no part in it.
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("debug")})
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}
	defer func() { _ = l.Sync() }()

	bundle, err := readProofBundle(c.Args().Get(0))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.Args().Get(1))
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", c.Args().Get(1))
	}

	rootHex := c.String("root")
	if rootHex == "" {
		rootHex = bundle.RootHash
		l.Warn("no --root given, trusting the root recorded in the bundle",
			zap.String("root", rootHex))
	}
	root, err := decodeDigest(rootHex)
	if err != nil {
		return errors.Wrap(err, "invalid root hash")
	}

	proof, err := bundle.proof()
	if err != nil {
		return err
	}

	if err := merkle.VerifyProof(proof, root, data); err != nil {
		if errors.Is(err, merkle.ErrProofInvalid) {
			return errors.Errorf("verification FAILED: %v", err)
		}
		return errors.Wrap(err, "malformed proof")
	}

	fmt.Printf("OK: %s is included under root %s\n", bundle.LeafFile, rootHex)
	return nil
}

// decodeDigest parses a hex digest of exactly one hash length.
func decodeDigest(s string) ([hasher.Size]byte, error) {
	var out [hasher.Size]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(raw) != hasher.Size {
		return out, errors.Errorf("expected %d bytes, got %d", hasher.Size, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}
