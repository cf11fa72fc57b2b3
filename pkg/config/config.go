// Package config carries the tree construction settings shared by the CLI
// commands and their validation.
package config

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/alderlab/merkle-go/pkg/hasher"
)

// Environment variable names for the merkle CLI configuration
const (
	EnvMerkleBranchingFactor = "MERKLE_BRANCHING_FACTOR"
	EnvMerkleAlgorithm       = "MERKLE_ALGORITHM"
	EnvMerkleDebug           = "MERKLE_DEBUG"
)

// Defaults applied when neither flag nor environment provides a value
const (
	DefaultBranchingFactor = 2
	DefaultAlgorithm       = hasher.AlgorithmSHA256
)

// TreeConfig represents the tree construction settings for a CLI run.
type TreeConfig struct {
	// BranchingFactor is the maximum number of children per internal node
	BranchingFactor int `json:"branching_factor"`

	// Algorithm names the digest algorithm, see hasher.Algorithms
	Algorithm string `json:"algorithm"`

	// Operational settings
	Debug bool `json:"debug"`
}

// Validate validates the tree construction settings.
func (c *TreeConfig) Validate() error {
	var allErrors field.ErrorList
	if c.BranchingFactor < 2 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("branchingFactor"), c.BranchingFactor, "must be at least 2"))
	}
	if c.Algorithm == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("algorithm"), "algorithm is required"))
	} else if _, err := hasher.New(c.Algorithm); err != nil {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("algorithm"), c.Algorithm, hasher.Algorithms()))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// Hasher resolves the configured algorithm. Call Validate first.
func (c *TreeConfig) Hasher() (hasher.Hasher, error) {
	return hasher.New(c.Algorithm)
}

// SupportedAlgorithmsString returns the algorithm names for CLI help text.
func SupportedAlgorithmsString() string {
	return strings.Join(hasher.Algorithms(), ", ")
}
