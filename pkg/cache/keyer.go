package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered artifact of the input
	// identified by inputHash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	GradientBase float64 `json:"gradient_base"`
	// StyleHash identifies the fonts, spacing and colors used.
	StyleHash string `json:"style_hash"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (k *DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), inputHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
