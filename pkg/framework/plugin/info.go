package plugin

import (
	"errors"
	"fmt"

	"github.com/deathdisco/ddconrod/pkg/framework/param"
)

// Category of a plugin as advertised to the host
type Category int

const (
	CategoryUnknown Category = iota
	CategoryEffect
	CategorySynth
	CategoryAnalysis
)

// String returns the host-facing category name
func (c Category) String() string {
	switch c {
	case CategoryEffect:
		return "Effect"
	case CategorySynth:
		return "Synth"
	case CategoryAnalysis:
		return "Analysis"
	default:
		return "Unknown"
	}
}

// Info contains plugin metadata consumed by the host adapter
type Info struct {
	Name       string   // Display name
	Vendor     string   // Company/developer name
	Version    string   // Semantic version (e.g., "1.0.0")
	UniqueID   int32    // Host-visible plugin identifier
	Category   Category // Plugin category
	Inputs     int      // Audio input channels
	Outputs    int      // Audio output channels
	Parameters int      // Number of host parameters
}

// DefaultInfo describes the threshold/gain clipper
func DefaultInfo() Info {
	return Info{
		Name:       "DDConrod2",
		Vendor:     "DeathDisco",
		Version:    "0.1.0",
		UniqueID:   7790,
		Category:   CategoryEffect,
		Inputs:     2,
		Outputs:    2,
		Parameters: param.NumParams,
	}
}

var errInvalidInfo = errors.New("invalid plugin info")

// Validate checks that the metadata can be advertised to a host
func (i Info) Validate() error {
	switch {
	case i.Name == "":
		return fmt.Errorf("%w: empty name", errInvalidInfo)
	case i.UniqueID == 0:
		return fmt.Errorf("%w: unique id must be non-zero", errInvalidInfo)
	case i.Inputs < 0 || i.Outputs < 0:
		return fmt.Errorf("%w: negative channel count %d/%d", errInvalidInfo, i.Inputs, i.Outputs)
	case i.Parameters != param.NumParams:
		return fmt.Errorf("%w: %d parameters declared, bank has %d", errInvalidInfo, i.Parameters, param.NumParams)
	}
	return nil
}

// IsInvalidInfo reports whether err came from Info.Validate
func IsInvalidInfo(err error) bool {
	return errors.Is(err, errInvalidInfo)
}
