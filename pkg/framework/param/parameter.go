// Package param provides lock-free plugin parameters and the fixed parameter bank.
package param

import (
	"math"
	"sync/atomic"
)

// Parameter represents a plugin parameter
type Parameter struct {
	ID           uint32
	Name         string
	Unit         string
	DefaultValue float32
	Flags        uint32

	// Clamp range for the normalized value, always inside [0, 1]
	floor   float32
	ceiling float32

	// Atomic value for lock-free access in audio thread
	value atomic.Uint32 // float32 bits

	// Value formatting
	formatFunc func(float32) string
	parseFunc  func(string) (float32, error)
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
)

// GetValue returns the current normalized value (0-1)
func (p *Parameter) GetValue() float32 {
	return math.Float32frombits(p.value.Load())
}

// SetValue stores value clamped to the parameter's floor and ceiling.
// NaN is stored as the floor.
func (p *Parameter) SetValue(value float32) {
	p.value.Store(math.Float32bits(p.Clamp(value)))
}

// Clamp maps any float32 into the parameter's storable range
func (p *Parameter) Clamp(value float32) float32 {
	switch {
	case value != value:
		return p.floor
	case value < p.floor:
		return p.floor
	case value > p.ceiling:
		return p.ceiling
	}
	return value
}

// Floor returns the lowest value the parameter will store
func (p *Parameter) Floor() float32 {
	return p.floor
}

// Ceiling returns the highest value the parameter will store
func (p *Parameter) Ceiling() float32 {
	return p.ceiling
}

// Reset restores the default value
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// CanAutomate reports whether the host may automate the parameter
func (p *Parameter) CanAutomate() bool {
	return p.Flags&CanAutomate != 0
}

// FormatValue returns the display text for a normalized value
func (p *Parameter) FormatValue(normalized float32) string {
	if p.formatFunc != nil {
		return p.formatFunc(normalized)
	}
	return PercentFormatter(normalized)
}

// Text returns the display text for the current value
func (p *Parameter) Text() string {
	return p.FormatValue(p.GetValue())
}

// ParseValue parses display text back into a normalized value.
// The result is clamped the same way SetValue clamps.
func (p *Parameter) ParseValue(str string) (float32, error) {
	parse := p.parseFunc
	if parse == nil {
		parse = PercentParser
	}
	normalized, err := parse(str)
	if err != nil {
		return 0, err
	}
	return p.Clamp(normalized), nil
}
