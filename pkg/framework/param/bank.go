package param

// Parameter indices, stable and host-visible
const (
	Threshold = iota
	Gain

	// NumParams is the fixed bank size
	NumParams
)

const (
	// MinThreshold keeps the clip transform away from a zero divisor
	MinThreshold float32 = 0.01

	// DefaultThreshold and DefaultGain leave the signal untouched
	DefaultThreshold float32 = 1.0
	DefaultGain      float32 = 1.0
)

// Bank is the fixed, ordered set of plugin parameters.
// Every accessor is total: bad indices read as zero values and writes to
// them are dropped, since the host ABI has no error channel for parameters.
type Bank struct {
	params [NumParams]*Parameter
}

// NewBank creates the parameter bank with its documented defaults
func NewBank() *Bank {
	b := &Bank{}
	b.params[Threshold] = New(Threshold, "Threshold").
		Unit(PercentUnit).
		Floor(MinThreshold).
		Ceiling(1).
		Default(DefaultThreshold).
		Formatter(PercentFormatter, PercentParser).
		Build()
	b.params[Gain] = New(Gain, "Gain").
		Unit(PercentUnit).
		Floor(0).
		Ceiling(1).
		Default(DefaultGain).
		Formatter(PercentFormatter, PercentParser).
		Build()
	return b
}

// Count returns the number of parameters
func (b *Bank) Count() int {
	return NumParams
}

// Parameter retrieves a parameter by index, nil when out of range
func (b *Bank) Parameter(index int) *Parameter {
	if index < 0 || index >= NumParams {
		return nil
	}
	return b.params[index]
}

// Get returns the normalized value, 0 for unknown indices
func (b *Bank) Get(index int) float32 {
	if p := b.Parameter(index); p != nil {
		return p.GetValue()
	}
	return 0
}

// Set stores a clamped normalized value; unknown indices are ignored
func (b *Bank) Set(index int, value float32) {
	if p := b.Parameter(index); p != nil {
		p.SetValue(value)
	}
}

// SetText parses display text into the parameter.
// Reports false when the index is unknown or the text does not parse.
func (b *Bank) SetText(index int, text string) bool {
	p := b.Parameter(index)
	if p == nil {
		return false
	}
	normalized, err := p.ParseValue(text)
	if err != nil {
		return false
	}
	p.SetValue(normalized)
	return true
}

// Effective returns the value the DSP uses for a parameter
func (b *Bank) Effective(index int) float32 {
	v := b.Get(index)
	if index == Threshold && v < MinThreshold {
		// Set already floors; the divisor must never reach zero
		return MinThreshold
	}
	return v
}

// Name returns the display name, "" for unknown indices
func (b *Bank) Name(index int) string {
	if p := b.Parameter(index); p != nil {
		return p.Name
	}
	return ""
}

// DisplayText returns the current value as text without the unit
func (b *Bank) DisplayText(index int) string {
	if p := b.Parameter(index); p != nil {
		return p.Text()
	}
	return ""
}

// Unit returns the display unit, "" for unknown indices
func (b *Bank) Unit(index int) string {
	if p := b.Parameter(index); p != nil {
		return p.Unit
	}
	return ""
}

// DisplayWithUnit joins DisplayText and Unit, e.g. "50%"
func (b *Bank) DisplayWithUnit(index int) string {
	if p := b.Parameter(index); p != nil {
		return p.Text() + p.Unit
	}
	return ""
}

// Reset restores every parameter to its default
func (b *Bank) Reset() {
	for _, p := range b.params {
		p.Reset()
	}
}

// All returns the parameters in index order
func (b *Bank) All() []*Parameter {
	result := make([]*Parameter, NumParams)
	copy(result, b.params[:])
	return result
}
