package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:           id,
			Name:         name,
			DefaultValue: 0,
			Flags:        CanAutomate,
			floor:        0,
			ceiling:      1,
		},
	}
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Floor sets the lowest normalized value the parameter will store
func (b *Builder) Floor(floor float32) *Builder {
	b.param.floor = clampUnit(floor)
	if b.param.ceiling < b.param.floor {
		b.param.ceiling = b.param.floor
	}
	return b
}

// Ceiling sets the highest normalized value the parameter will store
func (b *Builder) Ceiling(ceiling float32) *Builder {
	b.param.ceiling = clampUnit(ceiling)
	if b.param.floor > b.param.ceiling {
		b.param.floor = b.param.ceiling
	}
	return b
}

// Default sets the default normalized value
func (b *Builder) Default(value float32) *Builder {
	b.param.DefaultValue = value
	return b
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float32) string, parse func(string) (float32, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter
func (b *Builder) Build() *Parameter {
	// The default goes through the same clamp as host writes
	b.param.DefaultValue = b.param.Clamp(b.param.DefaultValue)
	b.param.Reset()
	return b.param
}

func clampUnit(v float32) float32 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
