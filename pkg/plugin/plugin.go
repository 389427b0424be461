// Package plugin adapts host parameter and processing calls to the
// parameter bank and signal processor.
//
// The adapter speaks the host's vocabulary (int32 indices, raw channel
// buffers, string queries) and keeps every call total: bad indices return
// sentinels, mismatched buffers are truncated. Process is safe to call from
// the real-time thread concurrently with parameter calls from any other
// thread.
package plugin

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/deathdisco/ddconrod/pkg/framework/debug"
	"github.com/deathdisco/ddconrod/pkg/framework/param"
	"github.com/deathdisco/ddconrod/pkg/framework/plugin"
	"github.com/deathdisco/ddconrod/pkg/framework/process"
)

// Adapter is one plugin instance as seen by the host
type Adapter struct {
	info      plugin.Info
	params    *param.Bank
	processor *plugin.Processor
	ctx       *process.Context

	editorFactory EditorFactory
	editor        Editor

	log *debug.Logger
}

// Option configures an Adapter
type Option func(*Adapter)

// WithInfo overrides the advertised plugin metadata
func WithInfo(info plugin.Info) Option {
	return func(a *Adapter) {
		a.info = info
	}
}

// WithEditor attaches a GUI collaborator, built during New
func WithEditor(factory EditorFactory) Option {
	return func(a *Adapter) {
		a.editorFactory = factory
	}
}

// New creates a plugin instance with default parameters.
// Construction fails if the metadata is invalid or the editor cannot be built.
func New(opts ...Option) (*Adapter, error) {
	params := param.NewBank()
	a := &Adapter{
		info:      plugin.DefaultInfo(),
		params:    params,
		processor: plugin.NewProcessor(),
		ctx:       process.NewContext(params),
		log:       debug.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.info.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create plugin: %w", err)
	}

	if a.editorFactory != nil {
		editor, err := a.editorFactory(params)
		if err != nil {
			a.log.WithFields(logrus.Fields{
				"function": "New",
				"plugin":   a.info.Name,
				"error":    err.Error(),
			}).Error("Editor construction failed")
			return nil, fmt.Errorf("failed to create editor: %w", err)
		}
		a.editor = editor
	}

	return a, nil
}

// Init sets up logging. The host adapter triggers it explicitly once the
// instance exists; construction itself never touches the filesystem.
func (a *Adapter) Init(cfg debug.Config) error {
	l, err := debug.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize plugin: %w", err)
	}

	prev := a.log
	a.log = l
	if err := prev.Close(); err != nil {
		l.WithError(err).Warn("Failed to close previous log output")
	}

	a.log.WithFields(logrus.Fields{
		"function":  "Init",
		"plugin":    a.info.Name,
		"vendor":    a.info.Vendor,
		"unique_id": a.info.UniqueID,
		"log_path":  cfg.Path,
	}).Info("Plugin initialized")

	return nil
}

// Close releases the editor and the log output
func (a *Adapter) Close() error {
	if a.editor != nil {
		a.editor.Close()
		a.editor = nil
	}
	if err := a.log.Close(); err != nil {
		return fmt.Errorf("failed to close plugin: %w", err)
	}
	a.log = debug.Discard()
	return nil
}

// Info returns the plugin metadata
func (a *Adapter) Info() plugin.Info {
	return a.info
}

// Parameters returns the live parameter bank
func (a *Adapter) Parameters() *param.Bank {
	return a.params
}

// Editor returns the GUI collaborator, nil if none was configured
func (a *Adapter) Editor() Editor {
	return a.editor
}

// Logger returns the instance logger
func (a *Adapter) Logger() *logrus.Logger {
	return a.log.Logger
}

// GetParameter returns the normalized value, 0 for unknown indices
func (a *Adapter) GetParameter(index int32) float32 {
	return a.params.Get(int(index))
}

// SetParameter stores a clamped normalized value; unknown indices are ignored.
// Hosts may call this from the audio thread, so it never logs.
func (a *Adapter) SetParameter(index int32, value float32) {
	a.params.Set(int(index), value)
}

// SetParameterText parses display text into a parameter
func (a *Adapter) SetParameterText(index int32, text string) bool {
	return a.params.SetText(int(index), text)
}

// GetParameterName returns the parameter name
func (a *Adapter) GetParameterName(index int32) string {
	return a.params.Name(int(index))
}

// GetParameterText returns the value text without the unit
func (a *Adapter) GetParameterText(index int32) string {
	return a.params.DisplayText(int(index))
}

// GetParameterLabel returns the unit label
func (a *Adapter) GetParameterLabel(index int32) string {
	return a.params.Unit(int(index))
}

// CanBeAutomated reports whether the host may automate a parameter
func (a *Adapter) CanBeAutomated(index int32) bool {
	p := a.params.Parameter(int(index))
	return p != nil && p.CanAutomate()
}

// SetSampleRate records the host sample rate. Hosts call it while
// processing is suspended.
func (a *Adapter) SetSampleRate(rate float64) {
	a.ctx.SampleRate = rate
}

// SampleRate returns the last sample rate set by the host
func (a *Adapter) SampleRate() float64 {
	return a.ctx.SampleRate
}

// Process transforms one host block. Channels are paired by position and
// each pair is processed over its shorter length. The buffers are not
// retained after the call returns.
func (a *Adapter) Process(inputs, outputs [][]float32) {
	a.ctx.Bind(inputs, outputs)
	a.processor.ProcessAudio(a.ctx)
	a.ctx.Release()
}
