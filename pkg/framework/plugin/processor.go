// Package plugin provides the signal processor and the static metadata of the plugin.
package plugin

import (
	"github.com/deathdisco/ddconrod/pkg/dsp/distortion"
	"github.com/deathdisco/ddconrod/pkg/framework/param"
	"github.com/deathdisco/ddconrod/pkg/framework/process"
)

// AudioProcessor is the interface plugins implement for audio processing
type AudioProcessor interface {
	// ProcessAudio processes one block - zero allocations allowed!
	ProcessAudio(ctx *process.Context)
}

// Processor applies the threshold/gain clip to every paired channel.
// It holds no state; parameters come from the context's bank,
// read once per call.
type Processor struct{}

var _ AudioProcessor = (*Processor)(nil)

// NewProcessor creates a processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ProcessAudio implements AudioProcessor.
// Must not block, allocate or log: it runs on the host's audio thread.
// A context without a parameter bank leaves the outputs untouched.
func (p *Processor) ProcessAudio(ctx *process.Context) {
	if ctx.Params() == nil {
		return
	}
	threshold := ctx.ParamEffective(param.Threshold)
	gain := ctx.ParamEffective(param.Gain)

	ctx.ProcessChannels(func(_ int, input, output []float32) {
		distortion.ClipBuffer(input, output, threshold, gain)
	})
}

// GetLatencySamples returns the processing latency - the clip is memoryless
func (p *Processor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples returns the tail length - none for a memoryless transform
func (p *Processor) GetTailSamples() int32 {
	return 0
}
