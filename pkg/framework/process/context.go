// Package process provides the audio processing context handed to processors.
package process

import (
	"github.com/deathdisco/ddconrod/pkg/framework/param"
)

// Context is a non-owning view over one block of host audio.
// Channels are paired by position; a pair is processed over the shorter
// of its two buffers and unmatched channels are never touched.
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	// Parameter access
	params *param.Bank
}

// NewContext creates a process context reading from params
func NewContext(params *param.Bank) *Context {
	return &Context{
		params: params,
	}
}

// Bind points the context at this call's host buffers
func (c *Context) Bind(input, output [][]float32) {
	c.Input = input
	c.Output = output
}

// Release drops the host buffers so nothing outlives the call
func (c *Context) Release() {
	c.Input = nil
	c.Output = nil
}

// Params returns the bank the context reads from, nil if none
func (c *Context) Params() *param.Bank {
	return c.params
}

// ParamEffective returns the value the DSP should use for a parameter
func (c *Context) ParamEffective(index int) float32 {
	if c.params == nil {
		return 0
	}
	return c.params.Effective(index)
}

// NumChannels returns the number of paired input/output channels
func (c *Context) NumChannels() int {
	return min(len(c.Input), len(c.Output))
}

// NumSamples returns the paired sample count of channel ch,
// 0 if ch is not a paired channel
func (c *Context) NumSamples(ch int) int {
	if ch < 0 || ch >= c.NumChannels() {
		return 0
	}
	return min(len(c.Input[ch]), len(c.Output[ch]))
}
