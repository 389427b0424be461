package process

// ProcessChannels calls fn for every paired channel with both buffers
// trimmed to the paired length
func (c *Context) ProcessChannels(fn func(ch int, input, output []float32)) {
	for ch := 0; ch < c.NumChannels(); ch++ {
		n := c.NumSamples(ch)
		fn(ch, c.Input[ch][:n], c.Output[ch][:n])
	}
}
