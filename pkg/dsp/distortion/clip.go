// Package distortion provides waveshaping transforms for audio signals.
package distortion

// Clip limits |x| to threshold, rescales the clipped range back to unit
// magnitude and applies gain:
//
//	x >= 0: min(x, threshold) / threshold * gain
//	x <  0: max(x, -threshold) / threshold * gain
//
// threshold must be positive; the parameter bank floors it at 0.01.
// The transform is memoryless and safe to call from the audio thread.
func Clip(x, threshold, gain float32) float32 {
	if x >= 0 {
		return min(x, threshold) / threshold * gain
	}
	return max(x, -threshold) / threshold * gain
}

// ClipBuffer applies Clip over the paired length of input and output.
// Samples of output beyond len(input) are left untouched.
// input and output may alias.
func ClipBuffer(input, output []float32, threshold, gain float32) {
	n := len(input)
	if len(output) < n {
		n = len(output)
	}
	input = input[:n]
	output = output[:n]

	for i, x := range input {
		output[i] = Clip(x, threshold, gain)
	}
}
