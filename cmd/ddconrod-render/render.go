package main

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f32"

	"github.com/deathdisco/ddconrod/pkg/dsp/analysis"
	"github.com/deathdisco/ddconrod/pkg/plugin"
)

const (
	// WAV format tags
	wavFormatPCM       = 1
	wavFormatIEEEFloat = 3

	stereoChannels = 2
)

// channelLevels summarizes one channel for the report
type channelLevels struct {
	peakDB  float64
	rmsDB   float64
	clipped int
}

type renderStats struct {
	sampleRate int
	channels   int
	bitDepth   int
	frames     int
	before     []channelLevels
	after      []channelLevels
}

// host is the subset of the plugin adapter the renderer drives
type host interface {
	Process(inputs, outputs [][]float32)
}

var _ host = (*plugin.Adapter)(nil)

// renderFile decodes input, processes it through p and encodes output
// at the source sample rate and bit depth.
func renderFile(p host, inputPath, outputPath string, blockSize int) (stats *renderStats, err error) {
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = inputFile.Close() }()

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", inputPath)
	}
	if err := checkFormat(decoder.WavAudioFormat); err != nil {
		return nil, err
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV data: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}
	numChannels := buf.Format.NumChannels
	if numChannels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", numChannels)
	}

	input := deinterleave(buf.Data, numChannels, bitDepth)
	output := render(p, input, blockSize)

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	// Close output, capturing close errors on success path
	defer func() {
		if closeErr := outputFile.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	encoder := wav.NewEncoder(outputFile, buf.Format.SampleRate, bitDepth, numChannels, wavFormatPCM)
	outBuf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: buf.Format.SampleRate},
		Data:           interleave(output, bitDepth),
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(outBuf); err != nil {
		return nil, fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize WAV file: %w", err)
	}

	frames := 0
	if len(input) > 0 {
		frames = len(input[0])
	}
	return &renderStats{
		sampleRate: buf.Format.SampleRate,
		channels:   numChannels,
		bitDepth:   bitDepth,
		frames:     frames,
		before:     levels(input),
		after:      levels(output),
	}, nil
}

// render feeds channels through p in blockSize chunks, like a host callback
func render(p host, channels [][]float32, blockSize int) [][]float32 {
	output := make([][]float32, len(channels))
	frames := 0
	for ch := range channels {
		output[ch] = make([]float32, len(channels[ch]))
		frames = max(frames, len(channels[ch]))
	}

	// Block views are reused across callbacks
	inBlock := make([][]float32, len(channels))
	outBlock := make([][]float32, len(channels))

	for start := 0; start < frames; start += blockSize {
		end := min(start+blockSize, frames)
		for ch := range channels {
			inBlock[ch] = window(channels[ch], start, end)
			outBlock[ch] = window(output[ch], start, end)
		}
		p.Process(inBlock, outBlock)
	}

	return output
}

func window(buf []float32, start, end int) []float32 {
	if start >= len(buf) {
		return nil
	}
	return buf[start:min(end, len(buf))]
}

// checkFormat accepts integer PCM only; the decoder reads every sample
// as an integer, which would turn float data into noise
func checkFormat(format uint16) error {
	switch format {
	case wavFormatPCM:
		return nil
	case wavFormatIEEEFloat:
		return fmt.Errorf("unsupported WAV format: IEEE float (tag %d), convert to integer PCM first", format)
	default:
		return fmt.Errorf("unsupported WAV format tag %d (want integer PCM)", format)
	}
}

func checkBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("unsupported bit depth %d (want 16, 24 or 32)", bitDepth)
	}
}

// fullScale returns the integer magnitude mapped to 1.0
func fullScale(bitDepth int) float32 {
	return float32(int64(1) << (bitDepth - 1))
}

// deinterleave splits PCM integers into per-channel float32 samples in [-1, 1)
func deinterleave(data []int, numChannels, bitDepth int) [][]float32 {
	frames := len(data) / numChannels
	channels := make([][]float32, numChannels)
	for ch := range channels {
		channels[ch] = make([]float32, frames)
	}

	for i := 0; i < frames; i++ {
		for ch := 0; ch < numChannels; ch++ {
			channels[ch][i] = float32(data[i*numChannels+ch])
		}
	}

	scale := 1 / fullScale(bitDepth)
	for ch := range channels {
		f32.Scale(channels[ch], channels[ch], scale)
	}
	return channels
}

// interleave merges per-channel float32 samples back into clamped PCM integers
func interleave(channels [][]float32, bitDepth int) []int {
	if len(channels) == 0 {
		return nil
	}
	numChannels := len(channels)
	frames := len(channels[0])

	interleaved := make([]float32, frames*numChannels)
	if numChannels == stereoChannels {
		f32.Interleave2(interleaved, channels[0], channels[1])
	} else {
		for i := 0; i < frames; i++ {
			for ch := 0; ch < numChannels; ch++ {
				interleaved[i*numChannels+ch] = channels[ch][i]
			}
		}
	}

	scale := fullScale(bitDepth)
	f32.Scale(interleaved, interleaved, scale)

	maxVal := int(scale) - 1
	minVal := -int(scale)
	out := make([]int, len(interleaved))
	for i, v := range interleaved {
		var s int
		if v >= 0 {
			s = int(v + 0.5)
		} else {
			s = int(v - 0.5)
		}
		out[i] = max(minVal, min(maxVal, s))
	}
	return out
}

func levels(channels [][]float32) []channelLevels {
	result := make([]channelLevels, len(channels))
	for ch, samples := range channels {
		r := analysis.Analyze(samples)
		result[ch] = channelLevels{
			peakDB:  analysis.LinearToDB(r.Peak),
			rmsDB:   analysis.LinearToDB(r.RMS),
			clipped: r.ClippedSamples,
		}
	}
	return result
}
