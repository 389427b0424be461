package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deathdisco/ddconrod/pkg/framework/param"
	"github.com/deathdisco/ddconrod/pkg/plugin"
)

func newClipper(t *testing.T, threshold, gain float32) *plugin.Adapter {
	t.Helper()
	p, err := plugin.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	p.SetParameter(param.Threshold, threshold)
	p.SetParameter(param.Gain, gain)
	return p
}

func writeWAV(t *testing.T, path string, data []int, channels, bitDepth int) {
	t.Helper()
	writeWAVFormat(t, path, data, channels, bitDepth, wavFormatPCM)
}

func writeWAVFormat(t *testing.T, path string, data []int, channels, bitDepth, format int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	enc := wav.NewEncoder(f, 44100, bitDepth, channels, format)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: 44100},
		Data:           data,
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func readWAV(t *testing.T, path string) *audio.IntBuffer {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return buf
}

func TestDeinterleaveInterleaveRoundTrip(t *testing.T) {
	data := []int{0, 16384, -16384, 8192, 32767, -32768}

	channels := deinterleave(data, 2, 16)
	require.Len(t, channels, 2)
	assert.Equal(t, []float32{0, -0.5, 1 - 1.0/32768}, channels[0])
	assert.Equal(t, []float32{0.5, 0.25, -1}, channels[1])

	assert.Equal(t, data, interleave(channels, 16))
}

func TestInterleaveMultichannel(t *testing.T) {
	channels := [][]float32{{0.5}, {0.25}, {-0.5}}
	assert.Equal(t, []int{16384, 8192, -16384}, interleave(channels, 16))
	assert.Nil(t, interleave(nil, 16))
}

func TestInterleaveClamps(t *testing.T) {
	out := interleave([][]float32{{1, -1, 2, -2}}, 16)
	assert.Equal(t, []int{32767, -32768, 32767, -32768}, out)

	out = interleave([][]float32{{1, -1}}, 24)
	assert.Equal(t, []int{8388607, -8388608}, out)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat(wavFormatPCM))

	err := checkFormat(wavFormatIEEEFloat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IEEE float")

	err = checkFormat(0xFFFE)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported WAV format tag 65534")
}

func TestCheckBitDepth(t *testing.T) {
	for _, depth := range []int{16, 24, 32} {
		assert.NoError(t, checkBitDepth(depth))
	}
	err := checkBitDepth(8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported bit depth")
}

func TestRenderBlockSizeDoesNotChangeOutput(t *testing.T) {
	input := [][]float32{make([]float32, 1000), make([]float32, 1000)}
	for i := range input[0] {
		input[0][i] = float32(i%200)/100 - 1
		input[1][i] = 1 - float32(i%150)/75
	}

	p := newClipper(t, 0.4, 0.9)
	reference := render(p, input, len(input[0]))

	for _, blockSize := range []int{1, 7, 64, 512, 4096} {
		assert.Equal(t, reference, render(p, input, blockSize), "block size %d", blockSize)
	}
}

func TestRenderUnevenChannels(t *testing.T) {
	p := newClipper(t, 0.5, 1)
	input := [][]float32{{0.8, 0.8, 0.8}, {0.8}}

	output := render(p, input, 2)

	assert.Equal(t, []float32{1, 1, 1}, output[0])
	assert.Equal(t, []float32{1}, output[1])
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	outPath := filepath.Join(dir, "out.wav")

	// Stereo frames: (16384, 8192), (-20000, 0)
	writeWAV(t, inPath, []int{16384, 8192, -20000, 0}, 2, 16)

	p := newClipper(t, 0.5, 1)
	stats, err := renderFile(p, inPath, outPath, 1)
	require.NoError(t, err)

	assert.Equal(t, 44100, stats.sampleRate)
	assert.Equal(t, 2, stats.channels)
	assert.Equal(t, 16, stats.bitDepth)
	assert.Equal(t, 2, stats.frames)
	require.Len(t, stats.after, 2)
	assert.Equal(t, 2, stats.after[0].clipped)

	out := readWAV(t, outPath)
	assert.Equal(t, 2, out.Format.NumChannels)
	assert.Equal(t, []int{32767, 16384, -32768, 0}, out.Data)
}

func TestRenderFileErrors(t *testing.T) {
	p := newClipper(t, 1, 1)
	dir := t.TempDir()

	_, err := renderFile(p, filepath.Join(dir, "missing.wav"), filepath.Join(dir, "out.wav"), 64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")

	bogus := filepath.Join(dir, "bogus.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("not a wav file"), 0o644))
	_, err = renderFile(p, bogus, filepath.Join(dir, "out.wav"), 64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")

	// 0.5 and 1.0 as float32 bit patterns
	floatPath := filepath.Join(dir, "float.wav")
	writeWAVFormat(t, floatPath, []int{0x3F000000, 0x3F800000}, 1, 32, wavFormatIEEEFloat)
	floatOut := filepath.Join(dir, "float-out.wav")
	_, err = renderFile(p, floatPath, floatOut, 64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported WAV format")
	_, statErr := os.Stat(floatOut)
	assert.True(t, os.IsNotExist(statErr), "no output may be written for rejected input")

	valid := filepath.Join(dir, "valid.wav")
	writeWAV(t, valid, []int{0, 0}, 1, 16)
	_, err = renderFile(p, valid, filepath.Join(dir, "no", "such", "dir.wav"), 64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestRunRejectsBadBlockSize(t *testing.T) {
	err := run(&CLI{BlockSize: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block size must be positive")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	writeWAV(t, inPath, []int{16384, -16384, 4096, -4096}, 1, 16)

	cli := &CLI{
		Threshold: 0.25,
		Gain:      0.5,
		BlockSize: 3,
		LogFile:   filepath.Join(dir, "render.log"),
		LogLevel:  "info",
		Input:     inPath,
		Output:    filepath.Join(dir, "out.wav"),
	}
	require.NoError(t, run(cli))

	out := readWAV(t, cli.Output)
	assert.Equal(t, []int{16384, -16384, 8192, -8192}, out.Data)

	logData, err := os.ReadFile(cli.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "Render complete")
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestCloseWithWarning(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	closeWithWarning(failingCloser{}, logger)
	assert.Empty(t, hook.AllEntries())

	closeWithWarning(failingCloser{err: errors.New("disk full")}, logger)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Failed to close plugin", entry.Message)
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "disk full")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	stats := &renderStats{
		sampleRate: 48000,
		channels:   1,
		bitDepth:   24,
		frames:     48000,
		before:     []channelLevels{{peakDB: 0, rmsDB: -3}},
		after:      []channelLevels{{peakDB: -6, rmsDB: -9, clipped: 0}},
	}

	printSummary(&buf, &CLI{Input: "/a/in.wav", Output: "/b/out.wav", BlockSize: 512}, stats, time.Second)

	assert.Contains(t, buf.String(), "Rendered in.wav -> out.wav")
	assert.Contains(t, buf.String(), "48000 Hz, 1 channels, 24-bit")
	assert.Contains(t, buf.String(), "ch0: peak 0.0 -> -6.0 dBFS")
	assert.Contains(t, buf.String(), "1.0x realtime")
}
