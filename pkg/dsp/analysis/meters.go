package analysis

import (
	"math"

	"github.com/tphakala/simd/f32"
)

const (
	// FullScale is the magnitude counted as a clipped sample
	FullScale float32 = 1.0

	// SilenceThreshold is the RMS below which a buffer counts as silent
	SilenceThreshold float32 = 0.0001

	// MinDB is reported for zero or negative levels
	MinDB = -200.0
)

// Result contains the measurements of one buffer
type Result struct {
	Peak           float32
	RMS            float32
	DC             float32
	ClippedSamples int
	NaNCount       int
	InfCount       int
	Silent         bool
}

// Analyze measures a buffer. NaN and Inf samples are counted and excluded
// from peak, clipping and level measurements.
func Analyze(buffer []float32) Result {
	var result Result
	if len(buffer) == 0 {
		result.Silent = true
		return result
	}

	for _, sample := range buffer {
		switch {
		case sample != sample:
			result.NaNCount++
			continue
		case math.IsInf(float64(sample), 0):
			result.InfCount++
			continue
		}

		abs := sample
		if abs < 0 {
			abs = -abs
		}
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs >= FullScale {
			result.ClippedSamples++
		}
	}

	if result.NaNCount == 0 && result.InfCount == 0 {
		result.RMS = RMS(buffer)
		result.DC = DC(buffer)
	}
	result.Silent = result.RMS < SilenceThreshold && result.Peak < SilenceThreshold

	return result
}

// Peak returns the largest absolute sample value
func Peak(buffer []float32) float32 {
	var peak float32
	for _, sample := range buffer {
		if sample < 0 {
			sample = -sample
		}
		if sample > peak {
			peak = sample
		}
	}
	return peak
}

// RMS returns the root mean square level of a buffer
func RMS(buffer []float32) float32 {
	if len(buffer) == 0 {
		return 0
	}
	sumSquares := f32.DotProductUnsafe(buffer, buffer)
	return float32(math.Sqrt(float64(sumSquares) / float64(len(buffer))))
}

// DC returns the mean sample value of a buffer
func DC(buffer []float32) float32 {
	if len(buffer) == 0 {
		return 0
	}
	return f32.Sum(buffer) / float32(len(buffer))
}

// LinearToDB converts a linear amplitude to decibels.
// Returns MinDB for values <= 0.
func LinearToDB(linear float32) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(float64(linear))
}
