// Package analysis provides buffer-level measurements for audio blocks.
//
// Level measurements (peak, RMS, DC) and sanity counters (NaN/Inf, samples
// at full scale) are computed without allocation, so the functions can be
// used both offline and from tests that exercise the real-time path.
// Reductions are delegated to the SIMD kernels of github.com/tphakala/simd.
//
// Example usage:
//
//	result := analysis.Analyze(block)
//	if result.NaNCount > 0 || result.InfCount > 0 {
//	    // processor produced invalid output
//	}
//	peakDB := analysis.LinearToDB(result.Peak)
package analysis
