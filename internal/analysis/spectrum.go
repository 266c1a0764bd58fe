// Package analysis provides post-run tools: power spectra of density
// time series and pump-power threshold scans.
package analysis

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is a one-sided power spectrum of a uniformly sampled
// real-valued series.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum computes the one-sided power spectrum of samples taken
// at interval dt. The mean is removed first so the zero bin reflects
// actual slow dynamics rather than the steady-state offset.
func PowerSpectrum(samples []float64, dt float64) (*Spectrum, error) {
	n := len(samples)
	if n < 2 {
		return nil, fmt.Errorf("condsim: need at least 2 samples for a spectrum, got %d", n)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("condsim: sample interval must be positive, got %v", dt)
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range samples {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)

	bins := n/2 + 1
	s := &Spectrum{
		Freqs: make([]float64, bins),
		Power: make([]float64, bins),
	}
	for k := 0; k < bins; k++ {
		c := coeffs[k]
		s.Freqs[k] = float64(k) / (float64(n) * dt)
		s.Power[k] = (real(c)*real(c) + imag(c)*imag(c)) / float64(n)
	}
	return s, nil
}

// DominantFrequency returns the frequency of the strongest nonzero bin.
// A relaxed steady state has no dominant oscillation and returns 0.
func (s *Spectrum) DominantFrequency() float64 {
	best, bestPower := 0.0, 0.0
	for k := 1; k < len(s.Power); k++ {
		if s.Power[k] > bestPower {
			best, bestPower = s.Freqs[k], s.Power[k]
		}
	}
	return best
}
