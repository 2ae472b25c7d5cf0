package response

import (
	"errors"
	"math"

	algofft "github.com/cwbudde/algo-fft"
)

// Errors returned by spectrum measurement functions.
var (
	ErrEmptySignal    = errors.New("response: signal is empty")
	ErrInvalidFFTSize = errors.New("response: fft size must be a power of two >= 2")
	ErrEmptySpectrum  = errors.New("response: magnitude spectrum is empty")
	ErrInvalidRate    = errors.New("response: sample rate must be positive")
	ErrInvalidBand    = errors.New("response: band limits must satisfy 0 <= lo < hi")
)

// Magnitude computes the single-sided magnitude spectrum of a signal
// segment. The segment is Hann-windowed, zero-padded (or truncated) to
// fftSize, and transformed; the result holds fftSize/2+1 bins from DC
// to Nyquist.
func Magnitude(signal []float64, fftSize int) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, ErrInvalidFFTSize
	}

	n := len(signal)
	if n > fftSize {
		n = fftSize
	}

	coeffs := hann(n)

	inData := make([]complex128, fftSize)
	for i := 0; i < n; i++ {
		inData[i] = complex(signal[i]*coeffs[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return nil, err
	}

	mag := make([]float64, fftSize/2+1)
	for k := range mag {
		mag[k] = math.Hypot(real(out[k]), imag(out[k]))
	}

	return mag, nil
}

// BandEnergy sums the squared magnitudes of all bins whose center
// frequency falls inside [loHz, hiHz]. mag must be a single-sided
// spectrum as returned by Magnitude.
func BandEnergy(mag []float64, sampleRate, loHz, hiHz float64) (float64, error) {
	if len(mag) < 2 {
		return 0, ErrEmptySpectrum
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return 0, ErrInvalidRate
	}

	if math.IsNaN(loHz) || math.IsNaN(hiHz) || loHz < 0 || hiHz <= loHz {
		return 0, ErrInvalidBand
	}

	fftSize := 2 * (len(mag) - 1)
	binWidth := sampleRate / float64(fftSize)

	var energy float64
	for k, m := range mag {
		freq := float64(k) * binWidth
		if freq < loHz {
			continue
		}
		if freq > hiHz {
			break
		}
		energy += m * m
	}

	return energy, nil
}

// PeakBin returns the index of the strongest bin in a magnitude
// spectrum, ignoring DC. Useful for locating a test tone.
func PeakBin(mag []float64) (int, error) {
	if len(mag) < 2 {
		return 0, ErrEmptySpectrum
	}

	peakIdx := 1
	peakVal := mag[1]

	for k := 2; k < len(mag); k++ {
		if mag[k] > peakVal {
			peakVal = mag[k]
			peakIdx = k
		}
	}

	return peakIdx, nil
}

// BinFrequency converts a bin index of a single-sided spectrum with
// binCount bins into its center frequency in Hz.
func BinFrequency(bin, binCount int, sampleRate float64) float64 {
	if binCount < 2 || sampleRate <= 0 {
		return 0
	}

	fftSize := 2 * (binCount - 1)

	return float64(bin) * sampleRate / float64(fftSize)
}

// hann returns Hann window coefficients for n samples.
func hann(n int) []float64 {
	coeffs := make([]float64, n)
	if n == 1 {
		coeffs[0] = 1
		return coeffs
	}

	for i := range coeffs {
		coeffs[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}

	return coeffs
}
