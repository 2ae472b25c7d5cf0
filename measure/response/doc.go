// Package response provides small frequency-domain measurements for
// verifying processor output: single-sided magnitude spectra and band
// energy sums.
//
// The functions are one-shot and allocate per call; they are meant for
// tests and offline analysis, not for per-block use in audio callbacks.
//
// # Usage
//
//	mag, err := response.Magnitude(segment, 1024)
//	if err != nil {
//		log.Fatal(err)
//	}
//	hf, _ := response.BandEnergy(mag, 48000, 2000, 4000)
package response
