package gain

import (
	"encoding/binary"
	"errors"
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Descriptor layout: 4-byte magic, version byte, required SIMD level
// byte, big-endian uint16 block limit in frames.
const (
	payloadMagic   = "VGK1"
	payloadVersion = 0x01
	descriptorLen  = 8
)

// Errors returned by descriptor validation and rendering.
var (
	ErrTruncated       = errors.New("gain: payload descriptor truncated")
	ErrBadMagic        = errors.New("gain: payload magic mismatch")
	ErrBadVersion      = errors.New("gain: unsupported payload version")
	ErrBadBlockLimit   = errors.New("gain: descriptor declares zero block limit")
	ErrUnsupportedSIMD = errors.New("gain: descriptor requires unavailable SIMD level")
	ErrBlockTooLarge   = errors.New("gain: frame count exceeds module block limit")
	ErrShortInput      = errors.New("gain: input slices shorter than frame count")
)

// Module is a validated accelerated gain kernel with preallocated
// scratch for its declared block limit. A Module is not safe for
// concurrent Render calls.
type Module struct {
	name      string
	simdLevel cpu.SIMDLevel
	maxBlock  int

	scratch   []float64
	cvScratch []float64
}

// Load parses a binary module descriptor and returns a render-ready
// Module. Descriptors with the wrong magic or version, truncated
// descriptors, and descriptors whose required SIMD level the host CPU
// does not support are rejected.
func Load(raw []byte) (*Module, error) {
	if len(raw) < descriptorLen {
		return nil, ErrTruncated
	}

	if string(raw[:4]) != payloadMagic {
		return nil, ErrBadMagic
	}

	if raw[4] != payloadVersion {
		return nil, fmt.Errorf("%w: 0x%02x", ErrBadVersion, raw[4])
	}

	level := cpu.SIMDLevel(raw[5])
	if !cpu.Supports(cpu.DetectFeatures(), level) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSIMD, level)
	}

	maxBlock := int(binary.BigEndian.Uint16(raw[6:8]))
	if maxBlock == 0 {
		return nil, ErrBadBlockLimit
	}

	return &Module{
		name:      string(raw[:4]),
		simdLevel: level,
		maxBlock:  maxBlock,
		scratch:   make([]float64, maxBlock),
		cvScratch: make([]float64, maxBlock),
	}, nil
}

// Render computes n frames of out = input*gain, additionally scaled by
// the rectified control voltage when cv is non-empty. gain and cv may
// be single-element slices for block-constant values. The returned
// slice aliases module scratch and is only valid until the next Render
// call.
func (m *Module) Render(input, cv, gain []float64, n int) ([]float64, error) {
	if n > m.maxBlock {
		return nil, fmt.Errorf("%w: %d > %d", ErrBlockTooLarge, n, m.maxBlock)
	}

	if n < 0 || n > len(input) {
		return nil, ErrShortInput
	}

	if len(gain) != 1 && n > len(gain) {
		return nil, ErrShortInput
	}

	if len(cv) > 1 && n > len(cv) {
		return nil, ErrShortInput
	}

	out := m.scratch[:n]

	if len(gain) == 1 {
		vecmath.ScaleBlock(out, input[:n], gain[0])
	} else {
		vecmath.MulBlock(out, input[:n], gain[:n])
	}

	switch {
	case len(cv) == 0:
		// No control voltage wired, gain applies on its own.
	case len(cv) == 1:
		vecmath.ScaleBlockInPlace(out, max(0, cv[0]))
	default:
		rect := m.cvScratch[:n]
		for i := 0; i < n; i++ {
			rect[i] = max(0, cv[i])
		}
		vecmath.MulBlockInPlace(out, rect)
	}

	return out, nil
}

// Name returns the descriptor magic for diagnostics.
func (m *Module) Name() string { return m.name }

// SIMDLevel returns the SIMD level the descriptor requires.
func (m *Module) SIMDLevel() cpu.SIMDLevel { return m.simdLevel }

// MaxBlock returns the largest frame count one Render call accepts.
func (m *Module) MaxBlock() int { return m.maxBlock }
