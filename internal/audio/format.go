package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SampleFormat is a device's native sample representation. Only the three
// formats below have a normalization path to the canonical float32 form;
// everything else fails stream construction.
type SampleFormat int

const (
	FormatUnknown SampleFormat = iota
	FormatF32
	FormatS16
	FormatU16
)

func (f SampleFormat) String() string {
	switch f {
	case FormatF32:
		return "f32"
	case FormatS16:
		return "s16"
	case FormatU16:
		return "u16"
	default:
		return "unknown"
	}
}

// BytesPerSample returns the width of one native sample, or 0 for formats
// with no normalization path.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case FormatF32:
		return 4
	case FormatS16, FormatU16:
		return 2
	default:
		return 0
	}
}

// DecodeFunc converts one raw little-endian device buffer into canonical
// float32 samples in [-1, 1). It is called once per hardware callback.
type DecodeFunc func(raw []byte) []float32

// Normalizer resolves the conversion path for a native format once, ahead
// of stream construction, so the per-callback work stays monomorphic. The
// returned function allocates the output slice; the raw buffer may be
// reused by the backend after it returns.
func Normalizer(f SampleFormat) (DecodeFunc, error) {
	switch f {
	case FormatF32:
		return decodeF32, nil
	case FormatS16:
		return decodeS16, nil
	case FormatU16:
		return decodeU16, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSampleFormat, f)
	}
}

func decodeF32(raw []byte) []float32 {
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out
}

func decodeS16(raw []byte) []float32 {
	out := make([]float32, len(raw)/2)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		out[i] = float32(v) / 32768
	}
	return out
}

func decodeU16(raw []byte) []float32 {
	out := make([]float32, len(raw)/2)
	for i := range out {
		v := binary.LittleEndian.Uint16(raw[i*2:])
		out[i] = (float32(v) - 32768) / 32768
	}
	return out
}
