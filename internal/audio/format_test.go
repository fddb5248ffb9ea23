package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizerF32(t *testing.T) {
	decode, err := Normalizer(FormatF32)
	require.NoError(t, err)

	want := []float32{0, 0.5, -0.5, 0.999, -1}
	raw := make([]byte, len(want)*4)
	for i, v := range want {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}

	got := decode(raw)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestNormalizerS16(t *testing.T) {
	decode, err := Normalizer(FormatS16)
	require.NoError(t, err)

	in := []int16{0, 16384, -16384, 32767, -32768}
	raw := make([]byte, len(in)*2)
	for i, v := range in {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(v))
	}

	got := decode(raw)
	require.Len(t, got, len(in))
	for i, v := range in {
		want := float32(v) / 32768
		assert.InDelta(t, want, got[i], 1.0/32768)
	}
	assert.Equal(t, float32(-1), got[4])
}

func TestNormalizerU16(t *testing.T) {
	decode, err := Normalizer(FormatU16)
	require.NoError(t, err)

	in := []uint16{32768, 49152, 16384, 65535, 0}
	raw := make([]byte, len(in)*2)
	for i, v := range in {
		binary.LittleEndian.PutUint16(raw[i*2:], v)
	}

	got := decode(raw)
	require.Len(t, got, len(in))

	// Midpoint maps to zero, extremes to the canonical range edges.
	assert.Equal(t, float32(0), got[0])
	assert.InDelta(t, 0.5, got[1], 1.0/32768)
	assert.InDelta(t, -0.5, got[2], 1.0/32768)
	assert.InDelta(t, 1.0, got[3], 1.0/32768)
	assert.Equal(t, float32(-1), got[4])
}

func TestNormalizerUnsupported(t *testing.T) {
	for _, f := range []SampleFormat{FormatUnknown, SampleFormat(42)} {
		decode, err := Normalizer(f)
		require.ErrorIs(t, err, ErrUnsupportedSampleFormat)
		assert.Nil(t, decode)
	}
}

func TestBytesPerSample(t *testing.T) {
	assert.Equal(t, 4, FormatF32.BytesPerSample())
	assert.Equal(t, 2, FormatS16.BytesPerSample())
	assert.Equal(t, 2, FormatU16.BytesPerSample())
	assert.Equal(t, 0, FormatUnknown.BytesPerSample())
}
