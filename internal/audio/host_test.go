package audio

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHostFactoryKnownBackends(t *testing.T) {
	for _, name := range []string{"", "auto", "miniaudio", "portaudio", "MiniAudio"} {
		factory, err := NewHostFactory(name, zerolog.Nop())
		require.NoError(t, err, "backend %q", name)
		assert.NotNil(t, factory)
	}
}

func TestNewHostFactoryUnknownBackend(t *testing.T) {
	_, err := NewHostFactory("oss", zerolog.Nop())
	assert.Error(t, err)
}
