package audio

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Backend names accepted in configuration.
const (
	BackendAuto      = "auto"
	BackendMiniaudio = "miniaudio"
	BackendPortAudio = "portaudio"
)

// AvailableBackends returns the backends compiled into this build.
func AvailableBackends() []string {
	return []string{BackendMiniaudio, BackendPortAudio}
}

// NewHostFactory resolves a backend name to a factory the engine can call
// for each recording and each enumeration. "auto" and the empty string
// mean miniaudio.
func NewHostFactory(backend string, log zerolog.Logger) (HostFactory, error) {
	switch strings.ToLower(backend) {
	case "", BackendAuto, BackendMiniaudio:
		return func() (Host, error) { return NewMiniaudioHost(log) }, nil
	case BackendPortAudio:
		return func() (Host, error) { return NewPortAudioHost(log) }, nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q (available: %s)",
			backend, strings.Join(AvailableBackends(), ", "))
	}
}
