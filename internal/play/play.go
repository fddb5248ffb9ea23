package play

import (
	"fmt"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/go-audio/wav"
	"github.com/rs/zerolog"
)

// wavFormatIEEEFloat is the WAVE format tag recordings are written with.
const wavFormatIEEEFloat = 3

// Player plays finished recordings through the default output device.
type Player struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Player {
	return &Player{log: log}
}

// File plays one 32-bit float WAV file to completion.
func (p *Player) File(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return fmt.Errorf("%s is not a valid WAV file", path)
	}
	if dec.WavAudioFormat != wavFormatIEEEFloat || dec.BitDepth != 32 {
		return fmt.Errorf("%s is not a 32-bit float recording (format %d, %d bit)",
			path, dec.WavAudioFormat, dec.BitDepth)
	}
	if err := dec.FwdToPCM(); err != nil {
		return fmt.Errorf("seek to audio data: %w", err)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(dec.SampleRate),
		ChannelCount: int(dec.NumChans),
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("open output device: %w", err)
	}
	<-ready

	p.log.Info().
		Str("path", path).
		Uint32("sample_rate", dec.SampleRate).
		Uint16("channels", dec.NumChans).
		Msg("Playing")

	// The PCM chunk reader yields exactly the interleaved little-endian
	// float32 stream oto expects for this context format.
	player := ctx.NewPlayer(dec.PCMChunk)
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Close()
}
