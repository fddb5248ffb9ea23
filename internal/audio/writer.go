package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
	"github.com/rs/zerolog"
)

// WAVE format tag for 32-bit IEEE float samples.
const wavFormatIEEEFloat = 3

// writeRecording drains the batch channel into a float32 WAV file at path,
// returning the number of frames written. The container is opened lazily on
// the first batch, because rate and channel count are only known once real
// data arrives; with zero batches no file is created at all. The file is
// durable only after the encoder is finalized on channel closure.
func writeRecording(path string, batches <-chan Batch, log zerolog.Logger) (int64, error) {
	var (
		file     *os.File
		enc      *wav.Encoder
		channels int64
		samples  int64
	)

	for batch := range batches {
		if len(batch.Samples) == 0 {
			continue
		}

		if enc == nil {
			f, err := os.Create(path)
			if err != nil {
				log.Error().Err(err).Str("path", path).Msg("Creating recording file failed")
				return 0, fmt.Errorf("create recording file: %w", err)
			}
			channels = int64(batch.Channels)
			if channels < 1 {
				channels = 1
			}
			file = f
			enc = wav.NewEncoder(f, int(batch.SampleRate), 32, int(channels), wavFormatIEEEFloat)
			log.Debug().
				Uint32("sample_rate", batch.SampleRate).
				Uint16("channels", batch.Channels).
				Str("path", path).
				Msg("Opened recording container")
		}

		for _, s := range batch.Samples {
			if err := enc.WriteFrame(s); err != nil {
				// Close what made it to disk, then give up on this
				// recording; a container with a failed append is not
				// worth finalizing further.
				log.Error().Err(err).Str("path", path).Msg("WAV write failed")
				_ = enc.Close()
				_ = file.Close()
				return samples / channels, fmt.Errorf("write sample: %w", err)
			}
			samples++
		}
	}

	if enc == nil {
		return 0, nil
	}

	if err := enc.Close(); err != nil {
		_ = file.Close()
		return samples / channels, fmt.Errorf("finalize container: %w", err)
	}
	if err := file.Close(); err != nil {
		return samples / channels, fmt.Errorf("close recording file: %w", err)
	}

	frames := samples / channels
	log.Info().Str("path", path).Int64("frames", frames).Msg("Recording saved")
	return frames, nil
}
