package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"
)

// portAudioHost is the alternate backend. PortAudio converts to float32 in
// its own conversion layer, so batches arrive already canonical and the
// normalizer is not involved.
type portAudioHost struct {
	log zerolog.Logger
}

// NewPortAudioHost initializes the PortAudio library for the lifetime of
// the host handle.
func NewPortAudioHost(log zerolog.Logger) (Host, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	return &portAudioHost{log: log}, nil
}

func (h *portAudioHost) Devices() ([]Device, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		h.log.Warn().Err(err).Msg("Enumerating portaudio devices failed")
		return nil, nil
	}

	defaultIn, _ := portaudio.DefaultInputDevice()
	defaultOut, _ := portaudio.DefaultOutputDevice()

	out := make([]Device, 0, len(devices))
	for _, d := range devices {
		if d.Name == "" {
			continue
		}
		if d.MaxInputChannels > 0 {
			out = append(out, Device{
				Name:      d.Name,
				IsDefault: d == defaultIn,
				Direction: DirectionInput,
			})
		}
		if d.MaxOutputChannels > 0 {
			out = append(out, Device{
				Name:      d.Name,
				IsDefault: d == defaultOut,
				Direction: DirectionOutput,
			})
		}
	}
	return out, nil
}

func (h *portAudioHost) OpenInputStream(sink BatchSink) (InputStream, error) {
	device, err := portaudio.DefaultInputDevice()
	if err != nil || device == nil {
		return nil, ErrNoInputDevice
	}

	channels := device.MaxInputChannels
	if channels < 1 {
		return nil, ErrNoInputDevice
	}
	if channels > 2 {
		channels = 2
	}

	rate := uint32(device.DefaultSampleRate)
	ch := uint16(channels)

	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      device.DefaultSampleRate,
		FramesPerBuffer: portaudio.FramesPerBufferUnspecified,
	}, func(in []float32) {
		if len(in) == 0 {
			return
		}
		// PortAudio reuses the callback buffer; hand the sink a copy.
		samples := make([]float32, len(in))
		copy(samples, in)
		sink(Batch{Samples: samples, SampleRate: rate, Channels: ch})
	})
	if err != nil {
		return nil, fmt.Errorf("open portaudio stream: %w", err)
	}

	return &portAudioStream{stream: stream}, nil
}

func (h *portAudioHost) Close() error {
	return portaudio.Terminate()
}

type portAudioStream struct {
	stream *portaudio.Stream
}

func (s *portAudioStream) Start() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("start portaudio stream: %w", err)
	}
	return nil
}

func (s *portAudioStream) Close() error {
	err := s.stream.Stop()
	if cerr := s.stream.Close(); err == nil {
		err = cerr
	}
	return err
}
