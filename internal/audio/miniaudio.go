package audio

import (
	"fmt"

	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog"
)

// miniaudioHost is the default backend. It delivers buffers in the device's
// native format, so capture goes through the sample normalizer.
type miniaudioHost struct {
	ctx *malgo.AllocatedContext
	log zerolog.Logger
}

// NewMiniaudioHost opens a miniaudio context. Backend-level messages are
// forwarded to the logger at Warn so stream errors stay visible at the
// default level; this channel is separate from the data callback and never
// terminates the stream.
func NewMiniaudioHost(log zerolog.Logger) (Host, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		log.Warn().Str("backend", "miniaudio").Msg(message)
	})
	if err != nil {
		return nil, fmt.Errorf("init miniaudio context: %w", err)
	}
	return &miniaudioHost{ctx: ctx, log: log}, nil
}

func (h *miniaudioHost) Devices() ([]Device, error) {
	var out []Device

	// A direction that cannot be enumerated yields nothing rather than
	// failing the whole call.
	captures, err := h.ctx.Devices(malgo.Capture)
	if err != nil {
		h.log.Warn().Err(err).Msg("Enumerating capture devices failed")
		captures = nil
	}
	for _, info := range captures {
		name := info.Name()
		if name == "" {
			continue
		}
		out = append(out, Device{
			Name:      name,
			IsDefault: info.IsDefault != 0,
			Direction: DirectionInput,
		})
	}

	playbacks, err := h.ctx.Devices(malgo.Playback)
	if err != nil {
		h.log.Warn().Err(err).Msg("Enumerating playback devices failed")
		playbacks = nil
	}
	for _, info := range playbacks {
		name := info.Name()
		if name == "" {
			continue
		}
		out = append(out, Device{
			Name:      name,
			IsDefault: info.IsDefault != 0,
			Direction: DirectionOutput,
		})
	}

	return out, nil
}

func (h *miniaudioHost) OpenInputStream(sink BatchSink) (InputStream, error) {
	captures, err := h.ctx.Devices(malgo.Capture)
	if err != nil || len(captures) == 0 {
		return nil, ErrNoInputDevice
	}

	// Zero format/channels/rate means the device's own defaults.
	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatUnknown
	cfg.Capture.Channels = 0
	cfg.SampleRate = 0
	cfg.Alsa.NoMMap = 1

	s := &miniaudioStream{}

	callbacks := malgo.DeviceCallbacks{
		// Runs on miniaudio's real-time thread. It only copies, converts
		// and hands off; the sink must not block.
		Data: func(_, input []byte, frameCount uint32) {
			if len(input) == 0 {
				return
			}
			sink(Batch{
				Samples:    s.decode(input),
				SampleRate: s.sampleRate,
				Channels:   s.channels,
			})
		},
	}

	dev, err := malgo.InitDevice(h.ctx.Context, cfg, callbacks)
	if err != nil {
		return nil, fmt.Errorf("init capture device: %w", err)
	}

	// The negotiated format is only known once the device exists. Resolve
	// the conversion path here, before Start, so the callback never
	// branches on format.
	format := sampleFormatFromMiniaudio(dev.CaptureFormat())
	decode, err := Normalizer(format)
	if err != nil {
		dev.Uninit()
		return nil, err
	}

	s.device = dev
	s.decode = decode
	s.sampleRate = dev.SampleRate()
	s.channels = uint16(dev.CaptureChannels())
	return s, nil
}

func (h *miniaudioHost) Close() error {
	err := h.ctx.Uninit()
	h.ctx.Free()
	return err
}

type miniaudioStream struct {
	device     *malgo.Device
	decode     DecodeFunc
	sampleRate uint32
	channels   uint16
}

func (s *miniaudioStream) Start() error {
	if err := s.device.Start(); err != nil {
		return fmt.Errorf("start capture device: %w", err)
	}
	return nil
}

func (s *miniaudioStream) Close() error {
	// Uninit blocks until the device has stopped; no callback fires after
	// it returns.
	err := s.device.Stop()
	s.device.Uninit()
	return err
}

func sampleFormatFromMiniaudio(f malgo.FormatType) SampleFormat {
	switch f {
	case malgo.FormatF32:
		return FormatF32
	case malgo.FormatS16:
		return FormatS16
	default:
		// u8/s24/s32 have no normalization path, same as any format the
		// original set never covered.
		return FormatUnknown
	}
}
