package audio

import "errors"

// Direction says whether a device records or plays.
type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// Device is an immutable snapshot of one host audio endpoint, as seen at
// enumeration time. A device that can both record and play shows up once
// per direction.
type Device struct {
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	Direction Direction `json:"direction"`
}

// Batch is one hardware callback's worth of samples, already normalized to
// float32. Ownership moves to the channel on send; the producer must not
// touch Samples afterwards. Rate and channel count are fixed for the
// lifetime of one recording.
type Batch struct {
	Samples    []float32
	SampleRate uint32
	Channels   uint16
}

// BatchSink receives batches from the backend's device callback. It runs on
// the backend's own real-time thread and must never block; implementations
// drop the batch when the consumer cannot take it.
type BatchSink func(Batch)

// Host abstracts the platform audio backend behind device enumeration and
// input stream construction.
type Host interface {
	// Devices lists input and output endpoints. A direction whose
	// enumeration fails contributes no entries; the call itself only
	// fails when the backend is unusable outright.
	Devices() ([]Device, error)

	// OpenInputStream prepares a capture stream on the default input
	// device at its default configuration. The sink starts receiving
	// batches only after InputStream.Start.
	OpenInputStream(sink BatchSink) (InputStream, error)

	Close() error
}

// InputStream is a constructed but not necessarily running capture stream.
// Close is the only way to stop it; there is no pause.
type InputStream interface {
	Start() error
	Close() error
}

// HostFactory opens a fresh backend handle. The engine calls it once per
// recording (on the capture goroutine) and once per device enumeration, so
// no handle is ever shared across goroutines.
type HostFactory func() (Host, error)

var (
	// ErrAlreadyRecording is returned by Start while a session is active.
	ErrAlreadyRecording = errors.New("already recording")
	// ErrNotRecording is returned by Stop with no active session.
	ErrNotRecording = errors.New("not recording")
	// ErrUnsupportedSampleFormat means the default input device reports a
	// native format with no normalization path.
	ErrUnsupportedSampleFormat = errors.New("unsupported sample format")
	// ErrNoInputDevice means the host has no usable default input device.
	ErrNoInputDevice = errors.New("no default input device")
)
