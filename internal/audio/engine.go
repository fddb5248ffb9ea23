package audio

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// phase is the recording state machine's position.
type phase int

const (
	phaseIdle phase = iota
	phaseRecording
)

// defaultQueueDepth is how many batches may sit between the capture
// callback and the writer before batches get dropped. At typical ~10 ms
// callbacks this is over a second of slack.
const defaultQueueDepth = 128

// Config wires an Engine.
type Config struct {
	// Host opens the platform backend. Required.
	Host HostFactory
	// QueueDepth overrides the batch channel capacity when > 0.
	QueueDepth int
	Logger     zerolog.Logger
}

// Engine coordinates one recording at a time: a capture goroutine feeding a
// writer goroutine over a batch channel, with start/stop callable from any
// goroutine. The zero value is not usable; construct with New.
type Engine struct {
	open       HostFactory
	queueDepth int
	log        zerolog.Logger

	// mu guards the state below. It is held only for state transitions,
	// never across the writer join or a channel operation.
	mu         sync.Mutex
	phase      phase
	startedAt  time.Time
	outputPath string
	stopTx     chan struct{}
	writerDone <-chan writerResult
}

type writerResult struct {
	frames int64
	err    error
}

// New creates an idle engine.
func New(cfg Config) *Engine {
	depth := cfg.QueueDepth
	if depth <= 0 {
		depth = defaultQueueDepth
	}
	return &Engine{
		open:       cfg.Host,
		queueDepth: depth,
		log:        cfg.Logger,
	}
}

// Devices enumerates host endpoints. It opens its own backend handle, so it
// is safe to call at any time, including mid-recording.
func (e *Engine) Devices() ([]Device, error) {
	host, err := e.open()
	if err != nil {
		return nil, err
	}
	defer host.Close()
	return host.Devices()
}

// Recording reports whether a session is active.
func (e *Engine) Recording() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase == phaseRecording
}

// Start launches a recording into path. It returns once the capture and
// writer goroutines are spawned, not once samples flow: a device that fails
// to open afterwards surfaces as a recording with no data, never as a Start
// error. Returns ErrAlreadyRecording while a session is active.
func (e *Engine) Start(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == phaseRecording {
		return ErrAlreadyRecording
	}

	batches := make(chan Batch, e.queueDepth)
	stop := make(chan struct{})
	done := make(chan writerResult, 1)

	go func() {
		frames, err := writeRecording(path, batches, e.log)
		done <- writerResult{frames: frames, err: err}
	}()
	go runCapture(e.open, batches, stop, e.log)

	e.phase = phaseRecording
	e.startedAt = time.Now()
	e.outputPath = path
	e.stopTx = stop
	e.writerDone = done

	e.log.Info().Str("path", path).Msg("Recording started")
	return nil
}

// Stop signals capture to shut down, waits for the writer to drain the
// batch channel and finalize the container, and returns the elapsed whole
// seconds since Start. The blocking wait is deliberate: no caller observes
// a stopped recording before the file is closed. Returns ErrNotRecording
// when idle.
func (e *Engine) Stop() (int, error) {
	e.mu.Lock()
	if e.phase != phaseRecording {
		e.mu.Unlock()
		return 0, ErrNotRecording
	}
	stop := e.stopTx
	done := e.writerDone
	startedAt := e.startedAt
	path := e.outputPath

	e.phase = phaseIdle
	e.startedAt = time.Time{}
	e.outputPath = ""
	e.stopTx = nil
	e.writerDone = nil
	e.mu.Unlock()

	// Best-effort signal; if the capture goroutine already exited the
	// channel close is simply unobserved.
	close(stop)

	res := <-done
	if res.err != nil {
		e.log.Error().Err(res.err).Str("path", path).Msg("Writer finished with error")
	}

	elapsed := int(time.Since(startedAt) / time.Second)
	e.log.Info().
		Str("path", path).
		Int64("frames", res.frames).
		Int("seconds", elapsed).
		Msg("Recording stopped")
	return elapsed, nil
}
