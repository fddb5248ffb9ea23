package audio

import (
	"github.com/rs/zerolog"
)

// runCapture owns the hardware stream for one recording. It opens a fresh
// host, constructs the input stream, starts it, then parks until the stop
// channel is closed. Closing the stream is the only way capture ends; there
// is no pause. Any failure along the way is logged and the goroutine exits,
// which closes the batch channel so the writer finalizes with whatever it
// received (possibly nothing).
func runCapture(open HostFactory, batches chan<- Batch, stop <-chan struct{}, log zerolog.Logger) {
	// The stream is torn down before this runs, so no callback can race
	// the close.
	defer close(batches)

	host, err := open()
	if err != nil {
		log.Error().Err(err).Msg("Opening audio host failed")
		return
	}
	defer host.Close()

	stream, err := host.OpenInputStream(func(b Batch) {
		// Invoked on the backend's real-time thread. Blocking here would
		// stall the hardware, so a full or abandoned queue loses the
		// batch instead.
		select {
		case batches <- b:
		default:
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("Opening input stream failed")
		return
	}

	if err := stream.Start(); err != nil {
		log.Error().Err(err).Msg("Starting input stream failed")
		stream.Close()
		return
	}

	<-stop

	if err := stream.Close(); err != nil {
		log.Warn().Err(err).Msg("Closing input stream reported an error")
	}
}
