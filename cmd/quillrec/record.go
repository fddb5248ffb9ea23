package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quillrec/internal/audio"
)

var recordDuration time.Duration

var recordCmd = &cobra.Command{
	Use:   "record [file.wav]",
	Short: "Record from the default input device",
	Long: `Record from the default input device into a 32-bit float WAV file.
Without a file argument the recording goes into the configured
recordings directory under a generated name. Recording runs until
Ctrl+C or --duration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
				return fmt.Errorf("create recordings directory: %w", err)
			}
			path = filepath.Join(cfg.Output.Directory, uuid.NewString()+".wav")
		}

		host, err := audio.NewHostFactory(cfg.Audio.Backend, log)
		if err != nil {
			return err
		}
		engine := audio.New(audio.Config{
			Host:       host,
			QueueDepth: cfg.Audio.QueueDepth,
			Logger:     log,
		})

		if err := engine.Start(path); err != nil {
			return err
		}

		if recordDuration > 0 {
			fmt.Printf("Recording to %s for %s...\n", path, recordDuration)
		} else {
			fmt.Printf("Recording to %s (Ctrl+C to stop)...\n", path)
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		if recordDuration > 0 {
			select {
			case <-sig:
			case <-time.After(recordDuration):
			}
		} else {
			<-sig
		}

		seconds, err := engine.Stop()
		if err != nil {
			return err
		}

		// A capture-side failure never reaches Stop as an error; the only
		// trace is the missing file.
		if _, err := os.Stat(path); err != nil {
			fmt.Println("No audio was captured; no file was written.")
			return nil
		}
		fmt.Printf("Saved %s (%d s)\n", path, seconds)
		return nil
	},
}

func init() {
	recordCmd.Flags().DurationVar(&recordDuration, "duration", 0, "stop automatically after this long (0 = until interrupted)")
}
