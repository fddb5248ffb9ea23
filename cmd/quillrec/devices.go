package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quillrec/internal/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio devices",
	Long:  `List the host's input and output devices. Defaults are marked with *.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		host, err := audio.NewHostFactory(cfg.Audio.Backend, log)
		if err != nil {
			return err
		}
		engine := audio.New(audio.Config{Host: host, Logger: log})

		devices, err := engine.Devices()
		if err != nil {
			return fmt.Errorf("enumerate devices: %w", err)
		}
		if len(devices) == 0 {
			fmt.Println("No audio devices found.")
			return nil
		}

		for _, d := range devices {
			marker := " "
			if d.IsDefault {
				marker = "*"
			}
			fmt.Printf("%s %-7s %s\n", marker, d.Direction, d.Name)
		}
		return nil
	},
}
