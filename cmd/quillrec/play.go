package main

import (
	"github.com/spf13/cobra"

	"github.com/quillnotes/quillrec/internal/play"
)

var playCmd = &cobra.Command{
	Use:   "play <file.wav>",
	Short: "Play back a recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return play.New(log).File(args[0])
	},
}
