// Command glitchmaker is the non-destructive audio glitch/experimental
// effects editor's entry point: a bubbletea TUI by default, plus render
// and play subcommands for headless use.
//
// Adapted from the teacher's flat root main.go (same tea.Program bootstrap,
// same Model/Update/View shape) restructured into a cobra root command,
// the way the other retrieved bubbletea+cobra repos in the pack lay out
// their cmd/ entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glitchmaker/app"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "glitchmaker [file]",
		Short: "Non-destructive audio glitch and experimental effects editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("glitchmaker: a source audio file or .gspi project is required")
			}
			return app.RunTUI(path)
		},
	}

	root.AddCommand(renderCmd())
	root.AddCommand(playCmd())
	return root
}

func renderCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "Render a project or audio file to a WAV file, replaying its ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return fmt.Errorf("render: --out is required")
			}
			return app.Render(args[0], outPath)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output WAV path")
	return cmd
}

func playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <input>",
		Short: "Play a project or audio file headlessly until it finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Play(args[0])
		},
	}
}
