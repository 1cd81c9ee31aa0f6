package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/podsmith/podsmith/internal/script"
	"github.com/podsmith/podsmith/internal/transcript"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:     "export <script|srt>",
	Short:   "Export the script or an SRT transcript",
	Long:    paragraph("\nWrite the current script as plain text, or as an SRT subtitle file timed with the recorded audio durations. SRT export requires a completed synthesis run."),
	Example:   paragraph("podsmith export script\npodsmith export srt --out episode.srt"),
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"script", "srt"},
	RunE: func(_ *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		s, err := store.Load()
		if err != nil {
			return err
		}

		var out string
		switch args[0] {
		case "script":
			if len(s.Lines) == 0 {
				return errors.New("no script to export")
			}
			out = script.FormatScript(s) + "\n"
		case "srt":
			out, err = transcript.BuildSRT(s)
			var missing *transcript.MissingTimingError
			if errors.As(err, &missing) {
				return fmt.Errorf("lines %s have no usable timing - run 'podsmith synthesize' first",
					joinInts(missing.Lines))
			}
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown export format %q: use script or srt", args[0])
		}

		if exportOut == "" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(exportOut, []byte(out), 0o644); err != nil { //nolint:gosec
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Println("Wrote", keyword(exportOut))
		return nil
	},
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to a file instead of stdout")
}
