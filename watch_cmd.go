package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/podsmith/podsmith/internal/script"
	"github.com/podsmith/podsmith/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <script-file>",
	Short: "Sync an external script file into the session",
	Long: paragraph("\nWatch a '" + keyword("Name: text") + "' script file and re-parse it into the session on every save, " +
		"so the script can be drafted in any editor. Each sync resets recorded audio timings. Stop with Ctrl-C."),
	Example: paragraph("podsmith watch episode.txt"),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if _, err := store.Load(); err != nil {
			return err
		}

		sync := func() error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			s, err := store.Load()
			if err != nil {
				return err
			}
			lines := script.ParseLines(string(raw), s.ActiveSpeakers())
			if len(lines) == 0 {
				log.Warn("No parsable dialogue lines; session left unchanged", "path", args[0])
				return nil
			}
			if _, err := store.SetLines(lines); err != nil {
				return err
			}
			fmt.Printf("Synced %d dialogue line(s) from %s\n", len(lines), args[0])
			return nil
		}

		// Pick up the current file contents before waiting for changes.
		if _, err := os.Stat(args[0]); err == nil {
			if err := sync(); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fmt.Println("Watching", keyword(args[0]), subtle("(Ctrl-C to stop)"))
		if err := watch.File(ctx, args[0], sync); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
