package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"

	"github.com/podsmith/podsmith/internal/script"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the script in your editor",
	Long: paragraph("\nOpen the current script in EDITOR as '" + keyword("Name: text") +
		"' lines, then parse the result back into the session. Lines whose prefix matches no roster name are dropped. Edits reset recorded audio timings."),
	Args: cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		s, err := store.Load()
		if err != nil {
			return err
		}
		if len(s.Lines) == 0 {
			return errors.New("no script to edit - run 'podsmith generate' first")
		}

		tmp, err := os.CreateTemp("", "podsmith-script-*.txt")
		if err != nil {
			return fmt.Errorf("unable to create temp file: %w", err)
		}
		path := tmp.Name()
		defer os.Remove(path) //nolint:errcheck

		if _, err := tmp.WriteString(script.FormatScript(s)); err != nil {
			tmp.Close() //nolint:errcheck
			return fmt.Errorf("unable to write temp file: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("unable to close temp file: %w", err)
		}

		c, err := editor.Cmd("Podsmith", path)
		if err != nil {
			return fmt.Errorf("unable to open editor: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run editor: %w", err)
		}

		edited, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("unable to read edited script: %w", err)
		}

		lines := script.ParseLines(string(edited), s.ActiveSpeakers())
		if len(lines) == 0 {
			return errors.New("the edited script contained no parsable dialogue lines; session left unchanged")
		}
		if _, err := store.SetLines(lines); err != nil {
			return err
		}

		fmt.Printf("Updated script: %d dialogue line(s).\n", len(lines))
		return nil
	},
}
