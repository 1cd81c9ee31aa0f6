package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podsmith/podsmith/internal/config"
	"github.com/podsmith/podsmith/internal/fetch"
	"github.com/podsmith/podsmith/internal/gen"
	"github.com/podsmith/podsmith/internal/script"
	"github.com/podsmith/podsmith/internal/session"
)

var (
	generateMinutes float64
	generateNotes   string
	generateBrand   string
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Short:   "Generate the dialogue script",
	Long:    paragraph("\nAsk the text model for a dialogue script based on the fetched content and the active roster, then parse it into attributed lines. Regenerating replaces the current script and resets recorded audio timings."),
	Example: paragraph("podsmith generate\npodsmith generate --minutes 10 --notes \"keep it lighthearted\""),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		s, err := store.Load()
		if err != nil {
			return err
		}
		if s.Content.Text == "" {
			return errors.New("no source content - run 'podsmith fetch' first")
		}

		if cmd.Flags().Changed("minutes") {
			if s, err = store.SetTargetMinutes(generateMinutes); err != nil {
				return err
			}
		}
		if generateNotes != "" || generateBrand != "" {
			s, err = store.Update(func(s *session.Session) (bool, error) {
				if generateNotes != "" {
					s.StyleNotes = generateNotes
				}
				if generateBrand != "" {
					s.BrandProfile = generateBrand
				}
				return false, nil
			})
			if err != nil {
				return err
			}
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client, err := genClient(cfg)
		if err != nil {
			return err
		}

		raw, err := client.Generate(cmd.Context(), script.GenerationPrompt(s, s.Content.Text), "")
		if err != nil {
			return err
		}

		lines := script.ParseLines(gen.StripFence(raw), s.ActiveSpeakers())
		if len(lines) == 0 {
			return errors.New("the model produced no parsable dialogue lines")
		}
		if s, err = store.SetLines(lines); err != nil {
			return err
		}

		scriptText := script.FormatScript(s)
		fmt.Printf("Generated %d dialogue line(s) with %s, about %d minute(s) of narration.\n",
			len(lines), keyword(client.Model()), fetch.EstimateMinutes(scriptText))
		for _, ln := range s.Lines[:min(3, len(s.Lines))] {
			fmt.Println(subtle(s.SpeakerName(ln.SpeakerID) + ": " + ln.Text))
		}
		if len(s.Lines) > 3 {
			fmt.Println(subtle("..."))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().Float64Var(&generateMinutes, "minutes", 0, "target spoken length in minutes")
	generateCmd.Flags().StringVar(&generateNotes, "notes", "", "style notes for the scriptwriter")
	generateCmd.Flags().StringVar(&generateBrand, "brand", "", "brand profile for the scriptwriter")
}
