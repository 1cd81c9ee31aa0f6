package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/podsmith/podsmith/internal/config"
	"github.com/podsmith/podsmith/internal/fetch"
	"github.com/podsmith/podsmith/internal/session"
)

var fetchShow bool

var fetchCmd = &cobra.Command{
	Use:     "fetch <url>",
	Short:   "Fetch web content into the session",
	Long:    paragraph("\nScrape a web page and store its text as the session's source material. Fetching new content resets previously recorded audio timings."),
	Example: paragraph("podsmith fetch https://example.com/article\npodsmith fetch --show https://example.com/article"),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if _, err := store.Load(); err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client, err := fetchClient(cfg)
		if err != nil {
			return err
		}

		markdown, err := client.Scrape(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		text := fetch.PlainText(markdown)

		if _, err := store.SetContent(session.Source{URL: args[0], Text: text}); err != nil {
			return err
		}

		runes := utf8.RuneCountInString(text)
		fmt.Printf("Fetched %s characters, about %d minute(s) of narration.\n",
			humanize.Comma(int64(runes)), fetch.EstimateMinutes(text))

		if fetchShow && term.IsTerminal(int(os.Stdout.Fd())) {
			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(terminalWidth()),
			)
			if err != nil {
				return fmt.Errorf("unable to create renderer: %w", err)
			}
			out, err := r.Render(markdown)
			if err != nil {
				return fmt.Errorf("unable to render markdown: %w", err)
			}
			fmt.Print(out)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchShow, "show", false, "render the fetched page in the terminal")
}
