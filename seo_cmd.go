package main

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/podsmith/podsmith/internal/config"
	"github.com/podsmith/podsmith/internal/script"
)

var seoCopy bool

var seoCmd = &cobra.Command{
	Use:     "seo",
	Short:   "Generate SEO title and description",
	Long:    paragraph("\nAsk the text model for an SEO meta title (60 characters) and description (160 characters) for the current script and store them in the session."),
	Example: paragraph("podsmith seo\npodsmith seo --copy"),
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
		if len(s.Lines) == 0 {
			return errors.New("no script to describe - run 'podsmith generate' first")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client, err := genClient(cfg)
		if err != nil {
			return err
		}

		meta, err := client.GenerateMeta(cmd.Context(), script.FormatScript(s))
		if err != nil {
			return err
		}
		if _, err := store.SetSEO(meta); err != nil {
			return err
		}

		fmt.Println(keyword("Title:"), meta.Title)
		fmt.Println(keyword("Description:"), meta.Description)

		if seoCopy {
			if err := clipboard.WriteAll(meta.Title + "\n" + meta.Description); err != nil {
				return fmt.Errorf("unable to copy to clipboard: %w", err)
			}
			fmt.Println(subtle("Copied to clipboard."))
		}
		return nil
	},
}

func init() {
	seoCmd.Flags().BoolVarP(&seoCopy, "copy", "c", false, "copy the metadata to the clipboard")
}
