package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/podsmith/podsmith/internal/audio"
	"github.com/podsmith/podsmith/internal/config"
	"github.com/podsmith/podsmith/internal/synth"
	"github.com/podsmith/podsmith/pkg/wav"
)

var synthesizeOut string

// wavFormat is the PCM layout used when the provider returns raw audio.
func wavFormat() wav.Format {
	f := wav.DefaultFormat()
	if rate := viper.GetInt("sample_rate"); rate > 0 {
		f.SampleRate = rate
	}
	return f
}

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Synthesize the podcast audio",
	Long: paragraph("\nRender the whole script to audio. Multi-speaker scripts with at most two distinct voices are rendered as one " +
		keyword("joint conversation") + "; other scripts are rendered line by line and packaged into a zip archive. " +
		"Playback durations are recorded in the session for transcript export."),
	Example: paragraph("podsmith synthesize\npodsmith synthesize --out ~/podcasts"),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client, err := synthClient(cfg)
		if err != nil {
			return err
		}

		outDir := synthesizeOut
		if outDir == "" {
			outDir = viper.GetString("dir")
		}
		outDir, err = homedir.Expand(outDir)
		if err != nil {
			return fmt.Errorf("expanding output directory: %w", err)
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("creating output directory: %w", err)
		}

		orch := synth.NewOrchestrator(client, store, audio.NewResolver(), synth.Options{
			Encoding:  synth.Encoding(viper.GetString("encoding")),
			PCMFormat: wavFormat(),
			OutDir:    outDir,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		result, err := orch.Run(ctx)
		if err != nil {
			var lineErr *synth.LineError
			if errors.As(err, &lineErr) {
				return fmt.Errorf("synthesis stopped at line %d: %w", lineErr.Line, lineErr.Reason)
			}
			return err
		}

		switch {
		case result.Joint:
			fmt.Println("Rendered joint conversation:", keyword(result.OutputPath))
		case result.ArchivePath != "":
			fmt.Printf("Rendered %d segment(s): %s\n", len(result.Segments), keyword(result.ArchivePath))
		default:
			fmt.Println("Rendered 1 segment:", keyword(result.OutputPath))
		}

		var total int
		for _, seg := range result.Segments {
			total += len(seg.Artifact.Data)
		}
		if total > 0 {
			fmt.Println(subtle(humanize.Bytes(uint64(total)) + " of audio")) //nolint:gosec
		}
		return nil
	},
}

func init() {
	synthesizeCmd.Flags().StringVarP(&synthesizeOut, "out", "o", "", "output directory (default the session dir)")
}
