package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/podsmith/podsmith/internal/audio"
	"github.com/podsmith/podsmith/internal/config"
	"github.com/podsmith/podsmith/internal/synth"
	"github.com/podsmith/podsmith/internal/voice"
)

const defaultPreviewText = "大家好，歡迎收聽我們的節目。"

var previewCmd = &cobra.Command{
	Use:     "preview <speaker> [text]",
	Short:   "Play a voice sample for a speaker",
	Long:    paragraph("\nSynthesize a short sample line with a speaker's assigned voice and style, and play it through the system audio device."),
	Example: paragraph("podsmith preview 1\npodsmith preview 2 \"今天我們來聊聊這篇文章。\""),
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		s, err := store.Load()
		if err != nil {
			return err
		}

		pos, err := strconv.Atoi(args[0])
		if err != nil || pos < 1 || pos > len(s.Speakers) {
			return fmt.Errorf("speaker must be a number between 1 and %d", len(s.Speakers))
		}
		sp := s.Speakers[pos-1]

		text := defaultPreviewText
		if len(args) == 2 {
			text = args[1]
		}
		if d := voice.Instruction(sp.Name, sp.Style); d != "" {
			text = d + "\n\n" + text
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client, err := synthClient(cfg)
		if err != nil {
			return err
		}

		resp, err := client.Synthesize(cmd.Context(), synth.Request{
			Text:     text,
			Voice:    sp.Voice,
			Encoding: synth.EncodingMP3,
		})
		if err != nil {
			return err
		}
		artifact, err := synth.Containerize(resp.Audio, resp.MIME, wavFormat())
		if err != nil {
			return err
		}

		fmt.Printf("Playing %s %s...\n", sp.Name, subtle("("+voice.DisplayName(sp.Voice)+")"))
		return audio.Play(cmd.Context(), artifact.Data, artifact.Ext)
	},
}
