package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/podsmith/podsmith/internal/voice"
)

var (
	voiceName     string
	voiceEmotion  string
	voicePace     string
	voiceTone     string
	voiceEmphasis string
)

var voicesCmd = &cobra.Command{
	Use:     "voices [query]",
	Short:   "List and search available voices",
	Long:    paragraph("\nList the voice catalog, optionally narrowed by a fuzzy query against voice IDs and names."),
	Example: paragraph("podsmith voices\npodsmith voices warm\npodsmith voices set 2 cmn-TW-Wavenet-C --emotion excited"),
	Args:    cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		options := voice.Catalog()
		if len(args) == 1 {
			options = voice.Search(args[0])
			if len(options) == 0 {
				fmt.Println("No voices match", strconv.Quote(args[0])+".")
				return nil
			}
		}
		for _, opt := range options {
			fmt.Printf("%s  %s\n", keyword(opt.ID), opt.Name)
		}
		return nil
	},
}

var voicesSetCmd = &cobra.Command{
	Use:   "set <speaker> [voice]",
	Short: "Assign a voice or style to a speaker",
	Long: paragraph("\nAssign a catalog voice and optional delivery style to a roster speaker, addressed by its 1-based position. " +
		"Changing a speaker resets recorded audio timings."),
	Args: cobra.RangeArgs(1, 2),
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

		if len(args) == 2 {
			opt, ok := voice.Lookup(args[1])
			if !ok {
				return fmt.Errorf("unknown voice %q: see 'podsmith voices'", args[1])
			}
			sp.Voice = opt.ID
		}
		if voiceName != "" {
			sp.Name = voiceName
		}
		if cmd.Flags().Changed("emotion") {
			sp.Style.Emotion = voice.Emotion(voiceEmotion)
		}
		if cmd.Flags().Changed("pace") {
			sp.Style.Pace = voice.Pace(voicePace)
		}
		if cmd.Flags().Changed("tone") {
			sp.Style.Tone = voice.Tone(voiceTone)
		}
		if cmd.Flags().Changed("emphasis") {
			sp.Style.Emphasis = voice.Emphasis(voiceEmphasis)
		}

		if _, err := store.UpdateSpeaker(pos-1, sp); err != nil {
			return err
		}

		fmt.Printf("Speaker %d: %s %s\n", pos, sp.Name, subtle("("+voice.DisplayName(sp.Voice)+")"))
		if d := voice.Instruction(sp.Name, sp.Style); d != "" {
			fmt.Println(subtle(d))
		}
		return nil
	},
}

func init() {
	voicesSetCmd.Flags().StringVar(&voiceName, "name", "", "rename the speaker")
	voicesSetCmd.Flags().StringVar(&voiceEmotion, "emotion", "", "delivery emotion (neutral, excited, calm, serious, cheerful)")
	voicesSetCmd.Flags().StringVar(&voicePace, "pace", "", "delivery pace (normal, slow, fast)")
	voicesSetCmd.Flags().StringVar(&voiceTone, "tone", "", "delivery tone (default, warm, formal, casual)")
	voicesSetCmd.Flags().StringVar(&voiceEmphasis, "emphasis", "", "delivery emphasis (none, strong, gentle)")
	voicesCmd.AddCommand(voicesSetCmd)
}
