package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/podsmith/podsmith/internal/session"
	"github.com/podsmith/podsmith/internal/voice"
)

var initMode string

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Start a new podcast session",
	Long:    paragraph("\nCreate a fresh session file with the default two-speaker roster. The session tracks everything the rest of the commands produce."),
	Example: paragraph("podsmith init\npodsmith init --mode single-speaker"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		s, err := store.Init()
		if err != nil {
			return err
		}

		mode := initMode
		if mode == "" {
			mode = viper.GetString("mode")
		}
		if m := session.Mode(mode); m != s.Mode {
			if m != session.ModeSingle && m != session.ModeMulti {
				return fmt.Errorf("unknown mode %q: use %s or %s", mode, session.ModeSingle, session.ModeMulti)
			}
			if s, err = store.SetMode(m); err != nil {
				return err
			}
		}

		fmt.Println("Started session:", keyword(store.Path()))
		fmt.Println("Mode:", s.Mode)
		for i, sp := range s.ActiveSpeakers() {
			fmt.Printf("Speaker %d: %s %s\n", i+1, sp.Name, subtle("("+voice.DisplayName(sp.Voice)+")"))
		}
		return nil
	},
}

var modeCmd = &cobra.Command{
	Use:   "mode [single-speaker|multi-speaker]",
	Short: "Show or change the speaker mode",
	Long:  paragraph("\nShow the session's speaker mode, or switch it. Switching regenerates nothing by itself but resets recorded audio timings, since the active roster changes."),
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		s, err := store.Load()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Println(s.Mode)
			return nil
		}

		m := session.Mode(args[0])
		if m != session.ModeSingle && m != session.ModeMulti {
			return fmt.Errorf("unknown mode %q: use %s or %s", args[0], session.ModeSingle, session.ModeMulti)
		}
		if _, err := store.SetMode(m); err != nil {
			return err
		}
		fmt.Println("Mode:", m)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initMode, "mode", "", "speaker mode: single-speaker or multi-speaker")
}
