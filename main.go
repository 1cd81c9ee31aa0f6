// Package main provides the entry point for the podsmith CLI, a workbench
// that turns web articles into fully produced podcast audio: fetched
// content, a generated dialogue script, styled voices, synthesized audio
// and export artifacts, all tracked in a session file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/podsmith/podsmith/internal/config"
	"github.com/podsmith/podsmith/internal/fetch"
	"github.com/podsmith/podsmith/internal/gen"
	"github.com/podsmith/podsmith/internal/session"
	"github.com/podsmith/podsmith/internal/synth"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile  string
	sessionFile string
	debug       bool

	rootCmd = &cobra.Command{
		Use:   "podsmith",
		Short: "Turn web content into a produced podcast",
		Long: paragraph(fmt.Sprintf("\nTurn an article into a %s: fetch content, generate a dialogue script, "+
			"assign and style voices, synthesize the audio and export the transcript.", keyword("produced podcast"))),
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
	}
)

// terminalWidth reports the stdout width, defaulting to 80 when stdout is
// not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// openStore resolves the session file path and wraps it in a Store. The
// --file flag wins over the out_dir config value; both accept ~ expansion.
func openStore() (*session.Store, error) {
	path := sessionFile
	if path == "" {
		path = session.DefaultPath(viper.GetString("dir"))
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding session path: %w", err)
	}
	return session.NewStore(path), nil
}

func genClient(cfg config.Config) (*gen.Client, error) {
	return gen.NewClient(gen.ClientConfig{
		Endpoint: cfg.GenEndpoint,
		APIKey:   cfg.GenAPIKey,
		Model:    viper.GetString("model"),
	})
}

func fetchClient(cfg config.Config) (*fetch.Client, error) {
	return fetch.NewClient(fetch.ClientConfig{
		Endpoint: cfg.FetchEndpoint,
		APIKey:   cfg.FetchAPIKey,
	})
}

func synthClient(cfg config.Config) (*synth.Client, error) {
	return synth.NewClient(synth.ClientConfig{
		Endpoint:          cfg.TTSEndpoint,
		APIKey:            cfg.TTSAPIKey,
		RequestsPerMinute: viper.GetInt("requests_per_minute"),
	})
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().StringVarP(&sessionFile, "file", "f", "", "session file (default "+session.DefaultFileName+" in the working directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	viper.SetDefault("dir", ".")
	viper.SetDefault("mode", string(session.ModeMulti))
	viper.SetDefault("model", gen.DefaultModel)
	viper.SetDefault("encoding", string(synth.EncodingMP3))
	viper.SetDefault("requests_per_minute", 30)

	rootCmd.AddCommand(
		initCmd,
		modeCmd,
		fetchCmd,
		generateCmd,
		editCmd,
		seoCmd,
		voicesCmd,
		previewCmd,
		synthesizeCmd,
		exportCmd,
		watchCmd,
		configCmd,
		manCmd,
	)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "podsmith")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find the configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "podsmith")}, dirs...)
	}

	if c := os.Getenv("PODSMITH_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("podsmith")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("podsmith")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "podsmith.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
