// Package main provides the entry point for the espeaker CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voxkit/espeaker/espeak"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile   string
	voice        string
	amplitude    int
	wordGap      int
	capitals     int
	lineLength   int
	pitch        int
	speed        int
	markup       bool
	noFinalPause bool
	dataPath     string
	punctAll     bool
	punctChars   string

	envCfg envConfig

	rootCmd = &cobra.Command{
		Use:   "espeaker [TEXT|FILE|-]...",
		Short: "Speak text through the espeak engine",
		Long: paragraph(
			fmt.Sprintf("\nSpeak text, files or piped input %s the espeak synthesizer.", keyword("through")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.ArbitraryArgs,
		RunE:             execute,
	}
)

// envConfig carries the runtime knobs read from the environment, on top of
// the flag and config-file surface.
type envConfig struct {
	Program  string `env:"ESPEAK_PROGRAM"`
	VoiceDir string `env:"ESPEAK_VOICE_DIR"`
	LogFile  string `env:"ESPEAKER_LOGFILE"`
	Debug    bool   `env:"ESPEAKER_DEBUG"`
}

// inputFromArg resolves a CLI argument into a Say input: "-" and piped
// stdin become streams, an existing file is opened and streamed, anything
// else is spoken literally. The returned closer is nil for literal text.
func inputFromArg(arg string) (espeak.Input, io.Closer, error) {
	if arg == "-" {
		return espeak.Stream(os.Stdin), nil, nil
	}

	st, err := os.Stat(arg)
	if err == nil && st.Mode().IsRegular() {
		f, err := os.Open(arg)
		if err != nil {
			return espeak.Input{}, nil, fmt.Errorf("unable to open file: %w", err)
		}
		return espeak.Stream(f), f, nil
	}

	return espeak.Text(arg), nil, nil
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to stat stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

// sessionOptions merges the configuration layers: defaults, config file,
// bound flags (all through Viper), then the documented ESPEAK_* override
// variables.
func sessionOptions() espeak.Options {
	opts := espeak.LoadOptionsFromViper()
	if envCfg.Program != "" {
		opts.Program = envCfg.Program
	}
	if envCfg.VoiceDir != "" {
		opts.VoiceDir = envCfg.VoiceDir
	}
	return opts
}

func execute(_ *cobra.Command, args []string) error {
	opts := sessionOptions()
	sess, err := espeak.New(opts)
	if err != nil {
		return err
	}
	defer sess.Close() //nolint:errcheck
	log.Debug("session opened", "args", sess.Args())

	// if stdin is a pipe and no sources were named, speak stdin. A - in
	// the arguments reads stdin explicitly.
	if len(args) == 0 {
		if yes, err := stdinIsPipe(); err != nil {
			return err
		} else if yes {
			if err := sess.Say(espeak.Stream(os.Stdin)); err != nil {
				return err
			}
			return sess.Close()
		}
		return errors.New("missing text to speak")
	}

	for _, arg := range args {
		in, closer, err := inputFromArg(arg)
		if err != nil {
			return err
		}
		sayErr := sess.Say(in)
		if closer != nil {
			_ = closer.Close()
		}
		if sayErr != nil {
			return sayErr
		}
	}

	// closing waits for everything queued to finish being spoken.
	return sess.Close()
}

func main() {
	var err error
	envCfg, err = env.ParseAs[envConfig]()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	closer, err := setupLog(envCfg)
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
	rootCmd.Flags().StringVarP(&voice, "voice", "v", "default", "voice to use, e.g. en or de")
	rootCmd.Flags().IntVarP(&amplitude, "amplitude", "a", espeak.DefaultAmplitude, "output volume, 0 to 200")
	rootCmd.Flags().IntVarP(&wordGap, "gap", "g", espeak.DefaultGap, "pause between words, units of 10ms")
	rootCmd.Flags().IntVarP(&capitals, "capitals", "k", 0, "capital-letter indication style")
	rootCmd.Flags().IntVarP(&lineLength, "line-length", "l", 0, "treat lines shorter than this as end-of-clause")
	rootCmd.Flags().IntVarP(&pitch, "pitch", "p", espeak.DefaultPitch, "pitch adjustment, 0 to 99")
	rootCmd.Flags().IntVarP(&speed, "speed", "s", espeak.DefaultSpeed, "speed in words per minute, 80 to 450")
	rootCmd.Flags().BoolVarP(&markup, "markup", "m", false, "interpret SSML markup")
	rootCmd.Flags().BoolVarP(&noFinalPause, "no-final-pause", "z", false, "no final sentence pause")
	rootCmd.Flags().StringVar(&dataPath, "path", "", "directory containing the espeak-data directory")
	rootCmd.Flags().BoolVar(&punctAll, "punct", false, "speak the names of all punctuation characters")
	rootCmd.Flags().StringVar(&punctChars, "punct-chars", "", "speak the names of the listed punctuation characters")

	// Config bindings
	_ = viper.BindPFlag("espeak.voice", rootCmd.Flags().Lookup("voice"))
	_ = viper.BindPFlag("espeak.amplitude", rootCmd.Flags().Lookup("amplitude"))
	_ = viper.BindPFlag("espeak.gap", rootCmd.Flags().Lookup("gap"))
	_ = viper.BindPFlag("espeak.capitals", rootCmd.Flags().Lookup("capitals"))
	_ = viper.BindPFlag("espeak.line_length", rootCmd.Flags().Lookup("line-length"))
	_ = viper.BindPFlag("espeak.pitch", rootCmd.Flags().Lookup("pitch"))
	_ = viper.BindPFlag("espeak.speed", rootCmd.Flags().Lookup("speed"))
	_ = viper.BindPFlag("espeak.markup", rootCmd.Flags().Lookup("markup"))
	_ = viper.BindPFlag("espeak.no_final_pause", rootCmd.Flags().Lookup("no-final-pause"))
	_ = viper.BindPFlag("espeak.data_path", rootCmd.Flags().Lookup("path"))
	_ = viper.BindPFlag("espeak.punct_all", rootCmd.Flags().Lookup("punct"))
	_ = viper.BindPFlag("espeak.punct", rootCmd.Flags().Lookup("punct-chars"))

	espeak.SetDefaults()

	rootCmd.AddCommand(configCmd, voicesCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "espeaker")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "espeaker")}, dirs...)
	}

	if c := os.Getenv("ESPEAKER_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("espeaker")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("espeaker")
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
		configFile = filepath.Join(dirs[0], "espeaker.yml")
	}
}
