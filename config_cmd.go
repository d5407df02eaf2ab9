package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# espeak synthesis options. Values equal to the espeak defaults, or
# outside an option's valid range, are not passed to the engine.
espeak:
  # espeak binary to spawn
  program: "espeak"
  # directory holding voice resources
  voice_dir: "/usr/share/espeak-data/voices"
  # voice to use, e.g. "en" or "de"
  voice: "default"
  # output volume, 0 to 200
  amplitude: 100
  # pause between words, units of 10ms at the default speed
  gap: 1
  # capital-letter indication: 1=sound, 2=the word "capitals",
  # higher values raise the pitch
  capitals: 0
  # treat lines shorter than this as end-of-clause (0 disables)
  line_length: 0
  # pitch adjustment, 0 to 99
  pitch: 50
  # speed in words per minute, 80 to 450
  speed: 175
  # interpret SSML markup, ignore other < > tags
  markup: false
  # no final sentence pause at the end of the text
  no_final_pause: false
  # directory containing the espeak-data directory
  # data_path: "/usr/share"
  # speak the names of all punctuation characters
  punct_all: false
  # or only the listed ones, e.g. "!.?"
  punct: ""
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the espeaker config file",
	Long:    paragraph(fmt.Sprintf("\n%s the espeaker config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("espeaker config\nespeaker config --config path/to/espeaker.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("espeaker", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
