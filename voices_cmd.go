package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/voxkit/espeaker/espeak"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List installed espeak voices",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		dir := viper.GetString("espeak.voice_dir")
		if envCfg.VoiceDir != "" {
			dir = envCfg.VoiceDir
		}

		voices, err := espeak.Voices(dir)
		if err != nil {
			return err
		}

		// only decorate when talking to a terminal
		if term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Println(keyword("Installed voices") + " in " + dir + ":")
		}
		for _, v := range voices {
			fmt.Println(v)
		}
		return nil
	},
}
