package espeak

import (
	"github.com/spf13/viper"
)

// LoadOptionsFromViper overlays espeak.* configuration keys from Viper
// onto DefaultOptions. Keys that are not set keep their defaults; values
// outside an option's valid range are not rejected here, they are
// filtered when the launch-argument list is built.
func LoadOptionsFromViper() Options {
	o := DefaultOptions()

	if viper.IsSet("espeak.program") {
		o.Program = viper.GetString("espeak.program")
	}
	if viper.IsSet("espeak.voice_dir") {
		o.VoiceDir = viper.GetString("espeak.voice_dir")
	}
	if viper.IsSet("espeak.voice") {
		o.Voice = viper.GetString("espeak.voice")
	}
	if viper.IsSet("espeak.amplitude") {
		o.Amplitude = viper.GetInt("espeak.amplitude")
	}
	if viper.IsSet("espeak.gap") {
		o.Gap = viper.GetInt("espeak.gap")
	}
	if viper.IsSet("espeak.capitals") {
		o.Capitals = viper.GetInt("espeak.capitals")
	}
	if viper.IsSet("espeak.line_length") {
		o.LineLength = viper.GetInt("espeak.line_length")
	}
	if viper.IsSet("espeak.pitch") {
		o.Pitch = viper.GetInt("espeak.pitch")
	}
	if viper.IsSet("espeak.speed") {
		o.Speed = viper.GetInt("espeak.speed")
	}
	if viper.IsSet("espeak.markup") {
		o.Markup = viper.GetBool("espeak.markup")
	}
	if viper.IsSet("espeak.no_final_pause") {
		o.NoFinalPause = viper.GetBool("espeak.no_final_pause")
	}
	if viper.IsSet("espeak.data_path") {
		o.DataPath = viper.GetString("espeak.data_path")
	}
	if viper.IsSet("espeak.punct_all") {
		o.PunctAll = viper.GetBool("espeak.punct_all")
	}
	if viper.IsSet("espeak.punct") {
		o.Punct = viper.GetString("espeak.punct")
	}

	return o
}

// SetDefaults registers the option defaults in Viper under the espeak.*
// namespace.
func SetDefaults() {
	d := DefaultOptions()

	viper.SetDefault("espeak.program", d.Program)
	viper.SetDefault("espeak.voice_dir", d.VoiceDir)
	viper.SetDefault("espeak.voice", d.Voice)
	viper.SetDefault("espeak.amplitude", d.Amplitude)
	viper.SetDefault("espeak.gap", d.Gap)
	viper.SetDefault("espeak.capitals", d.Capitals)
	viper.SetDefault("espeak.line_length", d.LineLength)
	viper.SetDefault("espeak.pitch", d.Pitch)
	viper.SetDefault("espeak.speed", d.Speed)
	viper.SetDefault("espeak.markup", d.Markup)
	viper.SetDefault("espeak.no_final_pause", d.NoFinalPause)
	viper.SetDefault("espeak.data_path", d.DataPath)
	viper.SetDefault("espeak.punct_all", d.PunctAll)
	viper.SetDefault("espeak.punct", d.Punct)
}
