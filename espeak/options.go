// Package espeak drives the espeak command-line speech synthesizer as a
// managed subprocess. It builds a launch-argument list from a set of
// options, spawns the engine, writes queued text to its stdin and
// supervises the process lifecycle (open, reopen, close, terminate).
//
// The engine itself is treated as an opaque black box: this package never
// interprets the synthesized audio, and the engine's stdout and stderr are
// left for the caller to consume.
package espeak

import (
	"os"
	"path/filepath"
	"strconv"
)

// External program defaults. Both can be overridden per session through
// Options, or globally through the ESPEAK_PROGRAM and ESPEAK_VOICE_DIR
// environment variables when options are parsed from the environment.
const (
	DefaultProgram  = "espeak"
	DefaultVoiceDir = "/usr/share/espeak-data/voices"
)

// Documented espeak defaults. Options left at these values are not emitted
// on the command line.
const (
	DefaultAmplitude = 100
	DefaultGap       = 1
	DefaultPitch     = 50
	DefaultSpeed     = 175
)

// Options contains the synthesis options recognized at session creation.
// Start from DefaultOptions and override fields as needed: a value equal to
// its documented default, or outside its valid range, is silently omitted
// from the launch-argument list rather than clamped or rejected.
type Options struct {
	// Program is the espeak binary to spawn. Empty means DefaultProgram.
	Program string `yaml:"program" env:"ESPEAK_PROGRAM" envDefault:"espeak"`

	// VoiceDir is the directory holding voice resources. A non-default
	// Voice is only passed to the engine when it names an entry in this
	// directory. Empty means DefaultVoiceDir.
	VoiceDir string `yaml:"voice_dir" env:"ESPEAK_VOICE_DIR" envDefault:"/usr/share/espeak-data/voices"`

	// Voice selects the synthesis voice, e.g. "en" or "de".
	Voice string `yaml:"voice" env:"ESPEAK_VOICE" envDefault:"default"`

	// Amplitude is the output volume, 0 to 200.
	Amplitude int `yaml:"amplitude" env:"ESPEAK_AMPLITUDE" envDefault:"100"`

	// Gap is the pause between words, in units of 10ms at the default speed.
	Gap int `yaml:"gap" env:"ESPEAK_GAP" envDefault:"1"`

	// Capitals selects how capital letters are indicated: 1 plays a sound,
	// 2 speaks the word "capitals", higher values raise the pitch.
	Capitals int `yaml:"capitals" env:"ESPEAK_CAPITALS" envDefault:"0"`

	// LineLength, when non-zero, treats lines shorter than this length as
	// end-of-clause.
	LineLength int `yaml:"line_length" env:"ESPEAK_LINE_LENGTH" envDefault:"0"`

	// Pitch is the pitch adjustment, 0 to 99.
	Pitch int `yaml:"pitch" env:"ESPEAK_PITCH" envDefault:"50"`

	// Speed is the speaking rate in words per minute, 80 to 450.
	Speed int `yaml:"speed" env:"ESPEAK_SPEED" envDefault:"175"`

	// Markup interprets SSML markup and ignores other < > tags.
	Markup bool `yaml:"markup" env:"ESPEAK_MARKUP" envDefault:"false"`

	// NoFinalPause suppresses the sentence pause at the end of the text.
	NoFinalPause bool `yaml:"no_final_pause" env:"ESPEAK_NO_FINAL_PAUSE" envDefault:"false"`

	// DataPath overrides the directory containing the espeak-data
	// directory.
	DataPath string `yaml:"data_path" env:"ESPEAK_DATA_PATH"`

	// PunctAll speaks the names of all punctuation characters. It takes
	// precedence over Punct.
	PunctAll bool `yaml:"punct_all" env:"ESPEAK_PUNCT_ALL" envDefault:"false"`

	// Punct speaks the names of the punctuation characters it lists,
	// e.g. "!.?".
	Punct string `yaml:"punct" env:"ESPEAK_PUNCT"`
}

// DefaultOptions returns Options with every field at its documented
// default.
func DefaultOptions() Options {
	return Options{
		Program:   DefaultProgram,
		VoiceDir:  DefaultVoiceDir,
		Voice:     "default",
		Amplitude: DefaultAmplitude,
		Gap:       DefaultGap,
		Pitch:     DefaultPitch,
		Speed:     DefaultSpeed,
	}
}

// Args returns the ordered launch-argument list: the program name first,
// then one flag (or flag pair) per recognized, non-default, in-range
// option, in a fixed order. Out-of-range values are omitted entirely.
func (o Options) Args() []string {
	args := []string{o.program()}

	if o.Voice != "" && o.Voice != "default" && o.voiceExists() {
		args = append(args, "-v", o.Voice)
	}
	if o.Amplitude != DefaultAmplitude && o.Amplitude >= 0 && o.Amplitude <= 200 {
		args = append(args, "-a", strconv.Itoa(o.Amplitude))
	}
	if o.Gap != DefaultGap {
		args = append(args, "-g", strconv.Itoa(o.Gap))
	}
	if o.Capitals != 0 {
		args = append(args, "-k", strconv.Itoa(o.Capitals))
	}
	if o.LineLength != 0 {
		args = append(args, "-l", strconv.Itoa(o.LineLength))
	}
	if o.Pitch != DefaultPitch && o.Pitch >= 0 && o.Pitch <= 99 {
		args = append(args, "-p", strconv.Itoa(o.Pitch))
	}
	if o.Speed != DefaultSpeed && o.Speed >= 80 && o.Speed <= 450 {
		args = append(args, "-s", strconv.Itoa(o.Speed))
	}
	if o.Markup {
		args = append(args, "-m")
	}
	if o.NoFinalPause {
		args = append(args, "-z")
	}
	if o.DataPath != "" {
		args = append(args, "--path="+o.DataPath)
	}
	if o.PunctAll {
		args = append(args, "--punct")
	} else if o.Punct != "" {
		args = append(args, "--punct="+o.Punct)
	}

	return args
}

func (o Options) program() string {
	if o.Program == "" {
		return DefaultProgram
	}
	return o.Program
}

func (o Options) voiceDir() string {
	if o.VoiceDir == "" {
		return DefaultVoiceDir
	}
	return o.VoiceDir
}

// voiceExists reports whether the configured voice names an installed
// voice resource.
func (o Options) voiceExists() bool {
	_, err := os.Stat(filepath.Join(o.voiceDir(), o.Voice))
	return err == nil
}
