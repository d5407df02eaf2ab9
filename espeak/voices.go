package espeak

import (
	"fmt"
	"os"
	"sort"
)

// Voices lists the voice resources installed under dir, sorted by name.
// An empty dir means DefaultVoiceDir. Subdirectories (variant collections
// such as mb/) are skipped; only directly usable voice files are
// reported.
func Voices(dir string) ([]string, error) {
	if dir == "" {
		dir = DefaultVoiceDir
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read voice directory: %w", err)
	}

	var voices []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		voices = append(voices, e.Name())
	}
	sort.Strings(voices)
	return voices, nil
}
