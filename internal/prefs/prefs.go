// Package prefs persists small per-user playback preferences.
// Preferences live next to the credential store in <store>/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const prefsFileName = "prefs.toml"

// Prefs holds the scalar preferences the player shell remembers between runs.
type Prefs struct {
	AudioLanguage    string `toml:"audio_language"`
	SubtitleLanguage string `toml:"subtitle_language"`
	MaxBitrate       int    `toml:"max_bitrate"`
}

func Path(storeDir string) string {
	return filepath.Join(storeDir, prefsFileName)
}

// Load reads preferences, falling back to zero values whenever the file is
// missing or unreadable. Preferences are a convenience, not state the rest of
// the client depends on, so load never fails.
func Load(storeDir string) Prefs {
	var p Prefs

	data, err := os.ReadFile(Path(storeDir))
	if err != nil {
		return p
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}
	}
	return p
}

// Save writes preferences, creating the store directory as needed.
func Save(storeDir string, p Prefs) error {
	if err := os.MkdirAll(storeDir, 0700); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(Path(storeDir), data, 0600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Set assigns a named preference from its string form.
func (p *Prefs) Set(key, value string) error {
	switch key {
	case "audio":
		p.AudioLanguage = value
	case "subtitles":
		p.SubtitleLanguage = value
	case "max-bitrate":
		var v int
		if value != "" {
			if _, err := fmt.Sscanf(value, "%d", &v); err != nil {
				return fmt.Errorf("max-bitrate must be an integer: %q", value)
			}
		}
		p.MaxBitrate = v
	default:
		return errors.New("unknown preference: " + key)
	}
	return nil
}

// Get returns a named preference in its string form.
func (p Prefs) Get(key string) (string, error) {
	switch key {
	case "audio":
		return p.AudioLanguage, nil
	case "subtitles":
		return p.SubtitleLanguage, nil
	case "max-bitrate":
		if p.MaxBitrate == 0 {
			return "", nil
		}
		return fmt.Sprintf("%d", p.MaxBitrate), nil
	}
	return "", errors.New("unknown preference: " + key)
}
