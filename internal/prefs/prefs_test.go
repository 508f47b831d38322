package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	want := Prefs{AudioLanguage: "deu", SubtitleLanguage: "eng", MaxBitrate: 4000000}

	if err := Save(dir, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Load(dir); got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadMissingOrBroken(t *testing.T) {
	if got := Load(t.TempDir()); got != (Prefs{}) {
		t.Fatalf("missing prefs should load as defaults, got %+v", got)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, prefsFileName), []byte("= not toml ="), 0600); err != nil {
		t.Fatal(err)
	}
	if got := Load(dir); got != (Prefs{}) {
		t.Fatalf("broken prefs should load as defaults, got %+v", got)
	}
}

func TestSetGet(t *testing.T) {
	var p Prefs
	cases := []struct {
		key, value string
	}{
		{"audio", "jpn"},
		{"subtitles", "eng"},
		{"max-bitrate", "8000000"},
	}
	for _, tc := range cases {
		if err := p.Set(tc.key, tc.value); err != nil {
			t.Fatalf("Set(%q, %q): %v", tc.key, tc.value, err)
		}
		got, err := p.Get(tc.key)
		if err != nil {
			t.Fatalf("Get(%q): %v", tc.key, err)
		}
		if got != tc.value {
			t.Fatalf("Get(%q) = %q, want %q", tc.key, got, tc.value)
		}
	}

	if err := p.Set("max-bitrate", "lots"); err == nil {
		t.Fatal("expected error for non-numeric bitrate")
	}
	if err := p.Set("theme", "dark"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
