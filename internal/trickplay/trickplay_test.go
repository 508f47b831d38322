package trickplay

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestSelectOption(t *testing.T) {
	cases := []struct {
		name   string
		widths []int
		want   int
	}{
		{name: "smallest at or above cutoff", widths: []int{160, 320, 480}, want: 320},
		{name: "above cutoff only", widths: []int{480, 640}, want: 480},
		{name: "largest below cutoff", widths: []int{120, 200}, want: 200},
		{name: "single", widths: []int{160}, want: 160},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := make([]TileOption, len(tc.widths))
			for i, w := range tc.widths {
				opts[i] = TileOption{Width: w, Interval: 10000, TileCount: 1}
			}
			got, ok := SelectOption(opts)
			if !ok {
				t.Fatal("expected a selection")
			}
			if got.Width != tc.want {
				t.Fatalf("selected width %d, want %d", got.Width, tc.want)
			}
		})
	}

	if _, ok := SelectOption(nil); ok {
		t.Fatal("empty options must not select")
	}
}

func TestSynthesizeCues(t *testing.T) {
	opt := TileOption{Width: 320, Interval: 10000, TileCount: 3}
	vtt := Synthesize(opt, func(i int) string { return fmt.Sprintf("tile-%d.jpg", i) })

	if !strings.HasPrefix(vtt, "WEBVTT\n") {
		t.Fatalf("missing header:\n%s", vtt)
	}

	wantCues := []string{
		"00:00:00.000 --> 00:00:10.000\ntile-0.jpg",
		"00:00:10.000 --> 00:00:20.000\ntile-1.jpg",
		"00:00:20.000 --> 00:00:30.000\ntile-2.jpg",
	}
	for _, cue := range wantCues {
		if !strings.Contains(vtt, cue) {
			t.Errorf("missing cue %q in:\n%s", cue, vtt)
		}
	}
	if got := strings.Count(vtt, "-->"); got != 3 {
		t.Errorf("cue count = %d, want 3", got)
	}
	// Cues are blank-line separated blocks.
	if got := len(strings.Split(strings.TrimRight(vtt, "\n"), "\n\n")); got != 4 {
		t.Errorf("block count = %d, want header + 3 cues", got)
	}
}

func TestSynthesizeEmpty(t *testing.T) {
	opt := TileOption{Width: 320, Interval: 10000, TileCount: 0}
	vtt := Synthesize(opt, func(i int) string { return "unused" })
	if vtt != "WEBVTT\n" {
		t.Fatalf("zero tiles should yield a bare header, got %q", vtt)
	}
}

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		ms   int
		want string
	}{
		{0, "00:00:00.000"},
		{1500, "00:00:01.500"},
		{61000, "00:01:01.000"},
		{3600000, "01:00:00.000"},
		{3723456, "01:02:03.456"},
	}
	for _, tc := range cases {
		if got := formatTimestamp(tc.ms); got != tc.want {
			t.Errorf("formatTimestamp(%d) = %s, want %s", tc.ms, got, tc.want)
		}
	}
}

func TestTileURL(t *testing.T) {
	got := TileURL("https://demo.example.org/", "abc", 320, 4, "T")
	want := "https://demo.example.org/Videos/abc/Trickplay/320/4.jpg?api_key=T"
	if got != want {
		t.Fatalf("TileURL = %s, want %s", got, want)
	}
}

func TestTracksReleaseBeforeReplace(t *testing.T) {
	tracks := NewTracks(t.TempDir())

	first, err := tracks.Write("item-1", "WEBVTT\n")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	second, err := tracks.Write("item-1", "WEBVTT\n\n00:00:00.000 --> 00:00:10.000\ntile.jpg\n")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if first == second {
		t.Fatal("expected a new file per write")
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Fatal("previous track file must be removed before the next is created")
	}
	if _, err := os.Stat(second); err != nil {
		t.Fatalf("current track file missing: %v", err)
	}

	tracks.Release("item-1")
	if _, err := os.Stat(second); !os.IsNotExist(err) {
		t.Fatal("Release must remove the file")
	}
	if _, ok := tracks.Path("item-1"); ok {
		t.Fatal("Release must forget the path")
	}
}
