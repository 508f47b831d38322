// Package trickplay turns server-generated thumbnail tile sheets into WebVTT
// thumbnail tracks for seek-bar scrub previews.
package trickplay

import (
	"fmt"
	"net/url"
	"strings"
)

// preferredWidth is the resolution cutoff for tile selection: the smallest
// sheet at or above it looks sharp without wasting bandwidth.
const preferredWidth = 320

// TileOption describes one available tile-sheet resolution for an item.
type TileOption struct {
	Width     int
	Interval  int // milliseconds covered by each tile
	TileCount int
}

// SelectOption picks the sheet to use: the smallest width >= 320, else the
// largest available. Returns false only for an empty slice.
func SelectOption(options []TileOption) (TileOption, bool) {
	if len(options) == 0 {
		return TileOption{}, false
	}

	var best TileOption
	haveBest := false
	for _, opt := range options {
		if opt.Width < preferredWidth {
			continue
		}
		if !haveBest || opt.Width < best.Width {
			best = opt
			haveBest = true
		}
	}
	if haveBest {
		return best, true
	}

	// Nothing reaches the cutoff; fall back to the largest.
	best = options[0]
	for _, opt := range options[1:] {
		if opt.Width > best.Width {
			best = opt
		}
	}
	return best, true
}

// Synthesize renders the WebVTT track for a tile sheet. Cue i covers
// [i*interval, (i+1)*interval) and points at tileURL(i). Zero tiles yield a
// valid empty track: just the header.
func Synthesize(opt TileOption, tileURL func(index int) string) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n")

	for i := 0; i < opt.TileCount; i++ {
		b.WriteString("\n")
		b.WriteString(formatTimestamp(i * opt.Interval))
		b.WriteString(" --> ")
		b.WriteString(formatTimestamp((i + 1) * opt.Interval))
		b.WriteString("\n")
		b.WriteString(tileURL(i))
		b.WriteString("\n")
	}

	return b.String()
}

// TileURL addresses one tile image of an item's sheet at a given width.
func TileURL(baseURL, itemID string, width, index int, token string) string {
	params := url.Values{}
	params.Set("api_key", token)
	return fmt.Sprintf("%s/Videos/%s/Trickplay/%d/%d.jpg?%s",
		strings.TrimRight(baseURL, "/"), itemID, width, index, params.Encode())
}

// formatTimestamp renders milliseconds as HH:MM:SS.mmm.
func formatTimestamp(ms int) string {
	h := ms / 3600000
	m := ms / 60000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}
