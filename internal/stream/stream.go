// Package stream builds playback URLs for external players. The functions
// are pure: all session state comes in as arguments.
package stream

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// HLSParams tunes an adaptive-streaming manifest request. Nil pointer fields
// are omitted from the URL entirely: a missing AudioStreamIndex means "server
// default", a missing SubtitleStreamIndex means "off". Omission, not a
// sentinel value, is the signal.
type HLSParams struct {
	MediaSourceID       string
	AudioStreamIndex    *int
	SubtitleStreamIndex *int
	MaxBitrate          *int
}

// BuildHLSURL returns the adaptive-streaming master manifest URL for an item.
// Every call mints a fresh PlaySessionId so the server never conflates two
// playback attempts; two calls with equal inputs are otherwise identical.
func BuildHLSURL(baseURL, itemID, token, deviceID string, p HLSParams) string {
	params := url.Values{}
	params.Set("api_key", token)
	params.Set("DeviceId", deviceID)
	params.Set("PlaySessionId", NewPlaySessionID())
	if p.MediaSourceID != "" {
		params.Set("MediaSourceId", p.MediaSourceID)
	}
	if p.AudioStreamIndex != nil {
		params.Set("AudioStreamIndex", fmt.Sprintf("%d", *p.AudioStreamIndex))
	}
	if p.SubtitleStreamIndex != nil {
		params.Set("SubtitleStreamIndex", fmt.Sprintf("%d", *p.SubtitleStreamIndex))
	}
	if p.MaxBitrate != nil {
		params.Set("MaxStreamingBitrate", fmt.Sprintf("%d", *p.MaxBitrate))
	}

	return fmt.Sprintf("%s/Videos/%s/master.m3u8?%s",
		strings.TrimRight(baseURL, "/"), itemID, params.Encode())
}

// BuildDirectStreamURL returns the non-adaptive fallback URL for containers
// the player handles natively. Used when HLS initialization fails fatally.
func BuildDirectStreamURL(baseURL, itemID, mediaSourceID, container, token string) string {
	params := url.Values{}
	params.Set("api_key", token)
	params.Set("Static", "true")
	if mediaSourceID != "" {
		params.Set("MediaSourceId", mediaSourceID)
	}

	container = strings.TrimPrefix(container, ".")
	return fmt.Sprintf("%s/Videos/%s/stream.%s?%s",
		strings.TrimRight(baseURL, "/"), itemID, container, params.Encode())
}

// NewPlaySessionID mints a distinct identifier per playback attempt.
func NewPlaySessionID() string {
	return uuid.NewString()
}
