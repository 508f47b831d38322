package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fbeckert/jellystream/internal/api"
	"github.com/fbeckert/jellystream/internal/playstate"
	"github.com/fbeckert/jellystream/internal/prefs"
	"github.com/fbeckert/jellystream/internal/store"
	"github.com/fbeckert/jellystream/internal/stream"
	"github.com/fbeckert/jellystream/internal/ui"
)

var (
	playDirect     bool
	playReport     bool
	playAudioIdx   int
	playSubIdx     int
	playMaxBitrate int

	heartbeatInterval = 10 * time.Second
)

var playCmd = &cobra.Command{
	Use:   "play <item-id>",
	Short: "Build a playback URL for an external player",
	Long: `Resolves an item's media source, applies stored language and bitrate
preferences and prints the playback URL. With --report the command stays in
the foreground and reports playback progress to the server (and the local
history) until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, dir, err := getClient(true)
		if err != nil {
			return err
		}

		item, err := client.Item(ctx, args[0])
		if err != nil {
			return exitError(4, err)
		}
		source, err := pickMediaSource(item)
		if err != nil {
			return err
		}

		p := prefs.Load(dir)
		params := resolveStreamParams(source, p)

		var url string
		if playDirect {
			container := source.Container
			if container == "" {
				container = "mkv"
			}
			url = stream.BuildDirectStreamURL(client.BaseURL(), item.ID, source.ID, container, client.Token())
		} else {
			url = stream.BuildHLSURL(client.BaseURL(), item.ID, client.Token(), client.DeviceID(), params)
		}

		fmt.Println(url)

		if !playReport {
			return nil
		}
		return reportPlayback(client, dir, item, source.ID)
	},
}

// pickMediaSource settles on one version of the item. Multiple versions get
// an interactive prompt unless prompts are disabled, in which case the first
// version wins.
func pickMediaSource(item *api.Item) (api.MediaSource, error) {
	if len(item.MediaSources) == 0 {
		return api.MediaSource{}, exitError(4, fmt.Errorf("item %s has no media sources", item.ID))
	}
	if len(item.MediaSources) == 1 || noInput {
		return item.MediaSources[0], nil
	}

	labels := make([]string, len(item.MediaSources))
	for i, src := range item.MediaSources {
		labels[i] = fmt.Sprintf("%s (%s, %d kbps)", src.ID, src.Container, src.Bitrate/1000)
	}
	idx, err := ui.PromptSelectIndex("Multiple versions available:", labels)
	if err != nil {
		return api.MediaSource{}, exitError(2, err)
	}
	return item.MediaSources[idx], nil
}

// resolveStreamParams maps preferences and flags onto stream selection.
// Explicit flags win; otherwise the preferred languages select the first
// matching stream, and no match means omission (server default / off).
func resolveStreamParams(source api.MediaSource, p prefs.Prefs) stream.HLSParams {
	params := stream.HLSParams{MediaSourceID: source.ID}

	if playAudioIdx >= 0 {
		idx := playAudioIdx
		params.AudioStreamIndex = &idx
	} else if p.AudioLanguage != "" {
		params.AudioStreamIndex = findStream(source.MediaStreams, "Audio", p.AudioLanguage)
	}

	if playSubIdx >= 0 {
		idx := playSubIdx
		params.SubtitleStreamIndex = &idx
	} else if p.SubtitleLanguage != "" {
		params.SubtitleStreamIndex = findStream(source.MediaStreams, "Subtitle", p.SubtitleLanguage)
	}

	if playMaxBitrate > 0 {
		params.MaxBitrate = &playMaxBitrate
	} else if p.MaxBitrate > 0 {
		bitrate := p.MaxBitrate
		params.MaxBitrate = &bitrate
	}

	return params
}

func findStream(streams []api.MediaStream, kind, language string) *int {
	for _, s := range streams {
		if s.Type == kind && strings.EqualFold(s.Language, language) {
			idx := s.Index
			return &idx
		}
	}
	return nil
}

// reportPlayback tracks a playback session in the foreground: start report,
// progress heartbeats driven by elapsed wall time, stop report on interrupt.
// Heartbeat failures never interrupt the session.
func reportPlayback(client *api.Client, dir string, item *api.Item, mediaSourceID string) error {
	history, err := store.Open(dir)
	if err != nil {
		return err
	}
	defer history.Close()

	playSessionID := stream.NewPlaySessionID()
	started := time.Now()

	if err := history.RecordStart(item.ID, item.Name, playSessionID, item.RunTimeTicks); err != nil {
		return err
	}

	report := func(position int64) api.PlaybackReport {
		return api.PlaybackReport{
			ItemID:        item.ID,
			MediaSourceID: mediaSourceID,
			PlaySessionID: playSessionID,
			PositionTicks: position,
			PlayMethod:    "DirectStream",
		}
	}

	client.ReportPlaybackStart(ctx, report(0))
	printInfo("Reporting playback of %s; Ctrl-C to stop\n", item.Name)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	elapsedTicks := func() int64 {
		return int64(time.Since(started) / 100) // 100ns server ticks
	}

	playstate.Heartbeat(runCtx, heartbeatInterval, func(hbCtx context.Context) error {
		position := elapsedTicks()
		if err := history.RecordProgress(playSessionID, position); err != nil {
			return err
		}
		client.ReportPlaybackProgress(hbCtx, report(position))
		return nil
	})

	// The run context is cancelled; use the base context for the final stop.
	position := elapsedTicks()
	client.ReportPlaybackStop(ctx, report(position))
	if err := history.RecordStop(playSessionID, position); err != nil {
		return err
	}
	printInfo("Stopped at %s\n", formatTicks(position))
	return nil
}

func init() {
	playCmd.Flags().BoolVar(&playDirect, "direct", false, "Build a direct-stream URL instead of HLS")
	playCmd.Flags().BoolVar(&playReport, "report", false, "Stay in the foreground and report playback progress")
	playCmd.Flags().IntVar(&playAudioIdx, "audio", -1, "Audio stream index (-1: preference/default)")
	playCmd.Flags().IntVar(&playSubIdx, "subtitle", -1, "Subtitle stream index (-1: preference/off)")
	playCmd.Flags().IntVar(&playMaxBitrate, "max-bitrate", 0, "Bitrate cap in bits/s (0: preference/unlimited)")

	rootCmd.AddCommand(playCmd)
}
