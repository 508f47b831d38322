package api

import (
	"context"
	"log/slog"
)

// Playback telemetry is best effort. A lost report must never interrupt
// playback, so these methods log failures and return nil; the next heartbeat
// is the retry.

func (c *Client) ReportPlaybackStart(ctx context.Context, report PlaybackReport) {
	if err := c.postJSON(ctx, "/Sessions/Playing", nil, report, nil); err != nil {
		c.logReportFailure("start", report, err)
	}
}

func (c *Client) ReportPlaybackProgress(ctx context.Context, report PlaybackReport) {
	if err := c.postJSON(ctx, "/Sessions/Playing/Progress", nil, report, nil); err != nil {
		c.logReportFailure("progress", report, err)
	}
}

func (c *Client) ReportPlaybackStop(ctx context.Context, report PlaybackReport) {
	if err := c.postJSON(ctx, "/Sessions/Playing/Stopped", nil, report, nil); err != nil {
		c.logReportFailure("stop", report, err)
	}
}

func (c *Client) logReportFailure(kind string, report PlaybackReport, err error) {
	c.log.Warn("playback report failed",
		slog.String("kind", kind),
		slog.String("item_id", report.ItemID),
		slog.String("play_session_id", report.PlaySessionID),
		slog.String("error", err.Error()))
}
