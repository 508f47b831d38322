package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fbeckert/jellystream/internal/download"
)

var (
	saveOutput    string
	saveDir       string
	saveRateLimit string
	saveForce     bool
)

var saveCmd = &cobra.Command{
	Use:   "save <item-id>",
	Short: "Save an item's original file to disk",
	Long: `Downloads the untranscoded original file for an item. A partial file
from an interrupted run is resumed with a Range request when the server
supports it. --limit-rate accepts values like 500K or 5M (bytes per second).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		limiter, err := download.ParseRateLimit(saveRateLimit)
		if err != nil {
			return exitError(2, err)
		}

		item, err := client.Item(ctx, args[0])
		if err != nil {
			return exitError(4, err)
		}

		path := saveOutput
		if path == "" {
			ext := item.Container
			if len(item.MediaSources) > 0 && item.MediaSources[0].Container != "" {
				ext = item.MediaSources[0].Container
			}
			path = download.DefaultPath(saveDir, item.Name, ext)
		}

		var offset int64
		if info, err := os.Stat(path); err == nil {
			if saveForce {
				if err := os.Remove(path); err != nil {
					return exitError(5, err)
				}
			} else {
				offset = info.Size()
			}
		}

		runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		resp, err := client.OpenOriginal(runCtx, item.ID, offset)
		if err != nil {
			return exitError(4, err)
		}
		defer resp.Body.Close()

		// A 200 to a ranged request means the server restarted from zero.
		if offset > 0 && resp.StatusCode != http.StatusPartialContent {
			offset = 0
		}

		flags := os.O_WRONLY | os.O_CREATE
		if offset > 0 {
			flags |= os.O_APPEND
			printInfo("Resuming at %d bytes\n", offset)
		} else {
			flags |= os.O_TRUNC
		}
		out, err := os.OpenFile(path, flags, 0644)
		if err != nil {
			return exitError(5, err)
		}

		total := offset
		if resp.ContentLength > 0 {
			total += resp.ContentLength
		}

		written, copyErr := download.CopyWithProgress(runCtx, out, resp.Body, total, limiter, func(written, total int64) {
			printProgress(offset+written, total)
		})
		if err := out.Close(); err != nil && copyErr == nil {
			copyErr = err
		}
		if copyErr != nil {
			return exitError(5, fmt.Errorf("download %s: %w (partial file kept for resume)", path, copyErr))
		}

		printInfo("\nSaved %s (%s)\n", path, formatBytes(offset+written))
		return nil
	},
}

func printProgress(written, total int64) {
	if quietMode {
		return
	}
	if total > 0 {
		fmt.Printf("\r%s / %s (%.1f%%)", formatBytes(written), formatBytes(total),
			float64(written)/float64(total)*100)
		return
	}
	fmt.Printf("\r%s", formatBytes(written))
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	saveCmd.Flags().StringVarP(&saveOutput, "output", "o", "", "Output file path (default: derived from the item name)")
	saveCmd.Flags().StringVar(&saveDir, "dir", ".", "Directory for the derived output path")
	saveCmd.Flags().StringVar(&saveRateLimit, "limit-rate", "", "Download rate limit, e.g. 500K or 5M")
	saveCmd.Flags().BoolVarP(&saveForce, "force", "f", false, "Overwrite an existing file instead of resuming")

	rootCmd.AddCommand(saveCmd)
}
