package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fbeckert/jellystream/internal/api"
	"github.com/fbeckert/jellystream/internal/trickplay"
)

var trickplayOutput string

var trickplayCmd = &cobra.Command{
	Use:   "trickplay <item-id>",
	Short: "Synthesize a WebVTT thumbnail track for an item",
	Long: `Picks the best trickplay tile sheet the server generated for an item and
writes a WebVTT thumbnail track pointing at its tiles. Without -o the track is
kept under the store directory, replacing any earlier track for the same item,
and its path is printed. Use "-o -" to write the track to stdout.`,
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

		opt, ok := selectTileOption(item)
		if !ok {
			return exitError(4, fmt.Errorf("no trickplay data for item %s", item.ID))
		}

		vtt := trickplay.Synthesize(opt, func(index int) string {
			return trickplay.TileURL(client.BaseURL(), item.ID, opt.Width, index, client.Token())
		})

		switch trickplayOutput {
		case "-":
			fmt.Print(vtt)
			return nil
		case "":
			tracks := trickplay.NewTracks(filepath.Join(dir, "tracks"))
			path, err := tracks.Write(item.ID, vtt)
			if err != nil {
				return exitError(5, err)
			}
			fmt.Println(path)
			return nil
		default:
			if err := os.WriteFile(trickplayOutput, []byte(vtt), 0644); err != nil {
				return exitError(5, err)
			}
			printInfo("Wrote %s\n", trickplayOutput)
			return nil
		}
	},
}

// selectTileOption flattens the item's per-source tile sheets and picks one.
// Only the first media source's sheets are considered; the sheet map is keyed
// by tile width.
func selectTileOption(item *api.Item) (trickplay.TileOption, bool) {
	if len(item.MediaSources) == 0 || item.Trickplay == nil {
		return trickplay.TileOption{}, false
	}

	sheets, ok := item.Trickplay[item.MediaSources[0].ID]
	if !ok {
		return trickplay.TileOption{}, false
	}

	options := make([]trickplay.TileOption, 0, len(sheets))
	for widthKey, info := range sheets {
		width := info.Width
		if width == 0 {
			width, _ = strconv.Atoi(widthKey)
		}
		options = append(options, trickplay.TileOption{
			Width:     width,
			Interval:  info.Interval,
			TileCount: info.ThumbnailCount,
		})
	}
	return trickplay.SelectOption(options)
}

func init() {
	trickplayCmd.Flags().StringVarP(&trickplayOutput, "output", "o", "", "Write the track to a file (\"-\" for stdout)")

	rootCmd.AddCommand(trickplayCmd)
}
