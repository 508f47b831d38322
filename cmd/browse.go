package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbeckert/jellystream/internal/api"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List library views",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		views, err := client.Views(ctx)
		if err != nil {
			return exitError(4, err)
		}

		if jsonOutput {
			outputJSON(views)
			return nil
		}
		for _, v := range views {
			printInfo("%s\t%s\t%s\n", v.ID, v.Name, v.CollectionType)
		}
		return nil
	},
}

var (
	latestParent string
	latestLimit  int
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List recently added items",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		items, err := client.Latest(ctx, latestParent, latestLimit)
		if err != nil {
			return exitError(4, err)
		}

		if jsonOutput {
			outputJSON(items)
			return nil
		}
		for _, item := range items {
			printInfo("%s\t%s\n", item.ID, formatItemLabel(item))
		}
		return nil
	},
}

var itemCmd = &cobra.Command{
	Use:   "item <id>",
	Short: "Show an item with media sources and user data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		item, err := client.Item(ctx, args[0])
		if err != nil {
			return exitError(4, err)
		}

		if jsonOutput {
			outputJSON(item)
			return nil
		}
		printItem(*item)
		return nil
	},
}

func printItem(item api.Item) {
	printInfo("%s (%s)\n", item.Name, item.Type)
	if item.Overview != "" {
		printInfo("%s\n", item.Overview)
	}
	if item.UserData != nil {
		printInfo("favorite=%v played=%v position=%s\n",
			item.UserData.IsFavorite, item.UserData.Played, formatTicks(item.UserData.PlaybackPositionTicks))
	}
	for _, src := range item.MediaSources {
		printInfo("source %s container=%s bitrate=%d\n", src.ID, src.Container, src.Bitrate)
		for _, s := range src.MediaStreams {
			printInfo("  [%d] %s %s %s\n", s.Index, s.Type, s.Codec, s.Language)
		}
	}
}

func formatItemLabel(item api.Item) string {
	label := item.Name
	if item.Type == "Episode" && item.SeriesName != "" {
		label = fmt.Sprintf("%s S%02dE%02d %s", item.SeriesName, item.ParentIndexNumber, item.IndexNumber, item.Name)
	} else if item.ProductionYear != 0 {
		label = fmt.Sprintf("%s (%d)", label, item.ProductionYear)
	}
	if item.Type != "" {
		label = fmt.Sprintf("%s [%s]", label, item.Type)
	}
	return label
}

// formatTicks renders a server tick count (100ns units) as h:mm:ss.
func formatTicks(ticks int64) string {
	secs := ticks / 10_000_000
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

func init() {
	latestCmd.Flags().StringVar(&latestParent, "parent", "", "Restrict to a library view ID")
	latestCmd.Flags().IntVar(&latestLimit, "limit", 20, "Max results")

	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(itemCmd)
}
