package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Inspect series, seasons and episodes",
}

var seriesSeasonsCmd = &cobra.Command{
	Use:   "seasons <series-id>",
	Short: "List the seasons of a series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		seasons, err := client.Seasons(ctx, args[0])
		if err != nil {
			return exitError(4, err)
		}

		if jsonOutput {
			outputJSON(seasons)
			return nil
		}
		for _, s := range seasons {
			fmt.Printf("%s\t%s\n", s.ID, s.Name)
		}
		return nil
	},
}

var episodesSeason string

var seriesEpisodesCmd = &cobra.Command{
	Use:   "episodes <series-id>",
	Short: "List episodes, optionally for one season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		episodes, err := client.Episodes(ctx, args[0], episodesSeason)
		if err != nil {
			return exitError(4, err)
		}

		if jsonOutput {
			outputJSON(episodes)
			return nil
		}
		for _, e := range episodes {
			fmt.Printf("%s\tS%02dE%02d\t%s\n", e.ID, e.ParentIndexNumber, e.IndexNumber, e.Name)
		}
		return nil
	},
}

var nextUpLimit int

var seriesNextUpCmd = &cobra.Command{
	Use:   "nextup [series-id]",
	Short: "Show the next unwatched episode(s)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		seriesID := ""
		if len(args) > 0 {
			seriesID = args[0]
		}

		items, err := client.NextUp(ctx, seriesID, nextUpLimit)
		if err != nil {
			return exitError(4, err)
		}

		if jsonOutput {
			outputJSON(items)
			return nil
		}
		for _, item := range items {
			fmt.Printf("%s\t%s\n", item.ID, formatItemLabel(item))
		}
		return nil
	},
}

func init() {
	seriesEpisodesCmd.Flags().StringVar(&episodesSeason, "season", "", "Season ID filter")
	seriesNextUpCmd.Flags().IntVar(&nextUpLimit, "limit", 10, "Max results")

	seriesCmd.AddCommand(seriesSeasonsCmd)
	seriesCmd.AddCommand(seriesEpisodesCmd)
	seriesCmd.AddCommand(seriesNextUpCmd)
	rootCmd.AddCommand(seriesCmd)
}
