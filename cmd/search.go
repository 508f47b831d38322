package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbeckert/jellystream/internal/ui"
)

var (
	searchType        string
	searchLimit       int
	searchInteractive bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies, series and episodes",
	Args: func(cmd *cobra.Command, args []string) error {
		if searchInteractive {
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("query required")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		types := parseSearchTypes(searchType)

		if searchInteractive {
			if noInput {
				return exitError(2, fmt.Errorf("interactive search disabled by --no-input"))
			}
			selection, err := ui.InteractiveSearch(ctx, "Library Search", query, func(ctx context.Context, q string) ([]ui.Entry, error) {
				items, err := client.Search(ctx, q, types, searchLimit)
				if err != nil {
					return nil, err
				}
				entries := make([]ui.Entry, 0, len(items))
				for _, item := range items {
					entries = append(entries, ui.Entry{
						ID:       item.ID,
						Title:    item.Name,
						Subtitle: formatItemLabel(item),
					})
				}
				return entries, nil
			})
			if err != nil {
				return exitError(2, err)
			}
			if selection == nil {
				return nil
			}
			fmt.Printf("%s\t%s\n", selection.ID, selection.Title)
			return nil
		}

		items, err := client.Search(ctx, query, types, searchLimit)
		if err != nil {
			return exitError(4, err)
		}

		if jsonOutput {
			outputJSON(items)
			return nil
		}
		if plainOutput {
			for _, item := range items {
				fmt.Printf("%s\t%s\t%s\n", item.ID, item.Name, item.Type)
			}
			return nil
		}

		for _, item := range items {
			fmt.Printf("%s  %s\n", item.ID, formatItemLabel(item))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchType, "type", "", "Item type filter: movie, series, episode")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Max results")
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "Interactive search UI")
	rootCmd.AddCommand(searchCmd)
}

func parseSearchTypes(value string) []string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return []string{"Movie", "Series"}
	}

	parts := strings.Split(value, ",")
	var out []string
	for _, part := range parts {
		switch strings.TrimSpace(part) {
		case "movie", "movies":
			out = append(out, "Movie")
		case "series", "show", "tv":
			out = append(out, "Series")
		case "episode", "episodes":
			out = append(out, "Episode")
		}
	}
	if len(out) == 0 {
		return []string{"Movie", "Series"}
	}
	return out
}
