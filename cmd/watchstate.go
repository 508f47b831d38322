package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/fbeckert/jellystream/internal/api"
	"github.com/fbeckert/jellystream/internal/playstate"
)

var (
	favoriteRemove bool
	playedRemove   bool

	// itemMutations serializes watch-state toggles per item id so two flips
	// of the same flag cannot land out of order on the server.
	itemMutations playstate.Keyed
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite <item-id>...",
	Short: "Mark items as favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleItems(args, "favorite", !favoriteRemove, func(client *api.Client, item *api.Item, on bool) error {
			return playstate.Optimistic(
				func() { item.UserData.IsFavorite = on },
				func() { item.UserData.IsFavorite = !on },
				func() error { return client.SetFavorite(ctx, item.ID, on) },
			)
		})
	},
}

var playedCmd = &cobra.Command{
	Use:   "played <item-id>...",
	Short: "Mark items as played",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleItems(args, "played", !playedRemove, func(client *api.Client, item *api.Item, on bool) error {
			return playstate.Optimistic(
				func() { item.UserData.Played = on },
				func() { item.UserData.Played = !on },
				func() error { return client.SetPlayed(ctx, item.ID, on) },
			)
		})
	},
}

// toggleItems flips a watch-state flag on each item concurrently, reporting
// per-item outcomes. The displayed state is optimistic: it reflects the
// intended flag unless the server refused, in which case the revert ran and
// the old state is shown alongside the error.
func toggleItems(ids []string, flag string, on bool, mutate func(*api.Client, *api.Item, bool) error) error {
	client, _, _, err := getClient(true)
	if err != nil {
		return err
	}

	type outcome struct {
		item *api.Item
		err  error
	}
	results := make([]outcome, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i].err = itemMutations.Do(id, func() error {
				item, err := client.Item(ctx, id)
				if err != nil {
					return err
				}
				if item.UserData == nil {
					item.UserData = &api.UserData{}
				}
				results[i].item = item
				return mutate(client, item, on)
			})
		}(i, id)
	}
	wg.Wait()

	var failed int
	for i, id := range ids {
		if results[i].err != nil {
			failed++
			printError("%s: %v\n", id, results[i].err)
			continue
		}
		printInfo("%s %s=%v\n", results[i].item.Name, flag, on)
	}
	if failed > 0 {
		return exitError(4, fmt.Errorf("%d of %d items failed", failed, len(ids)))
	}
	return nil
}

func init() {
	favoriteCmd.Flags().BoolVar(&favoriteRemove, "remove", false, "Unmark instead of mark")
	playedCmd.Flags().BoolVar(&playedRemove, "remove", false, "Unmark instead of mark")

	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(playedCmd)
}
