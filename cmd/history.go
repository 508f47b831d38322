package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbeckert/jellystream/internal/store"
)

var (
	historyLimit    int
	historyContinue bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show locally recorded playback sessions",
	Long: `Lists playback sessions recorded by "play --report". With --continue only
unfinished sessions with a resume point are shown, one per item.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveStoreDir()
		if err != nil {
			return err
		}

		history, err := store.Open(dir)
		if err != nil {
			return exitError(5, err)
		}
		defer history.Close()

		var sessions []store.Session
		if historyContinue {
			sessions, err = history.ContinueWatching(historyLimit)
		} else {
			sessions, err = history.ListRecent(historyLimit)
		}
		if err != nil {
			return exitError(5, err)
		}

		if jsonOutput {
			outputJSON(sessions)
			return nil
		}

		if len(sessions) == 0 {
			printInfo("No playback history\n")
			return nil
		}
		for _, sess := range sessions {
			fmt.Printf("%s  %-8s %s at %s  (%s)\n",
				sess.UpdatedAt.Local().Format("2006-01-02 15:04"),
				sess.State, sess.ItemName, formatTicks(sess.PositionTicks), sess.ItemID)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum sessions to list")
	historyCmd.Flags().BoolVar(&historyContinue, "continue", false, "Only unfinished sessions with a resume point")

	rootCmd.AddCommand(historyCmd)
}
