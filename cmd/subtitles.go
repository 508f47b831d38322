package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var subtitlesCmd = &cobra.Command{
	Use:   "subtitles",
	Short: "Search, download and delete subtitles for an item",
}

var subtitlesLang string

var subtitlesSearchCmd = &cobra.Command{
	Use:   "search <item-id>",
	Short: "Search the server's subtitle providers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		subs, err := client.SearchSubtitles(ctx, args[0], subtitlesLang)
		if err != nil {
			return exitError(4, err)
		}

		if jsonOutput {
			outputJSON(subs)
			return nil
		}
		for _, s := range subs {
			fmt.Printf("%s\t%s\t%s\t%d downloads\n", s.ID, s.Language, s.Name, s.DownloadCount)
		}
		return nil
	},
}

var subtitlesDownloadCmd = &cobra.Command{
	Use:   "download <item-id> <subtitle-id>",
	Short: "Attach a remote subtitle to an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		if err := client.DownloadSubtitle(ctx, args[0], args[1]); err != nil {
			return exitError(4, err)
		}
		printInfo("Subtitle download queued\n")
		return nil
	},
}

var subtitlesDeleteCmd = &cobra.Command{
	Use:   "delete <item-id> <stream-index>",
	Short: "Remove an attached subtitle stream",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(true)
		if err != nil {
			return err
		}

		index, err := strconv.Atoi(args[1])
		if err != nil {
			return exitError(2, fmt.Errorf("invalid stream index %q", args[1]))
		}

		if err := client.DeleteSubtitle(ctx, args[0], index); err != nil {
			return exitError(4, err)
		}
		printInfo("Subtitle removed\n")
		return nil
	},
}

func init() {
	subtitlesSearchCmd.Flags().StringVar(&subtitlesLang, "lang", "eng", "Three-letter subtitle language")

	subtitlesCmd.AddCommand(subtitlesSearchCmd)
	subtitlesCmd.AddCommand(subtitlesDownloadCmd)
	subtitlesCmd.AddCommand(subtitlesDeleteCmd)
	rootCmd.AddCommand(subtitlesCmd)
}
