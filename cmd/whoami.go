package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user, probing the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(false)
		if err != nil {
			return err
		}

		// CurrentUser doubles as the auth probe: a rejected token clears the
		// stored credentials and comes back as nil, not as an error.
		user, err := client.CurrentUser(ctx)
		if err != nil {
			return exitError(4, err)
		}
		if user == nil {
			return exitError(3, fmt.Errorf("not logged in"))
		}

		if jsonOutput {
			outputJSON(user)
			return nil
		}
		printInfo("%s (%s) on %s\n", user.Name, user.ID, client.BaseURL())
		return nil
	},
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Validate the server and show its public info",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, err := getClient(false)
		if err != nil {
			return err
		}
		if client.BaseURL() == "" {
			return exitError(2, fmt.Errorf("server is required. Use --server or set JELLYSTREAM_SERVER"))
		}

		info, err := client.ValidateServer(ctx)
		if err != nil {
			return exitError(4, err)
		}

		if jsonOutput {
			outputJSON(info)
			return nil
		}
		printInfo("%s %s (%s)\n", info.ServerName, info.Version, info.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(serverCmd)
}
