package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fbeckert/jellystream/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := resolveStoreDir()
		if err != nil {
			return err
		}
		if err := config.Clear(store); err != nil {
			return err
		}
		printInfo("Logged out\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
