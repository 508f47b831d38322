package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbeckert/jellystream/internal/api"
	"github.com/fbeckert/jellystream/internal/prefs"
)

var prefsSync bool

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage playback preferences",
	Long: `Gets and sets the stored playback preferences. Known keys:

  audio        preferred audio language (ISO 639 code, e.g. "ger")
  subtitles    preferred subtitle language ("" disables subtitles)
  max-bitrate  streaming bitrate cap in bits/s (0 means unlimited)`,
}

var prefsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one or all preferences",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveStoreDir()
		if err != nil {
			return err
		}
		p := prefs.Load(dir)

		if len(args) == 1 {
			value, err := p.Get(args[0])
			if err != nil {
				return exitError(2, err)
			}
			fmt.Println(value)
			return nil
		}

		if jsonOutput {
			outputJSON(p)
			return nil
		}
		for _, key := range []string{"audio", "subtitles", "max-bitrate"} {
			value, _ := p.Get(key)
			fmt.Printf("%-12s %s\n", key, value)
		}
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveStoreDir()
		if err != nil {
			return err
		}
		p := prefs.Load(dir)

		if err := p.Set(args[0], args[1]); err != nil {
			return exitError(2, err)
		}
		if err := prefs.Save(dir, p); err != nil {
			return exitError(5, err)
		}
		printInfo("Set %s\n", args[0])

		if prefsSync {
			return syncServerConfiguration(p)
		}
		return nil
	},
}

// syncServerConfiguration pushes the language preferences into the server's
// per-user playback configuration so other clients pick them up too.
func syncServerConfiguration(p prefs.Prefs) error {
	client, _, _, err := getClient(true)
	if err != nil {
		return err
	}

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return exitError(4, err)
	}
	if user == nil {
		return exitError(3, fmt.Errorf("not logged in"))
	}

	serverCfg := api.UserConfiguration{}
	if user.Configuration != nil {
		serverCfg = *user.Configuration
	}
	serverCfg.AudioLanguagePreference = p.AudioLanguage
	serverCfg.SubtitleLanguagePreference = p.SubtitleLanguage
	if p.SubtitleLanguage == "" {
		serverCfg.SubtitleMode = "None"
	} else {
		serverCfg.SubtitleMode = "Default"
	}

	if err := client.UpdateUserConfiguration(ctx, serverCfg); err != nil {
		return exitError(4, err)
	}
	printInfo("Synced preferences to the server\n")
	return nil
}

func init() {
	prefsSetCmd.Flags().BoolVar(&prefsSync, "sync", false, "Also push language preferences to the server")

	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)

	rootCmd.AddCommand(prefsCmd)
}
