package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fbeckert/jellystream/internal/api"
	"github.com/fbeckert/jellystream/internal/config"
)

var (
	jsonOutput  bool
	plainOutput bool
	quietMode   bool
	verbose     bool
	noColor     bool
	noInput     bool
	storeDir    string
	serverFlag  string
	timeout     time.Duration
	version     = "dev"
	ctx         = context.Background()
)

var rootCmd = &cobra.Command{
	Use:           "jellystream",
	Short:         "Browse and play media from a Jellyfin server",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		handleError(err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Output as plain text")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")
	rootCmd.PersistentFlags().BoolVar(&noInput, "no-input", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store", "", "Store directory (default: ~/.jellystream)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Override server URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "API request timeout")

	cobra.OnInitialize(func() {
		if jsonOutput && plainOutput {
			plainOutput = false
		}
		if noColor {
			os.Setenv("NO_COLOR", "1")
		}
		configureLogging()
	})
}

func configureLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quietMode {
		level = slog.LevelError
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	return e.Err.Error()
}

func exitError(code int, err error) error {
	return ExitError{Code: code, Err: err}
}

func handleError(err error) {
	var exit ExitError
	if errors.As(err, &exit) {
		printError("%v\n", exit.Err)
		os.Exit(exit.Code)
	}
	printError("%v\n", err)
	os.Exit(1)
}

func outputJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func printInfo(format string, args ...interface{}) {
	if !quietMode {
		fmt.Printf(format, args...)
	}
}

func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func resolveStoreDir() (string, error) {
	return config.ResolveStoreDir(storeDir)
}

func loadConfig() (*config.Config, string, error) {
	store, err := resolveStoreDir()
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(store)
	if err != nil {
		return nil, "", err
	}
	config.ApplyEnv(cfg)

	if serverFlag != "" {
		cfg.Server = serverFlag
	}
	if cfg.Server != "" {
		cfg.Server = config.NormalizeServerURL(cfg.Server)
	}

	if cfg.DeviceID == "" {
		cfg.DeviceID = uuid.NewString()
		if cfg.DeviceName == "" {
			cfg.DeviceName = "jellystream"
		}
		if err := config.Save(store, cfg); err != nil {
			return nil, "", err
		}
	}

	return cfg, store, nil
}

// tokenSource picks where this run's credentials come from, once: a token in
// the environment wins (host-managed deployments), otherwise the stored
// record is authoritative and gets cleared when the server rejects it.
func tokenSource(store string) api.TokenSource {
	if _, _, _, ok := (api.EnvTokenSource{}).Credentials(); ok {
		return api.EnvTokenSource{}
	}
	return api.StoreTokenSource{Dir: store}
}

func getClient(requireAuth bool) (*api.Client, *config.Config, string, error) {
	cfg, store, err := loadConfig()
	if err != nil {
		return nil, nil, "", err
	}

	if requireAuth {
		if err := cfg.ValidateAuth(); err != nil {
			return nil, nil, "", exitError(3, err)
		}
	}

	client := api.NewClient(cfg.Server, cfg.Token, cfg.UserID, cfg.DeviceID, cfg.DeviceName, timeout)
	client.OnTokenRejected(tokenSource(store).Invalidate)
	return client, cfg, store, nil
}
