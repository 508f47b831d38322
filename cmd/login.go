package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fbeckert/jellystream/internal/api"
	"github.com/fbeckert/jellystream/internal/config"
)

var (
	loginUser          string
	loginPasswordStdin bool
	loginQuickConnect  bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with your media server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := loadConfig()
		if err != nil {
			return err
		}

		server := cfg.Server
		if serverFlag != "" {
			server = config.NormalizeServerURL(serverFlag)
		}
		if server == "" {
			return exitError(2, fmt.Errorf("server is required. Use --server or set JELLYSTREAM_SERVER"))
		}

		client := newUnauthedClient(server, cfg, timeout)

		if _, err := client.ValidateServer(ctx); err != nil {
			return exitError(4, fmt.Errorf("not a reachable media server at %s: %w", server, err))
		}

		var result *api.AuthResult
		if loginQuickConnect {
			result, err = quickConnectLogin(client)
		} else {
			result, err = passwordLogin(client, cfg)
		}
		if err != nil {
			return err
		}

		// Confirm the token on a session built around it before persisting.
		authed := client.Rebuild(result.AccessToken, result.User.ID)
		user, err := authed.CurrentUser(ctx)
		if err != nil || user == nil {
			return exitError(4, fmt.Errorf("server rejected the new session"))
		}

		cfg.SetCredentials(server, result.AccessToken, result.User.ID)
		cfg.LastUsername = user.Name
		if err := config.Save(store, cfg); err != nil {
			return err
		}

		printInfo("Logged in as %s\n", user.Name)
		return nil
	},
}

func passwordLogin(client *api.Client, cfg *config.Config) (*api.AuthResult, error) {
	username := loginUser
	if username == "" && !noInput {
		username = promptUsername(client, cfg.LastUsername)
	}
	if username == "" {
		return nil, exitError(2, fmt.Errorf("username is required"))
	}

	password, err := readPassword(loginPasswordStdin)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, exitError(2, fmt.Errorf("password is required"))
	}

	result, err := client.AuthenticateByName(ctx, username, password)
	if err != nil {
		return nil, exitError(4, err)
	}
	return result, nil
}

// promptUsername suggests the server's public users when it exposes any,
// falling back to a plain prompt.
func promptUsername(client *api.Client, fallback string) string {
	users, err := client.PublicUsers(ctx)
	if err == nil && len(users) > 0 {
		names := make([]string, 0, len(users)+1)
		for _, u := range users {
			names = append(names, u.Name)
		}
		fmt.Println("Users on this server:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
	}
	return promptLine(fmt.Sprintf("Username [%s]: ", fallback), fallback)
}

func quickConnectLogin(client *api.Client) (*api.AuthResult, error) {
	state, err := client.QuickConnectInitiate(ctx)
	if err != nil {
		return nil, exitError(4, fmt.Errorf("quick connect unavailable: %w", err))
	}

	printInfo("Quick Connect code: %s\n", state.Code)
	printInfo("Approve it on an already signed-in device. Waiting...\n")

	result, err := client.QuickConnectWait(ctx, state.Secret)
	if err != nil {
		return nil, exitError(4, err)
	}
	return result, nil
}

func init() {
	loginCmd.Flags().StringVar(&loginUser, "user", "", "Username")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read password from stdin")
	loginCmd.Flags().BoolVar(&loginQuickConnect, "quick-connect", false, "Log in by approving a pairing code on another device")
	rootCmd.AddCommand(loginCmd)
}

func readPassword(fromStdin bool) (string, error) {
	if fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	if noInput {
		return "", exitError(2, fmt.Errorf("password required; use --password-stdin"))
	}
	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pw)), nil
}

func promptLine(label, fallback string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func newUnauthedClient(server string, cfg *config.Config, timeout time.Duration) *api.Client {
	return api.NewClient(server, "", "", cfg.DeviceID, cfg.DeviceName, timeout)
}
