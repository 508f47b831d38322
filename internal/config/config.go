package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultStoreDirName = ".jellystream"
	configFileName      = "config.json"
)

// Config is the single-slot credential record plus device identity.
// At most one login is stored at a time; a new login overwrites it.
type Config struct {
	Server       string    `json:"server"`
	UserID       string    `json:"user_id"`
	Token        string    `json:"token"`
	DeviceID     string    `json:"device_id"`
	DeviceName   string    `json:"device_name"`
	LastUsername string    `json:"last_username"`
	LastAccessed time.Time `json:"last_accessed,omitzero"`
}

func ResolveStoreDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv("JELLYSTREAM_STORE"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, defaultStoreDirName), nil
}

func Path(storeDir string) string {
	return filepath.Join(storeDir, configFileName)
}

// Load reads the stored record. A missing file yields an empty config.
// A file that fails to parse is treated the same way: logged and ignored,
// never surfaced as an error, so a corrupt record behaves like a logout.
func Load(storeDir string) (*Config, error) {
	path := Path(storeDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		slog.Warn("stored credentials are malformed, treating as absent",
			slog.String("path", path), slog.String("error", err.Error()))
		return &Config{}, nil
	}

	return &cfg, nil
}

func Save(storeDir string, cfg *Config) error {
	if err := os.MkdirAll(storeDir, 0700); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(Path(storeDir), data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Clear drops the credential part of the record. Server and device identity
// survive so the next login reuses them.
func Clear(storeDir string) error {
	cfg, err := Load(storeDir)
	if err != nil {
		return err
	}
	cfg.Token = ""
	cfg.UserID = ""
	cfg.LastAccessed = time.Time{}
	return Save(storeDir, cfg)
}

// SetCredentials records a fresh login and stamps LastAccessed.
func (c *Config) SetCredentials(server, token, userID string) {
	c.Server = server
	c.Token = token
	c.UserID = userID
	c.LastAccessed = time.Now().UTC()
}

// Authenticated reports whether the record is structurally valid: both a
// token and a user id must be present.
func (c *Config) Authenticated() bool {
	return c.Token != "" && c.UserID != ""
}

func ApplyEnv(cfg *Config) {
	if env := os.Getenv("JELLYSTREAM_SERVER"); env != "" {
		cfg.Server = env
	}
	if env := os.Getenv("JELLYSTREAM_TOKEN"); env != "" {
		cfg.Token = env
	}
	if env := os.Getenv("JELLYSTREAM_USER_ID"); env != "" {
		cfg.UserID = env
	}
}

func (c *Config) ValidateAuth() error {
	if c.Server == "" {
		return fmt.Errorf("server not set. Run 'jellystream login' or set JELLYSTREAM_SERVER")
	}
	if !c.Authenticated() {
		return fmt.Errorf("not authenticated. Run 'jellystream login'")
	}
	return nil
}

// NormalizeServerURL turns whatever the user pasted (often a copied browser
// address including the /web app path) into a bare server base URL without a
// trailing slash.
func NormalizeServerURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return strings.TrimRight(raw, "/")
	}
	if parsed.Scheme == "" && parsed.Host == "" && parsed.Path != "" {
		parsed, err = url.Parse("https://" + raw)
		if err != nil {
			return strings.TrimRight(raw, "/")
		}
	}

	parsed.Fragment = ""
	parsed.RawQuery = ""

	if idx := strings.Index(parsed.Path, "/web"); idx >= 0 {
		parsed.Path = parsed.Path[:idx]
	}

	return strings.TrimRight(parsed.String(), "/")
}
