package api

import (
	"os"

	"github.com/fbeckert/jellystream/internal/config"
)

// TokenSource is where a session's credentials come from. It is chosen once
// at startup: either the environment provides them (deployments where an
// outer system owns the login) or this client manages its own stored record.
type TokenSource interface {
	// Credentials returns the current server, token and user id. ok is false
	// when no structurally valid credentials exist.
	Credentials() (server, token, userID string, ok bool)
	// Invalidate is called when the server rejects the token. Self-managed
	// sources clear their stored record; host-provided sources cannot.
	Invalidate()
}

// EnvTokenSource reads credentials from the environment and never stores or
// clears anything.
type EnvTokenSource struct{}

var _ TokenSource = EnvTokenSource{}

func (EnvTokenSource) Credentials() (string, string, string, bool) {
	server := os.Getenv("JELLYSTREAM_SERVER")
	token := os.Getenv("JELLYSTREAM_TOKEN")
	userID := os.Getenv("JELLYSTREAM_USER_ID")
	return server, token, userID, token != "" && userID != ""
}

func (EnvTokenSource) Invalidate() {}

// StoreTokenSource is backed by the on-disk credential record.
type StoreTokenSource struct {
	Dir string
}

var _ TokenSource = StoreTokenSource{}

func (s StoreTokenSource) Credentials() (string, string, string, bool) {
	cfg, err := config.Load(s.Dir)
	if err != nil {
		return "", "", "", false
	}
	return cfg.Server, cfg.Token, cfg.UserID, cfg.Authenticated()
}

func (s StoreTokenSource) Invalidate() {
	// An invalid token behaves like a logout; errors clearing the file leave
	// the next probe to try again.
	_ = config.Clear(s.Dir)
}
