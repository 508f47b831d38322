package api

import (
	"context"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// QuickConnectInterval is how often the pairing-code status is checked.
	QuickConnectInterval = 2 * time.Second
	// QuickConnectWindow bounds the whole pairing flow. The reference client
	// polled forever; a code that has not been approved in three minutes is
	// treated as expired instead.
	QuickConnectWindow = 3 * time.Minute
)

// AuthenticateByName performs a password login. It does not persist anything;
// the caller writes the credential record and rebuilds its session.
func (c *Client) AuthenticateByName(ctx context.Context, username, password string) (*AuthResult, error) {
	payload := map[string]string{
		"Username": username,
		"Pw":       password,
	}
	var out AuthResult
	if err := c.postJSON(ctx, "/Users/AuthenticateByName", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser is the authentication probe. It fetches the session's user and
// maps an auth rejection to (nil, nil) after firing the token-rejected hook,
// so callers can treat nil as "logged out" without catching errors. Transport
// failures still surface as errors since they say nothing about the token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	if c.token == "" || c.userID == "" {
		return nil, nil
	}
	var user User
	err := c.getJSON(ctx, "/Users/"+c.userID, nil, &user)
	if err != nil {
		if IsAuthError(err) {
			if c.onTokenRejected != nil {
				c.onTokenRejected()
			}
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// PublicUsers lists users the server exposes for password-less display on the
// login screen. Works without a token.
func (c *Client) PublicUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/Users/Public", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ValidateServer confirms the base URL points at a media server and returns
// its public info. Works without a token.
func (c *Client) ValidateServer(ctx context.Context) (*SystemInfo, error) {
	var info SystemInfo
	if err := c.getJSON(ctx, "/System/Info/Public", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// QuickConnectInitiate starts a pairing-code login and returns the code to
// show the user plus the secret to poll with.
func (c *Client) QuickConnectInitiate(ctx context.Context) (*QuickConnectState, error) {
	var state QuickConnectState
	if err := c.postJSON(ctx, "/QuickConnect/Initiate", nil, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// QuickConnectWait polls the pairing-code status until a second device
// approves it, the context is cancelled, or the window elapses. On approval
// it exchanges the secret for a token. Polling stops the moment any of those
// happens; no further requests are issued.
func (c *Client) QuickConnectWait(ctx context.Context, secret string) (*AuthResult, error) {
	deadline := time.Now().Add(c.quickConnectWindow)
	limiter := rate.NewLimiter(rate.Every(c.quickConnectInterval), 1)

	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, ErrQuickConnectExpired
		}

		state, err := c.quickConnectStatus(ctx, secret)
		if err != nil {
			return nil, err
		}
		if state.Authenticated {
			return c.quickConnectAuthenticate(ctx, secret)
		}
	}
}

func (c *Client) quickConnectStatus(ctx context.Context, secret string) (*QuickConnectState, error) {
	params := url.Values{}
	params.Set("secret", secret)

	var state QuickConnectState
	if err := c.getJSON(ctx, "/QuickConnect/Connect", params, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) quickConnectAuthenticate(ctx context.Context, secret string) (*AuthResult, error) {
	payload := map[string]string{"Secret": secret}
	var out AuthResult
	if err := c.postJSON(ctx, "/Users/AuthenticateWithQuickConnect", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
