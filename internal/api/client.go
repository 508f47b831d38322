package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	clientName     = "jellystream"
	clientVersion  = "0.2"
	defaultTimeout = 30 * time.Second
)

// Client is one immutable session against a media server: a base URL, an
// optional bearer token and the device identity sent with every request.
// When the token or base URL changes, callers build a new Client (Rebuild)
// rather than mutating this one, so nothing holds a half-updated session.
type Client struct {
	baseURL    string
	token      string
	userID     string
	deviceID   string
	deviceName string
	http       *http.Client
	log        *slog.Logger

	// Quick-connect pacing; defaults cover real servers, tests shrink them.
	quickConnectInterval time.Duration
	quickConnectWindow   time.Duration

	// onTokenRejected runs when the server rejects the current token, before
	// CurrentUser reports the session as unauthenticated.
	onTokenRejected func()
}

// NewClient builds a session. token and userID may be empty for calls that do
// not need authentication (server validation, public user listing, login).
func NewClient(baseURL, token, userID, deviceID, deviceName string, timeout time.Duration) *Client {
	if deviceName == "" {
		deviceName = clientName
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:              strings.TrimRight(baseURL, "/"),
		token:                token,
		userID:               userID,
		deviceID:             deviceID,
		deviceName:           deviceName,
		http:                 &http.Client{Timeout: timeout},
		log:                  slog.Default(),
		quickConnectInterval: QuickConnectInterval,
		quickConnectWindow:   QuickConnectWindow,
	}
}

// Rebuild returns a fresh session carrying the given credentials. The
// receiver keeps working with its old token until dropped; in-flight requests
// on it simply fail or get ignored.
func (c *Client) Rebuild(token, userID string) *Client {
	next := *c
	next.token = token
	next.userID = userID
	return &next
}

// OnTokenRejected registers the credential-invalidation hook.
func (c *Client) OnTokenRejected(fn func()) {
	c.onTokenRejected = fn
}

func (c *Client) BaseURL() string  { return c.baseURL }
func (c *Client) Token() string    { return c.token }
func (c *Client) UserID() string   { return c.userID }
func (c *Client) DeviceID() string { return c.deviceID }

// do issues one HTTP call and normalizes the outcome: non-2xx becomes a
// *StatusError, 2xx with a JSON body decodes into out when out is non-nil.
// Every dispatcher method, typed or raw, funnels through here.
func (c *Client) do(ctx context.Context, method, pathPart string, params url.Values, body io.Reader, contentType string, out interface{}) error {
	endpoint := c.baseURL + path.Clean("/"+strings.TrimPrefix(pathPart, "/"))
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.applyAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) getJSON(ctx context.Context, pathPart string, params url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, pathPart, params, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, pathPart string, params url.Values, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, pathPart, params, body, "application/json", out)
}

// applyAuthHeader sets the structured MediaBrowser authorization header. The
// Token clause is included only once a token exists.
func (c *Client) applyAuthHeader(req *http.Request) {
	auth := fmt.Sprintf("MediaBrowser Client=%q, Device=%q, DeviceId=%q, Version=%q",
		clientName, c.deviceName, c.deviceID, clientVersion)
	if c.token != "" {
		auth += fmt.Sprintf(", Token=%q", c.token)
	}
	req.Header.Set("Authorization", auth)
}
