package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestQuickConnectAuthorizedStopsPolling(t *testing.T) {
	t.Parallel()
	var statusCalls, authCalls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/QuickConnect/Connect":
			statusCalls.Add(1)
			_ = json.NewEncoder(w).Encode(QuickConnectState{Secret: "s3cret", Authenticated: true})
		case "/Users/AuthenticateWithQuickConnect":
			authCalls.Add(1)
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["Secret"] != "s3cret" {
				t.Errorf("unexpected secret %q", body["Secret"])
			}
			_ = json.NewEncoder(w).Encode(AuthResult{AccessToken: "qc-token", User: User{ID: "u-1"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	res, err := c.QuickConnectWait(context.Background(), "s3cret")
	if err != nil {
		t.Fatalf("QuickConnectWait: %v", err)
	}
	if res.AccessToken != "qc-token" {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := statusCalls.Load(); got != 1 {
		t.Errorf("expected a single status check, got %d", got)
	}
	if got := authCalls.Load(); got != 1 {
		t.Errorf("expected a single token exchange, got %d", got)
	}
}

func TestQuickConnectCancelStopsPolling(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(QuickConnectState{Secret: "s3cret", Authenticated: false})
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.QuickConnectWait(ctx, "s3cret")
		done <- err
	}()

	// Let the first (unauthenticated) poll happen, then cancel while the
	// limiter is waiting out the interval.
	waitFor(t, func() bool { return calls.Load() >= 1 })
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("QuickConnectWait did not stop after cancellation")
	}

	before := calls.Load()
	time.Sleep(50 * time.Millisecond)
	if after := calls.Load(); after != before {
		t.Fatalf("polling continued after cancel: %d -> %d", before, after)
	}
}

func TestQuickConnectExpiresUnapproved(t *testing.T) {
	t.Parallel()
	var statusCalls, authCalls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/QuickConnect/Connect":
			statusCalls.Add(1)
			_ = json.NewEncoder(w).Encode(QuickConnectState{Secret: "s3cret", Authenticated: false})
		case "/Users/AuthenticateWithQuickConnect":
			authCalls.Add(1)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	c.quickConnectInterval = 5 * time.Millisecond
	c.quickConnectWindow = 25 * time.Millisecond

	_, err := c.QuickConnectWait(context.Background(), "s3cret")
	if !errors.Is(err, ErrQuickConnectExpired) {
		t.Fatalf("expected ErrQuickConnectExpired, got %v", err)
	}
	if authCalls.Load() != 0 {
		t.Error("an expired code must never be exchanged for a token")
	}

	before := statusCalls.Load()
	time.Sleep(50 * time.Millisecond)
	if after := statusCalls.Load(); after != before {
		t.Fatalf("polling continued after expiry: %d -> %d", before, after)
	}
}

func TestQuickConnectInitiate(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/QuickConnect/Initiate" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(QuickConnectState{Code: "123456", Secret: "s3cret"})
	}))

	state, err := c.QuickConnectInitiate(context.Background())
	if err != nil {
		t.Fatalf("QuickConnectInitiate: %v", err)
	}
	if state.Code != "123456" || state.Secret != "s3cret" {
		t.Fatalf("unexpected state %+v", state)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
