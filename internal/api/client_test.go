package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	c := NewClient(ts.URL, "tok-1", "user-1", "dev-1", "test-device", 5*time.Second)
	return c, ts
}

func TestAuthHeader(t *testing.T) {
	t.Parallel()
	var header string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))

	if _, err := c.ValidateServer(context.Background()); err != nil {
		t.Fatalf("ValidateServer: %v", err)
	}

	for _, want := range []string{
		`MediaBrowser Client="jellystream"`,
		`Device="test-device"`,
		`DeviceId="dev-1"`,
		`Token="tok-1"`,
	} {
		if !strings.Contains(header, want) {
			t.Errorf("auth header missing %s, got %s", want, header)
		}
	}
}

func TestAuthHeaderOmitsEmptyToken(t *testing.T) {
	t.Parallel()
	var header string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "", "", "dev-1", "", 0)
	if _, err := c.ValidateServer(context.Background()); err != nil {
		t.Fatalf("ValidateServer: %v", err)
	}
	if strings.Contains(header, "Token=") {
		t.Errorf("unauthenticated header should carry no token clause, got %s", header)
	}
}

func TestAuthenticateByName(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Users/AuthenticateByName" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["Username"] != "alice" || body["Pw"] != "hunter2" {
			t.Errorf("unexpected payload %v", body)
		}
		_ = json.NewEncoder(w).Encode(AuthResult{
			AccessToken: "fresh-token",
			User:        User{ID: "u-9", Name: "alice"},
		})
	}))

	got, err := c.AuthenticateByName(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("AuthenticateByName: %v", err)
	}
	want := &AuthResult{AccessToken: "fresh-token", User: User{ID: "u-9", Name: "alice"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("auth result mismatch (-want +got):\n%s", diff)
	}
}

func TestAuthenticateByNameRejected(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Invalid user or password"))
	}))

	_, err := c.AuthenticateByName(context.Background(), "alice", "wrong")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != http.StatusUnauthorized || !strings.Contains(se.Message, "Invalid user") {
		t.Errorf("unexpected status error: %+v", se)
	}
}

func TestCurrentUserClearsOnAuthFailure(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	var invalidated atomic.Bool
	c.OnTokenRejected(func() { invalidated.Store(true) })

	user, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser as auth probe must not error, got %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user on rejected token, got %+v", user)
	}
	if !invalidated.Load() {
		t.Error("token-rejected hook did not fire")
	}
}

func TestCurrentUserWithoutCredentials(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without credentials")
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "", "", "dev-1", "", 0)
	user, err := c.CurrentUser(context.Background())
	if err != nil || user != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", user, err)
	}
}

func TestCurrentUserTransportErrorSurfaces(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	if _, err := c.CurrentUser(context.Background()); err == nil {
		t.Fatal("a 500 is not an auth verdict and must surface as an error")
	}
}

func TestSetFavoriteMethods(t *testing.T) {
	t.Parallel()
	var gotMethod, gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := c.SetFavorite(context.Background(), "item-1", true); err != nil {
		t.Fatalf("SetFavorite(true): %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/Users/user-1/FavoriteItems/item-1" {
		t.Errorf("favorite on: %s %s", gotMethod, gotPath)
	}

	if err := c.SetFavorite(context.Background(), "item-1", false); err != nil {
		t.Fatalf("SetFavorite(false): %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("favorite off should DELETE, got %s", gotMethod)
	}
}

func TestMutationFailureCarriesStatus(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("busy"))
	}))

	err := c.SetPlayed(context.Background(), "item-1", true)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != http.StatusConflict || se.Message != "busy" {
		t.Errorf("unexpected status error: %+v", se)
	}
}

func TestItemsQueryParams(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("SearchTerm") != "dune" || q.Get("IncludeItemTypes") != "Movie,Series" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("Recursive") != "true" || q.Get("Limit") != "5" || q.Get("UserId") != "user-1" {
			t.Errorf("unexpected query %v", q)
		}
		_ = json.NewEncoder(w).Encode(ItemsResponse{Items: []Item{{ID: "m1", Name: "Dune"}}})
	}))

	items, err := c.Search(context.Background(), "dune", []string{"Movie", "Series"}, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 1 || items[0].ID != "m1" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestReportPlaybackProgressSwallowsErrors(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	// Must not panic or surface anything; losing one heartbeat is fine.
	c.ReportPlaybackProgress(context.Background(), PlaybackReport{ItemID: "item-1", PositionTicks: 42})
}

func TestRebuildLeavesOriginalUntouched(t *testing.T) {
	t.Parallel()
	orig := NewClient("https://example.org", "old-token", "old-user", "dev-1", "", 0)
	next := orig.Rebuild("new-token", "new-user")

	if orig.Token() != "old-token" || orig.UserID() != "old-user" {
		t.Errorf("original session mutated: %s/%s", orig.Token(), orig.UserID())
	}
	if next.Token() != "new-token" || next.UserID() != "new-user" {
		t.Errorf("rebuilt session wrong: %s/%s", next.Token(), next.UserID())
	}
	if next.BaseURL() != orig.BaseURL() || next.DeviceID() != orig.DeviceID() {
		t.Error("rebuild should keep base URL and device identity")
	}
}
