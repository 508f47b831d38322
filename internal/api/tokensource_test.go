package api

import (
	"testing"

	"github.com/fbeckert/jellystream/internal/config"
)

func TestStoreTokenSource(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{DeviceID: "dev-1"}
	cfg.SetCredentials("https://demo.example.org", "tok", "uid")
	if err := config.Save(dir, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	src := StoreTokenSource{Dir: dir}
	server, token, userID, ok := src.Credentials()
	if !ok || server != "https://demo.example.org" || token != "tok" || userID != "uid" {
		t.Fatalf("unexpected credentials: %s %s %s %v", server, token, userID, ok)
	}

	src.Invalidate()

	if _, _, _, ok := src.Credentials(); ok {
		t.Fatal("credentials should be gone after Invalidate")
	}
}

func TestStoreTokenSourceEmpty(t *testing.T) {
	src := StoreTokenSource{Dir: t.TempDir()}
	if _, _, _, ok := src.Credentials(); ok {
		t.Fatal("empty store should report no credentials")
	}
}
