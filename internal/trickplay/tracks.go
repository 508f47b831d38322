package trickplay

import (
	"fmt"
	"os"
	"sync"
)

// Tracks manages the synthesized VTT files handed to the player. One file
// exists per item at a time; writing a new track for an item removes the old
// file first, the same way a browser client revokes a stale object URL before
// minting the next one.
type Tracks struct {
	dir string

	mu    sync.Mutex
	paths map[string]string
}

func NewTracks(dir string) *Tracks {
	return &Tracks{dir: dir, paths: make(map[string]string)}
}

// Write stores the VTT text for an item and returns the file path the player
// can reference as its thumbnail track.
func (t *Tracks) Write(itemID, vtt string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.paths[itemID]; ok {
		_ = os.Remove(prev)
		delete(t.paths, itemID)
	}

	if err := os.MkdirAll(t.dir, 0700); err != nil {
		return "", fmt.Errorf("create track dir: %w", err)
	}

	f, err := os.CreateTemp(t.dir, "trickplay-"+itemID+"-*.vtt")
	if err != nil {
		return "", fmt.Errorf("create track file: %w", err)
	}
	if _, err := f.WriteString(vtt); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write track file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close track file: %w", err)
	}

	t.paths[itemID] = f.Name()
	return f.Name(), nil
}

// Release removes the track file for an item, if any.
func (t *Tracks) Release(itemID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.paths[itemID]; ok {
		_ = os.Remove(prev)
		delete(t.paths, itemID)
	}
}

// ReleaseAll removes every managed track file.
func (t *Tracks) ReleaseAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, p := range t.paths {
		_ = os.Remove(p)
		delete(t.paths, id)
	}
}

// Path returns the current track file for an item, if one exists.
func (t *Tracks) Path(itemID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.paths[itemID]
	return p, ok
}
