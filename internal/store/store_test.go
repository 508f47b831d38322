package store

import (
	"path/filepath"
	"testing"
)

func TestSessionLifecycle(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	if err := st.RecordStart("item-1", "Test Movie", "ps-1", 1000); err != nil {
		t.Fatalf("RecordStart: %v", err)
	}
	if err := st.RecordProgress("ps-1", 400); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	if err := st.RecordStop("ps-1", 450); err != nil {
		t.Fatalf("RecordStop: %v", err)
	}

	sessions, err := st.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.State != StateStopped {
		t.Errorf("state = %s, want %s (45%% watched is not done)", got.State, StateStopped)
	}
	if got.PositionTicks != 450 {
		t.Errorf("position = %d, want 450", got.PositionTicks)
	}
}

func TestStopPastThresholdIsDone(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	if err := st.RecordStart("item-1", "Test Movie", "ps-1", 1000); err != nil {
		t.Fatalf("RecordStart: %v", err)
	}
	if err := st.RecordStop("ps-1", 950); err != nil {
		t.Fatalf("RecordStop: %v", err)
	}

	sessions, err := st.ListRecent(1)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if sessions[0].State != StateDone {
		t.Fatalf("state = %s, want %s", sessions[0].State, StateDone)
	}
}

func TestContinueWatching(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	// Finished item: excluded.
	if err := st.RecordStart("done-item", "Finished", "ps-done", 1000); err != nil {
		t.Fatal(err)
	}
	if err := st.RecordStop("ps-done", 990); err != nil {
		t.Fatal(err)
	}

	// Abandoned halfway: included.
	if err := st.RecordStart("half-item", "Halfway", "ps-half", 1000); err != nil {
		t.Fatal(err)
	}
	if err := st.RecordStop("ps-half", 500); err != nil {
		t.Fatal(err)
	}

	// Started but never progressed: excluded (no resume point).
	if err := st.RecordStart("fresh-item", "Fresh", "ps-fresh", 1000); err != nil {
		t.Fatal(err)
	}

	// Same item watched twice; only the newest session counts.
	if err := st.RecordStart("half-item", "Halfway", "ps-half-2", 1000); err != nil {
		t.Fatal(err)
	}
	if err := st.RecordStop("ps-half-2", 700); err != nil {
		t.Fatal(err)
	}

	sessions, err := st.ContinueWatching(10)
	if err != nil {
		t.Fatalf("ContinueWatching: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 resumable session, got %d: %+v", len(sessions), sessions)
	}
	if sessions[0].PlaySessionID != "ps-half-2" || sessions[0].PositionTicks != 700 {
		t.Fatalf("unexpected session %+v", sessions[0])
	}
}

func TestDBPath(t *testing.T) {
	got := DBPath("/tmp/jellystream-test")
	want := filepath.Join("/tmp/jellystream-test", "history.db")
	if got != want {
		t.Fatalf("DBPath = %s, want %s", got, want)
	}
}
