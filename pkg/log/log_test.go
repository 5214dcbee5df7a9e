package log

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGetLastNLogsBeforeInit(t *testing.T) {
	if _, err := GetLastNLogs(5); err != ErrNotInitialized {
		t.Errorf("GetLastNLogs before Init = %v, want ErrNotInitialized", err)
	}
}

func TestInitWriteAndQueryBack(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "logs.db")
	if err := Init(dbPath); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Close()

	Printf("first entry %d", 1)
	Printf("second entry %d", 2)
	Info().Str("component", "test").Msg("third entry")

	logs, err := GetLastNLogs(2)
	if err != nil {
		t.Fatalf("GetLastNLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d entries, want 2", len(logs))
	}
	// Oldest first within the window.
	if !strings.Contains(logs[0].LogData, "second entry 2") {
		t.Errorf("entry 0 = %q, want the second message", logs[0].LogData)
	}
	if !strings.Contains(logs[1].LogData, "third entry") {
		t.Errorf("entry 1 = %q, want the third message", logs[1].LogData)
	}
	if logs[0].ID >= logs[1].ID {
		t.Errorf("ids out of order: %d then %d", logs[0].ID, logs[1].ID)
	}
}

func TestInitTwiceFails(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "logs.db")
	if err := Init(dbPath); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Close()
	if err := Init(dbPath); err == nil {
		t.Error("second Init must fail while the first sink is open")
	}
}

func TestCloseWithoutInit(t *testing.T) {
	if err := Close(); err != nil {
		t.Errorf("Close without Init = %v, want nil", err)
	}
}
