package index

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEventIndexRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	idx, err := NewEventIndex(path)
	if err != nil {
		t.Fatalf("NewEventIndex failed: %v", err)
	}
	idx.Set("1", "evt-a")
	idx.Set("2", "evt-b")
	idx.Remove("2")
	if err := idx.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened, err := NewEventIndex(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if got := reopened.Get("1"); got != "evt-a" {
		t.Errorf("Expected evt-a, got %q", got)
	}
	if got := reopened.Get("2"); got != "" {
		t.Errorf("Expected removed mapping to be gone, got %q", got)
	}
}

func TestEventIndexSaveSkipsCleanIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	idx, err := NewEventIndex(path)
	if err != nil {
		t.Fatal(err)
	}
	idx.Set("1", "evt-a")
	idx.Remove("1")
	idx.Remove("1")

	// dirty from the Set; saving writes an empty mapping
	if err := idx.Save(); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := idx.Save(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected a clean index not to be rewritten, stat err = %v", err)
	}
}
