package colors

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *ColorCache {
	t.Helper()
	cache, err := NewColorCache(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("NewColorCache failed: %v", err)
	}
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return cache
}

func TestColorIDIsStable(t *testing.T) {
	cache := newTestCache(t)

	first := cache.ColorID("p1", true)
	second := cache.ColorID("p2", true)
	if first == second {
		t.Fatalf("Expected distinct colors, both got %s", first)
	}
	if again := cache.ColorID("p1", false); again != first {
		t.Errorf("Expected p1 to keep %s, got %s", first, again)
	}
	if got := cache.ColorID("", true); got != NoProjectColor {
		t.Errorf("Expected %s for no project, got %s", NoProjectColor, got)
	}
}

func TestColorIDEvictsLeastRecentlyUsed(t *testing.T) {
	cache := newTestCache(t)
	for i := 0; i < slots; i++ {
		cache.ColorID("p"+strconv.Itoa(i), true)
	}
	// p0 is the oldest until touched; touching it leaves p1 as the oldest.
	cache.ColorID("p0", true)
	p1Color := cache.Projects["p1"].ColorID

	got := cache.ColorID("new", true)
	if got != p1Color {
		t.Errorf("Expected new project to take p1's color %s, got %s", p1Color, got)
	}
	if _, ok := cache.Projects["p1"]; ok {
		t.Error("Expected p1 to be evicted")
	}
}

func TestColorCachePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c", FileName)
	cache, err := NewColorCache(path)
	if err != nil {
		t.Fatal(err)
	}
	color := cache.ColorID("p1", true)
	if err := cache.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened, err := NewColorCache(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := reopened.ColorID("p1", false); got != color {
		t.Errorf("Expected persisted color %s, got %s", color, got)
	}
}
