package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsResults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveResult(Result{LevelID: "easy", Won: true, Seconds: 42}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	best, ok, err := store.BestTime("easy")
	if err != nil || !ok || best != 42 {
		t.Errorf("BestTime() = %d, %v, %v; want 42, true, nil", best, ok, err)
	}
}

func TestStoreBestTimes(t *testing.T) {
	store := openTestStore(t)

	results := []Result{
		{LevelID: "easy", Won: true, Seconds: 100},
		{LevelID: "easy", Won: true, Seconds: 50},
		{LevelID: "easy", Won: false, Seconds: 3},
		{LevelID: "easy", Won: true, Seconds: 200, Session: "abc"},
		{LevelID: "expert", Won: true, Seconds: 500},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	times, err := store.BestTimes("easy", 10)
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}

	// Losses are excluded
	if len(times) != 3 {
		t.Fatalf("Expected 3 wins, got %d", len(times))
	}

	// Should be sorted ascending
	want := []int{50, 100, 200}
	for i, w := range want {
		if times[i].Seconds != w {
			t.Errorf("times[%d] = %d, want %d", i, times[i].Seconds, w)
		}
		if !times[i].Won || times[i].LevelID != "easy" {
			t.Errorf("times[%d] = %+v", i, times[i])
		}
	}
	if times[2].Session != "abc" {
		t.Errorf("session = %q, want abc", times[2].Session)
	}

	expert, err := store.BestTimes("expert", 10)
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}
	if len(expert) != 1 {
		t.Errorf("Expected 1 expert win, got %d", len(expert))
	}
}

func TestStoreBestTimesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 5; i > 0; i-- {
		store.SaveResult(Result{LevelID: "test", Won: true, Seconds: i * 10})
	}

	times, err := store.BestTimes("test", 3)
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}

	if len(times) != 3 {
		t.Fatalf("Expected 3 results with limit, got %d", len(times))
	}
	if times[0].Seconds != 10 || times[1].Seconds != 20 || times[2].Seconds != 30 {
		t.Errorf("Times not in expected order: %v", times)
	}
}

func TestStoreBestTime(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.BestTime("easy")
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if ok {
		t.Error("Expected no best time for an unplayed level")
	}

	// A loss alone is not a best time
	store.SaveResult(Result{LevelID: "easy", Won: false, Seconds: 1})
	if _, ok, _ := store.BestTime("easy"); ok {
		t.Error("Expected no best time after only a loss")
	}

	store.SaveResult(Result{LevelID: "easy", Won: true, Seconds: 30})
	store.SaveResult(Result{LevelID: "easy", Won: true, Seconds: 20})

	best, ok, err := store.BestTime("easy")
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if !ok || best != 20 {
		t.Errorf("BestTime() = %d, %v; want 20, true", best, ok)
	}
}

func TestStoreSaveResultValidation(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(Result{Won: true, Seconds: 1}); err == nil {
		t.Error("Expected error for missing level id")
	}

	if _, err := store.SaveResult(Result{LevelID: "easy", Won: true, Seconds: -5}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	best, _, _ := store.BestTime("easy")
	if best != 0 {
		t.Errorf("negative seconds stored as %d, want 0", best)
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{LevelID: "easy", Won: true, Seconds: 10})
	store.SaveResult(Result{LevelID: "easy", Won: false, Seconds: 20})
	store.SaveResult(Result{LevelID: "easy", Won: true, Seconds: 30})

	recent, err := store.RecentResults("easy", 2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(recent))
	}
	if recent[0].Seconds != 30 || recent[1].Seconds != 20 || recent[1].Won {
		t.Errorf("RecentResults() = %+v", recent)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{LevelID: "easy", Won: true, Seconds: 10})
	store.SaveResult(Result{LevelID: "easy", Won: true, Seconds: 20})
	store.SaveResult(Result{LevelID: "expert", Won: true, Seconds: 300})

	// Clear only easy results
	if err := store.ClearResults("easy"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	easy, _ := store.BestTimes("easy", 10)
	if len(easy) != 0 {
		t.Errorf("Expected 0 easy results after clear, got %d", len(easy))
	}

	expert, _ := store.BestTimes("expert", 10)
	if len(expert) != 1 {
		t.Errorf("Expert results should not be affected by clearing easy")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.LevelStats("easy")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if empty.Played != 0 || empty.WinRate() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveResult(Result{LevelID: "easy", Won: true, Seconds: 10})
	store.SaveResult(Result{LevelID: "easy", Won: true, Seconds: 30})
	store.SaveResult(Result{LevelID: "easy", Won: false, Seconds: 5})
	store.SaveResult(Result{LevelID: "easy", Won: false, Seconds: 7})

	stats, err := store.LevelStats("easy")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Played != 4 || stats.Won != 2 {
		t.Errorf("played/won = %d/%d, want 4/2", stats.Played, stats.Won)
	}
	if stats.BestTime != 10 {
		t.Errorf("BestTime = %d, want 10", stats.BestTime)
	}
	if stats.AvgWinTime != 20 {
		t.Errorf("AvgWinTime = %v, want 20", stats.AvgWinTime)
	}
	if stats.WinRate() != 0.5 {
		t.Errorf("WinRate() = %v, want 0.5", stats.WinRate())
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}

func TestStoreAllLevelStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{LevelID: "easy", Won: true, Seconds: 10})
	store.SaveResult(Result{LevelID: "expert", Won: false, Seconds: 60})

	all, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(all))
	}
	if all["easy"].Won != 1 || all["easy"].BestTime != 10 {
		t.Errorf("easy stats = %+v", all["easy"])
	}
	if all["expert"].Won != 0 || all["expert"].BestTime != 0 {
		t.Errorf("expert stats = %+v", all["expert"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if v, err := store.SchemaVersion(); err != nil || v != len(migrations) {
		t.Errorf("SchemaVersion() = %d, %v; want %d", v, err, len(migrations))
	}
	if store.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", store.Path(), dbPath)
	}
	store.Close()

	// Reopening applies nothing twice
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	if v, _ := store.SchemaVersion(); v != len(migrations) {
		t.Errorf("SchemaVersion() after reopen = %d", v)
	}
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"", DefaultPath()},
		{"~/scores.db", filepath.Join(home, "scores.db")},
		{"/tmp/x.db", "/tmp/x.db"},
		{"~other/x.db", "~other/x.db"},
	}

	for _, tc := range tests {
		got, err := resolvePath(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("resolvePath(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}

	if !strings.HasSuffix(DefaultPath(), DefaultFile) {
		t.Errorf("DefaultPath() = %q does not end in %q", DefaultPath(), DefaultFile)
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	const sessions = 8
	var wg sync.WaitGroup
	errs := make(chan error, sessions)
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.SaveResult(Result{
				LevelID: "easy",
				Won:     true,
				Seconds: 10 + i,
				Session: fmt.Sprintf("s%d", i),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	stats, err := store.LevelStats("easy")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Played != sessions || stats.BestTime != 10 {
		t.Errorf("stats = %+v, want %d played, best 10", stats, sessions)
	}
}
