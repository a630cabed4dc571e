package storage

import (
	"os"
	"path/filepath"
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("blockbreaker", "r1", 40); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("blockbreaker")
	if err != nil || high != 40 {
		t.Errorf("HighScore after reopen: got %d, %v", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for i, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("blockbreaker", string(rune('a'+i)), score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("blockbreaker_endless", "z", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("blockbreaker", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].RoundID != "c" {
		t.Errorf("Expected round id c for top score, got %q", scores[0].RoundID)
	}

	endless, err := store.TopScores("blockbreaker_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreNegativeScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blockbreaker", "a", -30)
	store.SaveScore("blockbreaker", "b", -10)

	high, err := store.HighScore("blockbreaker")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != -10 {
		t.Errorf("Expected high score of -10, got %d", high)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", "", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blockbreaker")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("blockbreaker", "", 100)
	store.SaveScore("blockbreaker", "", 300)
	store.SaveScore("blockbreaker", "", 200)

	high, err = store.HighScore("blockbreaker")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreScoreByRound(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blockbreaker", "round-1", 12)

	e, err := store.ScoreByRound("round-1")
	if err != nil {
		t.Fatalf("ScoreByRound() failed: %v", err)
	}
	if e == nil || e.Score != 12 || e.GameID != "blockbreaker" {
		t.Errorf("unexpected entry: %+v", e)
	}

	missing, err := store.ScoreByRound("nope")
	if err != nil {
		t.Fatalf("ScoreByRound() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown round, got %+v", missing)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blockbreaker", "", 100)
	store.SaveScore("blockbreaker", "", 200)
	store.SaveScore("blockbreaker_endless", "", 300)

	if err := store.ClearScores("blockbreaker"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	timed, _ := store.TopScores("blockbreaker", 10)
	if len(timed) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(timed))
	}

	endless, _ := store.TopScores("blockbreaker_endless", 10)
	if len(endless) != 1 {
		t.Errorf("Endless scores should not be affected by clearing blockbreaker")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("blockbreaker")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveScore("blockbreaker", "", 10)
	store.SaveScore("blockbreaker", "", 30)
	store.SaveScore("blockbreaker_endless", "", 99)

	stats, err := store.GetGameStats("blockbreaker")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 || stats.AvgScore != 20 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["blockbreaker_endless"].HighScore != 99 {
		t.Errorf("unexpected all-games stats: %+v", all)
	}
}

func TestStoreSubmissions(t *testing.T) {
	store := openTestStore(t)

	subs, err := store.Submissions()
	if err != nil {
		t.Fatalf("Submissions() failed: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("Expected no submissions, got %d", len(subs))
	}

	first, err := store.SubmitScore(42)
	if err != nil {
		t.Fatalf("SubmitScore() failed: %v", err)
	}
	second, err := store.SubmitScore(-5)
	if err != nil {
		t.Fatalf("SubmitScore() failed: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("Expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}

	subs, err = store.Submissions()
	if err != nil {
		t.Fatalf("Submissions() failed: %v", err)
	}
	if len(subs) != 2 || subs[0].Score != 42 || subs[1].Score != -5 {
		t.Errorf("unexpected submissions: %+v", subs)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
