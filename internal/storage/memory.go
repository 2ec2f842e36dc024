package storage

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps runs and the best score in memory. It is used for
// ephemeral sessions and tests. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	runs   []Run
	best   int
	nextID int64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) LoadBestScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

// SaveBestScore raises the best score; lower scores are ignored.
func (m *MemoryStore) SaveBestScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = max(m.best, score)
	return nil
}

func (m *MemoryStore) SaveRun(run Run) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	run.ID = m.nextID
	run.Difficulty = orDefault(run.Difficulty, "normal")
	run.Player = orDefault(run.Player, "local")
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	m.runs = append(m.runs, run)
	return run.ID, nil
}

// TopRuns returns the best N runs, ties broken by insertion order.
func (m *MemoryStore) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	runs, _ := m.AllRuns()
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *MemoryStore) AllRuns() ([]Run, error) {
	m.mu.Lock()
	runs := slices.Clone(m.runs)
	m.mu.Unlock()

	slices.SortStableFunc(runs, func(a, b Run) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return runs, nil
}

func (m *MemoryStore) HighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	high := 0
	for _, r := range m.runs {
		high = max(high, r.Score)
	}
	return high, nil
}

func (m *MemoryStore) ClearRuns() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = nil
	m.best = 0
	return nil
}

func (m *MemoryStore) Stats() (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &Stats{Runs: len(m.runs)}
	for _, r := range m.runs {
		stats.HighScore = max(stats.HighScore, r.Score)
		stats.TotalScore += int64(r.Score)
		if r.CreatedAt.After(stats.LastPlayed) {
			stats.LastPlayed = r.CreatedAt
		}
	}
	if stats.Runs > 0 {
		stats.AvgScore = float64(stats.TotalScore) / float64(stats.Runs)
	}
	return stats, nil
}
