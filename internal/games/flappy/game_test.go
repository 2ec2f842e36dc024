package flappy

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/flappy-ball/internal/config"
	"github.com/vovakirdan/flappy-ball/internal/core"
)

type fakeStore struct {
	best    int
	loadErr error
	saveErr error
	saves   []int
}

func (s *fakeStore) LoadBestScore() (int, error) {
	return s.best, s.loadErr
}

func (s *fakeStore) SaveBestScore(score int) error {
	s.saves = append(s.saves, score)
	if s.saveErr != nil {
		return s.saveErr
	}
	s.best = score
	return nil
}

type fakeAudio struct {
	starts, stops int
}

func (a *fakeAudio) StartMusic() { a.starts++ }
func (a *fakeAudio) StopMusic()  { a.stops++ }

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(42)))}, opts...)
	g, err := New(config.DefaultFlappyConfig(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

// runUntilOver ticks until the run ends and returns the number of ticks.
func runUntilOver(t *testing.T, g *Game, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		res := g.Tick()
		if res.State.GameOver() {
			return i
		}
	}
	t.Fatalf("run did not end within %d ticks", limit)
	return 0
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Pipes.GapHeight = 0

	_, err := New(cfg)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestGameInitialState(t *testing.T) {
	g := newTestGame(t)
	s := g.Snapshot()

	if s.Phase != core.PhaseNotStarted {
		t.Errorf("Phase = %v, want NotStarted", s.Phase)
	}
	if s.Run.Running || s.Run.Over {
		t.Errorf("Run = %+v, want neither running nor over", s.Run)
	}
	if s.Bird.Y != 250 || s.Bird.Velocity != 0 {
		t.Errorf("Bird = %+v, want {250 0}", s.Bird)
	}
	if len(s.Pipes) != 0 {
		t.Errorf("len(Pipes) = %d, want 0", len(s.Pipes))
	}
}

func TestGameIgnoresInputBeforeStart(t *testing.T) {
	g := newTestGame(t)

	if g.RequestJump() {
		t.Error("RequestJump should be ignored before start")
	}
	if g.Restart() {
		t.Error("Restart should be ignored before start")
	}
	if g.TogglePause() {
		t.Error("TogglePause should be ignored before start")
	}

	res := g.Tick()
	if len(res.Events) != 0 {
		t.Errorf("Tick before start emitted %v", res.Events)
	}
	if s := g.Snapshot(); s.Run.Score != 0 || s.Bird.Y != 250 || len(s.Pipes) != 0 {
		t.Errorf("Tick before start changed state: %+v", s)
	}
}

func TestGameStartOnlyOnce(t *testing.T) {
	g := newTestGame(t)

	if !g.Start() {
		t.Fatal("first Start should apply")
	}
	if g.Start() {
		t.Error("second Start should be ignored while running")
	}
	if g.Restart() {
		t.Error("Restart should be ignored while running")
	}
}

func TestGameScoreCountsTicks(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	for i := 1; i <= 10; i++ {
		res := g.Tick()
		if res.State.Score != i {
			t.Fatalf("after tick %d score = %d", i, res.State.Score)
		}
	}
}

func TestGameFallsToFloor(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	// y_k = 250 + 0.25*k*(k-1) first exceeds the floor (465) at k = 30.
	ticks := runUntilOver(t, g, 1000)
	if ticks != 30 {
		t.Errorf("run ended after %d ticks, want 30", ticks)
	}

	s := g.Snapshot()
	if !s.Run.Over || s.Phase != core.PhaseOver {
		t.Errorf("Run = %+v, want over", s.Run)
	}
	if s.Run.Score != ticks {
		t.Errorf("score = %d, want %d", s.Run.Score, ticks)
	}
	if s.Bird.Y != 465 {
		t.Errorf("Bird.Y = %g, want clamped to 465", s.Bird.Y)
	}
}

func TestGameFloorEmitsEvents(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	var last core.StepResult
	for !last.State.GameOver() {
		last = g.Tick()
	}
	for _, e := range []core.Event{core.EventFloorHit, core.EventGameOver, core.EventNewBest} {
		if !last.Has(e) {
			t.Errorf("final tick missing event %v, got %v", e, last.Events)
		}
	}
	if last.Has(core.EventPipeHit) {
		t.Error("floor death should not report a pipe hit")
	}
}

func TestGameFirstTickSpawnsPipe(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	res := g.Tick()
	if !res.Has(core.EventPipeSpawned) {
		t.Error("first tick should spawn a pipe")
	}

	pipes := g.Snapshot().Pipes
	if len(pipes) != 1 {
		t.Fatalf("len(Pipes) = %d, want 1", len(pipes))
	}
	if pipes[0].X != 800 {
		t.Errorf("pipe X = %g, want 800", pipes[0].X)
	}
	if pipes[0].GapTop < 50 || pipes[0].GapTop > 300 {
		t.Errorf("pipe GapTop = %g, want within [50, 300]", pipes[0].GapTop)
	}
}

func TestGameJumpPhysics(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	if !g.RequestJump() {
		t.Fatal("RequestJump should apply while running")
	}
	if !g.Snapshot().JumpQueued {
		t.Error("jump should be queued until the next tick")
	}

	g.Tick()
	s := g.Snapshot()
	if s.Bird.Velocity != -5 {
		t.Errorf("Velocity after jump = %g, want -5", s.Bird.Velocity)
	}
	if s.JumpQueued {
		t.Error("jump should be consumed by the tick")
	}

	g.Tick()
	if y := g.Snapshot().Bird.Y; y != 245 {
		t.Errorf("Bird.Y after rising tick = %g, want 245", y)
	}
}

func TestGameJumpIsIdempotentWithinTick(t *testing.T) {
	once := newTestGame(t)
	twice := newTestGame(t)
	once.Start()
	twice.Start()

	once.RequestJump()
	twice.RequestJump()
	twice.RequestJump()

	for range 5 {
		once.Tick()
		twice.Tick()
	}
	if a, b := once.Snapshot().Bird, twice.Snapshot().Bird; a != b {
		t.Errorf("double jump request diverged: once=%+v twice=%+v", a, b)
	}
}

func TestGameCeilingClamps(t *testing.T) {
	g := newTestGame(t)
	g.Start()

	for range 200 {
		g.RequestJump()
		res := g.Tick()
		if res.Has(core.EventFloorHit) {
			t.Fatal("jumping every tick should never hit the floor")
		}
		if res.State.GameOver() {
			break // A pipe eventually gets in the way
		}
		if y := g.Snapshot().Bird.Y; y < 0 {
			t.Fatalf("Bird.Y = %g, want >= 0", y)
		}
	}
}

func TestGameIgnoresInputAfterOver(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	runUntilOver(t, g, 1000)

	before := g.Snapshot()
	if g.RequestJump() {
		t.Error("RequestJump should be ignored after game over")
	}
	if g.Start() {
		t.Error("Start should be ignored after game over")
	}
	res := g.Tick()
	if len(res.Events) != 0 {
		t.Errorf("Tick after game over emitted %v", res.Events)
	}
	after := g.Snapshot()
	if after.Run != before.Run || after.Bird != before.Bird {
		t.Errorf("state changed after game over: before=%+v after=%+v", before, after)
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	runUntilOver(t, g, 1000)

	if !g.Restart() {
		t.Fatal("Restart should apply after game over")
	}
	s := g.Snapshot()
	if s.Phase != core.PhaseRunning {
		t.Errorf("Phase = %v, want Running", s.Phase)
	}
	if s.Run.Score != 0 {
		t.Errorf("score = %d, want 0", s.Run.Score)
	}
	if s.Run.BestScore != 30 {
		t.Errorf("best = %d, want 30 kept across restart", s.Run.BestScore)
	}
	if s.Bird != (Bird{Y: 250}) {
		t.Errorf("Bird = %+v, want reset", s.Bird)
	}
	if len(s.Pipes) != 0 {
		t.Errorf("len(Pipes) = %d, want 0", len(s.Pipes))
	}
	if s.Difficulty != g.difficulty.Baseline() {
		t.Errorf("Difficulty = %+v, want baseline", s.Difficulty)
	}
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce identical runs
	play := func() Snapshot {
		g := newTestGame(t)
		g.Start()
		for i := range 200 {
			if i%15 == 0 {
				g.RequestJump()
			}
			if g.Tick().State.GameOver() {
				break
			}
		}
		return g.Snapshot()
	}

	s1, s2 := play(), play()
	if s1.Run != s2.Run || s1.Bird != s2.Bird {
		t.Errorf("runs diverged: %+v vs %+v", s1.Run, s2.Run)
	}
	if len(s1.Pipes) != len(s2.Pipes) {
		t.Fatalf("pipe counts differ: %d vs %d", len(s1.Pipes), len(s2.Pipes))
	}
	for i := range s1.Pipes {
		if s1.Pipes[i] != s2.Pipes[i] {
			t.Errorf("pipe %d differs: %+v vs %+v", i, s1.Pipes[i], s2.Pipes[i])
		}
	}
}

func TestGameDifficultyMilestones(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	base := g.Snapshot().Difficulty

	g.score = 99
	res := g.Tick()
	if !res.Has(core.EventMilestone) {
		t.Fatal("crossing 100 should report a milestone")
	}
	first := g.Snapshot().Difficulty
	if first != g.difficulty.Params(100) {
		t.Errorf("Difficulty = %+v, want %+v", first, g.difficulty.Params(100))
	}
	if first.ScrollSpeed <= base.ScrollSpeed || first.Gravity <= base.Gravity || first.JumpImpulse >= base.JumpImpulse {
		t.Errorf("milestone did not raise difficulty: %+v -> %+v", base, first)
	}

	res = g.Tick()
	if res.Has(core.EventMilestone) {
		t.Error("score 101 is not a milestone")
	}
	if got := g.Snapshot().Difficulty; got != first {
		t.Errorf("difficulty changed between milestones: %+v -> %+v", first, got)
	}

	g.score = 199
	res = g.Tick()
	if !res.Has(core.EventMilestone) {
		t.Fatal("crossing 200 should report a milestone")
	}
	second := g.Snapshot().Difficulty
	if second.ScrollSpeed <= first.ScrollSpeed {
		t.Errorf("second milestone should be cumulative: %g -> %g", first.ScrollSpeed, second.ScrollSpeed)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	g.Tick()

	if !g.TogglePause() {
		t.Fatal("TogglePause should apply while running")
	}
	before := g.Snapshot()
	if g.RequestJump() {
		t.Error("RequestJump should be ignored while paused")
	}
	for range 10 {
		g.Tick()
	}
	after := g.Snapshot()
	if after.Run.Score != before.Run.Score || after.Bird != before.Bird {
		t.Errorf("paused game advanced: %+v -> %+v", before, after)
	}
	if !after.Run.Paused {
		t.Error("snapshot should report paused")
	}

	g.TogglePause()
	g.Tick()
	if got := g.Snapshot().Run.Score; got != before.Run.Score+1 {
		t.Errorf("score after resume = %d, want %d", got, before.Run.Score+1)
	}
}

func TestGameApply(t *testing.T) {
	g := newTestGame(t)

	tests := []struct {
		action core.Action
		want   bool
	}{
		{core.ActionJump, false},
		{core.ActionStart, true},
		{core.ActionJump, true},
		{core.ActionPause, true},
		{core.ActionPause, true},
		{core.ActionRestart, false},
		{core.ActionQuit, false},
		{core.ActionNone, false},
	}
	for _, tt := range tests {
		if got := g.Apply(tt.action); got != tt.want {
			t.Errorf("Apply(%v) = %v, want %v", tt.action, got, tt.want)
		}
	}
}

func TestGameSnapshotIsCopy(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	g.Tick()

	s := g.Snapshot()
	s.Pipes[0].X = -1000
	s.Bird.Y = 0

	fresh := g.Snapshot()
	if fresh.Pipes[0].X == -1000 || fresh.Bird.Y == 0 {
		t.Error("mutating a snapshot changed the game")
	}
}

func TestBestScoreLoadedAndSavedOnce(t *testing.T) {
	store := &fakeStore{best: 10}
	g := newTestGame(t, WithStore(store))

	if got := g.State().BestScore; got != 10 {
		t.Fatalf("best = %d, want 10 loaded from store", got)
	}

	g.Start()
	runUntilOver(t, g, 1000)
	if got := g.State().BestScore; got != 30 {
		t.Errorf("best = %d, want 30", got)
	}
	if len(store.saves) != 1 || store.saves[0] != 30 {
		t.Errorf("saves = %v, want [30]", store.saves)
	}

	// Equal score is not a new best
	g.Restart()
	res := g.Tick()
	for !res.State.GameOver() {
		res = g.Tick()
	}
	if res.Has(core.EventNewBest) {
		t.Error("tying the best score should not report a new best")
	}
	if len(store.saves) != 1 {
		t.Errorf("saves = %v, want a single save", store.saves)
	}
}

func TestBestScoreNotLowered(t *testing.T) {
	store := &fakeStore{best: 50}
	g := newTestGame(t, WithStore(store))
	g.Start()
	runUntilOver(t, g, 1000)

	if got := g.State().BestScore; got != 50 {
		t.Errorf("best = %d, want 50", got)
	}
	if len(store.saves) != 0 {
		t.Errorf("saves = %v, want none", store.saves)
	}
}

func TestBestScoreSharedStore(t *testing.T) {
	store := &fakeStore{best: 20}
	a := newTestGame(t, WithStore(store))
	b := newTestGame(t, WithStore(store))
	a.Start()
	b.Start()

	// b outlives an idle run thanks to one jump
	b.RequestJump()
	runUntilOver(t, b, 1000)
	high := b.State().Score
	if high <= 30 || store.best != high {
		t.Fatalf("b scored %d, store best %d; want above 30 and saved", high, store.best)
	}

	// a still holds the best it loaded, but must not report or save a lower one
	res := a.Tick()
	for !res.State.GameOver() {
		res = a.Tick()
	}
	if res.Has(core.EventNewBest) {
		t.Error("a reported a new best below the shared one")
	}
	if store.best != high || len(store.saves) != 1 {
		t.Errorf("store best = %d, saves = %v; want %d saved once", store.best, store.saves, high)
	}
	if got := a.State().BestScore; got != high {
		t.Errorf("a best = %d, want %d picked up from the store", got, high)
	}
}

func TestBestScoreRefreshedOnRestart(t *testing.T) {
	store := &fakeStore{}
	g := newTestGame(t, WithStore(store))
	g.Start()
	runUntilOver(t, g, 1000)

	store.best = 90 // Saved by another game meanwhile
	g.Restart()
	if got := g.State().BestScore; got != 90 {
		t.Errorf("best after restart = %d, want 90", got)
	}
}

func TestBestScoreLoadFailureStartsAtZero(t *testing.T) {
	tests := []struct {
		name    string
		store   *fakeStore
		wantErr bool
	}{
		{"malformed", &fakeStore{best: 77, loadErr: errors.New("not a number")}, true},
		{"negative", &fakeStore{best: -3}, false},
		{"missing", &fakeStore{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, WithStore(tt.store))
			if got := g.State().BestScore; got != 0 {
				t.Errorf("best = %d, want 0", got)
			}
			if (g.LoadErr() != nil) != tt.wantErr {
				t.Errorf("LoadErr() = %v, wantErr %v", g.LoadErr(), tt.wantErr)
			}
		})
	}
}

func TestBestScoreSaveFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	g := newTestGame(t, WithStore(store))
	g.Start()
	runUntilOver(t, g, 1000)

	if g.SaveErr() == nil {
		t.Error("SaveErr() = nil, want the store error")
	}
	if got := g.State().BestScore; got != 30 {
		t.Errorf("best = %d, want 30 kept in memory", got)
	}
	if !g.Restart() {
		t.Error("Restart should still work after a failed save")
	}
	if g.SaveErr() != nil {
		t.Error("Restart should clear the save error")
	}
}

func TestAudioFollowsRunLifecycle(t *testing.T) {
	audio := &fakeAudio{}
	g := newTestGame(t, WithAudio(audio))

	g.Start()
	if audio.starts != 1 || audio.stops != 0 {
		t.Errorf("after start: starts=%d stops=%d", audio.starts, audio.stops)
	}

	runUntilOver(t, g, 1000)
	if audio.stops != 1 {
		t.Errorf("after game over: stops=%d, want 1", audio.stops)
	}

	g.Restart()
	if audio.starts != 2 {
		t.Errorf("after restart: starts=%d, want 2", audio.starts)
	}
}
