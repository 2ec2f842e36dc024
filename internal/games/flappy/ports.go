package flappy

// BestScoreStore persists the best score between processes.
// LoadBestScore returns 0 when nothing (or nothing numeric) is stored.
type BestScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
}

// AudioSink receives the music side effects of the run lifecycle.
type AudioSink interface {
	StartMusic()
	StopMusic()
}

// RandSource supplies gap placement randomness. *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type nopStore struct{}

func (nopStore) LoadBestScore() (int, error) { return 0, nil }
func (nopStore) SaveBestScore(int) error     { return nil }

type nopAudio struct{}

func (nopAudio) StartMusic() {}
func (nopAudio) StopMusic()  {}
