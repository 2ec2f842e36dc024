package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
)

// Player loops the background music while a run is active.
// It satisfies the game's AudioSink: StartMusic restarts the loop from the
// beginning and StopMusic silences it.
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	music       *beep.Ctrl
	track       *beep.Buffer // Decoded mp3, nil for the built-in tune
	initialized bool
}

// NewPlayer creates a player. Nothing is audible until Init succeeds.
func NewPlayer(cfg *Config) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Player{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Init decodes the music file, if any, and opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	if p.cfg.MusicPath != "" {
		track, err := p.loadTrack(p.cfg.MusicPath)
		if err != nil {
			return err
		}
		p.track = track
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// loadTrack decodes an mp3 file into memory at the player's sample rate.
func (p *Player) loadTrack(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open music: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != p.rate {
		src = beep.Resample(4, format.SampleRate, p.rate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: p.rate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	return buf, nil
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	if p.music != nil {
		p.music.Paused = true
	}
	p.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	p.music = nil
	p.initialized = false
}

// StartMusic starts the loop from the beginning, replacing any previous loop.
func (p *Player) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled {
		return
	}

	ctrl := &beep.Ctrl{Streamer: newVolume(p.source(), p.cfg.MasterVolume)}

	p.lockSpeaker()
	if p.music != nil {
		// A nil streamer ends the old loop, so the mixer drops it
		p.music.Streamer = nil
	}
	if !p.initialized {
		// Nothing drains the mixer without a speaker
		p.mixer.Clear()
	}
	p.music = ctrl
	p.mixer.Add(ctrl)
	p.unlockSpeaker()
}

// StopMusic pauses the loop.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.music == nil {
		return
	}
	p.lockSpeaker()
	p.music.Paused = true
	p.unlockSpeaker()
}

// Playing reports whether the music loop is audible.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.music == nil {
		return false
	}
	p.lockSpeaker()
	defer p.unlockSpeaker()
	return !p.music.Paused
}

func (p *Player) source() beep.Streamer {
	if p.track != nil {
		return beep.Loop(-1, p.track.Streamer(0, p.track.Len()))
	}
	return newChiptune(p.rate)
}

// The speaker mutex guards streamers once they are playing.
func (p *Player) lockSpeaker() {
	if p.initialized {
		speaker.Lock()
	}
}

func (p *Player) unlockSpeaker() {
	if p.initialized {
		speaker.Unlock()
	}
}

// newVolume wraps s in a volume effect; math.Log2(0) is -Inf, so 0 is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Silent is a music sink that does nothing. Used with --mute and for SSH
// sessions, where the server's speaker is not the player's.
type Silent struct{}

func (Silent) StartMusic() {}
func (Silent) StopMusic()  {}
