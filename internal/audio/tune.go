package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// melody is the built-in loop as MIDI note numbers; 0 is a rest.
var melody = []int{
	69, 72, 76, 72, 69, 72, 76, 79,
	67, 71, 74, 71, 67, 71, 74, 0,
	65, 69, 72, 69, 65, 69, 72, 76,
	64, 68, 71, 68, 64, 0, 64, 0,
}

// noteLength is the duration of one melody step.
const noteLength = 150 * time.Millisecond

// noteFreq returns the frequency in Hz for a MIDI note, 0 for a rest.
func noteFreq(midi int) float64 {
	if midi <= 0 {
		return 0
	}
	return 440.0 * math.Pow(2, (float64(midi)-69.0)/12.0)
}

// chiptune is an endless square-wave rendition of melody.
type chiptune struct {
	rate     beep.SampleRate
	stepLen  int
	position int
	phase    float64
}

// newChiptune creates the built-in music streamer. It never ends.
func newChiptune(rate beep.SampleRate) beep.Streamer {
	return &chiptune{
		rate:    rate,
		stepLen: rate.N(noteLength),
	}
}

func (c *chiptune) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		step := (c.position / c.stepLen) % len(melody)
		inStep := c.position % c.stepLen
		freq := noteFreq(melody[step])

		var val float64
		if freq > 0 {
			if c.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
			// Short decay per note so repeated notes stay distinct
			val *= 0.25 * math.Exp(-3*float64(inStep)/float64(c.stepLen))

			c.phase += freq / float64(c.rate)
			c.phase -= math.Floor(c.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		c.position++
	}
	return len(samples), true
}

func (c *chiptune) Err() error { return nil }
