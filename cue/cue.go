// SPDX-License-Identifier: GPL-2.0-or-later

// Package cue plays short synthesized feedback sounds for portal
// events.
package cue

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/pkg/errors"
)

const sampleRate = beep.SampleRate(44100)

var initialized bool

func Init() error {
	if initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	initialized = true
	return nil
}

func Shutdown() {
	if !initialized {
		return
	}
	speaker.Close()
	initialized = false
}

// blip is a decaying sine tone.
type blip struct {
	freq  float64
	pos   int
	total int
}

func (b *blip) Stream(samples [][2]float64) (int, bool) {
	if b.pos >= b.total {
		return 0, false
	}
	n := len(samples)
	if rest := b.total - b.pos; rest < n {
		n = rest
	}
	for i := 0; i < n; i++ {
		t := float64(b.pos+i) / float64(sampleRate)
		env := 1 - float64(b.pos+i)/float64(b.total)
		v := 0.3 * env * math.Sin(2*math.Pi*b.freq*t)
		samples[i][0] = v
		samples[i][1] = v
	}
	b.pos += n
	return n, true
}

func (b *blip) Err() error { return nil }

func play(freq float64, d time.Duration) {
	if !initialized {
		return
	}
	speaker.Play(&blip{freq: freq, total: sampleRate.N(d)})
}

// Teleport is the agent transfer sound.
func Teleport() {
	play(880, time.Millisecond*120)
}

// Object is the body transfer sound, a lower and shorter blip.
func Object() {
	play(440, time.Millisecond*80)
}
