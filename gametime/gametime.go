// SPDX-License-Identifier: GPL-2.0-or-later

// Package gametime tracks wall time per frame and splits it into
// fixed simulation steps.
package gametime

import (
	"time"

	"portalkit/math"
)

var (
	startTime = time.Now()
)

type Clock struct {
	time       float64
	oldTime    float64
	frameTime  float64
	frameCount int
	accum      float64
}

func (c *Clock) Time() float64      { return c.time }
func (c *Clock) FrameTime() float64 { return c.frameTime }
func (c *Clock) FrameCount() int    { return c.frameCount }

// BeginFrame samples the wall clock. The frame time is clamped so a
// stall or debugger break does not burst a huge number of steps.
func (c *Clock) BeginFrame() {
	c.time = time.Since(startTime).Seconds()
	if c.frameCount == 0 {
		c.oldTime = c.time
	}
	c.frameTime = math.Clamp(0.0, c.time-c.oldTime, 0.1)
	c.oldTime = c.time
	c.frameCount++
	c.accum += c.frameTime
}

// Step consumes one fixed step of dt seconds from the accumulated
// frame time. Call it in a loop until it returns false.
func (c *Clock) Step(dt float64) bool {
	if c.accum < dt {
		return false
	}
	c.accum -= dt
	return true
}
