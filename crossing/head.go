// SPDX-License-Identifier: GPL-2.0-or-later

// Package crossing detects front-to-back transitions of tracked
// reference points through a portal's surface plane.
package crossing

import (
	"github.com/go-gl/mathgl/mgl32"

	"portalkit/math/space"
)

// Volume is the trigger region in which crossing is legal.
type Volume interface {
	Contains(p mgl32.Vec3) bool
}

// Plane supplies the current surface plane. The head track receives
// the teleport plane (offset along the normal); the body track the
// un-offset one.
type Plane func() (point, normal mgl32.Vec3)

// HeadResult is the outcome of one head tick.
type HeadResult struct {
	// Crossed is the one-shot front-to-back event.
	Crossed bool
	// Anomalous is set when head and anchor diverged and the anchor
	// position was used for the tests.
	Anomalous bool
	// Ref is the reference point the tests ran against.
	Ref mgl32.Vec3
}

// HeadTracker follows the viewpoint of the local agent. Some
// locomotion modes decouple the rendered head from the simulated
// body; past the anomaly distance the tracker trusts the body.
type HeadTracker struct {
	plane       Plane
	volume      Volume
	anomalyDist float32

	prevInFront bool
	headIn      bool
	assumeTicks int
}

func NewHeadTracker(plane Plane, volume Volume, anomalyDist float32) *HeadTracker {
	return &HeadTracker{
		plane:       plane,
		volume:      volume,
		anomalyDist: anomalyDist,
	}
}

// AssumeInTrigger pre-marks the head as inside the trigger volume for
// the next n ticks. The sending portal calls this on the receiver so
// its distance-based logic does not flicker before it observes the
// arrived position.
func (h *HeadTracker) AssumeInTrigger(n int) {
	if n > h.assumeTicks {
		h.assumeTicks = n
	}
}

func (h *HeadTracker) InTrigger() bool { return h.headIn }

// Tick evaluates one simulation step. head is the tracked viewpoint
// position, anchor the simulated body reference.
func (h *HeadTracker) Tick(head, anchor mgl32.Vec3) HeadResult {
	res := HeadResult{Ref: head}
	if head.Sub(anchor).Len() > h.anomalyDist {
		res.Anomalous = true
		res.Ref = anchor
	}

	in := h.volume.Contains(res.Ref)
	if h.assumeTicks > 0 {
		h.assumeTicks--
		in = true
	}
	h.headIn = in
	if !in {
		h.prevInFront = false
		return res
	}

	point, normal := h.plane()
	front := space.SignedSide(point, normal, res.Ref)
	res.Crossed = h.prevInFront && !front
	h.prevInFront = front
	return res
}

// Reset clears all session state, used on deactivation.
func (h *HeadTracker) Reset() {
	h.prevInFront = false
	h.headIn = false
	h.assumeTicks = 0
}
