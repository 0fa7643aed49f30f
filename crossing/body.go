// SPDX-License-Identifier: GPL-2.0-or-later

package crossing

import (
	"github.com/go-gl/mathgl/mgl32"

	"portalkit/math/space"
)

// Body is the physics-side face of a rigid body near a portal.
type Body interface {
	Position() mgl32.Vec3
	// Dynamic is false for kinematic bodies, which never transfer.
	Dynamic() bool
	// OwnedLocally reports whether the local authority may mutate
	// this body.
	OwnedLocally() bool
	// Held reports whether an agent is manually grasping the body.
	Held() bool
}

// BodyTracker monitors at most one rigid body per portal. A second
// candidate overlapping while one is tracked is ignored; the slot
// frees on crossing, trigger exit, ownership loss or grasp.
type BodyTracker struct {
	plane   Plane
	tracked Body
}

func NewBodyTracker(plane Plane) *BodyTracker {
	return &BodyTracker{plane: plane}
}

func (t *BodyTracker) Tracked() Body { return t.tracked }

func (t *BodyTracker) front(p mgl32.Vec3) bool {
	point, normal := t.plane()
	return space.SignedSide(point, normal, p)
}

// Overlap handles a trigger enter or stay of body. It returns true
// exactly when the tracked body moved to the back side, the one-shot
// crossing event.
func (t *BodyTracker) Overlap(body Body) bool {
	if t.tracked == nil {
		// a body first seen behind the plane is never a crossing
		if body.Dynamic() && body.OwnedLocally() && t.front(body.Position()) {
			t.tracked = body
		}
		return false
	}
	if body != t.tracked {
		return false
	}
	if !body.OwnedLocally() || body.Held() {
		t.tracked = nil
		return false
	}
	if !t.front(body.Position()) {
		t.tracked = nil
		return true
	}
	return false
}

// Exit handles a trigger-exit of body.
func (t *BodyTracker) Exit(body Body) {
	if body == t.tracked {
		t.tracked = nil
	}
}

// Reset clears the slot, used on deactivation.
func (t *BodyTracker) Reset() {
	t.tracked = nil
}
