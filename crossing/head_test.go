// SPDX-License-Identifier: GPL-2.0-or-later

package crossing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type boxVolume struct {
	min, max mgl32.Vec3
}

func (b boxVolume) Contains(p mgl32.Vec3) bool {
	return p.X() >= b.min.X() && p.X() <= b.max.X() &&
		p.Y() >= b.min.Y() && p.Y() <= b.max.Y() &&
		p.Z() >= b.min.Z() && p.Z() <= b.max.Z()
}

// portal at origin facing +Z, trigger box around it
func testPlane() (mgl32.Vec3, mgl32.Vec3) {
	return mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}
}

func testVolume() Volume {
	return boxVolume{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 2, 1}}
}

func newHead() *HeadTracker {
	return NewHeadTracker(testPlane, testVolume(), 1)
}

func TestHeadCrossFrontToBack(t *testing.T) {
	h := newHead()
	anchor := mgl32.Vec3{0, 0, 0.5}

	res := h.Tick(mgl32.Vec3{0, 0, 0.5}, anchor)
	require.False(t, res.Crossed)

	res = h.Tick(mgl32.Vec3{0, 0, -0.2}, mgl32.Vec3{0, 0, -0.2})
	require.True(t, res.Crossed)

	// one-shot: staying behind fires nothing further
	res = h.Tick(mgl32.Vec3{0, 0, -0.4}, mgl32.Vec3{0, 0, -0.4})
	require.False(t, res.Crossed)
}

func TestHeadNeverSeenInFront(t *testing.T) {
	h := newHead()
	res := h.Tick(mgl32.Vec3{0, 0, -0.5}, mgl32.Vec3{0, 0, -0.5})
	require.False(t, res.Crossed)
}

func TestHeadLeavesTriggerBetween(t *testing.T) {
	h := newHead()
	h.Tick(mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{0, 0, 0.5})

	// wanders out of the trigger volume, front state clears
	h.Tick(mgl32.Vec3{5, 0, 0.5}, mgl32.Vec3{5, 0, 0.5})
	require.False(t, h.InTrigger())

	// re-enters already behind: no event
	res := h.Tick(mgl32.Vec3{0, 0, -0.5}, mgl32.Vec3{0, 0, -0.5})
	require.False(t, res.Crossed)
}

func TestHeadOutsideTriggerIgnored(t *testing.T) {
	h := newHead()
	res := h.Tick(mgl32.Vec3{4, 0, 0.5}, mgl32.Vec3{4, 0, 0.5})
	require.False(t, res.Crossed)
	require.False(t, h.InTrigger())
}

func TestHeadAnomalyUsesAnchor(t *testing.T) {
	h := newHead()
	// head and anchor diverge beyond the threshold: the anchor runs
	// the tests
	anchorFront := mgl32.Vec3{0, 0, 0.5}
	headFar := mgl32.Vec3{0, 0, 9}

	res := h.Tick(headFar, anchorFront)
	require.True(t, res.Anomalous)
	require.Equal(t, anchorFront, res.Ref)
	require.True(t, h.InTrigger())

	res = h.Tick(headFar, mgl32.Vec3{0, 0, -0.3})
	require.True(t, res.Crossed)
	require.True(t, res.Anomalous)
}

func TestHeadOffsetPlane(t *testing.T) {
	offsetPlane := func() (mgl32.Vec3, mgl32.Vec3) {
		return mgl32.Vec3{0, 0, -0.3}, mgl32.Vec3{0, 0, 1}
	}
	h := NewHeadTracker(offsetPlane, testVolume(), 1)

	h.Tick(mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{0, 0, 0.5})
	// in front of the rendering surface but still in front of the
	// offset teleport plane
	res := h.Tick(mgl32.Vec3{0, 0, -0.1}, mgl32.Vec3{0, 0, -0.1})
	require.False(t, res.Crossed)

	res = h.Tick(mgl32.Vec3{0, 0, -0.5}, mgl32.Vec3{0, 0, -0.5})
	require.True(t, res.Crossed)
}

func TestHeadAssumeInTrigger(t *testing.T) {
	h := newHead()
	h.AssumeInTrigger(2)

	// physically outside, assumed inside
	h.Tick(mgl32.Vec3{7, 0, 0.5}, mgl32.Vec3{7, 0, 0.5})
	require.True(t, h.InTrigger())
	h.Tick(mgl32.Vec3{7, 0, 0.5}, mgl32.Vec3{7, 0, 0.5})
	require.True(t, h.InTrigger())

	// assumption expired
	h.Tick(mgl32.Vec3{7, 0, 0.5}, mgl32.Vec3{7, 0, 0.5})
	require.False(t, h.InTrigger())
}

func TestHeadReset(t *testing.T) {
	h := newHead()
	h.Tick(mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{0, 0, 0.5})
	h.Reset()
	require.False(t, h.InTrigger())

	// front state was cleared, going behind is not a crossing
	res := h.Tick(mgl32.Vec3{0, 0, -0.5}, mgl32.Vec3{0, 0, -0.5})
	require.False(t, res.Crossed)
}
