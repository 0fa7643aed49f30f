// SPDX-License-Identifier: GPL-2.0-or-later

package view

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"portalkit/math/space"
	"portalkit/rtarget"
)

type fakeTarget struct{ w, h int }

func (f *fakeTarget) Resize(w, h int)  { f.w, f.h = w, h }
func (f *fakeTarget) Release()         {}
func (f *fakeTarget) Handle() uintptr  { return 0 }
func (f *fakeTarget) Size() (int, int) { return f.w, f.h }

type fakeBackend struct{}

func (fakeBackend) NewColorTarget(w, h int) (rtarget.ColorTarget, error) {
	return &fakeTarget{w: w, h: h}, nil
}

type fakeObserver struct {
	valid   bool
	primary bool
	stereo  bool
	pose    space.Pose
	eyeSep  float32
	fov     float32
	w, h    int
}

func (o *fakeObserver) Valid() bool   { return o.valid }
func (o *fakeObserver) Primary() bool { return o.primary }
func (o *fakeObserver) Pose() space.Pose {
	return o.pose
}
func (o *fakeObserver) EyePose(e Eye) space.Pose {
	if !o.stereo {
		return o.pose
	}
	off := o.eyeSep / 2
	if e == EyeLeft {
		off = -off
	}
	return space.Pose{
		Pos: o.pose.TransformPoint(mgl32.Vec3{off, 0, 0}),
		Rot: o.pose.Rot,
	}
}
func (o *fakeObserver) EyeProjection(e Eye) (mgl32.Mat4, bool) {
	if !o.stereo {
		return mgl32.Mat4{}, false
	}
	return mgl32.Perspective(mgl32.DegToRad(o.fov), 1, 0.1, 100), true
}
func (o *fakeObserver) Stereo() bool                   { return o.stereo }
func (o *fakeObserver) FOV() float32                   { return o.fov }
func (o *fakeObserver) ClipPlanes() (float32, float32) { return 0.1, 100 }
func (o *fakeObserver) HDR() bool                      { return false }
func (o *fakeObserver) ClearColor() mgl32.Vec4         { return mgl32.Vec4{} }
func (o *fakeObserver) OcclusionCulling() bool         { return true }
func (o *fakeObserver) Viewport() (int, int)           { return o.w, o.h }

type renderCall struct {
	eye Eye
	p   RenderParams
}

type fakeRenderer struct {
	calls  []renderCall
	blanks []Eye
}

func (r *fakeRenderer) RenderEye(eye Eye, p RenderParams) {
	r.calls = append(r.calls, renderCall{eye, p})
}
func (r *fakeRenderer) Blank(eye Eye, _ rtarget.ColorTarget) {
	r.blanks = append(r.blanks, eye)
}

func pairAB() (func() space.Pose, func() space.Pose) {
	a := space.Identity()
	b := space.FromYaw(mgl32.Vec3{10, 0, 0}, math.Pi)
	return func() space.Pose { return a }, func() space.Pose { return b }
}

func newSync(cfg Config) (*Synchronizer, *rtarget.Manager) {
	m, _ := rtarget.NewManager(fakeBackend{}, 1)
	a, b := pairAB()
	return NewSynchronizer(cfg, m, a, b), m
}

func defaultObserver() *fakeObserver {
	return &fakeObserver{
		valid:   true,
		primary: true,
		pose:    space.Pose{Pos: mgl32.Vec3{0, 1.7, 3}, Rot: space.YawQuat(math.Pi)},
		fov:     90,
		w:       640,
		h:       480,
	}
}

func TestSyncFrameMono(t *testing.T) {
	s, _ := newSync(Config{})
	r := &fakeRenderer{}

	res := s.SyncFrame(defaultObserver(), r)
	require.Equal(t, Rendered, res)
	require.Len(t, r.calls, 1)
	require.Equal(t, EyeLeft, r.calls[0].eye)
}

func TestSyncFrameStereo(t *testing.T) {
	s, _ := newSync(Config{})
	r := &fakeRenderer{}
	o := defaultObserver()
	o.stereo = true
	o.eyeSep = 0.064

	require.Equal(t, Rendered, s.SyncFrame(o, r))
	require.Len(t, r.calls, 2)
	require.Equal(t, EyeLeft, r.calls[0].eye)
	require.Equal(t, EyeRight, r.calls[1].eye)
	require.NotSame(t, r.calls[0].p.Target, r.calls[1].p.Target)
}

func TestSyncFrameSecondarySkipped(t *testing.T) {
	s, _ := newSync(Config{})
	r := &fakeRenderer{}
	o := defaultObserver()
	o.primary = false

	require.Equal(t, SkippedSecondary, s.SyncFrame(o, r))
	require.Empty(t, r.calls)
}

func TestSyncFrameInvalidBlanksOnce(t *testing.T) {
	s, _ := newSync(Config{})
	r := &fakeRenderer{}
	o := defaultObserver()

	s.SyncFrame(o, r)
	o.valid = false
	require.Equal(t, SkippedInvalid, s.SyncFrame(o, r))
	require.Len(t, r.blanks, 2)

	// stale targets after the first blank frame, no repeated blanking
	require.Equal(t, SkippedInvalid, s.SyncFrame(o, r))
	require.Len(t, r.blanks, 2)
}

func TestSyncFrameZeroViewport(t *testing.T) {
	s, _ := newSync(Config{})
	r := &fakeRenderer{}
	o := defaultObserver()
	o.w, o.h = 0, 0

	require.Equal(t, SkippedViewport, s.SyncFrame(o, r))
	require.Empty(t, r.calls)
}

func TestCapturePoseMirrorsObserver(t *testing.T) {
	s, _ := newSync(Config{})
	_, b := pairAB()

	// observer 3 in front of A looking at it ends up 3 behind B
	// looking out of it
	obs := space.Pose{Pos: mgl32.Vec3{0, 0, 3}, Rot: space.YawQuat(math.Pi)}
	got := s.capturePose(obs)

	wantPos := b().TransformPoint(mgl32.Vec3{0, 0, -3})
	require.InDelta(t, float64(wantPos.X()), float64(got.Pos.X()), 1e-4)
	require.InDelta(t, float64(wantPos.Y()), float64(got.Pos.Y()), 1e-4)
	require.InDelta(t, float64(wantPos.Z()), float64(got.Pos.Z()), 1e-4)

	// the capture camera looks along the partner's outward normal
	fwd := got.Forward()
	want := b().Forward()
	require.InDelta(t, float64(want.X()), float64(fwd.X()), 1e-4)
	require.InDelta(t, float64(want.Z()), float64(fwd.Z()), 1e-4)
}

func TestObliqueAppliedFarFromPlane(t *testing.T) {
	s, _ := newSync(Config{
		Oblique:                true,
		ObliqueDisableDistance: 0.25,
	})
	r := &fakeRenderer{}
	o := defaultObserver()

	require.Equal(t, Rendered, s.SyncFrame(o, r))
	plain := mgl32.Perspective(mgl32.DegToRad(90), 640.0/480.0, 0.1, 100)
	require.NotEqual(t, plain, r.calls[0].p.Proj)
}

func TestObliqueSkippedNearPlane(t *testing.T) {
	cfg := Config{Oblique: true, ObliqueDisableDistance: 0.25}
	s, _ := newSync(cfg)
	r := &fakeRenderer{}
	o := defaultObserver()
	// just through the portal: mirrored eye lands a hair in front of
	// the partner plane
	o.pose = space.Pose{Pos: mgl32.Vec3{0, 0, -0.1}, Rot: space.YawQuat(math.Pi)}

	require.Equal(t, Rendered, s.SyncFrame(o, r))
	plain := mgl32.Perspective(mgl32.DegToRad(90), 640.0/480.0, 0.1, 100)
	require.Equal(t, plain, r.calls[0].p.Proj)
}

func TestObliqueForceDisable(t *testing.T) {
	s, _ := newSync(Config{Oblique: true, ObliqueDisableDistance: 0.25})
	r := &fakeRenderer{}
	o := defaultObserver()
	s.SetForceDisableOblique(true)

	require.Equal(t, Rendered, s.SyncFrame(o, r))
	plain := mgl32.Perspective(mgl32.DegToRad(90), 640.0/480.0, 0.1, 100)
	require.Equal(t, plain, r.calls[0].p.Proj)
}
