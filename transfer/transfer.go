// SPDX-License-Identifier: GPL-2.0-or-later

// Package transfer moves a crossing agent or rigid body from a portal
// into its partner's frame while preserving the illusion of
// continuous motion.
package transfer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	pmath "portalkit/math"
	"portalkit/math/space"
)

// Agent is the locally controlled viewpoint plus its tracking root.
type Agent interface {
	HeadPosition() mgl32.Vec3
	// AnchorPosition is the simulated body reference, used instead of
	// the head when locomotion is anomalous.
	AnchorPosition() mgl32.Vec3
	RootPose() space.Pose
	AnchorRootPose() space.Pose
	Velocity() mgl32.Vec3
	ViewDirection() mgl32.Vec3

	SetRootPose(space.Pose)
	SetVelocity(mgl32.Vec3)
}

// Body is a rigid body that can be teleported.
type Body interface {
	Pose() space.Pose
	Velocity() mgl32.Vec3
	SetPose(space.Pose)
	SetVelocity(mgl32.Vec3)
	// SuppressInterpolation tells an external position-sync component
	// that the next position change is discontinuous.
	SuppressInterpolation()
}

var worldUp = mgl32.Vec3{0, 1, 0}

var (
	cosVertical     = math32.Cos(pmath.Deg2Rad(7))
	cosVelVertical  = math32.Cos(pmath.Deg2Rad(1))
	cosForwardAlign = math32.Cos(pmath.Deg2Rad(15))
	cosLookingAt    = math32.Cos(pmath.Deg2Rad(45))
)

// Engine computes transfers across one portal pair. src and dst
// supply the current poses each call, so moving portals transfer
// correctly.
type Engine struct {
	src, dst     func() space.Pose
	momentumSnap bool
}

func NewEngine(src, dst func() space.Pose, momentumSnap bool) *Engine {
	return &Engine{src: src, dst: dst, momentumSnap: momentumSnap}
}

func alignedWith(dir, axis mgl32.Vec3, cosLimit float32) bool {
	l := dir.Len()
	if l == 0 {
		return false
	}
	return math32.Abs(dir.Dot(axis))/l > cosLimit
}

// snapLocal applies the momentum heuristic to the portal-local
// inbound velocity. Classification runs on world vectors; the result
// replaces the local velocity. Inbound motion is -Z in the source
// portal's frame.
func (e *Engine) snapLocal(local, worldVel, srcForward, viewDir mgl32.Vec3) mgl32.Vec3 {
	speed := worldVel.Len()
	if speed == 0 {
		return local
	}

	if alignedWith(srcForward, worldUp, cosVertical) {
		velNearVertical := alignedWith(worldVel, worldUp, cosVelVertical)
		velRoughlyVertical := alignedWith(worldVel, worldUp, cosVertical)
		looking := alignedWith(viewDir, srcForward, cosLookingAt)
		if velNearVertical || (velRoughlyVertical && looking) {
			// straight-in at the same speed
			return mgl32.Vec3{0, 0, -speed}
		}
		return local
	}
	if alignedWith(worldVel, srcForward, cosForwardAlign) {
		// keep only the forward-aligned component
		return mgl32.Vec3{0, 0, local.Z()}
	}
	return local
}

// exitPose is the destination pose used for velocity mirroring. With
// momentum snapping on and the partner facing within a few degrees of
// vertical, the partner is treated as perfectly vertical so an
// imperfectly placed floor/ceiling pair still loops fall speed
// losslessly.
func (e *Engine) exitPose(dst space.Pose) space.Pose {
	if !e.momentumSnap {
		return dst
	}
	fwd := dst.Forward()
	d := fwd.Dot(worldUp)
	if math32.Abs(d) <= cosVertical || math32.Abs(d) >= 1 {
		return dst
	}
	vert := worldUp
	if d < 0 {
		vert = worldUp.Mul(-1)
	}
	// minimal rotation onto the exact vertical preserves roll
	adj := mgl32.QuatBetweenVectors(fwd, vert).Mul(dst.Rot).Normalize()
	return space.Pose{Pos: dst.Pos, Rot: adj}
}

// TransferVelocity maps a world velocity through the pair, applying
// the momentum heuristics when enabled.
func (e *Engine) TransferVelocity(vel, viewDir mgl32.Vec3) mgl32.Vec3 {
	src, dst := e.src(), e.dst()
	local := src.WorldToLocalDir(vel)
	if e.momentumSnap {
		local = e.snapLocal(local, vel, src.Forward(), viewDir)
	}
	flipped := mgl32.Vec3{-local.X(), local.Y(), -local.Z()}
	return e.exitPose(dst).TransformDir(flipped)
}

// TransferAgent computes and applies the agent's new root placement
// and velocity. anomalous selects the anchor representation the
// crossing detector used this tick.
func (e *Engine) TransferAgent(a Agent, anomalous bool) {
	src, dst := e.src(), e.dst()

	ref := a.HeadPosition()
	root := a.RootPose()
	if anomalous {
		ref = a.AnchorPosition()
		root = a.AnchorRootPose()
	}

	newHead := space.MirrorAcrossPortalPair(src, dst, ref, false)

	// only yaw carries over for a standing agent
	yawDelta := pmath.AngleDelta(space.Yaw(src.Rot), space.Yaw(dst.Rot)+pmath.Pi)
	newRootYaw := space.Yaw(root.Rot) + yawDelta

	rootOffset := root.Pos.Sub(ref)
	newRootPos := newHead.Add(space.YawQuat(yawDelta).Rotate(rootOffset))

	vel := e.TransferVelocity(a.Velocity(), a.ViewDirection())

	a.SetRootPose(space.Pose{Pos: newRootPos, Rot: space.YawQuat(newRootYaw)})
	a.SetVelocity(vel)
}

// TransferBody teleports a rigid body: position, full orientation and
// velocity each map through the pair. No momentum snapping.
func (e *Engine) TransferBody(b Body) {
	src, dst := e.src(), e.dst()

	pose := space.MirrorPose(src, dst, b.Pose())
	vel := space.MirrorAcrossPortalPair(src, dst, b.Velocity(), true)

	b.SuppressInterpolation()
	b.SetPose(pose)
	b.SetVelocity(vel)
}
