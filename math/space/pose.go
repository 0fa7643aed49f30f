// SPDX-License-Identifier: GPL-2.0-or-later

// Package space provides rigid transforms for portal pair math.
// Poses carry position and orientation only. Scale is deliberately
// absent so paired surfaces of different physical size still map onto
// each other correctly.
package space

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a rigid transform: a position and an orientation.
// The local axes are +X right, +Y up, +Z forward.
type Pose struct {
	Pos mgl32.Vec3
	Rot mgl32.Quat
}

func Identity() Pose {
	return Pose{Rot: mgl32.QuatIdent()}
}

// FromYaw builds a pose at pos rotated yaw radians about world up.
func FromYaw(pos mgl32.Vec3, yaw float32) Pose {
	return Pose{Pos: pos, Rot: YawQuat(yaw)}
}

func (p Pose) Forward() mgl32.Vec3 {
	return p.Rot.Rotate(mgl32.Vec3{0, 0, 1})
}

func (p Pose) Up() mgl32.Vec3 {
	return p.Rot.Rotate(mgl32.Vec3{0, 1, 0})
}

func (p Pose) Right() mgl32.Vec3 {
	return p.Rot.Rotate(mgl32.Vec3{1, 0, 0})
}

// TransformPoint maps a local point into world space.
func (p Pose) TransformPoint(v mgl32.Vec3) mgl32.Vec3 {
	return p.Pos.Add(p.Rot.Rotate(v))
}

// TransformDir maps a local direction into world space.
func (p Pose) TransformDir(v mgl32.Vec3) mgl32.Vec3 {
	return p.Rot.Rotate(v)
}

// WorldToLocalPoint maps a world point into the pose's local frame.
func (p Pose) WorldToLocalPoint(v mgl32.Vec3) mgl32.Vec3 {
	return p.Rot.Inverse().Rotate(v.Sub(p.Pos))
}

// WorldToLocalDir maps a world direction into the pose's local frame.
func (p Pose) WorldToLocalDir(v mgl32.Vec3) mgl32.Vec3 {
	return p.Rot.Inverse().Rotate(v)
}

// Mul composes two poses so that p.Mul(q).TransformPoint(v) equals
// p.TransformPoint(q.TransformPoint(v)).
func (p Pose) Mul(q Pose) Pose {
	return Pose{
		Pos: p.TransformPoint(q.Pos),
		Rot: p.Rot.Mul(q.Rot).Normalize(),
	}
}

func (p Pose) Inverse() Pose {
	inv := p.Rot.Inverse()
	return Pose{
		Pos: inv.Rotate(p.Pos.Mul(-1)),
		Rot: inv,
	}
}

// Mat4 returns the equivalent homogeneous matrix.
func (p Pose) Mat4() mgl32.Mat4 {
	return mgl32.Translate3D(p.Pos.X(), p.Pos.Y(), p.Pos.Z()).Mul4(p.Rot.Mat4())
}

// Yaw extracts the rotation about world up from q, in radians.
// Pitch and roll are discarded.
func Yaw(q mgl32.Quat) float32 {
	f := q.Rotate(mgl32.Vec3{0, 0, 1})
	if math32.Abs(f.X()) < 1e-6 && math32.Abs(f.Z()) < 1e-6 {
		// looking straight up or down, fall back to the right axis
		r := q.Rotate(mgl32.Vec3{1, 0, 0})
		return math32.Atan2(-r.Z(), r.X())
	}
	return math32.Atan2(f.X(), f.Z())
}

// YawQuat builds a rotation of yaw radians about world up.
func YawQuat(yaw float32) mgl32.Quat {
	return mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0})
}
