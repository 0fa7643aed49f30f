// SPDX-License-Identifier: GPL-2.0-or-later

package space

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPoseInverse(t *testing.T) {
	p := Pose{
		Pos: mgl32.Vec3{4, -2, 7},
		Rot: mgl32.QuatRotate(1.2, mgl32.Vec3{0.1, 0.9, 0.4}.Normalize()),
	}
	id := p.Mul(p.Inverse())
	if !vecNear(id.Pos, mgl32.Vec3{}) {
		t.Errorf("p * p^-1 position = %v", id.Pos)
	}
	v := mgl32.Vec3{1, 2, 3}
	if !vecNear(id.TransformPoint(v), v) {
		t.Errorf("p * p^-1 moves %v to %v", v, id.TransformPoint(v))
	}
}

func TestWorldLocalRoundTrip(t *testing.T) {
	p := FromYaw(mgl32.Vec3{1, 2, 3}, 0.8)
	v := mgl32.Vec3{-4, 5, 6}
	if !vecNear(p.TransformPoint(p.WorldToLocalPoint(v)), v) {
		t.Error("point world->local->world drifted")
	}
	if !vecNear(p.TransformDir(p.WorldToLocalDir(v)), v) {
		t.Error("direction world->local->world drifted")
	}
}

func TestYawExtraction(t *testing.T) {
	for _, yaw := range []float32{0, 0.5, -1.2, 3.0} {
		got := Yaw(YawQuat(yaw))
		if d := got - yaw; d > eps || d < -eps {
			t.Errorf("Yaw(YawQuat(%v)) = %v", yaw, got)
		}
	}
}

func TestYawIgnoresPitch(t *testing.T) {
	yaw := float32(0.9)
	q := YawQuat(yaw).Mul(mgl32.QuatRotate(0.4, mgl32.Vec3{1, 0, 0}))
	got := Yaw(q)
	if d := got - yaw; d > eps || d < -eps {
		t.Errorf("yaw with pitch applied = %v want %v", got, yaw)
	}
}

func TestPoseMat4Agrees(t *testing.T) {
	p := Pose{
		Pos: mgl32.Vec3{3, 0, -1},
		Rot: mgl32.QuatRotate(0.6, mgl32.Vec3{0, 1, 0}),
	}
	v := mgl32.Vec3{2, 5, -3}
	m := p.Mat4().Mul4x1(v.Vec4(1)).Vec3()
	if !vecNear(m, p.TransformPoint(v)) {
		t.Errorf("Mat4 transform %v != pose transform %v", m, p.TransformPoint(v))
	}
}
