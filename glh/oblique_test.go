// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const e = 1e-4

func clipZ(m mgl32.Mat4, p mgl32.Vec3) (float32, float32) {
	v := m.Mul4x1(p.Vec4(1))
	return v.Z(), v.W()
}

func TestObliqueClipsAtPlane(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)
	// eye-space plane z = -5, facing the camera
	plane := mgl32.Vec4{0, 0, 1, 5}
	ob := ObliqueProjection(proj, plane)

	// a point on the plane lands on the near clip boundary z/w = -1
	z, w := clipZ(ob, mgl32.Vec3{0.5, -0.3, -5})
	if d := z/w + 1; d > e || d < -e {
		t.Errorf("point on plane has ndc z %v want -1", z/w)
	}

	// in front of the plane (kept side) is inside
	z, w = clipZ(ob, mgl32.Vec3{0, 0, -4})
	if z/w <= -1 {
		t.Errorf("kept-side point clipped, ndc z %v", z/w)
	}

	// behind the plane is clipped
	z, w = clipZ(ob, mgl32.Vec3{0, 0, -6})
	if z/w >= -1 {
		t.Errorf("behind-plane point not clipped, ndc z %v", z/w)
	}
}

func TestObliqueTiltedPlane(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(75), 16.0/9.0, 0.05, 200)
	n := mgl32.Vec3{0.3, 0.1, 1}.Normalize()
	pt := mgl32.Vec3{0, 0, -3}
	plane := n.Vec4(-n.Dot(pt))
	ob := ObliqueProjection(proj, plane)

	z, w := clipZ(ob, pt)
	if d := z/w + 1; d > e || d < -e {
		t.Errorf("plane point ndc z %v want -1", z/w)
	}
	behind := pt.Sub(n.Mul(0.5))
	z, w = clipZ(ob, behind)
	if z/w >= -1 {
		t.Errorf("behind tilted plane not clipped, ndc z %v", z/w)
	}
}

func TestViewSpacePlane(t *testing.T) {
	eye := mgl32.Vec3{0, 1, 5}
	view := ViewMatrix(eye, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	// plane through origin facing the camera
	plane := ViewSpacePlane(view, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})

	// the eye is 5 in front of the plane
	eyeV := view.Mul4x1(eye.Vec4(1))
	if d := plane.Dot(eyeV) - 5; d > e || d < -e {
		t.Errorf("eye-plane distance %v want 5", plane.Dot(eyeV))
	}
	// a point on the plane has zero distance
	onV := view.Mul4x1(mgl32.Vec4{2, -1, 0, 1})
	if d := plane.Dot(onV); d > e || d < -e {
		t.Errorf("on-plane distance %v want 0", d)
	}
}
