// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ViewMatrix builds a world-to-eye matrix for a camera at eye looking
// along forward.
func ViewMatrix(eye, forward, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, eye.Add(forward), up)
}

// ViewSpacePlane expresses the plane through point with the given
// normal in the eye space of view. The view matrix must be rigid.
// The returned Vec4 is (nx,ny,nz,d) with dot(plane, p) > 0 on the
// kept side.
func ViewSpacePlane(view mgl32.Mat4, point, normal mgl32.Vec3) mgl32.Vec4 {
	vp := view.Mul4x1(point.Vec4(1)).Vec3()
	vn := view.Mat3().Mul3x1(normal)
	return vn.Vec4(-vn.Dot(vp))
}

func sgn(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// ObliqueProjection replaces the near plane of proj with the given
// eye-space clip plane (Lengyel's method). Everything on the negative
// side of the plane is clipped. The far plane degenerates into a
// bounding configuration, which is acceptable for portal capture
// where nothing of interest lies near the far plane.
func ObliqueProjection(proj mgl32.Mat4, plane mgl32.Vec4) mgl32.Mat4 {
	q := proj.Inv().Mul4x1(mgl32.Vec4{sgn(plane.X()), sgn(plane.Y()), 1, 1})
	c := plane.Mul(2 / plane.Dot(q))
	res := proj
	res.SetRow(2, c.Sub(proj.Row(3)))
	return res
}
