// SPDX-License-Identifier: GPL-2.0-or-later

package space

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SignedSide reports whether point lies on the side of the plane the
// normal points toward. Points exactly on the plane count as behind.
func SignedSide(planePoint, planeNormal, point mgl32.Vec3) bool {
	return point.Sub(planePoint).Dot(planeNormal) > 0
}

// flipYaw is the 180 degree turn about local up applied between a
// portal and its partner: exiting forward from the back face of the
// partner.
var flipYaw = mgl32.QuatRotate(math.Pi, mgl32.Vec3{0, 1, 0})

func flipLocal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{-v.X(), v.Y(), -v.Z()}
}

// MirrorAcrossPortalPair maps a world point (or direction, when
// isDirection is set) from the source portal's frame into the
// partner's, with the 180 degree turn in between. Only the rigid part
// of the two poses is used.
func MirrorAcrossPortalPair(src, dst Pose, v mgl32.Vec3, isDirection bool) mgl32.Vec3 {
	if isDirection {
		return dst.TransformDir(flipLocal(src.WorldToLocalDir(v)))
	}
	return dst.TransformPoint(flipLocal(src.WorldToLocalPoint(v)))
}

// MirrorRotation maps a world orientation across the portal pair.
func MirrorRotation(src, dst Pose, q mgl32.Quat) mgl32.Quat {
	local := src.Rot.Inverse().Mul(q)
	return dst.Rot.Mul(flipYaw.Mul(local)).Normalize()
}

// MirrorPose maps a full world pose across the portal pair.
func MirrorPose(src, dst Pose, p Pose) Pose {
	return Pose{
		Pos: MirrorAcrossPortalPair(src, dst, p.Pos, false),
		Rot: MirrorRotation(src, dst, p.Rot),
	}
}

// ExitRotation is the rotation that MirrorRotation applies to any
// orientation: partner * 180-flip * inverse(source). Velocities and
// offsets can be carried over with a single Rotate call.
func ExitRotation(src, dst Pose) mgl32.Quat {
	return dst.Rot.Mul(flipYaw).Mul(src.Rot.Inverse()).Normalize()
}
