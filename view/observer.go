// SPDX-License-Identifier: GPL-2.0-or-later

// Package view places the capture cameras that render a portal's
// partner location and issues the per-eye render calls.
package view

import (
	"github.com/go-gl/mathgl/mgl32"

	"portalkit/math/space"
	"portalkit/rtarget"
)

type Eye int

const (
	EyeLeft Eye = iota
	EyeRight
)

// LayerMask selects which scene layers a capture camera may see. The
// portal surface layer and any viewpoint-only layer must be excluded
// by the caller to avoid the surface capturing itself.
type LayerMask uint32

// Observer is the on-screen viewpoint being mirrored. Hosts adapt
// their tracking and camera APIs to this.
type Observer interface {
	// Valid reports whether there is an active local viewpoint this
	// frame.
	Valid() bool
	// Primary is false for secondary capture devices, which are
	// skipped.
	Primary() bool

	// Pose of the head. Forward is +Z in pose-local terms.
	Pose() space.Pose
	// EyePose is the world pose of one eye. In mono setups both eyes
	// return the head pose.
	EyePose(e Eye) space.Pose
	// EyeProjection returns the per-eye stereo projection. ok is
	// false in mono setups; the capture camera then rebuilds a
	// standard perspective projection from the scalar optics.
	EyeProjection(e Eye) (proj mgl32.Mat4, ok bool)
	Stereo() bool

	// FOV is the vertical field of view in degrees.
	FOV() float32
	ClipPlanes() (near, far float32)
	HDR() bool
	ClearColor() mgl32.Vec4
	OcclusionCulling() bool
	Viewport() (w, h int)
}

// RenderParams is everything the external renderer needs for one eye.
type RenderParams struct {
	Target           rtarget.ColorTarget
	View             mgl32.Mat4
	Proj             mgl32.Mat4
	Mask             LayerMask
	HDR              bool
	ClearColor       mgl32.Vec4
	OcclusionCulling bool
}

// Renderer is the external rendering collaborator.
type Renderer interface {
	RenderEye(eye Eye, p RenderParams)
	// Blank fills a target with a neutral color, used when the
	// viewpoint goes away.
	Blank(eye Eye, target rtarget.ColorTarget)
}
