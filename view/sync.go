// SPDX-License-Identifier: GPL-2.0-or-later

package view

import (
	"github.com/go-gl/mathgl/mgl32"

	"portalkit/glh"
	"portalkit/math/space"
	"portalkit/rtarget"
)

// Result says what SyncFrame did with the frame.
type Result int

const (
	Rendered Result = iota
	SkippedInvalid
	SkippedSecondary
	SkippedViewport
	SkippedReentrant
	// SkippedDisabled is returned by callers that gate rendering on
	// an operating mode; the synchronizer itself never returns it.
	SkippedDisabled
)

// Config holds the oblique-projection settings of one portal.
type Config struct {
	Oblique                bool
	ObliqueOffset          float32
	ObliqueDisableDistance float32
	Mask                   LayerMask
}

// Synchronizer is the per-portal capture rig. Each rendered frame it
// mirrors the observer across the portal pair, copies the observer's
// optics onto the capture cameras and renders the partner view into
// the portal's color targets.
type Synchronizer struct {
	cfg     Config
	targets *rtarget.Manager

	portal  func() space.Pose
	partner func() space.Pose

	rendering bool
	wasValid  bool
	// set while the partner expects an agent to arrive, see
	// Portal.NotifyIncomingAgent
	forceDisableOblique bool
}

func NewSynchronizer(cfg Config, targets *rtarget.Manager, portal, partner func() space.Pose) *Synchronizer {
	return &Synchronizer{
		cfg:     cfg,
		targets: targets,
		portal:  portal,
		partner: partner,
	}
}

// SetForceDisableOblique suppresses oblique clipping regardless of
// eye distance, used right after a transfer toward this portal.
func (s *Synchronizer) SetForceDisableOblique(v bool) {
	s.forceDisableOblique = v
}

// capturePose is the mirrored world pose of one observer eye: the
// observer's pose relative to the portal, turned 180 degrees about
// the portal's up axis and re-expressed relative to the partner.
func (s *Synchronizer) capturePose(eyePose space.Pose) space.Pose {
	return space.MirrorPose(s.portal(), s.partner(), eyePose)
}

func (s *Synchronizer) projection(obs Observer, e Eye, target rtarget.ColorTarget) mgl32.Mat4 {
	if proj, ok := obs.EyeProjection(e); ok {
		return proj
	}
	// mono: rebuild a standard perspective from the copied optics
	w, h := target.Size()
	aspect := float32(w) / float32(h)
	near, far := obs.ClipPlanes()
	return mgl32.Perspective(mgl32.DegToRad(obs.FOV()), aspect, near, far)
}

// applyOblique swaps the projection's near plane for one coincident
// with the partner surface so the capture camera cannot see geometry
// behind the wall the partner hangs on. When the eye sits within the
// disable distance in front of that plane, which happens right after
// a teleport, the swap is skipped for this frame.
func (s *Synchronizer) applyOblique(proj mgl32.Mat4, viewM mgl32.Mat4, eye space.Pose) mgl32.Mat4 {
	if !s.cfg.Oblique || s.forceDisableOblique {
		return proj
	}
	partner := s.partner()
	normal := partner.Forward()
	point := partner.Pos.Add(normal.Mul(s.cfg.ObliqueOffset))

	dist := eye.Pos.Sub(point).Dot(normal)
	if dist >= 0 && dist < s.cfg.ObliqueDisableDistance {
		return proj
	}
	plane := glh.ViewSpacePlane(viewM, point, normal)
	return glh.ObliqueProjection(proj, plane)
}

func (s *Synchronizer) renderEye(obs Observer, r Renderer, e Eye, target rtarget.ColorTarget) {
	pose := s.capturePose(obs.EyePose(e))
	viewM := glh.ViewMatrix(pose.Pos, pose.Forward(), pose.Up())
	proj := s.applyOblique(s.projection(obs, e, target), viewM, pose)

	r.RenderEye(e, RenderParams{
		Target:           target,
		View:             viewM,
		Proj:             proj,
		Mask:             s.cfg.Mask,
		HDR:              obs.HDR(),
		ClearColor:       obs.ClearColor(),
		OcclusionCulling: obs.OcclusionCulling(),
	})
}

// SyncFrame runs once per rendered frame. Rendering for secondary
// capture devices is skipped; the surface presents neutral black on
// that path. An invalid observer leaves the targets stale except that
// the first frame after the viewpoint goes away blanks them.
func (s *Synchronizer) SyncFrame(obs Observer, r Renderer) Result {
	if s.rendering {
		return SkippedReentrant
	}
	s.rendering = true
	defer func() { s.rendering = false }()

	if !obs.Primary() {
		return SkippedSecondary
	}
	if !obs.Valid() {
		if s.wasValid && s.targets.Ready() {
			r.Blank(EyeLeft, s.targets.Left())
			r.Blank(EyeRight, s.targets.Right())
		}
		s.wasValid = false
		return SkippedInvalid
	}

	w, h := obs.Viewport()
	if _, err := s.targets.Sync(w, h); err != nil {
		return SkippedViewport
	}
	if !s.targets.Ready() {
		return SkippedViewport
	}
	s.wasValid = true

	if obs.Stereo() {
		s.renderEye(obs, r, EyeLeft, s.targets.Left())
		s.renderEye(obs, r, EyeRight, s.targets.Right())
	} else {
		s.renderEye(obs, r, EyeLeft, s.targets.Left())
	}
	return Rendered
}
