// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"portalkit/cvars"
	"portalkit/math/space"
	"portalkit/plog"
	"portalkit/rtarget"
	"portalkit/view"
)

func poseFn(p PoseProvider) func() space.Pose {
	return func() space.Pose { return p() }
}

// headPlane is the teleport plane: the surface offset slightly along
// the outward normal to hide one-frame clipping.
func (p *Portal) headPlane() (mgl32.Vec3, mgl32.Vec3) {
	pose := p.cfg.Pose()
	n := pose.Forward()
	return pose.Pos.Add(n.Mul(p.cfg.TeleportPlaneOffset)), n
}

// surfacePlane is the un-offset rendering surface, used for bodies.
func (p *Portal) surfacePlane() (mgl32.Vec3, mgl32.Vec3) {
	pose := p.cfg.Pose()
	return pose.Pos, pose.Forward()
}

// RenderFrame runs the visual half once per rendered frame for the
// primary viewpoint.
func (p *Portal) RenderFrame(obs view.Observer, r view.Renderer) view.Result {
	if !p.active || !p.cfg.Mode.Visuals() {
		return view.SkippedDisabled
	}
	p.sync.SetForceDisableOblique(p.receiveTicks > 0)
	return p.sync.SyncFrame(obs, r)
}

// Targets exposes the color pair for the presentation shader. ok is
// false while inactive, physics-only or not yet sized.
func (p *Portal) Targets() (left, right rtarget.ColorTarget, ok bool) {
	if p.targets == nil || !p.targets.Ready() {
		return nil, nil, false
	}
	return p.targets.Left(), p.targets.Right(), true
}

// SetResolutionScale changes the target fraction. Invalid values are
// rejected and the previous scale stays in effect.
func (p *Portal) SetResolutionScale(s float32) error {
	if s <= 0 || s > 1 {
		return rtarget.ErrBadScale
	}
	p.cfg.ResolutionScale = s
	if p.targets != nil {
		return p.targets.SetScale(s)
	}
	return nil
}

// Tick runs the physics half once per simulation step. The deferred
// actions of the previous step run first, then crossing detection.
// agent may be nil when no local agent exists.
func (p *Portal) Tick(agent Agent) {
	if !p.active {
		return
	}

	pending := p.pending
	p.pending = nil
	for _, action := range pending {
		action()
	}
	if p.receiveTicks > 0 {
		p.receiveTicks--
	}

	if !p.cfg.Mode.Physics() || agent == nil {
		return
	}
	res := p.head.Tick(agent.HeadPosition(), agent.AnchorPosition())
	if res.Crossed {
		anomalous := res.Anomalous
		// deferred to the next step so the frame in flight does not
		// ghost the old position
		p.pending = append(p.pending, func() {
			p.teleportAgent(agent, anomalous)
		})
	}
}

// BodyOverlap feeds a trigger enter or stay event for body.
func (p *Portal) BodyOverlap(b Body) {
	if !p.active || !p.cfg.Mode.Physics() {
		return
	}
	if p.bodies.Overlap(b) {
		p.pending = append(p.pending, func() {
			p.teleportBody(b)
		})
	}
}

// BodyExit feeds a trigger-exit event for body.
func (p *Portal) BodyExit(b Body) {
	if !p.active || !p.cfg.Mode.Physics() {
		return
	}
	p.bodies.Exit(b)
}

// TrackedBody returns the rigid body currently monitored, if any.
func (p *Portal) TrackedBody() Body {
	if p.bodies == nil {
		return nil
	}
	if b, ok := p.bodies.Tracked().(Body); ok {
		return b
	}
	return nil
}

// NotifyIncomingAgent is called by the sending portal right before it
// teleports the agent here. The receiver assumes its trigger volume
// holds the agent for a few ticks so the oblique disable-distance
// logic does not flicker before it observes the new position.
func (p *Portal) NotifyIncomingAgent() {
	if !p.active {
		return
	}
	ticks := int(cvars.ReceiveAssumeTicks.Value())
	if p.head != nil {
		p.head.AssumeInTrigger(ticks)
	}
	p.receiveTicks = ticks
	if p.cfg.Observer != nil {
		p.cfg.Observer.WillReceiveAgent(p)
	}
}

func (p *Portal) notifyIncomingObject(b Body) {
	if !p.active {
		return
	}
	if p.cfg.Observer != nil {
		p.cfg.Observer.WillReceiveObject(p, b)
	}
}

func (p *Portal) teleportAgent(a Agent, anomalous bool) {
	if p.cfg.Observer != nil {
		p.cfg.Observer.WillTeleportAgent(p)
	}
	if pp := p.cfg.PartnerPortal; pp != nil {
		pp.NotifyIncomingAgent()
	}
	p.engine.TransferAgent(a, anomalous)
	plog.L().Info("agent teleported",
		zap.String("portal", p.ID.String()),
		zap.Bool("anomalous", anomalous))
}

func (p *Portal) teleportBody(b Body) {
	if p.cfg.Observer != nil {
		p.cfg.Observer.WillTeleportObject(p, b)
	}
	if pp := p.cfg.PartnerPortal; pp != nil {
		pp.notifyIncomingObject(b)
	}
	p.engine.TransferBody(b)
	plog.L().Info("object teleported", zap.String("portal", p.ID.String()))
}
