// SPDX-License-Identifier: GPL-2.0-or-later

// Package portal implements paired walk-through surfaces: mirrored
// partner rendering plus crossing detection and teleport transfer.
package portal

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"portalkit/crossing"
	"portalkit/cvars"
	"portalkit/math/space"
	"portalkit/plog"
	"portalkit/rtarget"
	"portalkit/transfer"
	"portalkit/view"
)

// Mode selects which halves of the portal run.
type Mode int

const (
	VisualsAndPhysics Mode = iota
	VisualsOnly
	PhysicsOnly
)

func (m Mode) Visuals() bool { return m == VisualsAndPhysics || m == VisualsOnly }
func (m Mode) Physics() bool { return m == VisualsAndPhysics || m == PhysicsOnly }

// Agent is the locally controlled viewpoint with its tracking root.
type Agent interface {
	transfer.Agent
}

// Body is a rigid body that can cross the portal.
type Body interface {
	crossing.Body
	transfer.Body
}

// Observer receives the one-shot teleport notifications so world
// logic (effects, sound, counters) can react before state mutates.
type Observer interface {
	WillTeleportAgent(p *Portal)
	WillTeleportObject(p *Portal, body Body)
	WillReceiveAgent(p *Portal)
	WillReceiveObject(p *Portal, body Body)
}

// PoseProvider supplies a world transform each call, so portals on
// moving geometry stay correct.
type PoseProvider func() space.Pose

type Config struct {
	Pose    PoseProvider
	Partner PoseProvider
	// PartnerPortal links the receive-side notifications. The partner
	// transform need not belong to a functioning portal, in which
	// case this stays nil.
	PartnerPortal *Portal

	Mode Mode
	// Mask must already exclude the portal-surface layer and any
	// viewpoint-only layer.
	Mask view.LayerMask

	ResolutionScale float32
	Trigger         crossing.Volume

	TeleportPlaneOffset    float32
	Oblique                bool
	ObliqueOffset          float32
	ObliqueDisableDistance float32
	MomentumSnap           bool

	Backend  rtarget.Backend
	Observer Observer
}

// DefaultConfig returns a config with the tunables taken from the
// cvar registry.
func DefaultConfig() Config {
	return Config{
		ResolutionScale:        cvars.ResolutionScale.Value(),
		TeleportPlaneOffset:    cvars.TeleportPlaneOffset.Value(),
		Oblique:                true,
		ObliqueOffset:          cvars.ObliqueOffset.Value(),
		ObliqueDisableDistance: cvars.ObliqueDisableDistance.Value(),
		MomentumSnap:           cvars.MomentumSnap.Bool(),
	}
}

// Configuration errors detected at activation time.
var (
	ErrNoPose    = errors.New("portal has no pose provider")
	ErrNoPartner = errors.New("portal has no partner transform")
	ErrNoTrigger = errors.New("portal has no trigger volume")
	ErrNoBackend = errors.New("portal has no render target backend")
)

// Portal is one half of a linked pair. All methods are meant for a
// single logical thread; there is no internal locking.
type Portal struct {
	ID  uuid.UUID
	cfg Config

	active  bool
	targets *rtarget.Manager
	sync    *view.Synchronizer
	head    *crossing.HeadTracker
	bodies  *crossing.BodyTracker
	engine  *transfer.Engine

	// deferred one-shot actions, drained at the start of the next
	// simulation tick
	pending      []func()
	receiveTicks int
}

func New(cfg Config) *Portal {
	return &Portal{
		ID:  uuid.New(),
		cfg: cfg,
	}
}

func (p *Portal) Active() bool { return p.active }

// SetPartnerPortal links the receive-side notifications after both
// halves of a pair have been constructed.
func (p *Portal) SetPartnerPortal(partner *Portal) {
	p.cfg.PartnerPortal = partner
}

func (p *Portal) validate() error {
	switch {
	case p.cfg.Pose == nil:
		return ErrNoPose
	case p.cfg.Partner == nil:
		return ErrNoPartner
	case p.cfg.Trigger == nil:
		return ErrNoTrigger
	case p.cfg.ResolutionScale <= 0 || p.cfg.ResolutionScale > 1:
		return rtarget.ErrBadScale
	case p.cfg.Mode.Visuals() && p.cfg.Backend == nil:
		return ErrNoBackend
	}
	return nil
}

// Activate builds the session state. On a configuration error the
// portal logs and stays inert; Deactivate is safe to call regardless.
func (p *Portal) Activate() error {
	if p.active {
		return nil
	}
	if err := p.validate(); err != nil {
		plog.L().Error("portal activation failed",
			zap.String("portal", p.ID.String()), zap.Error(err))
		return errors.Wrap(err, "activate portal")
	}

	if p.cfg.Mode.Visuals() {
		targets, err := rtarget.NewManager(p.cfg.Backend, p.cfg.ResolutionScale)
		if err != nil {
			plog.L().Error("portal activation failed",
				zap.String("portal", p.ID.String()), zap.Error(err))
			return errors.Wrap(err, "activate portal")
		}
		p.targets = targets
		p.sync = view.NewSynchronizer(view.Config{
			Oblique:                p.cfg.Oblique,
			ObliqueOffset:          p.cfg.ObliqueOffset,
			ObliqueDisableDistance: p.cfg.ObliqueDisableDistance,
			Mask:                   p.cfg.Mask,
		}, targets, poseFn(p.cfg.Pose), poseFn(p.cfg.Partner))
	}

	p.head = crossing.NewHeadTracker(p.headPlane, p.cfg.Trigger,
		cvars.AnomalyDistance.Value())
	p.bodies = crossing.NewBodyTracker(p.surfacePlane)
	p.engine = transfer.NewEngine(poseFn(p.cfg.Pose), poseFn(p.cfg.Partner),
		p.cfg.MomentumSnap)

	p.active = true
	plog.L().Info("portal active", zap.String("portal", p.ID.String()))
	return nil
}

// Deactivate releases the render targets and discards all tracking
// state. Idempotent, and reachable after a partially failed
// activation.
func (p *Portal) Deactivate() {
	if p.targets != nil {
		p.targets.Release()
		p.targets = nil
	}
	p.sync = nil
	if p.head != nil {
		p.head.Reset()
		p.head = nil
	}
	if p.bodies != nil {
		p.bodies.Reset()
		p.bodies = nil
	}
	p.engine = nil
	p.pending = nil
	p.receiveTicks = 0
	if p.active {
		p.active = false
		plog.L().Info("portal inactive", zap.String("portal", p.ID.String()))
	}
}

// Preload runs an activate/deactivate cycle ahead of an expected
// teleport so a dormant partner does not flicker black the first time
// it becomes visible.
func (p *Portal) Preload(viewportW, viewportH int) error {
	if p.active {
		return nil
	}
	if err := p.Activate(); err != nil {
		return err
	}
	if p.targets != nil {
		if _, err := p.targets.Sync(viewportW, viewportH); err != nil {
			p.Deactivate()
			return errors.Wrap(err, "preload portal")
		}
	}
	p.Deactivate()
	return nil
}
