// SPDX-License-Identifier: GPL-2.0-or-later

// Package rtarget owns the off-screen color targets a portal renders
// its partner view into.
package rtarget

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"portalkit/plog"
)

// ColorTarget is one off-screen color image. Contents are undefined
// until the next successful render into it.
type ColorTarget interface {
	Resize(w, h int)
	Release()
	// Handle is the native texture handle the presentation shader
	// consumes.
	Handle() uintptr
	Size() (int, int)
}

// Backend allocates color targets. Each call returns a distinct
// object; a portal's left and right target are never shared.
type Backend interface {
	NewColorTarget(w, h int) (ColorTarget, error)
}

var ErrBadScale = errors.New("resolution scale outside (0,1]")

// Manager sizes a left/right pair of color targets to a fraction of
// the viewport and reallocates only when the viewport or the scale
// changes.
type Manager struct {
	backend     Backend
	scale       float32
	vw, vh      int
	left, right ColorTarget
	dirty       bool
}

func NewManager(backend Backend, scale float32) (*Manager, error) {
	if scale <= 0 || scale > 1 {
		return nil, ErrBadScale
	}
	return &Manager{backend: backend, scale: scale, dirty: true}, nil
}

// SetScale rejects values outside (0,1] and keeps the previous scale.
func (m *Manager) SetScale(s float32) error {
	if s <= 0 || s > 1 {
		return ErrBadScale
	}
	if s != m.scale {
		m.scale = s
		m.dirty = true
	}
	return nil
}

func (m *Manager) Scale() float32 { return m.scale }

// Invalidate forces a reallocation on the next Sync.
func (m *Manager) Invalidate() {
	m.dirty = true
}

func (m *Manager) targetSize(vw, vh int) (int, int) {
	w := int(float32(vw) * m.scale)
	h := int(float32(vh) * m.scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Sync makes the pair match the given viewport. It reallocates or
// resizes only when the cached viewport dimensions changed or an
// explicit refresh was requested. A zero-sized viewport skips the
// frame's work.
func (m *Manager) Sync(viewportW, viewportH int) (resized bool, err error) {
	if viewportW <= 0 || viewportH <= 0 {
		return false, nil
	}
	if !m.dirty && viewportW == m.vw && viewportH == m.vh {
		return false, nil
	}
	m.vw, m.vh = viewportW, viewportH
	w, h := m.targetSize(viewportW, viewportH)

	if m.left == nil {
		if m.left, err = m.backend.NewColorTarget(w, h); err != nil {
			return false, errors.Wrap(err, "left target")
		}
	} else {
		m.left.Resize(w, h)
	}
	if m.right == nil {
		if m.right, err = m.backend.NewColorTarget(w, h); err != nil {
			return false, errors.Wrap(err, "right target")
		}
	} else {
		m.right.Resize(w, h)
	}
	m.dirty = false
	plog.L().Debug("portal targets sized",
		zap.Int("width", w), zap.Int("height", h))
	return true, nil
}

// Ready reports whether both targets exist.
func (m *Manager) Ready() bool {
	return m.left != nil && m.right != nil
}

func (m *Manager) Left() ColorTarget  { return m.left }
func (m *Manager) Right() ColorTarget { return m.right }

// Release frees both targets. Idempotent; the manager can be synced
// again afterwards.
func (m *Manager) Release() {
	if m.left != nil {
		m.left.Release()
		m.left = nil
	}
	if m.right != nil {
		m.right.Release()
		m.right = nil
	}
	m.vw, m.vh = 0, 0
	m.dirty = true
}
