// SPDX-License-Identifier: GPL-2.0-or-later
package glh

import (
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"
	"github.com/pkg/errors"

	"portalkit/rtarget"
)

// ColorTarget is a GL texture with a framebuffer wrapped around it.
type ColorTarget struct {
	tex  uint32
	fbo  uint32
	w, h int
}

// TargetBackend implements rtarget.Backend over GL.
type TargetBackend struct{}

func (TargetBackend) NewColorTarget(w, h int) (rtarget.ColorTarget, error) {
	t := &ColorTarget{w: w, h: h}
	var status uint32
	mainthread.Call(func() {
		gl.GenTextures(1, &t.tex)
		gl.BindTexture(gl.TEXTURE_2D, t.tex)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

		gl.GenFramebuffers(1, &t.fbo)
		gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
			gl.TEXTURE_2D, t.tex, 0)
		status = gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	})
	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Release()
		return nil, errors.Errorf("framebuffer incomplete: 0x%x", status)
	}
	runtime.SetFinalizer(t, (*ColorTarget).Release)
	return t, nil
}

func (t *ColorTarget) Resize(w, h int) {
	if w == t.w && h == t.h {
		return
	}
	t.w, t.h = w, h
	tex := t.tex
	mainthread.Call(func() {
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, nil)
	})
}

func (t *ColorTarget) Release() {
	tex, fbo := t.tex, t.fbo
	if tex == 0 && fbo == 0 {
		return
	}
	t.tex, t.fbo = 0, 0
	runtime.SetFinalizer(t, nil)
	mainthread.CallNonBlock(func() {
		if fbo != 0 {
			gl.DeleteFramebuffers(1, &fbo)
		}
		if tex != 0 {
			gl.DeleteTextures(1, &tex)
		}
	})
}

func (t *ColorTarget) Handle() uintptr {
	return uintptr(t.tex)
}

func (t *ColorTarget) Size() (int, int) {
	return t.w, t.h
}

// BindDraw binds the framebuffer and sets the viewport. Must run on
// the main thread.
func (t *ColorTarget) BindDraw() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.w), int32(t.h))
}

// Clear fills the target with a solid color, used for the neutral
// fallback when a capture path is skipped. Must run on the main
// thread.
func (t *ColorTarget) Clear(r, g, b float32) {
	t.BindDraw()
	gl.ClearColor(r, g, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}
