// SPDX-License-Identifier: GPL-2.0-or-later

// Package window owns the SDL window and its OpenGL context.
package window

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"portalkit/cvars"
	"portalkit/plog"
)

var (
	window      *sdl.Window
	context     sdl.GLContext
	skipUpdates bool
)

func Get() *sdl.Window {
	return window
}

func Size() (int, int) {
	w, h := window.GetSize()
	return int(w), int(h)
}

func Shutdown() {
	if context != nil {
		sdl.GLDeleteContext(context)
		context = nil
	}
	if window != nil {
		window.Destroy()
		window = nil
	}
}

func Fullscreen() bool {
	return window.GetFlags()&sdl.WINDOW_FULLSCREEN != 0
}

func VSync() bool {
	i, _ := sdl.GLGetSwapInterval()
	return i == 1
}

func InputFocus() bool {
	return window.GetFlags()&(sdl.WINDOW_MOUSE_FOCUS|sdl.WINDOW_INPUT_FOCUS) != 0
}

func Minimized() bool {
	return window.GetFlags()&sdl.WINDOW_SHOWN == 0
}

func createWindow(title string, width, height int32, flags uint32) (*sdl.Window, error) {
	w, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		width, height, flags)
	if err == nil {
		return w, nil
	}
	// retry without multisampling, then with reduced depth
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 0)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 0)
	w, err = sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		width, height, flags)
	if err == nil {
		return w, nil
	}
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 16)
	w, err = sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		width, height, flags)
	if err == nil {
		return w, nil
	}
	return nil, errors.Wrap(err, "create window")
}

// SetMode creates or resizes the window and, on first use, the GL
// context.
func SetMode(title string, width, height int32, fullscreen bool) error {
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 6)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	fsaa := int(cvars.WindowFsaa.Value())
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, func() int {
		if fsaa > 0 {
			return 1
		}
		return 0
	}())
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, fsaa)

	if window == nil {
		w, err := createWindow(title, width, height, sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
		if err != nil {
			return err
		}
		window = w
	}
	if Fullscreen() {
		if err := window.SetFullscreen(0); err != nil {
			return errors.Wrap(err, "leave fullscreen")
		}
	}
	window.SetSize(width, height)
	window.SetPosition(sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED)
	if fullscreen {
		if err := window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP); err != nil {
			return errors.Wrap(err, "enter fullscreen")
		}
	}

	window.Show()

	if context == nil {
		var err error
		context, err = window.GLCreateContext()
		if err != nil {
			return errors.Wrap(err, "create GL context")
		}
		if err := gl.Init(); err != nil {
			return errors.Wrap(err, "init gl")
		}
		gl.DebugMessageCallback(debugCb, unsafe.Pointer(nil))
		if cvars.WindowVsync.Bool() {
			sdl.GLSetSwapInterval(1)
		} else {
			sdl.GLSetSwapInterval(0)
		}
	}
	return nil
}

func debugCb(
	source uint32,
	gltype uint32,
	id uint32,
	severity uint32,
	length int32,
	message string,
	userParam unsafe.Pointer) {
	log := plog.L().Warn
	if severity == gl.DEBUG_SEVERITY_HIGH {
		log = plog.L().Error
	}
	log("gl debug",
		zap.Uint32("source", source),
		zap.Uint32("type", gltype),
		zap.Uint32("id", id),
		zap.Uint32("severity", severity),
		zap.String("message", message))
}

func SetSkipUpdates(skip bool) {
	skipUpdates = skip
}

func EndRendering() {
	if skipUpdates {
		return
	}
	window.GLSwap()
}
