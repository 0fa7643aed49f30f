// SPDX-License-Identifier: GPL-2.0-or-later

// Command portaldemo opens a window with a linked portal pair and
// flies a scripted agent through it. The partner views are captured
// into offscreen targets and presented as two insets, and teleports
// play an audio cue.
package main

import (
	"flag"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/mainthread/v2"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"portalkit/cue"
	"portalkit/cvar"
	"portalkit/gametime"
	"portalkit/glh"
	"portalkit/math/space"
	"portalkit/plog"
	"portalkit/portal"
	"portalkit/rtarget"
	"portalkit/view"
	"portalkit/window"
)

var (
	configFile = flag.String("config", "", "YAML file with cvar overrides")
	fullscreen = flag.Bool("fullscreen", false, "start in fullscreen")
)

func main() {
	flag.Parse()
	mainthread.Run(run)
}

func run() {
	plog.Development()
	if *configFile != "" {
		if err := cvar.LoadConfigFile(*configFile); err != nil {
			plog.L().Error("config load failed", zap.Error(err))
		}
	}

	var err error
	mainthread.Call(func() {
		if err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
			return
		}
		err = window.SetMode("portaldemo", 1280, 720, *fullscreen)
	})
	if err != nil {
		plog.L().Error("window setup failed", zap.Error(err))
		os.Exit(1)
	}
	defer mainthread.Call(func() {
		window.Shutdown()
		sdl.Quit()
	})

	if err := cue.Init(); err != nil {
		plog.L().Warn("no audio", zap.Error(err))
	}
	defer cue.Shutdown()

	a, b := buildPair()
	defer a.Deactivate()
	defer b.Deactivate()

	var present *presenter
	mainthread.Call(func() {
		present, err = newPresenter()
	})
	if err != nil {
		plog.L().Error("presenter setup failed", zap.Error(err))
		os.Exit(1)
	}

	agent := newFlyAgent()
	scene := &clearRenderer{}

	const tick = 1.0 / 60
	clock := &gametime.Clock{}
	running := true
	for running {
		mainthread.Call(func() {
			for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
				switch e := ev.(type) {
				case *sdl.QuitEvent:
					running = false
				case *sdl.KeyboardEvent:
					if e.Keysym.Sym == sdl.K_ESCAPE {
						running = false
					}
				}
			}
		})

		clock.BeginFrame()
		for clock.Step(tick) {
			agent.advance(tick)
			a.Tick(agent)
			b.Tick(agent)
		}

		obs := &demoObserver{pose: agent.eye()}
		a.RenderFrame(obs, scene)
		b.RenderFrame(obs, scene)

		mainthread.Call(func() {
			present.frame(a, b)
			window.EndRendering()
		})
	}
}

func buildPair() (*portal.Portal, *portal.Portal) {
	poseA := space.Identity()
	poseB := space.FromYaw(mgl32.Vec3{0, 0, -12}, math.Pi)

	cfgA := portal.DefaultConfig()
	cfgA.Pose = func() space.Pose { return poseA }
	cfgA.Partner = func() space.Pose { return poseB }
	cfgA.Trigger = boxTrigger{center: poseA.Pos}
	cfgA.Backend = glh.TargetBackend{}
	cfgA.Observer = cueObserver{}

	cfgB := portal.DefaultConfig()
	cfgB.Pose = func() space.Pose { return poseB }
	cfgB.Partner = func() space.Pose { return poseA }
	cfgB.Trigger = boxTrigger{center: poseB.Pos}
	cfgB.Backend = glh.TargetBackend{}
	cfgB.Observer = cueObserver{}

	a := portal.New(cfgA)
	b := portal.New(cfgB)
	a.SetPartnerPortal(b)
	b.SetPartnerPortal(a)

	if err := a.Activate(); err != nil {
		plog.L().Error("portal setup failed", zap.Error(err))
		os.Exit(1)
	}
	if err := b.Activate(); err != nil {
		plog.L().Error("portal setup failed", zap.Error(err))
		os.Exit(1)
	}
	return a, b
}

type boxTrigger struct {
	center mgl32.Vec3
}

func (t boxTrigger) Contains(p mgl32.Vec3) bool {
	d := p.Sub(t.center)
	return mgl32.Abs(d.X()) <= 1.5 && d.Y() >= -0.1 && d.Y() <= 2.5 &&
		mgl32.Abs(d.Z()) <= 1
}

type cueObserver struct{}

func (cueObserver) WillTeleportAgent(*portal.Portal) { cue.Teleport() }
func (cueObserver) WillTeleportObject(*portal.Portal, portal.Body) { cue.Object() }
func (cueObserver) WillReceiveAgent(*portal.Portal) {}
func (cueObserver) WillReceiveObject(*portal.Portal, portal.Body) {}

// flyAgent walks back and forth along the portal axis. Its velocity
// carries it through the surface, the transfer engine then places it
// at the partner and the walk continues from there.
type flyAgent struct {
	root space.Pose
	vel  mgl32.Vec3
}

func newFlyAgent() *flyAgent {
	return &flyAgent{
		root: space.Pose{Pos: mgl32.Vec3{0, 0, 5}, Rot: space.YawQuat(math.Pi)},
		vel:  mgl32.Vec3{0, 0, -2},
	}
}

func (a *flyAgent) advance(dt float32) {
	a.root.Pos = a.root.Pos.Add(a.vel.Mul(dt))
}

func (a *flyAgent) eye() space.Pose {
	return space.Pose{Pos: a.HeadPosition(), Rot: a.root.Rot}
}

func (a *flyAgent) HeadPosition() mgl32.Vec3 {
	return a.root.Pos.Add(mgl32.Vec3{0, 1.7, 0})
}
func (a *flyAgent) AnchorPosition() mgl32.Vec3 { return a.HeadPosition() }
func (a *flyAgent) RootPose() space.Pose       { return a.root }
func (a *flyAgent) AnchorRootPose() space.Pose { return a.root }
func (a *flyAgent) Velocity() mgl32.Vec3       { return a.vel }
func (a *flyAgent) ViewDirection() mgl32.Vec3  { return a.root.Forward() }
func (a *flyAgent) SetRootPose(p space.Pose) { a.root = p }
func (a *flyAgent) SetVelocity(v mgl32.Vec3) { a.vel = v }

type demoObserver struct {
	pose space.Pose
}

func (o *demoObserver) Valid() bool                 { return true }
func (o *demoObserver) Primary() bool               { return true }
func (o *demoObserver) Pose() space.Pose            { return o.pose }
func (o *demoObserver) EyePose(view.Eye) space.Pose { return o.pose }
func (o *demoObserver) EyeProjection(view.Eye) (mgl32.Mat4, bool) {
	return mgl32.Mat4{}, false
}
func (o *demoObserver) Stereo() bool                   { return false }
func (o *demoObserver) FOV() float32                   { return 75 }
func (o *demoObserver) ClipPlanes() (float32, float32) { return 0.1, 200 }
func (o *demoObserver) HDR() bool                      { return false }
func (o *demoObserver) ClearColor() mgl32.Vec4         { return mgl32.Vec4{0.1, 0.1, 0.12, 1} }
func (o *demoObserver) OcclusionCulling() bool         { return false }
func (o *demoObserver) Viewport() (int, int) {
	return window.Size()
}

// clearRenderer stands in for a scene renderer. It fills each capture
// target with a tint derived from the capture direction so the insets
// visibly track the mirrored camera.
type clearRenderer struct{}

func (clearRenderer) RenderEye(eye view.Eye, p view.RenderParams) {
	fwd := p.View.Inv().Col(2)
	r := 0.3 + 0.3*mgl32.Abs(fwd.X())
	g := 0.3 + 0.3*mgl32.Abs(fwd.Y())
	b := 0.5 + 0.3*mgl32.Abs(fwd.Z())
	mainthread.Call(func() {
		if t, ok := p.Target.(*glh.ColorTarget); ok {
			t.Clear(r, g, b)
		}
	})
}

func (clearRenderer) Blank(eye view.Eye, target rtarget.ColorTarget) {
	mainthread.Call(func() {
		if t, ok := target.(*glh.ColorTarget); ok {
			t.Clear(0.2, 0.2, 0.2)
		}
	})
}
