package main

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"planetview/internal/config"
	"planetview/internal/debug"
	"planetview/internal/engine3D"
	"planetview/internal/frame"
	"planetview/internal/motion"
	"planetview/internal/orbit"
	"planetview/internal/shading"
	"planetview/internal/stars"
	"planetview/internal/telemetry"
	"planetview/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var initialCameraPosition = mgl32.Vec3{0, 0, 5}

// App owns the window and every long-lived piece of the viewer.
type App struct {
	settings  config.Settings
	programs  *shading.ProgramSet
	camera    *engine3D.OrbitCamera
	renderer  *engine3D.Renderer
	overlay   *debug.DebugOverlay
	textures  *TextureLoader
	scheduler *frame.Scheduler
}

// backend adds per-frame housekeeping on top of the raylib renderer: texture
// upload and overlay input, both before drawing starts.
type backend struct {
	*engine3D.Renderer
	textures *TextureLoader
	overlay  *debug.DebugOverlay
}

func (b *backend) BeginFrame() {
	b.textures.Poll(b.Renderer.SetSurfaceTexture)
	b.overlay.Update()
	b.Renderer.BeginFrame()
}

func NewApp(settings config.Settings) (*App, error) {
	palette, err := settings.ResolvePalette()
	if err != nil {
		return nil, err
	}

	shells := settings.Shells()
	programs, err := shading.NewProgramSet(shading.Options{
		Palette:    palette,
		LightPower: float32(settings.LightPower),
		Shells:     shells,
	})
	if err != nil {
		return nil, err
	}
	if settings.ShaderDir != "" {
		if err := programs.LoadOverrides(settings.ShaderDir); err != nil {
			return nil, err
		}
	}

	// Decoding runs while the window and meshes are being set up.
	textures := StartTextureLoad(settings.Texture)

	openWindow(settings.Window)
	if err := utils.QueryGPUInfo(); err != nil {
		utils.Warn("OpenGL query failed: %v", err)
	}

	controls := orbit.New(initialCameraPosition, mgl32.Vec3{})
	camera := engine3D.NewOrbitCamera(controls, settings.Window.Wallpaper)

	field := stars.Generate(settings.StarOptions())
	utils.Info("Starfield: %d points, seed %d", len(field.Points), field.Seed)

	renderer, err := engine3D.NewRenderer(programs, field, camera)
	if err != nil {
		rl.CloseWindow()
		return nil, err
	}

	overlay := debug.NewDebugOverlay(shells, camera.Camera3D)
	renderer.Overlay = overlay.Draw

	rotation := motion.NewController(settings.Mode())
	scheduler, err := frame.NewScheduler(programs, rotation, camera, &backend{
		Renderer: renderer,
		textures: textures,
		overlay:  overlay,
	})
	if err != nil {
		renderer.Close()
		rl.CloseWindow()
		return nil, err
	}

	return &App{
		settings:  settings,
		programs:  programs,
		camera:    camera,
		renderer:  renderer,
		overlay:   overlay,
		textures:  textures,
		scheduler: scheduler,
	}, nil
}

func openWindow(ws config.WindowSettings) {
	rl.SetTraceLogCallback(utils.RaylibLogCallback)

	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint | rl.FlagWindowHighdpi)
	if ws.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	if ws.Wallpaper {
		// The pointer is read from the X11 root, so clicks pass through to the desktop.
		flags |= rl.FlagWindowUndecorated | rl.FlagWindowMousePassthrough | rl.FlagWindowUnfocused
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(ws.Width), int32(ws.Height), ws.Title)

	if ws.Wallpaper {
		monitor := rl.GetCurrentMonitor()
		rl.SetWindowPosition(0, 0)
		rl.SetWindowSize(rl.GetMonitorWidth(monitor), rl.GetMonitorHeight(monitor))
	}
	if ws.TargetFPS > 0 {
		rl.SetTargetFPS(int32(ws.TargetFPS))
	}
	utils.Info("Window %dx%d (wallpaper %v)", rl.GetScreenWidth(), rl.GetScreenHeight(), ws.Wallpaper)
}

// Run drives the frame loop until the window closes or ctx is cancelled.
// The telemetry feed, when enabled, lives exactly as long as the loop.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	observers := frame.Observers{a.overlay}
	if addr := a.settings.Telemetry.Addr; addr != "" {
		hub := telemetry.NewHub(a.session())
		observers = append(observers, hub)
		go func() {
			if err := hub.ListenAndServe(ctx, addr); err != nil {
				utils.Error("Telemetry server on %s failed: %v", addr, err)
			}
		}()
	}
	a.scheduler.Observer = observers

	return a.scheduler.Run(ctx, time.Now)
}

func (a *App) session() telemetry.Session {
	session := telemetry.Session{
		Palette:      a.settings.Palette.Name,
		RotationMode: string(a.settings.Mode()),
		Stars:        len(a.renderer.Stars.Points),
		StartedAt:    time.Now(),
	}
	for _, p := range a.programs.Programs() {
		session.Shells = append(session.Shells, telemetry.Shell{
			Kind:       p.Shell.Kind.String(),
			Radius:     p.Shell.Radius,
			Resolution: p.Shell.Resolution,
		})
	}
	return session
}

func (a *App) Close() {
	a.overlay.Close()
	a.renderer.Close()
	utils.CloseX11()
	rl.CloseWindow()
}
