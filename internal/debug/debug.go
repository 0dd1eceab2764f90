package debug

import (
	"math"
	"os"
	"runtime"
	"time"

	"planetview/internal/frame"
	"planetview/internal/geometry"
	"planetview/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type DebugTab int

const (
	TabScene DebugTab = iota
	TabPerformance
)

var tabNames = []string{"Scene", "Performance"}

// DebugOverlay is the F8 sidebar. It observes the scheduler and draws on top
// of the finished scene.
type DebugOverlay struct {
	Visible      bool
	ActiveTab    DebugTab
	ShowBounds   bool
	Shells       []geometry.ShellSpec
	CameraSource func() rl.Camera3D

	// UI State
	fontHeight   int
	lineHeight   int
	tabHeight    int
	sidebarWidth int

	// Input State
	prevLeftMouseButton bool
	mouseX              int
	mouseY              int
	clicked             bool

	font          rl.Font
	monitorHeight int

	lastUpdateTime time.Time
	frameCount     int
	fps            float64
	memStats       runtime.MemStats

	snapshot frame.Snapshot
}

func NewDebugOverlay(shells []geometry.ShellSpec, camera func() rl.Camera3D) *DebugOverlay {
	monitor := rl.GetCurrentMonitor()

	d := &DebugOverlay{
		Visible:        utils.ShowDebugUI,
		ActiveTab:      TabScene,
		Shells:         shells,
		CameraSource:   camera,
		monitorHeight:  rl.GetMonitorHeight(monitor),
		lastUpdateTime: time.Now(),
	}
	d.updateLayout()

	fontPaths := []string{
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	}
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			d.font = rl.LoadFontEx(path, 64, nil, 0)
			rl.SetTextureFilter(d.font.Texture, rl.FilterBilinear)
			break
		}
	}

	return d
}

func (d *DebugOverlay) updateLayout() {
	scale := math.Max(1.0, float64(d.monitorHeight)/1080.0)
	d.fontHeight = int(16 * scale)
	d.lineHeight = int(24 * scale)
	d.tabHeight = int(36 * scale)
	d.sidebarWidth = int(420 * scale)
}

// Observe keeps the latest scheduler snapshot for the Scene tab.
func (d *DebugOverlay) Observe(snap frame.Snapshot) {
	d.snapshot = snap
}

func (d *DebugOverlay) Update() {
	if rl.IsKeyPressed(rl.KeyF8) {
		d.Visible = !d.Visible
	}
	if !d.Visible {
		return
	}

	d.frameCount++
	now := time.Now()
	if now.Sub(d.lastUpdateTime) >= time.Second {
		d.fps = float64(d.frameCount) / now.Sub(d.lastUpdateTime).Seconds()
		d.frameCount = 0
		d.lastUpdateTime = now
		runtime.ReadMemStats(&d.memStats)
	}

	mPos := rl.GetMousePosition()
	d.mouseX = int(mPos.X)
	d.mouseY = int(mPos.Y)

	leftPressed := rl.IsMouseButtonDown(rl.MouseLeftButton)
	d.clicked = leftPressed && !d.prevLeftMouseButton
	d.prevLeftMouseButton = leftPressed

	if d.clicked && d.mouseY < d.tabHeight && d.mouseX < d.sidebarWidth {
		tabWidth := d.sidebarWidth / len(tabNames)
		d.ActiveTab = DebugTab(d.mouseX / tabWidth)
	}
}

// Draw renders the sidebar. It must run between BeginDrawing and EndDrawing.
func (d *DebugOverlay) Draw() {
	if !d.Visible {
		return
	}

	if d.ShowBounds {
		d.drawShellBounds()
	}

	sh := rl.GetScreenHeight()
	rl.DrawRectangle(0, 0, int32(d.sidebarWidth), int32(sh), rl.NewColor(0, 0, 0, 200))
	d.drawTabs()

	contentY := d.tabHeight + d.lineHeight/2
	switch d.ActiveTab {
	case TabScene:
		d.drawScene(contentY)
	case TabPerformance:
		d.drawPerformance(contentY)
	}
}

func (d *DebugOverlay) drawTabs() {
	tabWidth := d.sidebarWidth / len(tabNames)

	for i, name := range tabNames {
		color := rl.NewColor(100, 100, 100, 255)
		if d.ActiveTab == DebugTab(i) {
			color = rl.NewColor(150, 150, 150, 255)
		}

		x := int32(i * tabWidth)
		rl.DrawRectangle(x, 0, int32(tabWidth), int32(d.tabHeight), color)
		d.DrawText(name, x+10, int32(float64(d.tabHeight)*0.3), int32(d.fontHeight), rl.White)
	}
}

func (d *DebugOverlay) DrawText(text string, x, y int32, fontSize int32, color rl.Color) {
	if d.font.BaseSize > 0 {
		rl.DrawTextEx(d.font, text, rl.NewVector2(float32(x), float32(y)), float32(fontSize), 1, color)
	} else {
		rl.DrawText(text, x, y, fontSize, color)
	}
}

func (d *DebugOverlay) Close() {
	if d.font.BaseSize > 0 {
		rl.UnloadFont(d.font)
	}
}
