package debug

import (
	"fmt"
	"runtime"

	"planetview/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func (d *DebugOverlay) drawPerformance(startY int) {
	ui := NewUIContext(10, startY, d.lineHeight, d.fontHeight, d.font, d.mouseX, d.mouseY, d.clicked)

	ui.Header("Timing:")
	ui.IndentLabel(fmt.Sprintf("FPS: %.1f", d.fps), 10)
	ui.IndentLabel(fmt.Sprintf("Frame Time: %.2f ms", rl.GetFrameTime()*1000), 10)
	ui.Separator()

	ui.Header("Memory Usage:")
	ui.IndentLabel(fmt.Sprintf("Allocated: %.2f MB", float64(d.memStats.Alloc)/1024/1024), 10)
	ui.IndentLabel(fmt.Sprintf("Process Total: %.2f MB", float64(d.memStats.Sys)/1024/1024), 10)
	ui.IndentLabel(fmt.Sprintf("Goroutines: %d", runtime.NumGoroutine()), 10)
	ui.Separator()

	ui.Header("Graphics:")
	if utils.GPURenderer != "" {
		ui.IndentLabel(fmt.Sprintf("GPU: %s", utils.GPURenderer), 10)
		ui.IndentLabel(fmt.Sprintf("Vendor: %s", utils.GPUVendor), 10)
		ui.IndentLabel(fmt.Sprintf("Version: %s", utils.GLVersion), 10)
		ui.IndentLabel(fmt.Sprintf("GLSL: %s", utils.GLSLVersion), 10)
	} else {
		ui.IndentLabel("Backend: OpenGL", 10)
	}
	ui.IndentLabel(fmt.Sprintf("Window: %dx%d", rl.GetScreenWidth(), rl.GetScreenHeight()), 10)
}
