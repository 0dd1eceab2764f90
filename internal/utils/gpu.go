package utils

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	GPURenderer string
	GPUVendor   string
	GLVersion   string
	GLSLVersion string

	// GLReady is set once the go-gl function table is bound to raylib's context.
	GLReady bool
)

// QueryGPUInfo reads driver strings from the GL context raylib created. It must
// run on the render thread after the window is open.
func QueryGPUInfo() error {
	if err := gl.Init(); err != nil {
		return err
	}
	GLReady = true

	GPURenderer = gl.GoStr(gl.GetString(gl.RENDERER))
	GPUVendor = gl.GoStr(gl.GetString(gl.VENDOR))
	GLVersion = gl.GoStr(gl.GetString(gl.VERSION))
	GLSLVersion = gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))

	Info("GPU: %s (%s), OpenGL %s", GPURenderer, GPUVendor, GLVersion)
	return nil
}
