package engine3D

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"planetview/internal/geometry"
	"planetview/internal/shading"
	"planetview/internal/stars"
	"planetview/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type shellModel struct {
	spec    geometry.ShellSpec
	program LoadedProgram
	model   rl.Model
}

// Renderer draws the starfield and the planet shells into the raylib window.
type Renderer struct {
	Camera *OrbitCamera
	Stars  stars.Field
	// Overlay runs after the scene, inside the same BeginDrawing block.
	Overlay func()

	shells         map[geometry.ShellKind]*shellModel
	order          []geometry.ShellKind
	surfaceTexture *rl.Texture2D
	starColor      color.RGBA
	starScratch    []mgl32.Vec2
	occluderRadius float32
	width, height  int
}

// NewRenderer compiles every program in the set and uploads its shell. The
// window must already be open.
func NewRenderer(programs *shading.ProgramSet, field stars.Field, camera *OrbitCamera) (*Renderer, error) {
	if programs == nil || camera == nil {
		return nil, fmt.Errorf("renderer: programs and camera are required")
	}
	InitDefaults()

	r := &Renderer{
		Camera: camera,
		Stars:  field,
		shells: make(map[geometry.ShellKind]*shellModel),
		starColor: rl.NewColor(
			uint8(field.Color[0]*255),
			uint8(field.Color[1]*255),
			uint8(field.Color[2]*255),
			uint8(field.Opacity*255),
		),
		starScratch:    make([]mgl32.Vec2, 0, len(field.Points)),
		occluderRadius: programs.Surface.Shell.Radius,
		width:          rl.GetScreenWidth(),
		height:         rl.GetScreenHeight(),
	}

	specs := make([]geometry.ShellSpec, 0, len(programs.Programs()))
	for _, p := range programs.Programs() {
		specs = append(specs, p.Shell)
	}
	meshes := geometry.Build(specs)

	for i, p := range programs.Programs() {
		mesh := meshes[i]
		loaded := LoadProgram(p)

		model := rl.LoadModelFromMesh(UploadMesh(mesh))
		model.Materials.Shader = loaded.Shader
		if p.Shell.Kind == geometry.KindSurface {
			model.Materials.Maps.Texture = *BlackTexture
		}

		r.shells[p.Shell.Kind] = &shellModel{spec: p.Shell, program: loaded, model: model}
		r.order = append(r.order, p.Shell.Kind)
		utils.Debug("Uploaded %s shell: radius %.2f, %d triangles", p.Name, p.Shell.Radius, mesh.TriangleCount())
	}

	if !utils.GLReady {
		utils.Warn("GL state access unavailable, back-face shells will draw both sides")
	}
	return r, nil
}

// SetSurfaceTexture replaces the surface map. It must run on the render thread.
func (r *Renderer) SetSurfaceTexture(img *image.RGBA) {
	surface, ok := r.shells[geometry.KindSurface]
	if !ok || img == nil {
		return
	}
	tex := LoadTexture(img)
	if r.surfaceTexture != nil {
		rl.UnloadTexture(*r.surfaceTexture)
	}
	r.surfaceTexture = &tex
	surface.model.Materials.Maps.Texture = tex
	utils.Info("Surface texture uploaded: %dx%d", tex.Width, tex.Height)
}

func (r *Renderer) ShouldClose() bool {
	return rl.WindowShouldClose()
}

func (r *Renderer) BeginFrame() {
	if rl.IsWindowResized() {
		r.width, r.height = rl.GetScreenWidth(), rl.GetScreenHeight()
		utils.Debug("Window resized to %dx%d", r.width, r.height)
	}
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
}

func (r *Renderer) ApplyYaw(kind geometry.ShellKind, yaw float32) {
	if shell, ok := r.shells[kind]; ok {
		shell.model.Transform = rl.MatrixRotateY(yaw)
	}
}

func (r *Renderer) Render(programs *shading.ProgramSet) {
	r.drawStars()

	rl.BeginMode3D(r.Camera.Camera3D())
	for _, p := range programs.Programs() {
		shell, ok := r.shells[p.Shell.Kind]
		if !ok {
			continue
		}
		shell.program.Apply(p)
		r.drawShell(shell)
	}
	rl.EndMode3D()
}

func (r *Renderer) EndFrame() {
	if r.Overlay != nil {
		r.Overlay()
	}
	rl.EndDrawing()
}

// drawStars projects on the CPU and plots single pixels. At starfield
// distances a 0.1 unit sprite is far below one pixel, and GL rounds points
// up to a pixel the same way.
func (r *Renderer) drawStars() {
	r.starScratch = r.Stars.Project(r.Camera.Viewer(), r.width, r.height, r.occluderRadius, r.starScratch[:0])
	for _, p := range r.starScratch {
		rl.DrawPixelV(rl.NewVector2(p[0], p[1]), r.starColor)
	}
}

func (r *Renderer) drawShell(shell *shellModel) {
	if shell.spec.Cull == geometry.DrawBackFaces {
		setCullFront(true)
		defer setCullFront(false)
	}
	if shell.spec.Blend == geometry.BlendAdditive {
		rl.BeginBlendMode(rl.BlendAdditive)
		defer rl.EndBlendMode()
	}
	rl.DrawModel(shell.model, rl.NewVector3(0, 0, 0), 1, rl.White)
}

// setCullFront flips GL face culling so only inner faces are rasterized.
// rlgl keeps culling enabled with GL_BACK and never reads the mode back.
func setCullFront(front bool) {
	if !utils.GLReady {
		if front {
			rl.DisableBackfaceCulling()
		} else {
			rl.EnableBackfaceCulling()
		}
		return
	}
	if front {
		gl.CullFace(gl.FRONT)
	} else {
		gl.CullFace(gl.BACK)
	}
}

// Close releases GPU resources. Shaders and textures are not owned by the
// models, so they are unloaded separately.
func (r *Renderer) Close() {
	for _, kind := range r.order {
		shell := r.shells[kind]
		rl.UnloadModel(shell.model)
		shell.program.Unload()
	}
	r.shells = map[geometry.ShellKind]*shellModel{}
	r.order = nil
	if r.surfaceTexture != nil {
		rl.UnloadTexture(*r.surfaceTexture)
		r.surfaceTexture = nil
	}
	UnloadDefaults()
}
