package engine3D

import (
	"planetview/internal/shading"
	"planetview/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// LoadedProgram is a shading.Program compiled on the GPU with its uniform
// locations resolved once.
type LoadedProgram struct {
	Name      string
	Shader    rl.Shader
	Locations map[string]int32
	// Fallback is set when compilation failed and raylib handed back its
	// default program.
	Fallback bool
}

// LoadProgram compiles p. A failed compile is logged and leaves a usable
// shader in place so the frame loop keeps running.
func LoadProgram(p *shading.Program) LoadedProgram {
	shader := rl.LoadShaderFromMemory(p.VertexSource, p.FragmentSource)
	loaded := LoadedProgram{
		Name:      p.Name,
		Shader:    shader,
		Locations: ResolveUniformLocations(shader, p),
	}

	// Every program reads time in its fragment stage, so a missing location
	// means the custom source did not link.
	if loc, ok := loaded.Locations[shading.UniformTime]; !ok || loc == -1 {
		loaded.Fallback = true
		utils.Warn("Shader %s failed to compile, using raylib default program", p.Name)
	} else {
		utils.Debug("Shader %s loaded (id %d)", p.Name, shader.ID)
	}

	if loc, ok := loaded.Locations[shading.UniformTexture]; ok && loc != -1 {
		// DrawMesh binds material map 0 to this location.
		shader.UpdateLocation(rl.ShaderLocMapDiffuse, loc)
	}

	return loaded
}

// ResolveUniformLocations queries the shader for every uniform the program declares.
func ResolveUniformLocations(shader rl.Shader, p *shading.Program) map[string]int32 {
	locations := make(map[string]int32)
	for _, u := range p.Uniforms() {
		loc := rl.GetShaderLocation(shader, u.Name)
		if loc == -1 {
			utils.Debug("Shader %s: uniform %s not active", p.Name, u.Name)
		}
		locations[u.Name] = loc
	}
	return locations
}

// Apply pushes the current uniform table of p to the GPU.
func (lp *LoadedProgram) Apply(p *shading.Program) {
	for _, u := range p.Uniforms() {
		if u.Type == shading.UniformSampler2D {
			// DrawMesh binds material map 0 itself.
			continue
		}
		loc, ok := lp.Locations[u.Name]
		if !ok || loc == -1 {
			continue
		}
		rl.SetShaderValue(lp.Shader, loc, u.Values, uniformDataType(u.Type))
	}
}

func (lp *LoadedProgram) Unload() {
	rl.UnloadShader(lp.Shader)
}

func uniformDataType(t shading.UniformType) rl.ShaderUniformDataType {
	switch t {
	case shading.UniformVec3:
		return rl.ShaderUniformVec3
	default:
		return rl.ShaderUniformFloat
	}
}
