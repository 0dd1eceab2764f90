package shading

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"planetview/internal/geometry"
)

type UniformType int

const (
	UniformFloat UniformType = iota
	UniformVec3
	UniformSampler2D
)

func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "float"
	case UniformVec3:
		return "vec3"
	case UniformSampler2D:
		return "sampler2D"
	}
	return "unknown"
}

func (t UniformType) size() int {
	if t == UniformVec3 {
		return 3
	}
	return 1
}

// Uniform is one entry of a program's uniform table. Samplers store the
// texture unit in Values[0].
type Uniform struct {
	Name   string
	Type   UniformType
	Values []float32
}

// Program is a vertex/fragment pair plus its uniform table. Each shell owns
// its own Program.
type Program struct {
	Name           string
	Shell          geometry.ShellSpec
	VertexSource   string
	FragmentSource string

	vertexBody   string
	fragmentBody string
	defines      []define

	uniforms []Uniform
	index    map[string]int
}

type define struct {
	name  string
	value string
}

func newProgram(shell geometry.ShellSpec, vertexBody, fragmentBody string, defines []define) *Program {
	p := &Program{
		Name:         shell.Kind.String(),
		Shell:        shell,
		vertexBody:   vertexBody,
		fragmentBody: fragmentBody,
		defines:      defines,
		index:        make(map[string]int),
	}
	p.compose()
	return p
}

func (p *Program) compose() {
	p.VertexSource = Preprocess(p.vertexBody, p.defines)
	p.FragmentSource = Preprocess(p.fragmentBody, p.defines)
}

// Declare adds a uniform with its initial value. Redeclaring replaces it.
func (p *Program) Declare(name string, t UniformType, values ...float32) {
	v := make([]float32, t.size())
	copy(v, values)

	if i, ok := p.index[name]; ok {
		p.uniforms[i] = Uniform{Name: name, Type: t, Values: v}
		return
	}
	p.index[name] = len(p.uniforms)
	p.uniforms = append(p.uniforms, Uniform{Name: name, Type: t, Values: v})
}

func (p *Program) lookup(name string, t UniformType) (*Uniform, error) {
	i, ok := p.index[name]
	if !ok {
		return nil, fmt.Errorf("%s program: uniform %q not declared", p.Name, name)
	}
	u := &p.uniforms[i]
	if u.Type != t {
		return nil, fmt.Errorf("%s program: uniform %q is %s, not %s", p.Name, name, u.Type, t)
	}
	return u, nil
}

func (p *Program) SetFloat(name string, v float32) error {
	u, err := p.lookup(name, UniformFloat)
	if err != nil {
		return err
	}
	u.Values[0] = v
	return nil
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) error {
	u, err := p.lookup(name, UniformVec3)
	if err != nil {
		return err
	}
	copy(u.Values, v[:])
	return nil
}

func (p *Program) Float(name string) (float32, bool) {
	u, err := p.lookup(name, UniformFloat)
	if err != nil {
		return 0, false
	}
	return u.Values[0], true
}

func (p *Program) Vec3(name string) (mgl32.Vec3, bool) {
	u, err := p.lookup(name, UniformVec3)
	if err != nil {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{u.Values[0], u.Values[1], u.Values[2]}, true
}

func (p *Program) Has(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Uniforms returns the table in declaration order. The slice is shared with
// the program; callers must not modify it.
func (p *Program) Uniforms() []Uniform {
	return p.uniforms
}

// Preprocess prepends the GLSL version line and the #define block, then
// splices the shared aurora helpers into the AURORA_CHUNK placeholder.
// A #version line already present in body is dropped.
func Preprocess(body string, defines []define) string {
	var sb strings.Builder
	sb.WriteString(glslVersion)
	sb.WriteString("\n")

	for _, d := range defines {
		sb.WriteString(fmt.Sprintf("#define %s %s\n", d.name, d.value))
	}

	body = stripVersion(body)
	body = strings.Replace(body, "AURORA_CHUNK", auroraChunk, 1)
	sb.WriteString(body)

	return sb.String()
}

func stripVersion(src string) string {
	trimmed := strings.TrimLeft(src, "\ufeff \t\r\n")
	if !strings.HasPrefix(trimmed, "#version") {
		return src
	}
	if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
		return trimmed[nl+1:]
	}
	return ""
}

func glslFloat(f float32) string {
	return fmt.Sprintf("%.6f", f)
}

func glslVec3(v mgl32.Vec3) string {
	return fmt.Sprintf("vec3(%.6f, %.6f, %.6f)", v[0], v[1], v[2])
}
