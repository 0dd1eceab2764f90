package geometry

import (
	"math"
)

// MinResolution is the smallest tessellation that still encloses a volume.
const MinResolution = 3

// Mesh is an indexed triangle mesh with interleaving left to the consumer.
// Positions and Normals hold xyz triples, TexCoords uv pairs.
type Mesh struct {
	Positions []float32
	Normals   []float32
	TexCoords []float32
	Indices   []uint32
}

func (m Mesh) VertexCount() int   { return len(m.Positions) / 3 }
func (m Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// CreateShell builds a UV sphere centred at the origin with resolution
// longitude segments and resolution latitude rings. Vertex (ring, seg) sits at
// polar angle pi*ring/res and azimuth 2*pi*seg/res; the seam column is
// duplicated so u runs 0..1 without wrapping. v is 0 at the north pole (+Y).
// Triangles wind counter-clockwise seen from outside. Pole triangles are
// degenerate but kept, so the index count is always 6*res*res.
func CreateShell(radius float32, resolution int) Mesh {
	if resolution < MinResolution {
		resolution = MinResolution
	}

	stride := resolution + 1
	vertexCount := stride * stride

	mesh := Mesh{
		Positions: make([]float32, 0, vertexCount*3),
		Normals:   make([]float32, 0, vertexCount*3),
		TexCoords: make([]float32, 0, vertexCount*2),
		Indices:   make([]uint32, 0, resolution*resolution*6),
	}

	for ring := 0; ring <= resolution; ring++ {
		v := float64(ring) / float64(resolution)
		theta := v * math.Pi
		sinTheta, cosTheta := math.Sincos(theta)

		for seg := 0; seg <= resolution; seg++ {
			u := float64(seg) / float64(resolution)
			phi := u * 2 * math.Pi
			sinPhi, cosPhi := math.Sincos(phi)

			nx := float32(-cosPhi * sinTheta)
			ny := float32(cosTheta)
			nz := float32(sinPhi * sinTheta)

			mesh.Positions = append(mesh.Positions, nx*radius, ny*radius, nz*radius)
			mesh.Normals = append(mesh.Normals, nx, ny, nz)
			mesh.TexCoords = append(mesh.TexCoords, float32(u), float32(v))
		}
	}

	for ring := 0; ring < resolution; ring++ {
		for seg := 0; seg < resolution; seg++ {
			b := uint32(ring*stride + seg)
			a := b + 1
			c := b + uint32(stride)
			d := c + 1

			mesh.Indices = append(mesh.Indices, a, b, d)
			mesh.Indices = append(mesh.Indices, b, c, d)
		}
	}

	return mesh
}

// Unindexed expands the mesh into flat per-corner arrays, for backends whose
// index buffers are too narrow for high tessellation.
func (m Mesh) Unindexed() (positions, normals, texCoords []float32) {
	n := len(m.Indices)
	positions = make([]float32, 0, n*3)
	normals = make([]float32, 0, n*3)
	texCoords = make([]float32, 0, n*2)

	for _, idx := range m.Indices {
		p := int(idx) * 3
		t := int(idx) * 2
		positions = append(positions, m.Positions[p:p+3]...)
		normals = append(normals, m.Normals[p:p+3]...)
		texCoords = append(texCoords, m.TexCoords[t:t+2]...)
	}

	return positions, normals, texCoords
}
