package engine3D

import (
	"unsafe"

	"planetview/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// UploadMesh copies a shell into raylib-owned memory and uploads it. The
// sphere resolutions overflow 16-bit indices, so the triangles are expanded
// into a non-indexed list. UnloadModel frees the copies.
func UploadMesh(m geometry.Mesh) rl.Mesh {
	positions, normals, texCoords := m.Unindexed()
	count := len(positions) / 3

	mesh := rl.Mesh{
		VertexCount:   int32(count),
		TriangleCount: int32(count / 3),
		Vertices:      cFloats(positions),
		Normals:       cFloats(normals),
		Texcoords:     cFloats(texCoords),
	}
	rl.UploadMesh(&mesh, false)
	return mesh
}

func cFloats(src []float32) *float32 {
	if len(src) == 0 {
		return nil
	}
	ptr := (*float32)(rl.MemAlloc(uint32(len(src) * 4)))
	copy(unsafe.Slice(ptr, len(src)), src)
	return ptr
}
