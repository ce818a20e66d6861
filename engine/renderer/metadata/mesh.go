package metadata

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/spaghettifunk/objscene/engine/math"
)

// MeshData is an indexed triangle mesh as produced by the OBJ loader.
// Positions and Normals have one entry per unique face corner. TextureCoords
// has the same length, or is empty when the source had no texture coordinates.
type MeshData struct {
	Positions     []math.Vec3
	Normals       []math.Vec3
	TextureCoords []math.Vec2
	Indices       []uint32

	// Extents of the positions before normalization.
	Extents math.Extents3D
}

// NewEmptyMeshData returns the designated failure value: zero vertices and zero indices.
func NewEmptyMeshData() *MeshData {
	return &MeshData{
		Positions:     []math.Vec3{},
		Normals:       []math.Vec3{},
		TextureCoords: []math.Vec2{},
		Indices:       []uint32{},
	}
}

func (md *MeshData) IsEmpty() bool {
	return md == nil || len(md.Positions) == 0 || len(md.Indices) == 0
}

func (md *MeshData) VertexCount() uint32 {
	if md == nil {
		return 0
	}
	return uint32(len(md.Positions))
}

func (md *MeshData) TriangleCount() uint32 {
	if md == nil {
		return 0
	}
	return uint32(len(md.Indices) / 3)
}

// Validate checks the structural invariants a renderer relies on.
func (md *MeshData) Validate() error {
	if md == nil {
		return fmt.Errorf("mesh data is nil")
	}
	if len(md.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(md.Indices))
	}
	n := len(md.Positions)
	if len(md.Normals) != 0 && len(md.Normals) != n {
		return fmt.Errorf("normal count %d does not match position count %d", len(md.Normals), n)
	}
	if len(md.TextureCoords) != 0 && len(md.TextureCoords) != n {
		return fmt.Errorf("texture coordinate count %d does not match position count %d", len(md.TextureCoords), n)
	}
	for i, idx := range md.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at position %d is out of range (vertices=%d)", idx, i, n)
		}
	}
	return nil
}

// ToGeometryConfig packs the parallel attribute arrays into interleaved vertices.
func (md *MeshData) ToGeometryConfig(name string) *GeometryConfig {
	vertices := make([]math.Vertex3D, len(md.Positions))
	for i := range md.Positions {
		vertices[i].Position = md.Positions[i]
		if i < len(md.Normals) {
			vertices[i].Normal = md.Normals[i]
		}
		if i < len(md.TextureCoords) {
			vertices[i].Texcoord = md.TextureCoords[i]
		}
	}

	indices := make([]uint32, len(md.Indices))
	copy(indices, md.Indices)

	extents, _ := math.ExtentsOf(md.Positions)
	return &GeometryConfig{
		VertexSize:  uint32(math.Vertex3DStride * 4),
		VertexCount: uint32(len(vertices)),
		Vertices:    vertices,
		IndexSize:   4,
		IndexCount:  uint32(len(indices)),
		Indices:     indices,
		Center:      extents.Center(),
		MinExtents:  extents.Min,
		MaxExtents:  extents.Max,
		Name:        name,
	}
}

// Also used as result_data from job.
type MeshLoadParams struct {
	ResourceName string
	OutMesh      *Mesh
	MeshResource *Resource
}

// Mesh is the render-side owner of one loaded OBJ file. Its data is swapped
// atomically so a renderer never observes a partially populated mesh.
type Mesh struct {
	UniqueID uuid.UUID
	Name     string

	generation atomic.Uint32
	data       atomic.Pointer[MeshData]
}

func NewMesh(name string) *Mesh {
	return &Mesh{
		UniqueID: uuid.New(),
		Name:     name,
	}
}

// Install replaces the mesh data and bumps the generation. Passing nil or an
// empty mesh leaves the mesh not ready.
func (m *Mesh) Install(md *MeshData) {
	if md == nil {
		md = NewEmptyMeshData()
	}
	m.data.Store(md)
	m.generation.Add(1)
}

// Data returns the current data snapshot, or nil if nothing was installed yet.
func (m *Mesh) Data() *MeshData {
	return m.data.Load()
}

// Ready reports whether complete, non-empty data is available for drawing.
func (m *Mesh) Ready() bool {
	return !m.data.Load().IsEmpty()
}

func (m *Mesh) Generation() uint32 {
	return m.generation.Load()
}
