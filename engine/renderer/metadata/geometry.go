package metadata

import (
	"github.com/spaghettifunk/objscene/engine/math"
)

/**
 * @brief Represents the configuration for a geometry, ready to be
 * uploaded to a vertex and index buffer.
 */
type GeometryConfig struct {
	/** @brief The size of each vertex. */
	VertexSize uint32
	/** @brief The number of vertices. */
	VertexCount uint32
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief The size of each index. */
	IndexSize uint32
	/** @brief The number of indices. */
	IndexCount uint32
	/** @brief An array of Indices. */
	Indices []uint32

	Center     math.Vec3
	MinExtents math.Vec3
	MaxExtents math.Vec3

	/** @brief The Name of the geometry. */
	Name string
}

/**
 * @brief Flattens the vertices into a single float buffer with
 * math.Vertex3DStride components per vertex: position, normal, texcoord.
 */
func (gc *GeometryConfig) Interleave() []float32 {
	out := make([]float32, 0, len(gc.Vertices)*math.Vertex3DStride)
	for _, v := range gc.Vertices {
		out = append(out,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.Texcoord.X, v.Texcoord.Y,
		)
	}
	return out
}
