package math

import "github.com/chewxy/math32"

/** @brief The edge length the largest axis of a normalized mesh is scaled to. */
const DefaultReferenceSize float32 = 2.0

/**
 * @brief Computes the axis-aligned bounding box of the supplied positions.
 * NaN components are ignored per axis. When no finite value exists on an
 * axis both bounds of that axis are zero.
 *
 * @param positions The positions to bound.
 * @return The extents and whether at least one finite component was found.
 */
func ExtentsOf(positions []Vec3) (Extents3D, bool) {
	min := [3]float32{math32.Inf(1), math32.Inf(1), math32.Inf(1)}
	max := [3]float32{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)}
	found := false

	for _, p := range positions {
		for axis, c := range [3]float32{p.X, p.Y, p.Z} {
			if math32.IsNaN(c) || math32.IsInf(c, 0) {
				continue
			}
			min[axis] = Min(min[axis], c)
			max[axis] = Max(max[axis], c)
			found = true
		}
	}

	for axis := 0; axis < 3; axis++ {
		if min[axis] > max[axis] {
			min[axis], max[axis] = 0, 0
		}
	}

	return Extents3D{
		Min: Vec3{min[0], min[1], min[2]},
		Max: Vec3{max[0], max[1], max[2]},
	}, found
}

/**
 * @brief Recenters positions in place on the midpoint of their bounding box and
 * scales them uniformly so the largest bounding box dimension equals referenceSize.
 * Degenerate boxes (all points coincident) are only translated.
 *
 * @param positions The positions to normalize. Modified in place.
 * @param referenceSize The target size of the largest dimension.
 * @return The extents of the positions before normalization.
 */
func NormalizePositions(positions []Vec3, referenceSize float32) Extents3D {
	extents, ok := ExtentsOf(positions)
	if !ok {
		return extents
	}

	center := extents.Center()
	size := extents.Size()
	largest := Max(size.X, Max(size.Y, size.Z))

	scale := float32(1)
	if largest > 0 && referenceSize > 0 {
		scale = referenceSize / largest
	}

	for i := range positions {
		positions[i] = positions[i].Sub(center).MulScalar(scale)
	}
	return extents
}

/**
 * @brief Generates flat face normals for an indexed triangle list.
 *
 * @param positions The vertex positions.
 * @param indices The triangle indices. Must be a multiple of 3 and in range.
 * @return One normal per position.
 */
func GenerateNormals(positions []Vec3, indices []uint32) []Vec3 {
	normals := make([]Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := positions[i1].Sub(positions[i0])
		edge2 := positions[i2].Sub(positions[i0])

		normal := edge1.Cross(edge2).Normalized()

		// NOTE: This just generates a face normal. Vertices shared between faces keep the last one written.
		normals[i0] = normal
		normals[i1] = normal
		normals[i2] = normal
	}
	return normals
}
