package metadata

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spaghettifunk/objscene/engine/math"
)

func triangleMeshData() *MeshData {
	return &MeshData{
		Positions:     []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}},
		Normals:       []math.Vec3{{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}},
		TextureCoords: []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		Indices:       []uint32{0, 1, 2},
	}
}

func TestMeshDataValidate(t *testing.T) {
	type spec struct {
		mutate   func(md *MeshData)
		expError string
	}
	specs := []spec{
		{func(md *MeshData) {}, ""},
		{func(md *MeshData) { md.TextureCoords = nil }, ""},
		{func(md *MeshData) { md.Indices = []uint32{0, 1} }, "not a multiple of 3"},
		{func(md *MeshData) { md.Indices = []uint32{0, 1, 3} }, "out of range"},
		{func(md *MeshData) { md.Normals = md.Normals[:1] }, "normal count"},
		{func(md *MeshData) { md.TextureCoords = md.TextureCoords[:2] }, "texture coordinate count"},
	}

	for idx, s := range specs {
		md := triangleMeshData()
		s.mutate(md)
		err := md.Validate()
		if s.expError == "" {
			if err != nil {
				t.Fatalf("[spec %d] unexpected error: %v", idx, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), s.expError) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", idx, s.expError, err)
		}
	}
}

func TestEmptyMeshData(t *testing.T) {
	md := NewEmptyMeshData()
	if !md.IsEmpty() {
		t.Fatal("expected empty mesh data to report empty")
	}
	if md.VertexCount() != 0 || md.TriangleCount() != 0 {
		t.Fatalf("expected zero counts; got %d vertices, %d triangles", md.VertexCount(), md.TriangleCount())
	}
	if err := md.Validate(); err != nil {
		t.Fatalf("expected empty mesh data to be valid; got %v", err)
	}

	var nilData *MeshData
	if !nilData.IsEmpty() {
		t.Fatal("expected nil mesh data to report empty")
	}
}

func TestGeometryConfigInterleave(t *testing.T) {
	cfg := triangleMeshData().ToGeometryConfig("tri")

	if cfg.VertexCount != 3 || cfg.IndexCount != 3 {
		t.Fatalf("expected 3 vertices and 3 indices; got %d and %d", cfg.VertexCount, cfg.IndexCount)
	}
	if cfg.MaxExtents != (math.Vec3{X: 1, Y: 1, Z: 0}) {
		t.Fatalf("expected max extents (1,1,0); got %v", cfg.MaxExtents)
	}

	buf := cfg.Interleave()
	if len(buf) != 3*math.Vertex3DStride {
		t.Fatalf("expected %d floats; got %d", 3*math.Vertex3DStride, len(buf))
	}

	exp := []float32{1, 1, 0, 0, 0, 1, 1, 1}
	if got := buf[2*math.Vertex3DStride:]; !reflect.DeepEqual(got, exp) {
		t.Fatalf("expected last vertex to be %v; got %v", exp, got)
	}
}

func TestMeshReadiness(t *testing.T) {
	m := NewMesh("teapot")
	if m.Ready() {
		t.Fatal("expected a fresh mesh not to be ready")
	}

	m.Install(nil)
	if m.Ready() {
		t.Fatal("expected a mesh with empty data not to be ready")
	}
	if m.Generation() != 1 {
		t.Fatalf("expected generation 1; got %d", m.Generation())
	}

	m.Install(triangleMeshData())
	if !m.Ready() {
		t.Fatal("expected mesh to be ready after installing data")
	}
	if m.Data().VertexCount() != 3 {
		t.Fatalf("expected 3 vertices; got %d", m.Data().VertexCount())
	}
}
