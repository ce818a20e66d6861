package scene

import (
	"io"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/objscene/engine/core"
	omath "github.com/spaghettifunk/objscene/engine/math"
	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
)

func init() {
	core.SetLogOutput(io.Discard)
}

type fakeSource struct {
	meshes map[string]*metadata.Mesh
}

func (fs *fakeSource) Acquire(name string) *metadata.Mesh {
	if fs.meshes == nil {
		fs.meshes = make(map[string]*metadata.Mesh)
	}
	if m, ok := fs.meshes[name]; ok {
		return m
	}
	m := metadata.NewMesh(name)
	fs.meshes[name] = m
	return m
}

type fakeRenderer struct {
	models []mgl32.Mat4
}

func (fr *fakeRenderer) DrawMesh(mesh *metadata.Mesh, model mgl32.Mat4) bool {
	if !mesh.Ready() {
		return false
	}
	fr.models = append(fr.models, model)
	return true
}

func triangle() *metadata.MeshData {
	return &metadata.MeshData{
		Positions: []omath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}},
		Normals:   []omath.Vec3{{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}},
		Indices:   []uint32{0, 1, 2},
	}
}

func TestSceneSkipsMeshesUntilReady(t *testing.T) {
	m, err := ParseManifest([]byte(houseManifest))
	if err != nil {
		t.Fatal(err)
	}
	src := &fakeSource{}
	s, err := New(m, src)
	if err != nil {
		t.Fatal(err)
	}
	if len(src.meshes) != 2 {
		t.Fatalf("expected 2 acquired meshes; got %d", len(src.meshes))
	}

	r := &fakeRenderer{}
	if drawn := s.Draw(r, 0); drawn != 0 || s.Ready() {
		t.Fatalf("expected nothing drawn before loading; got %d", drawn)
	}

	src.meshes["models/plane.obj"].Install(triangle())
	if drawn := s.Draw(r, 0); drawn != 1 {
		t.Fatalf("expected 1 node drawn; got %d", drawn)
	}

	// A failed load installs empty data and stays invisible.
	src.meshes["models/leaves.obj"].Install(metadata.NewEmptyMeshData())
	if drawn := s.Draw(r, 0); drawn != 1 || s.Ready() {
		t.Fatalf("expected the empty mesh to be skipped; got %d drawn", drawn)
	}

	src.meshes["models/leaves.obj"].Install(triangle())
	if drawn := s.Draw(r, 0); drawn != 2 || !s.Ready() {
		t.Fatalf("expected 2 nodes drawn; got %d", drawn)
	}
}

func TestModelMatrix(t *testing.T) {
	m := &Manifest{
		Name:   "spin",
		Scale:  []float32{2},
		Shapes: []ShapeConfig{{Name: "a", Path: "a.obj"}},
		Nodes: []NodeConfig{{
			Shape:     "a",
			Translate: [3]float32{1, 0, 0},
			Rotate:    []RotationConfig{{Axis: [3]float32{0, 0, 2}, Rate: math.Pi / 2}},
			Scale:     []float32{3},
		}},
	}
	s, err := New(m, &fakeSource{})
	if err != nil {
		t.Fatal(err)
	}

	// root scale 2, translate x by 1, no rotation yet, scale 3: (1,0,0) -> 2*(1 + 3) = 8
	p := s.ModelMatrix(0, 0).Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !p.ApproxEqualThreshold(mgl32.Vec4{8, 0, 0, 1}, 1e-5) {
		t.Fatalf("unexpected transformed point at t=0: %v", p)
	}

	// After one second the node has turned a quarter around z.
	p = s.ModelMatrix(0, 1).Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !p.ApproxEqualThreshold(mgl32.Vec4{2, 6, 0, 1}, 1e-5) {
		t.Fatalf("unexpected transformed point at t=1: %v", p)
	}
}
