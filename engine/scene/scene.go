package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
)

// MeshSource hands out meshes by asset name. Meshes may still be loading.
type MeshSource interface {
	Acquire(resourceName string) *metadata.Mesh
}

// Renderer draws a mesh with a model matrix and reports whether it did.
type Renderer interface {
	DrawMesh(mesh *metadata.Mesh, model mgl32.Mat4) bool
}

type node struct {
	shape     string
	translate mgl32.Mat4
	rotations []RotationConfig
	scale     mgl32.Mat4
}

type Scene struct {
	Name   string
	root   mgl32.Mat4
	shapes map[string]*metadata.Mesh
	nodes  []node
}

// New acquires every shape of the manifest from src and prepares the nodes.
func New(m *Manifest, src MeshSource) (*Scene, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	rootScale, _ := scaleVec(m.Scale)
	s := &Scene{
		Name:   m.Name,
		root:   mgl32.Scale3D(rootScale.X(), rootScale.Y(), rootScale.Z()),
		shapes: make(map[string]*metadata.Mesh, len(m.Shapes)),
		nodes:  make([]node, 0, len(m.Nodes)),
	}

	for _, sh := range m.Shapes {
		s.shapes[sh.Name] = src.Acquire(sh.Path)
	}

	for _, n := range m.Nodes {
		sc, _ := scaleVec(n.Scale)
		s.nodes = append(s.nodes, node{
			shape:     n.Shape,
			translate: mgl32.Translate3D(n.Translate[0], n.Translate[1], n.Translate[2]),
			rotations: n.Rotate,
			scale:     mgl32.Scale3D(sc.X(), sc.Y(), sc.Z()),
		})
	}

	core.LogInfo("scene '%s' created with %d shapes and %d nodes", s.Name, len(s.shapes), len(s.nodes))
	return s, nil
}

// Ready reports whether every shape of the scene has loaded.
func (s *Scene) Ready() bool {
	for _, mesh := range s.shapes {
		if !mesh.Ready() {
			return false
		}
	}
	return true
}

func (s *Scene) NodeCount() int {
	return len(s.nodes)
}

func (s *Scene) Shape(name string) (*metadata.Mesh, bool) {
	mesh, ok := s.shapes[name]
	return mesh, ok
}

// ModelMatrix returns the model matrix of node i at scene time t, in seconds.
func (s *Scene) ModelMatrix(i int, t float64) mgl32.Mat4 {
	n := s.nodes[i]
	model := s.root.Mul4(n.translate)
	for _, r := range n.rotations {
		angle := r.Angle + r.Rate*float32(t)
		model = model.Mul4(mgl32.HomogRotate3D(angle, mgl32.Vec3(r.Axis).Normalize()))
	}
	return model.Mul4(n.scale)
}

// Draw issues one draw per node. Nodes whose mesh is not ready are skipped
// by the renderer. Returns the number of nodes drawn.
func (s *Scene) Draw(r Renderer, t float64) int {
	drawn := 0
	for i, n := range s.nodes {
		if r.DrawMesh(s.shapes[n.shape], s.ModelMatrix(i, t)) {
			drawn++
		}
	}
	return drawn
}
