package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
)

// RendererBackend is the GPU-facing side of the renderer. Geometry is created
// once per mesh generation and drawn with a model matrix each frame.
type RendererBackend interface {
	Initialize(appName string) error
	Shutdown() error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	CreateGeometry(mesh *metadata.Mesh, config *metadata.GeometryConfig, interleaved []float32) error
	DestroyGeometry(mesh *metadata.Mesh)
	DrawGeometry(mesh *metadata.Mesh, model mgl32.Mat4) error
}
