package renderer

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
)

type FrameStats struct {
	Frame   uint64
	Drawn   int
	Skipped int
}

// Renderer is the frontend scenes draw through. It uploads a mesh the first
// time it is drawn after becoming ready, re-uploads it when its generation
// changes and never draws a mesh that is not ready.
type Renderer struct {
	backend RendererBackend

	mutex    sync.Mutex
	uploaded map[uuid.UUID]uint32
	current  FrameStats
	last     FrameStats
}

func New(appName string, backend RendererBackend) (*Renderer, error) {
	if err := backend.Initialize(appName); err != nil {
		return nil, err
	}
	return &Renderer{
		backend:  backend,
		uploaded: make(map[uuid.UUID]uint32),
	}, nil
}

func (r *Renderer) BeginFrame(deltaTime float64) error {
	r.mutex.Lock()
	r.current = FrameStats{Frame: r.last.Frame + 1}
	r.mutex.Unlock()
	return r.backend.BeginFrame(deltaTime)
}

func (r *Renderer) EndFrame(deltaTime float64) error {
	r.mutex.Lock()
	r.last = r.current
	r.mutex.Unlock()
	return r.backend.EndFrame(deltaTime)
}

// DrawMesh draws the mesh if it is ready and reports whether it was drawn.
func (r *Renderer) DrawMesh(mesh *metadata.Mesh, model mgl32.Mat4) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data := mesh.Data()
	if data.IsEmpty() {
		r.current.Skipped++
		return false
	}

	gen := mesh.Generation()
	if uploaded, exists := r.uploaded[mesh.UniqueID]; !exists || uploaded != gen {
		if exists {
			r.backend.DestroyGeometry(mesh)
		}
		cfg := data.ToGeometryConfig(mesh.Name)
		if err := r.backend.CreateGeometry(mesh, cfg, cfg.Interleave()); err != nil {
			core.LogError("failed to upload geometry for mesh '%s': %s", mesh.Name, err.Error())
			delete(r.uploaded, mesh.UniqueID)
			r.current.Skipped++
			return false
		}
		r.uploaded[mesh.UniqueID] = gen
	}

	if err := r.backend.DrawGeometry(mesh, model); err != nil {
		core.LogError("failed to draw mesh '%s': %s", mesh.Name, err.Error())
		r.current.Skipped++
		return false
	}
	r.current.Drawn++
	return true
}

// LastFrame returns the statistics of the most recently completed frame.
func (r *Renderer) LastFrame() FrameStats {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.last
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}
