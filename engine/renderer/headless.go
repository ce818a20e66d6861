package renderer

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/spaghettifunk/objscene/engine/containers"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
)

type GeometryRecord struct {
	MeshName    string
	Generation  uint32
	VertexCount uint32
	IndexCount  uint32
	BufferSize  int
}

type DrawRecord struct {
	Frame    uint64
	MeshName string
	Model    mgl32.Mat4
}

// HeadlessBackend keeps geometry in memory and records every draw call.
type HeadlessBackend struct {
	mutex      sync.Mutex
	appName    string
	frame      uint64
	inFrame    bool
	geometries map[uuid.UUID]GeometryRecord
	draws      *containers.RingQueue[DrawRecord]
}

const DefaultKeepDraws = 1024

// NewHeadlessBackend keeps at most keepDraws draw records; older ones are
// dropped. A non-positive keepDraws uses DefaultKeepDraws.
func NewHeadlessBackend(keepDraws int) *HeadlessBackend {
	if keepDraws <= 0 {
		keepDraws = DefaultKeepDraws
	}
	return &HeadlessBackend{
		geometries: make(map[uuid.UUID]GeometryRecord),
		draws:      containers.NewRingQueue[DrawRecord](keepDraws),
	}
}

func (hb *HeadlessBackend) Initialize(appName string) error {
	hb.appName = appName
	core.LogDebug("headless renderer backend initialized for '%s'", appName)
	return nil
}

func (hb *HeadlessBackend) Shutdown() error {
	hb.mutex.Lock()
	defer hb.mutex.Unlock()
	hb.geometries = make(map[uuid.UUID]GeometryRecord)
	hb.draws.Clear()
	return nil
}

func (hb *HeadlessBackend) BeginFrame(deltaTime float64) error {
	hb.mutex.Lock()
	defer hb.mutex.Unlock()
	if hb.inFrame {
		return fmt.Errorf("frame %d already in progress", hb.frame)
	}
	hb.inFrame = true
	hb.frame++
	return nil
}

func (hb *HeadlessBackend) EndFrame(deltaTime float64) error {
	hb.mutex.Lock()
	defer hb.mutex.Unlock()
	if !hb.inFrame {
		return fmt.Errorf("no frame in progress")
	}
	hb.inFrame = false
	return nil
}

func (hb *HeadlessBackend) CreateGeometry(mesh *metadata.Mesh, config *metadata.GeometryConfig, interleaved []float32) error {
	if len(config.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(config.Indices))
	}
	hb.mutex.Lock()
	defer hb.mutex.Unlock()
	hb.geometries[mesh.UniqueID] = GeometryRecord{
		MeshName:    mesh.Name,
		Generation:  mesh.Generation(),
		VertexCount: config.VertexCount,
		IndexCount:  config.IndexCount,
		BufferSize:  len(interleaved) * 4,
	}
	return nil
}

func (hb *HeadlessBackend) DestroyGeometry(mesh *metadata.Mesh) {
	hb.mutex.Lock()
	defer hb.mutex.Unlock()
	delete(hb.geometries, mesh.UniqueID)
}

func (hb *HeadlessBackend) DrawGeometry(mesh *metadata.Mesh, model mgl32.Mat4) error {
	hb.mutex.Lock()
	defer hb.mutex.Unlock()
	if !hb.inFrame {
		return fmt.Errorf("draw outside of a frame")
	}
	if _, exists := hb.geometries[mesh.UniqueID]; !exists {
		return fmt.Errorf("no geometry uploaded for mesh '%s'", mesh.Name)
	}
	hb.draws.Push(DrawRecord{Frame: hb.frame, MeshName: mesh.Name, Model: model})
	return nil
}

func (hb *HeadlessBackend) Geometry(mesh *metadata.Mesh) (GeometryRecord, bool) {
	hb.mutex.Lock()
	defer hb.mutex.Unlock()
	g, ok := hb.geometries[mesh.UniqueID]
	return g, ok
}

func (hb *HeadlessBackend) Draws() []DrawRecord {
	hb.mutex.Lock()
	defer hb.mutex.Unlock()
	return hb.draws.Items()
}
