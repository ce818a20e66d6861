package core

import "sync"

const AVG_COUNT uint8 = 30

// MetricsState tracks frame timings of the headless loop and counters for mesh loading.
// Mesh loads complete on job workers, so every access goes through the mutex.
type MetricsState struct {
	mu sync.Mutex

	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64

	MeshesLoaded   uint64
	MeshesFailed   uint64
	VerticesLoaded uint64
	IndicesLoaded  uint64
}

var onceMetrics sync.Once
var metricsState *MetricsState

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{}
	})
	return nil
}

func metrics() *MetricsState {
	_ = MetricsInitialize()
	return metricsState
}

func MetricsUpdate(frameElapsedTime float64) {
	m := metrics()
	m.mu.Lock()
	defer m.mu.Unlock()

	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	m.MStimes[m.FrameAVGCounter] = frameMS
	if m.FrameAVGCounter == AVG_COUNT-1 {
		m.MSavg = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			m.MSavg += m.MStimes[i]
		}
		m.MSavg /= float64(AVG_COUNT)
	}
	m.FrameAVGCounter++
	m.FrameAVGCounter %= AVG_COUNT

	// Calculate Frames per second.
	m.AccumulatedFrameMS += frameMS
	if m.AccumulatedFrameMS > 1000 {
		m.FPS = float64(m.Frames)
		m.AccumulatedFrameMS -= 1000
		m.Frames = 0
	}

	// Count all Frames.
	m.Frames++
}

func MetricsFrame() (float64, float64) {
	m := metrics()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FPS, m.MSavg
}

// MetricsMeshLoaded records a successfully installed mesh.
func MetricsMeshLoaded(vertices, indices int) {
	m := metrics()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MeshesLoaded++
	m.VerticesLoaded += uint64(vertices)
	m.IndicesLoaded += uint64(indices)
}

// MetricsMeshFailed records a mesh that degraded to the empty failure mode.
func MetricsMeshFailed() {
	m := metrics()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MeshesFailed++
}

// MeshMetrics is a snapshot of the mesh loading counters.
type MeshMetrics struct {
	Loaded   uint64
	Failed   uint64
	Vertices uint64
	Indices  uint64
}

func MetricsMeshes() MeshMetrics {
	m := metrics()
	m.mu.Lock()
	defer m.mu.Unlock()
	return MeshMetrics{
		Loaded:   m.MeshesLoaded,
		Failed:   m.MeshesFailed,
		Vertices: m.VerticesLoaded,
		Indices:  m.IndicesLoaded,
	}
}
