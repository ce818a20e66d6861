package engine

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/renderer"
	"github.com/spaghettifunk/objscene/engine/scene"
)

func init() {
	core.SetLogOutput(io.Discard)
}

const sceneManifest = `
name = "pair"

[[shape]]
name = "tri"
path = "models/triangle.obj"

[[shape]]
name = "broken"
path = "models/broken.obj"

[[node]]
shape = "tri"

[[node]]
shape = "tri"
translate = [1.0, 0.0, 0.0]

[[node]]
shape = "broken"
`

func setupAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "models"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"models/triangle.obj": "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 3\n",
		"models/broken.obj":   "v 0 0 0\nf 1 2 9\n",
		"pair.toml":           sceneManifest,
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestEngineRunsScene(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assets.BaseDir = setupAssets(t)
	cfg.Engine.Frames = 3
	cfg.Engine.FrameTime = 0

	var s *scene.Scene
	g := &Game{
		Config: cfg,
		FnInitialize: func(e *Engine) error {
			var err error
			s, err = e.LoadScene("pair.toml")
			if err != nil {
				return err
			}
			e.SystemManager().MeshLoader().Wait()
			return nil
		},
		FnRender: func(r *renderer.Renderer, elapsed float64) error {
			s.Draw(r, elapsed)
			return nil
		},
	}

	e, err := New(g)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	stats := e.Renderer().LastFrame()
	if stats.Frame != 3 {
		t.Fatalf("expected 3 frames; got %d", stats.Frame)
	}
	// The broken mesh degrades to an empty mesh and is never drawn.
	if stats.Drawn != 2 || stats.Skipped != 1 {
		t.Fatalf("expected 2 drawn and 1 skipped; got %+v", stats)
	}
	if draws := e.Backend().Draws(); len(draws) != 6 {
		t.Fatalf("expected 6 recorded draws; got %d", len(draws))
	}

	if err := e.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if e.Stage() != EngineStageShutdown {
		t.Fatalf("expected the engine to be shut down; got stage %d", e.Stage())
	}
	if err := e.Shutdown(); !errors.Is(err, core.ErrShutdown) {
		t.Fatalf("expected ErrShutdown on second shutdown; got %v", err)
	}
}

func TestEngineRunStopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assets.BaseDir = setupAssets(t)
	cfg.Engine.Frames = 0

	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	g := &Game{
		Config: cfg,
		FnUpdate: func(deltaTime float64) error {
			frames++
			if frames == 5 {
				cancel()
			}
			return nil
		},
	}

	e, err := New(g)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Shutdown()

	if err := e.Run(ctx); err == nil {
		t.Fatal("expected Run to fail before Initialize")
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if frames != 5 {
		t.Fatalf("expected 5 frames before cancellation; got %d", frames)
	}
}

func TestEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Workers = 0
	if _, err := New(&Game{Config: cfg}); err == nil {
		t.Fatal("expected an invalid config to be rejected")
	}
	if _, err := New(nil); err == nil {
		t.Fatal("expected a nil game to be rejected")
	}
}
