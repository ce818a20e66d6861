package testbed

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/objscene/engine"
	"github.com/spaghettifunk/objscene/engine/assets/loaders"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/scene"
)

func init() {
	core.SetLogOutput(io.Discard)
}

func TestModelsParseStrictly(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("assets", "models", "*.obj"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("expected testbed models")
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		md, stats, err := loaders.ParseObjWithStats(string(data))
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if md.IsEmpty() {
			t.Fatalf("%s: expected a non-empty mesh", path)
		}
		if err := md.Validate(); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if stats.SkippedFaces != 0 || stats.TruncatedFaces != 0 {
			t.Fatalf("%s: unexpected skipped faces %+v", path, stats)
		}
	}
}

func TestScenesRun(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("assets", "scenes", "*.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("expected testbed scenes")
	}

	for _, path := range paths {
		m, err := scene.LoadManifest(path)
		if err != nil {
			t.Fatal(err)
		}

		cfg := engine.DefaultConfig()
		cfg.Assets.BaseDir = "assets"
		cfg.Engine.Frames = 2
		cfg.Engine.FrameTime = 0

		name := strings.TrimPrefix(filepath.ToSlash(path), "assets/")
		g := NewSceneGame(cfg, name, true)
		e, err := engine.New(g.Game)
		if err != nil {
			t.Fatal(err)
		}
		if err := e.Initialize(); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if err := e.Run(context.Background()); err != nil {
			t.Fatalf("%s: %v", path, err)
		}

		if !g.Scene().Ready() {
			t.Fatalf("%s: expected every mesh to be ready", path)
		}
		if stats := e.Renderer().LastFrame(); stats.Drawn != len(m.Nodes) || stats.Skipped != 0 {
			t.Fatalf("%s: expected %d nodes drawn; got %+v", path, len(m.Nodes), stats)
		}
		if err := e.Shutdown(); err != nil {
			t.Fatal(err)
		}
	}
}
