package assets

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
	"github.com/spaghettifunk/objscene/engine/scene"
)

const triangleObj = "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 3\n"

func init() {
	core.SetLogOutput(io.Discard)
}

func setupAssetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "scenes"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"triangle.obj":      triangleObj,
		"scenes/house.toml": "name = 'house'\n",
		"README.md":         "not an asset",
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDetermineAssetType(t *testing.T) {
	type spec struct {
		in  string
		out metadata.ResourceType
	}
	specs := []spec{
		{"models/House.obj", metadata.ResourceTypeMesh},
		{"house.toml", metadata.ResourceTypeScene},
		{"house.mtl", metadata.ResourceTypeNone},
		{"texture.png", metadata.ResourceTypeNone},
	}
	for idx, s := range specs {
		if got := determineAssetType(s.in); got != s.out {
			t.Fatalf("[spec %d] expected %s; got %s", idx, s.out, got)
		}
	}
}

func TestAssetManagerLoad(t *testing.T) {
	dir := setupAssetDir(t)

	am, err := NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(dir, false, nil); err != nil {
		t.Fatal(err)
	}
	defer am.Shutdown()

	if am.Count() != 2 {
		t.Fatalf("expected 2 indexed assets; got %d", am.Count())
	}
	if _, ok := am.Lookup("scenes/house.toml"); !ok {
		t.Fatal("expected nested scene manifest to be indexed")
	}

	res, err := am.LoadAsset("triangle.obj", metadata.ResourceTypeMesh, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Name != "triangle.obj" {
		t.Fatalf("expected resource name triangle.obj; got %s", res.Name)
	}
	if md := res.Data.(*metadata.MeshData); md.TriangleCount() != 1 {
		t.Fatalf("expected 1 triangle; got %d", md.TriangleCount())
	}
	if err := am.UnloadAsset(res); err != nil {
		t.Fatal(err)
	}

	if _, err := am.LoadAsset("missing.obj", metadata.ResourceTypeMesh, nil); !errors.Is(err, core.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound; got %v", err)
	}
	if _, err := am.LoadAsset("scenes/house.toml", metadata.ResourceTypeMesh, nil); err == nil {
		t.Fatal("expected a type mismatch error")
	}

	res, err = am.LoadAsset("scenes/house.toml", metadata.ResourceTypeScene, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m := res.Data.(*scene.Manifest); m.Name != "house" {
		t.Fatalf("expected scene 'house'; got '%s'", m.Name)
	}

	if err := am.UnloadAsset(&metadata.Resource{Type: metadata.ResourceTypeNone}); !errors.Is(err, core.ErrNoLoader) {
		t.Fatalf("expected ErrNoLoader; got %v", err)
	}
}

func TestAssetManagerWatch(t *testing.T) {
	dir := setupAssetDir(t)

	am, err := NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(dir, true, nil); err != nil {
		t.Fatal(err)
	}

	changed := make(chan AssetInfo, 16)
	am.OnChange(func(info AssetInfo) {
		changed <- info
	})

	if err := os.WriteFile(filepath.Join(dir, "scenes", "teapot.obj"), []byte(triangleObj), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case info := <-changed:
			if info.Name != "scenes/teapot.obj" {
				continue
			}
			if info.Type != metadata.ResourceTypeMesh {
				t.Fatalf("expected mesh type; got %s", info.Type)
			}
			if err := am.Shutdown(); err != nil {
				t.Fatal(err)
			}
			if err := am.Shutdown(); !errors.Is(err, core.ErrShutdown) {
				t.Fatalf("expected ErrShutdown on second shutdown; got %v", err)
			}
			return
		case <-timeout:
			t.Fatal("timed out waiting for change notification")
		}
	}
}
