package scene

import (
	"strings"
	"testing"
)

const houseManifest = `
name = "house"
scale = [1.5]

[[shape]]
name = "ground"
path = "models/plane.obj"

[[shape]]
name = "leaves"
path = "models/leaves.obj"

[[node]]
shape = "ground"
translate = [0.0, -0.6, 0.0]
scale = [5.0]

[[node]]
shape = "leaves"
translate = [1.5, 0.7, 1.0]
scale = [0.25, 0.25, 0.25]

  [[node.rotate]]
  axis = [1.0, 0.0, 0.0]
  angle = 3.14159
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(houseManifest))
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "house" {
		t.Fatalf("expected name 'house'; got '%s'", m.Name)
	}
	if len(m.Shapes) != 2 || len(m.Nodes) != 2 {
		t.Fatalf("expected 2 shapes and 2 nodes; got %d and %d", len(m.Shapes), len(m.Nodes))
	}
	if m.Shapes[1].Path != "models/leaves.obj" {
		t.Fatalf("unexpected shape path '%s'", m.Shapes[1].Path)
	}
	leaves := m.Nodes[1]
	if leaves.Translate != [3]float32{1.5, 0.7, 1.0} {
		t.Fatalf("unexpected translation %v", leaves.Translate)
	}
	if len(leaves.Rotate) != 1 || leaves.Rotate[0].Axis != [3]float32{1, 0, 0} {
		t.Fatalf("unexpected rotations %+v", leaves.Rotate)
	}
}

func TestManifestValidation(t *testing.T) {
	type spec struct {
		descr  string
		input  string
		expErr string
	}

	specs := []spec{
		{
			"missing name",
			`[[shape]]
name = "a"
path = "a.obj"`,
			"scene name is required",
		},
		{
			"shape without path",
			`name = "s"
[[shape]]
name = "a"`,
			"name and path are required",
		},
		{
			"duplicate shape",
			`name = "s"
[[shape]]
name = "a"
path = "a.obj"
[[shape]]
name = "a"
path = "b.obj"`,
			"duplicate name 'a'",
		},
		{
			"unknown shape",
			`name = "s"
[[node]]
shape = "missing"`,
			"unknown shape 'missing'",
		},
		{
			"bad scale",
			`name = "s"
[[shape]]
name = "a"
path = "a.obj"
[[node]]
shape = "a"
scale = [1.0, 2.0]`,
			"scale must have 1 or 3 components",
		},
		{
			"zero axis",
			`name = "s"
[[shape]]
name = "a"
path = "a.obj"
[[node]]
shape = "a"
[[node.rotate]]
axis = [0.0, 0.0, 0.0]`,
			"axis must not be zero",
		},
		{
			"not toml",
			`name = `,
			"invalid scene manifest",
		},
	}

	for specIndex, spec := range specs {
		_, err := ParseManifest([]byte(spec.input))
		if err == nil || !strings.Contains(err.Error(), spec.expErr) {
			t.Fatalf("[spec %d: %s] expected error containing '%s'; got %v", specIndex, spec.descr, spec.expErr, err)
		}
	}
}
