package scene

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// ShapeConfig names an OBJ asset, relative to the asset base directory.
type ShapeConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// RotationConfig rotates about Axis by Angle radians plus Rate radians per second of scene time.
type RotationConfig struct {
	Axis  [3]float32 `toml:"axis"`
	Angle float32    `toml:"angle"`
	Rate  float32    `toml:"rate"`
}

// NodeConfig places one shape. The model matrix is root * T * R... * S.
// Scale may hold 1 (uniform) or 3 components and defaults to 1.
type NodeConfig struct {
	Shape     string           `toml:"shape"`
	Translate [3]float32       `toml:"translate"`
	Rotate    []RotationConfig `toml:"rotate"`
	Scale     []float32        `toml:"scale"`
}

type Manifest struct {
	Name string `toml:"name"`

	// Scale applied to every node, like Scale on a node.
	Scale  []float32     `toml:"scale"`
	Shapes []ShapeConfig `toml:"shape"`
	Nodes  []NodeConfig  `toml:"node"`
}

func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("invalid scene manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("scene name is required")
	}
	if _, err := scaleVec(m.Scale); err != nil {
		return fmt.Errorf("scene scale: %w", err)
	}

	shapes := make(map[string]struct{}, len(m.Shapes))
	for i, s := range m.Shapes {
		if s.Name == "" || s.Path == "" {
			return fmt.Errorf("shape %d: name and path are required", i)
		}
		if _, exists := shapes[s.Name]; exists {
			return fmt.Errorf("shape %d: duplicate name '%s'", i, s.Name)
		}
		shapes[s.Name] = struct{}{}
	}

	for i, n := range m.Nodes {
		if _, exists := shapes[n.Shape]; !exists {
			return fmt.Errorf("node %d: unknown shape '%s'", i, n.Shape)
		}
		if _, err := scaleVec(n.Scale); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		for j, r := range n.Rotate {
			if mgl32.Vec3(r.Axis).Len() == 0 {
				return fmt.Errorf("node %d rotation %d: axis must not be zero", i, j)
			}
		}
	}
	return nil
}

func scaleVec(s []float32) (mgl32.Vec3, error) {
	switch len(s) {
	case 0:
		return mgl32.Vec3{1, 1, 1}, nil
	case 1:
		return mgl32.Vec3{s[0], s[0], s[0]}, nil
	case 3:
		return mgl32.Vec3{s[0], s[1], s[2]}, nil
	default:
		return mgl32.Vec3{}, fmt.Errorf("scale must have 1 or 3 components; got %d", len(s))
	}
}
