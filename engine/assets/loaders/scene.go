package loaders

import (
	"fmt"
	"os"

	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
	"github.com/spaghettifunk/objscene/engine/scene"
)

// SceneLoader reads TOML scene manifests. Data is a *scene.Manifest.
type SceneLoader struct{}

func (sl *SceneLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeScene {
		return nil, fmt.Errorf("scene loader cannot load resource type %s", assetType)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m, err := scene.ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &metadata.Resource{
		Name:     path,
		FullPath: path,
		Type:     metadata.ResourceTypeScene,
		DataSize: uint64(len(data)),
		Data:     m,
	}, nil
}

func (sl *SceneLoader) Unload(res *metadata.Resource) error {
	if res != nil {
		res.Data = nil
		res.DataSize = 0
	}
	return nil
}
