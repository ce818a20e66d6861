package loaders

import (
	"fmt"
	"os"

	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
)

// ModelLoader fetches OBJ files from disk and parses them into mesh data.
type ModelLoader struct {
	Options []ObjOption
}

func NewModelLoader(opts ...ObjOption) *ModelLoader {
	return &ModelLoader{Options: opts}
}

// Load returns a resource whose Data is a *metadata.MeshData. Both fetch and
// parse failures are returned as errors. Extra options may be passed as params.
func (ml *ModelLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeMesh {
		return nil, fmt.Errorf("model loader cannot load resource type %s", assetType)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	md, err := ParseObj(string(data), ml.options(params)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &metadata.Resource{
		Name:     path,
		FullPath: path,
		Type:     metadata.ResourceTypeMesh,
		DataSize: uint64(len(data)),
		Data:     md,
	}, nil
}

// LoadTolerant never fails. A fetch failure is treated as empty input and a
// parse failure as an empty mesh.
func (ml *ModelLoader) LoadTolerant(path string, params interface{}) *metadata.MeshData {
	data, err := os.ReadFile(path)
	if err != nil {
		core.LogError("failed to read model '%s': %s", path, err.Error())
		data = nil
	}
	return LoadObj(string(data), ml.options(params)...)
}

func (ml *ModelLoader) options(params interface{}) []ObjOption {
	extra, ok := params.([]ObjOption)
	if !ok || len(extra) == 0 {
		return ml.Options
	}
	opts := make([]ObjOption, 0, len(ml.Options)+len(extra))
	opts = append(opts, ml.Options...)
	return append(opts, extra...)
}

func (ml *ModelLoader) Unload(res *metadata.Resource) error {
	if res != nil {
		res.Data = nil
		res.DataSize = 0
	}
	return nil
}
