package systems

import (
	"github.com/spaghettifunk/objscene/engine/assets"
)

type SystemManagerConfig struct {
	Workers   int
	QueueSize int
}

type SystemManager struct {
	jobSystem        *JobSystem
	meshLoaderSystem *MeshLoaderSystem
}

func NewSystemManager(config SystemManagerConfig, am *assets.AssetManager) (*SystemManager, error) {
	js, err := NewJobSystem(config.Workers, config.QueueSize)
	if err != nil {
		return nil, err
	}
	mls, err := NewMeshLoaderSystem(am, js)
	if err != nil {
		_ = js.Shutdown()
		return nil, err
	}
	am.OnChange(mls.OnAssetChanged)

	return &SystemManager{
		jobSystem:        js,
		meshLoaderSystem: mls,
	}, nil
}

func (sm *SystemManager) MeshLoader() *MeshLoaderSystem {
	return sm.meshLoaderSystem
}

func (sm *SystemManager) Jobs() *JobSystem {
	return sm.jobSystem
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.meshLoaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.jobSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
