package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/objscene/engine/assets"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
)

type MeshLoaderSystem struct {
	assetManager *assets.AssetManager
	jobSystem    *JobSystem

	mutex  sync.Mutex
	meshes map[string]*metadata.Mesh
}

func NewMeshLoaderSystem(am *assets.AssetManager, js *JobSystem) (*MeshLoaderSystem, error) {
	if am == nil || js == nil {
		return nil, fmt.Errorf("mesh loader system requires an asset manager and a job system")
	}
	return &MeshLoaderSystem{
		assetManager: am,
		jobSystem:    js,
		meshes:       make(map[string]*metadata.Mesh),
	}, nil
}

func (mls *MeshLoaderSystem) Shutdown() error {
	mls.mutex.Lock()
	defer mls.mutex.Unlock()
	mls.meshes = make(map[string]*metadata.Mesh)
	return nil
}

// Acquire returns the mesh for the named asset. The first call schedules a
// load on the job system; the mesh becomes ready once the load completes.
func (mls *MeshLoaderSystem) Acquire(resourceName string) *metadata.Mesh {
	mls.mutex.Lock()
	mesh, exists := mls.meshes[resourceName]
	if !exists {
		mesh = metadata.NewMesh(resourceName)
		mls.meshes[resourceName] = mesh
	}
	mls.mutex.Unlock()

	if !exists {
		mls.submit(mesh)
	}
	return mesh
}

// LoadSync loads the named asset on the calling goroutine.
func (mls *MeshLoaderSystem) LoadSync(resourceName string) (*metadata.Mesh, error) {
	mls.mutex.Lock()
	mesh, exists := mls.meshes[resourceName]
	if !exists {
		mesh = metadata.NewMesh(resourceName)
		mls.meshes[resourceName] = mesh
	}
	mls.mutex.Unlock()

	params := &metadata.MeshLoadParams{ResourceName: resourceName, OutMesh: mesh}
	result, err := mls.meshLoadJobStart(params)
	if err != nil {
		mls.meshLoadJobFail(params, err)
		return mesh, err
	}
	mls.meshLoadJobSuccess(result)
	return mesh, nil
}

// Reload re-parses a mesh that was already acquired. Unknown names are ignored.
func (mls *MeshLoaderSystem) Reload(resourceName string) {
	mls.mutex.Lock()
	mesh, exists := mls.meshes[resourceName]
	mls.mutex.Unlock()

	if exists {
		core.LogInfo("Reloading mesh '%s'.", resourceName)
		mls.submit(mesh)
	}
}

// OnAssetChanged is registered with the asset manager to hot reload meshes.
func (mls *MeshLoaderSystem) OnAssetChanged(info assets.AssetInfo) {
	if info.Type == metadata.ResourceTypeMesh {
		mls.Reload(info.Name)
	}
}

func (mls *MeshLoaderSystem) Unload(mesh *metadata.Mesh) {
	if mesh == nil {
		return
	}
	mls.mutex.Lock()
	defer mls.mutex.Unlock()
	if m, exists := mls.meshes[mesh.Name]; exists && m == mesh {
		delete(mls.meshes, mesh.Name)
	}
	mesh.Install(nil)
}

// Wait blocks until all scheduled mesh loads have finished.
func (mls *MeshLoaderSystem) Wait() {
	mls.jobSystem.Wait()
}

func (mls *MeshLoaderSystem) submit(mesh *metadata.Mesh) {
	params := &metadata.MeshLoadParams{ResourceName: mesh.Name, OutMesh: mesh}
	err := mls.jobSystem.Submit(metadata.JobTask{
		InputParams: params,
		OnStart: func(p interface{}) (interface{}, error) {
			return mls.meshLoadJobStart(p)
		},
		OnComplete: mls.meshLoadJobSuccess,
		OnFailure:  mls.meshLoadJobFail,
	})
	if err != nil {
		mls.meshLoadJobFail(params, err)
	}
}

/**
 * @brief Called when a mesh loading job begins.
 *
 * @param params Mesh loading parameters.
 * @return The parameters with the loaded resource attached.
 */
func (mls *MeshLoaderSystem) meshLoadJobStart(params interface{}) (*metadata.MeshLoadParams, error) {
	loadParams, ok := params.(*metadata.MeshLoadParams)
	if !ok {
		return nil, fmt.Errorf("failed to cast params to `*metadata.MeshLoadParams`")
	}
	res, err := mls.assetManager.LoadAsset(loadParams.ResourceName, metadata.ResourceTypeMesh, nil)
	if err != nil {
		return nil, err
	}
	md, ok := res.Data.(*metadata.MeshData)
	if !ok {
		return nil, fmt.Errorf("resource '%s' does not contain mesh data", loadParams.ResourceName)
	}
	if err := md.Validate(); err != nil {
		return nil, fmt.Errorf("mesh '%s' is invalid: %w", loadParams.ResourceName, err)
	}
	loadParams.MeshResource = res
	return loadParams, nil
}

/**
 * @brief Called when the job completes successfully.
 *
 * @param params The parameters passed from the job after completion.
 */
func (mls *MeshLoaderSystem) meshLoadJobSuccess(params interface{}) {
	meshParams, ok := params.(*metadata.MeshLoadParams)
	if !ok {
		core.LogError("failed to cast params to `*metadata.MeshLoadParams`")
		return
	}

	md := meshParams.MeshResource.Data.(*metadata.MeshData)
	meshParams.OutMesh.Install(md)
	core.MetricsMeshLoaded(len(md.Positions), len(md.Indices))

	core.LogDebug("Successfully loaded mesh '%s' (%d vertices, %d triangles, generation %d).",
		meshParams.ResourceName, md.VertexCount(), md.TriangleCount(), meshParams.OutMesh.Generation())

	// The mesh keeps the data; only the resource wrapper is released.
	meshParams.MeshResource.Data = nil
}

/**
 * @brief Called when the job fails. A mesh that never loaded is left empty
 * and not ready; a mesh that was ready keeps its previous data.
 *
 * @param params Parameters passed when a job fails.
 */
func (mls *MeshLoaderSystem) meshLoadJobFail(params interface{}, err error) {
	core.MetricsMeshFailed()
	meshParams, ok := params.(*metadata.MeshLoadParams)
	if !ok {
		return
	}
	core.LogError("Failed to load mesh '%s': %v", meshParams.ResourceName, err)
	if meshParams.OutMesh.Data() == nil {
		meshParams.OutMesh.Install(metadata.NewEmptyMeshData())
	}
}
