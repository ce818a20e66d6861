package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/objscene/engine/assets/loaders"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
)

type AssetInfo struct {
	// Path relative to the asset base directory, using forward slashes.
	Name       string
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// ChangeHandler is invoked from the watcher goroutine when an indexed asset is written.
type ChangeHandler func(info AssetInfo)

type AssetManager struct {
	baseDir  string
	assets   map[string]AssetInfo
	loaders  map[metadata.ResourceType]Loader
	handlers []ChangeHandler

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	watching bool
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Initialize indexes every known asset under assetsDir. When watch is set the
// directory tree is also watched and change handlers fire on writes.
func (am *AssetManager) Initialize(assetsDir string, watch bool, modelLoader *loaders.ModelLoader) error {
	abs, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.baseDir = abs

	// Register loaders
	if modelLoader == nil {
		modelLoader = loaders.NewModelLoader()
	}
	am.registerLoader(metadata.ResourceTypeMesh, modelLoader)
	am.registerLoader(metadata.ResourceTypeScene, &loaders.SceneLoader{})

	if err := am.watchRecursive(am.baseDir, watch); err != nil {
		return err
	}

	if watch {
		am.watching = true
		go am.start()
	}

	core.LogInfo("asset manager indexed %d assets under '%s' (watch=%t)", am.Count(), am.baseDir, watch)
	return nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// OnChange registers a handler for modified assets.
func (am *AssetManager) OnChange(h ChangeHandler) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.handlers = append(am.handlers, h)
}

func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Lookup returns the indexed asset with the given name.
func (am *AssetManager) Lookup(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, exists := am.assets[filepath.ToSlash(filepath.Clean(name))]
	return info, exists
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	key := filepath.ToSlash(filepath.Clean(name))

	am.mutex.Lock()
	asset, exists := am.assets[key]
	if !exists {
		am.mutex.Unlock()
		return nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, name)
	}
	if asset.Type != resourceType {
		am.mutex.Unlock()
		return nil, fmt.Errorf("asset %s has type %s; requested %s", name, asset.Type, resourceType)
	}
	// Update the loaded time
	asset.LastLoaded = time.Now()
	am.assets[key] = asset
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.Unlock()

	if !loaderExists {
		return nil, fmt.Errorf("%w: %s", core.ErrNoLoader, asset.Type)
	}

	res, err := loader.Load(asset.Path, resourceType, params)
	if err != nil {
		return nil, err
	}
	res.Name = asset.Name
	return res, nil
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	if asset == nil {
		return nil
	}
	am.mutex.RLock()
	loader, exists := am.loaders[asset.Type]
	am.mutex.RUnlock()
	if !exists {
		return fmt.Errorf("%w: %s", core.ErrNoLoader, asset.Type)
	}
	return loader.Unload(asset)
}

// Shutdown stops the watcher goroutine, if any, and releases the watcher.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return core.ErrShutdown
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	if am.watching {
		<-am.stopped
	}
	return am.fsnotify.Close()
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, true); err != nil {
						core.LogError(err.Error())
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if info, ok := am.handleFileEvent(e.Name); ok {
					am.notify(info)
				}
			}
			// Can't stat a deleted entry, so just pretend it was a file and drop it from the index.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}

		case e, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(e.Error())

		case <-am.done:
			return
		}
	}
}

func (am *AssetManager) notify(info AssetInfo) {
	am.mutex.RLock()
	handlers := make([]ChangeHandler, len(am.handlers))
	copy(handlers, am.handlers)
	am.mutex.RUnlock()

	for _, h := range handlers {
		h(info)
	}
}

// watchRecursive indexes every file under path and, if watch is set, adds all
// directories to the watch list.
func (am *AssetManager) watchRecursive(path string, watch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if watch {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

func (am *AssetManager) assetName(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(am.baseDir, abs)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) (AssetInfo, bool) {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return AssetInfo{}, false
	}
	name, ok := am.assetName(path)
	if !ok {
		return AssetInfo{}, false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	info := AssetInfo{
		Name: name,
		Path: filepath.Join(am.baseDir, filepath.FromSlash(name)),
		Type: assetType,
	}
	if prev, exists := am.assets[name]; exists {
		info.LastLoaded = prev.LastLoaded
	}
	am.assets[name] = info
	return info, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	name, ok := am.assetName(path)
	if !ok {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, name)
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".obj":
		return metadata.ResourceTypeMesh
	case ".toml":
		return metadata.ResourceTypeScene
	default:
		return metadata.ResourceTypeNone
	}
}
