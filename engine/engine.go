package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/spaghettifunk/objscene/engine/assets"
	"github.com/spaghettifunk/objscene/engine/assets/loaders"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/renderer"
	"github.com/spaghettifunk/objscene/engine/renderer/metadata"
	"github.com/spaghettifunk/objscene/engine/scene"
	"github.com/spaghettifunk/objscene/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released all of its systems
	EngineStageShutdown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *Config
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	backend       *renderer.HeadlessBackend
	renderer      *renderer.Renderer
	clock         *core.Clock
	lastTime      float64
}

func New(g *Game) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("engine requires a game instance")
	}
	if g.Config == nil {
		g.Config = DefaultConfig()
	}
	if err := g.Config.Validate(); err != nil {
		return nil, err
	}
	core.SetLogLevel(g.Config.Engine.logLevel())

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       g.Config,
		assetManager: am,
		backend:      renderer.NewHeadlessBackend(maxRecordedDraws),
		clock:        core.NewClock(),
	}, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine already initialized")
	}
	e.currentStage = EngineStageInitializing

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	modelLoader := loaders.NewModelLoader(e.config.Loader.ObjOptions()...)
	if err := e.assetManager.Initialize(e.config.Assets.BaseDir, e.config.Assets.Watch, modelLoader); err != nil {
		return err
	}

	sm, err := systems.NewSystemManager(systems.SystemManagerConfig{
		Workers:   e.config.Engine.Workers,
		QueueSize: e.config.Engine.QueueSize,
	}, e.assetManager)
	if err != nil {
		return err
	}
	e.systemManager = sm

	r, err := renderer.New(e.config.Engine.Name, e.backend)
	if err != nil {
		return err
	}
	e.renderer = r

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("engine '%s' initialized", e.config.Engine.Name)
	return nil
}

// LoadScene reads a scene manifest from the asset directory and acquires its
// meshes. The meshes load in the background and are drawn once ready.
func (e *Engine) LoadScene(name string) (*scene.Scene, error) {
	res, err := e.assetManager.LoadAsset(name, metadata.ResourceTypeScene, nil)
	if err != nil {
		return nil, err
	}
	defer e.assetManager.UnloadAsset(res)

	return scene.New(res.Data.(*scene.Manifest), e.systemManager.MeshLoader())
}

// Run drives the game for the configured number of frames, or until ctx is
// cancelled when no frame count is configured.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine is not initialized")
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	targetFrameSeconds := e.config.Engine.frameTime()
	frames := e.config.Engine.Frames

	for frame := 0; frames == 0 || frame < frames; frame++ {
		if err := ctx.Err(); err != nil {
			break
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := time.Now()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err.Error())
				return err
			}
		}

		if err := e.renderer.BeginFrame(delta); err != nil {
			return err
		}
		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(e.renderer, currentTime); err != nil {
				core.LogError("game render failed, shutting down: %s", err.Error())
				return err
			}
		}
		if err := e.renderer.EndFrame(delta); err != nil {
			return err
		}

		frameElapsedTime := time.Since(frameStartTime).Seconds()
		core.MetricsUpdate(frameElapsedTime)

		stats := e.renderer.LastFrame()
		core.LogDebug("frame %d: %d drawn, %d skipped (%.3fms)", stats.Frame, stats.Drawn, stats.Skipped, frameElapsedTime*1000)

		if remaining := targetFrameSeconds - frameElapsedTime; remaining > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(time.Duration(remaining * float64(time.Second))):
			}
		}

		e.lastTime = currentTime
	}

	fps, msAvg := core.MetricsFrame()
	mm := core.MetricsMeshes()
	core.LogInfo("run finished after %.2fs: %.0f fps, %.3fms avg frame, %d meshes loaded, %d failed",
		e.clock.Elapsed(), fps, msAvg, mm.Loaded, mm.Failed)

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown || e.currentStage == EngineStageShuttingDown {
		return core.ErrShutdown
	}
	e.currentStage = EngineStageShuttingDown
	e.clock.Stop()

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}

	if e.systemManager != nil {
		if err := e.systemManager.Shutdown(); err != nil {
			return err
		}
	}
	if e.renderer != nil {
		if err := e.renderer.Shutdown(); err != nil {
			return err
		}
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}

	e.currentStage = EngineStageShutdown
	core.LogInfo("engine '%s' shut down", e.config.Engine.Name)
	return nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Config() *Config {
	return e.config
}

func (e *Engine) AssetManager() *assets.AssetManager {
	return e.assetManager
}

func (e *Engine) SystemManager() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

func (e *Engine) Backend() *renderer.HeadlessBackend {
	return e.backend
}
