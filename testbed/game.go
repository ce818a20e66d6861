package testbed

import (
	"fmt"

	"github.com/spaghettifunk/objscene/engine"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/renderer"
	"github.com/spaghettifunk/objscene/engine/scene"
)

// SceneGame shows a single scene manifest from the asset directory.
type SceneGame struct {
	*engine.Game
}

type gameState struct {
	sceneName string
	// Block Initialize until every mesh of the scene has loaded.
	waitForMeshes bool

	scene      *scene.Scene
	wasReady   bool
	frameCount uint64
}

func NewSceneGame(config *engine.Config, sceneName string, waitForMeshes bool) *SceneGame {
	g := &SceneGame{
		Game: &engine.Game{
			Config: config,
			State: &gameState{
				sceneName:     sceneName,
				waitForMeshes: waitForMeshes,
			},
		},
	}

	g.FnInitialize = g.Initialize
	g.FnUpdate = g.Update
	g.FnRender = g.Render
	g.FnShutdown = g.Shutdown

	return g
}

func (g *SceneGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *SceneGame) Initialize(e *engine.Engine) error {
	state := g.state()
	core.LogInfo("loading scene '%s'...", state.sceneName)

	s, err := e.LoadScene(state.sceneName)
	if err != nil {
		return fmt.Errorf("failed to load scene '%s': %w", state.sceneName, err)
	}
	state.scene = s

	if state.waitForMeshes {
		e.SystemManager().MeshLoader().Wait()
	}
	return nil
}

func (g *SceneGame) Update(deltaTime float64) error {
	state := g.state()
	state.frameCount++
	if !state.wasReady && state.scene.Ready() {
		state.wasReady = true
		core.LogInfo("scene '%s' fully loaded after %d frames", state.scene.Name, state.frameCount)
	}
	return nil
}

func (g *SceneGame) Render(r *renderer.Renderer, elapsed float64) error {
	g.state().scene.Draw(r, elapsed)
	return nil
}

func (g *SceneGame) Shutdown() error {
	state := g.state()
	if state.scene != nil && !state.wasReady {
		core.LogWarn("scene '%s' never became fully ready", state.scene.Name)
	}
	return nil
}

// Scene returns the loaded scene, or nil before Initialize.
func (g *SceneGame) Scene() *scene.Scene {
	return g.state().scene
}
