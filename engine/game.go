package engine

import (
	"github.com/spaghettifunk/objscene/engine/renderer"
)

// Game is the application driven by the Engine. Hooks left nil are skipped.
type Game struct {
	Config       *Config
	State        interface{}
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnShutdown   Shutdown
}

type Initialize func(e *Engine) error
type Update func(deltaTime float64) error

// Render draws one frame; elapsed is the time in seconds since Run started.
type Render func(r *renderer.Renderer, elapsed float64) error
type Shutdown func() error
