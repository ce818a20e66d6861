package cmd

import (
	"os"

	"github.com/spaghettifunk/objscene/engine"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/urfave/cli"
)

// loadConfig reads the file given by --config, if any, and applies the
// verbosity flags on top of it.
func loadConfig(ctx *cli.Context) (*engine.Config, error) {
	cfg := engine.DefaultConfig()
	if path := ctx.GlobalString("config"); path != "" {
		if _, err := os.Stat(path); err == nil || ctx.GlobalIsSet("config") {
			loaded, err := engine.LoadConfig(path)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}

	if ctx.GlobalBool("v") {
		cfg.Engine.LogLevel = "info"
	}
	if ctx.GlobalBool("vv") {
		cfg.Engine.LogLevel = "debug"
	}
	core.SetLogLevel(core.ParseLogLevel(cfg.Engine.LogLevel))
	return cfg, nil
}
