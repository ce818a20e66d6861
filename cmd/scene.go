package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spaghettifunk/objscene/engine"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/testbed"
	"github.com/urfave/cli"
)

// RunScene loads a scene manifest from the asset directory and renders it
// with the headless renderer.
func RunScene(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return errors.New("missing scene manifest argument")
	}
	if ctx.IsSet("frames") {
		cfg.Engine.Frames = ctx.Int("frames")
	}
	if ctx.IsSet("assets") {
		cfg.Assets.BaseDir = ctx.String("assets")
	}
	if ctx.Bool("watch") {
		cfg.Assets.Watch = true
	}

	g := testbed.NewSceneGame(cfg, ctx.Args().First(), ctx.Bool("wait"))
	e, err := engine.New(g.Game)
	if err != nil {
		return err
	}
	defer e.Shutdown()

	if err := e.Initialize(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			core.LogInfo("interrupted, stopping...")
			cancel()
		case <-runCtx.Done():
		}
	}()

	if err := e.Run(runCtx); err != nil {
		return err
	}

	fmt.Fprint(ctx.App.Writer, displaySceneStats(g, e))
	return nil
}

func displaySceneStats(g *testbed.SceneGame, e *engine.Engine) string {
	stats := e.Renderer().LastFrame()
	fps, msAvg := core.MetricsFrame()
	mm := core.MetricsMeshes()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Statistic", "Value"})
	table.Append([]string{g.Scene().Name, "Nodes", fmt.Sprintf("%d", g.Scene().NodeCount())})
	table.Append([]string{"", "Ready", fmt.Sprintf("%t", g.Scene().Ready())})
	table.Append([]string{"Last frame", "Frame", fmt.Sprintf("%d", stats.Frame)})
	table.Append([]string{"", "Drawn", fmt.Sprintf("%d", stats.Drawn)})
	table.Append([]string{"", "Skipped", fmt.Sprintf("%d", stats.Skipped)})
	table.Append([]string{"Timing", "FPS", fmt.Sprintf("%.0f", fps)})
	table.Append([]string{"", "Avg frame", fmt.Sprintf("%.3fms", msAvg)})
	table.Append([]string{"Meshes", "Loaded", fmt.Sprintf("%d", mm.Loaded)})
	table.Append([]string{"", "Failed", fmt.Sprintf("%d", mm.Failed)})
	table.Append([]string{"", "Vertices", fmt.Sprintf("%d", mm.Vertices)})
	table.Append([]string{"", "Indices", fmt.Sprintf("%d", mm.Indices)})

	table.Render()
	return buf.String()
}
