package main

import (
	"os"

	"github.com/spaghettifunk/objscene/cmd"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "objscene"
	app.Usage = "load wavefront obj models into indexed meshes and render scenes headless"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "objscene.toml",
			Usage: "TOML configuration file; skipped when the default file does not exist",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "inspect",
			Usage: "parse obj files and print mesh statistics",
			Description: `
Parse each wavefront obj file with the configured loader options and print the
number of records, faces, triangles and unique vertices, together with the size
of the bounding box in file units.`,
			ArgsUsage: "model1.obj model2.obj ...",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "lenient",
					Usage: "store malformed numbers as NaN instead of failing",
				},
			},
			Action: cmd.Inspect,
		},
		{
			Name:  "scene",
			Usage: "render a scene manifest with the headless renderer",
			Description: `
Load a TOML scene manifest from the asset directory, acquire its meshes in the
background and draw the scene for the configured number of frames. Meshes are
only drawn once they have finished loading.`,
			ArgsUsage: "scenes/house.toml",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "frames, f",
					Usage: "number of frames to render; 0 renders until interrupted",
				},
				cli.StringFlag{
					Name:  "assets, a",
					Usage: "asset base directory",
				},
				cli.BoolFlag{
					Name:  "wait",
					Usage: "wait for every mesh to load before the first frame",
				},
				cli.BoolFlag{
					Name:  "watch",
					Usage: "hot reload models when they change on disk",
				},
			},
			Action: cmd.RunScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		core.LogFatal("%s", err.Error())
	}
}
