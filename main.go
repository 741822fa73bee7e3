package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/bsptrace/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "bsptrace"
	app.Usage = "build BSP trees for scenes and trace rays against them"
	app.Version = "0.0.1"
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
			Name:  "log-level",
			Usage: "log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "build partition trees for one or more scenes and display statistics",
			Description: `
Parse a scene definition from a wavefront obj file, partition its primitives
into a BSP tree and display scene and tree statistics.`,
			ArgsUsage: "scene_file1.obj scene_file2.obj ...",
			Flags:     cmd.SceneFlags,
			Action:    cmd.BuildTree,
		},
		{
			Name:      "info",
			Usage:     "display scene statistics and the partition tree layout",
			ArgsUsage: "scene_file.obj",
			Flags:     cmd.SceneFlags,
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:  "render",
			Usage: "render scene",
			Subcommands: []cli.Command{
				{
					Name:        "frame",
					Usage:       "render single frame",
					Description: `Render a single frame using eyelight shading.`,
					ArgsUsage:   "scene_file.obj",
					Flags: append([]cli.Flag{
						cli.IntFlag{
							Name:  "width",
							Value: 512,
							Usage: "frame width",
						},
						cli.IntFlag{
							Name:  "height",
							Value: 512,
							Usage: "frame height",
						},
						cli.IntFlag{
							Name:  "tracers",
							Value: 0,
							Usage: "number of cpu tracers (0 = one per cpu)",
						},
						cli.StringFlag{
							Name:  "scheduler",
							Value: "naive",
							Usage: "block scheduler to use (naive, perfect)",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					}, cmd.SceneFlags...),
					Action: cmd.RenderFrame,
				},
			},
		},
		{
			Name:      "trace",
			Usage:     "trace a single ray and report the closest hit",
			ArgsUsage: "scene_file.obj",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "origin",
					Value: "0,0,0",
					Usage: "ray origin (x,y,z)",
				},
				cli.StringFlag{
					Name:  "dir",
					Value: "0,0,-1",
					Usage: "ray direction (x,y,z)",
				},
			}, cmd.SceneFlags...),
			Action: cmd.TraceRay,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}
