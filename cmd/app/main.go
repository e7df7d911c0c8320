package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/ledworks/go-leddat/pkg/core"
	"github.com/ledworks/go-leddat/pkg/logger"
	"github.com/ledworks/go-leddat/pkg/scene"
)

var app = cli.NewApp()
var log = logger.Log

func init() {
	app.Name = "leddat"
	app.Usage = "A video to LED controller DAT converter"
	app.UsageText = "leddat [command] filename"
	app.HideHelp = true
	app.HideVersion = true
	app.ArgsUsage = ""
	app.Commands = []cli.Command{
		{
			Name:    "convert",
			Aliases: []string{"c"},
			Usage:   "Convert a scene into a .dat file",
			Action: func(c *cli.Context) error {
				filename, err := getFilename(c)
				if err != nil {
					return err
				}
				return core.Convert(filename)
			},
		},
		{
			Name:    "info",
			Aliases: []string{"i"},
			Usage:   "Print the universe layout of a scene",
			Action: func(c *cli.Context) error {
				filename, err := getFilename(c)
				if err != nil {
					return err
				}
				return core.Info(filename)
			},
		},
		{
			Name:    "header",
			Aliases: []string{"h"},
			Usage:   "Extract a template header from an existing .dat file",
			Action: func(c *cli.Context) error {
				filename, err := getFilename(c)
				if err != nil {
					return err
				}
				out := c.Args().Get(1)
				if out == "" {
					return fmt.Errorf("Output filename is required")
				}
				return core.ExtractHeader(filename, out)
			},
		},
		{
			Name:  "init",
			Usage: "Write a starter scene file",
			Action: func(c *cli.Context) error {
				filename, err := getFilename(c)
				if err != nil {
					return err
				}
				return writeStarterScene(filename)
			},
		},
	}
}

func getFilename(c *cli.Context) (string, error) {
	f := c.Args().Get(0)
	if f == "" {
		return "", fmt.Errorf("Filename is required")
	}
	return f, nil
}

func writeStarterScene(path string) error {
	s := &scene.Scene{
		Input:  "input.mp4",
		Output: "output.dat",
		FPS:    30,
		Ports: []scene.PortCfg{
			{
				LedCount: 400,
				Points: []scene.PointCfg{
					{X: 0, Y: 0},
					{X: 100, Y: 100},
				},
			},
		},
	}
	if err := scene.Save(path, s); err != nil {
		return err
	}
	log.Infof("Starter scene written to %s", path)
	return nil
}

func main() {
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
