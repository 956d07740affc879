// ember runs Ember scripts and hosts an interactive Ember prompt.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"

	"github.com/metaphox/ember-lang/config"
	"github.com/metaphox/ember-lang/internal/logging"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML or YAML configuration file",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "Log level: trace, debug, info, warn, error, crit",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable coloured output",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(color.Error, "error: ")
		fmt.Fprintln(color.Error, err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Settings are loaded once by the Before
// hook and shared by every command through cfg.
func newApp() *cli.App {
	cfg := config.Defaults

	app := cli.NewApp()
	app.Name = "ember"
	app.Usage = "the Ember script interpreter"
	app.ArgsUsage = "<file>"
	app.HideVersion = true
	app.Flags = []cli.Flag{configFileFlag, logLevelFlag, noColorFlag}
	app.Commands = []cli.Command{
		runCommand(&cfg),
		tokensCommand(),
		astCommand(),
		replCommand(&cfg),
	}
	app.Before = func(ctx *cli.Context) error {
		loaded, err := loadSettings(ctx)
		if err != nil {
			return err
		}
		cfg = loaded
		if !cfg.Color {
			color.NoColor = true
		}
		return logging.Setup(cfg.LogLevel, cfg.Color)
	}
	// A bare file argument behaves like "ember run <file>".
	app.Action = func(ctx *cli.Context) error {
		return runScript(ctx, cfg)
	}
	return app
}

// loadSettings reads the config file if one is named and applies the global
// flags on top of it.
func loadSettings(ctx *cli.Context) (config.Config, error) {
	cfg := config.Defaults
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		loaded, err := config.Load(file)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if ctx.GlobalIsSet(logLevelFlag.Name) {
		cfg.LogLevel = ctx.GlobalString(logLevelFlag.Name)
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Color = false
	}
	return cfg, nil
}
