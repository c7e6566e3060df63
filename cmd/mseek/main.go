package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/TimelordUK/mseek/internal/config"
	"github.com/TimelordUK/mseek/internal/logging"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "mseek",
		Usage: "Search a directory of log files as you type",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.GetConfigPath(),
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Log directory to search (overrides config)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
		},
		Before: loadConfig,
		Action: tuiCommand,
		Commands: []*cli.Command{
			{
				Name:   "tui",
				Usage:  "Open the interactive search view (default)",
				Action: tuiCommand,
			},
			{
				Name:      "search",
				Usage:     "Run one search and print matching file names",
				ArgsUsage: "<term> [term...]",
				Action:    searchCommand,
			},
			{
				Name:   "generate",
				Usage:  "Create synthetic log files",
				Action: generateCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of files to create (defaults to generator.batch_size)",
					},
				},
			},
			{
				Name:  "config",
				Usage: "Manage the config file",
				Subcommands: []*cli.Command{
					{
						Name:   "init",
						Usage:  "Write the default config to the --config path",
						Action: configInitCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "force",
								Usage: "Overwrite an existing config file",
							},
						},
					},
				},
			},
		},
	}
}

// loadConfig reads the config file and applies global flag overrides
func loadConfig(c *cli.Context) error {
	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return err
	}

	if dir := c.String("dir"); dir != "" {
		cfg.Search.LogDir = dir
	}
	if level := c.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.App.Metadata = map[string]interface{}{configKey: cfg}
	return nil
}

func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

// stderrLogger is used by the headless commands
func stderrLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(os.Stderr, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}
