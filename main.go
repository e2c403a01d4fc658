package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/miosa/osa-gallery/app"
	"github.com/miosa/osa-gallery/client"
	"github.com/miosa/osa-gallery/config"
	"github.com/miosa/osa-gallery/content"
	"github.com/miosa/osa-gallery/observability"
	"github.com/miosa/osa-gallery/style"
)

var version = "dev"

var errNoTerminal = errors.New("stdout is not a terminal")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "osa-gallery: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "osa-gallery",
		Usage:     "Browse a grid of items with expanding previews.",
		Version:   version,
		ArgsUsage: "[manifest]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file (.yaml or .toml)"},
			&cli.StringFlag{Name: "manifest", Aliases: []string{"m"}, Usage: "gallery manifest"},
			&cli.StringFlag{Name: "theme", Usage: "color theme (dark, light, catppuccin, tokyo-night)"},
			&cli.IntFlag{Name: "min-height", Usage: "minimum preview height in rows"},
			&cli.IntFlag{Name: "speed", Usage: "animation speed in milliseconds"},
			&cli.BoolFlag{Name: "no-transitions", Usage: "disable height transitions"},
			&cli.StringFlag{Name: "log-file", Usage: "write JSON logs to this file"},
			&cli.StringFlag{Name: "log-level", Usage: "log level (debug, info, warn, error)"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable ANSI colors"},
			&cli.StringFlag{Name: "server", Usage: "base URL for remote content", EnvVars: []string{"OSA_URL"}},
			&cli.StringFlag{Name: "token", Usage: "bearer token for the content server", EnvVars: []string{"OSA_TOKEN"}},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errNoTerminal
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if c.Bool("no-color") {
		os.Setenv("NO_COLOR", "1")
	}
	applyTheme(cfg.Theme)

	observability.InitializeLogger(cfg.Log)
	defer observability.Sync()
	logger := observability.GetLogger()

	manifest, err := content.LoadManifest(cfg.Manifest)
	if err != nil {
		return err
	}

	var cl *client.Client
	if server := c.String("server"); server != "" {
		cl = client.New(server)
		if token := c.String("token"); token != "" {
			cl.SetToken(token)
		}
	}

	m, err := app.New(app.Options{
		Config:   cfg,
		Manifest: manifest,
		Client:   cl,
		Context:  c.Context,
		Version:  version,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting", zap.String("version", version), zap.String("manifest", cfg.Manifest), zap.Int("items", len(manifest.Items)))
	_, err = tea.NewProgram(m).Run()
	return err
}

// loadConfig reads --config, or the profile config under ~/.osa/gallery, and
// applies flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	var cfg config.Config
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return cfg, err
		}
	} else {
		home, _ := os.UserHomeDir()
		cfg = config.Load(filepath.Join(home, ".osa", "gallery"))
	}

	if c.Args().Present() {
		cfg.Manifest = c.Args().First()
	}
	if c.IsSet("manifest") {
		cfg.Manifest = c.String("manifest")
	}
	if c.IsSet("theme") {
		cfg.Theme = c.String("theme")
	}
	if c.IsSet("min-height") {
		cfg.Gallery.MinHeight = c.Int("min-height")
	}
	if c.IsSet("speed") {
		cfg.Gallery.SpeedMs = c.Int("speed")
	}
	if c.Bool("no-transitions") {
		cfg.Gallery.Transitions = false
	}
	if c.IsSet("log-file") {
		cfg.Log.File = c.String("log-file")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	return cfg, cfg.Validate()
}

// applyTheme selects the named theme. An empty or unknown name falls back to
// the terminal background.
func applyTheme(name string) {
	if name != "" && style.SetTheme(name) {
		return
	}
	if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
		style.SetTheme("dark")
	} else {
		style.SetTheme("light")
	}
}
