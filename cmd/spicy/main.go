package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"spicy/internal/config"
	"spicy/internal/sketch"
	"spicy/internal/sketches"
	"spicy/internal/sketches/dots"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

type params struct {
	sketch   string
	width    int
	height   int
	title    string
	fps      int
	vsync    bool
	animate  *bool
	stats    bool
	assetDir string
	logLevel string
}

func main() {
	// ---- Flags (spicy.yaml overrides them where set) ----
	var (
		sketchName = flag.String("sketch", dots.Name, "sketch to run (see -list)")
		configPath = flag.String("config", "spicy.yaml", "path to spicy.yaml")
		width      = flag.Int("width", 900, "window width")
		height     = flag.Int("height", 900, "window height")
		fps        = flag.Int("fps", 60, "frame rate cap, 0 for unlimited")
		vsync      = flag.Bool("vsync", false, "wait for display refresh on swap")
		assets     = flag.String("assets", "assets", "directory holding sketch textures")
		logLevel   = flag.String("log-level", "info", "log level: debug | info | warn | error")
		stats      = flag.Bool("stats", false, "show the frame statistics overlay (F3 toggles)")
		list       = flag.Bool("list", false, "list available sketches and exit")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *list {
		for _, name := range sketches.Names() {
			fmt.Println(name)
		}
		return
	}

	p := params{
		sketch:   *sketchName,
		width:    *width,
		height:   *height,
		fps:      *fps,
		vsync:    *vsync,
		stats:    *stats,
		assetDir: *assets,
		logLevel: *logLevel,
	}

	// ---- Load spicy.yaml (optional) ----
	if cfg, err := config.Load(*configPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", *configPath).Msg("no config file; using flags")
		} else {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		}
	} else {
		p = p.merge(cfg)
	}

	level, err := zerolog.ParseLevel(p.logLevel)
	if err != nil {
		log.Warn().Str("level", p.logLevel).Msg("unknown log level; using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if err := run(p); err != nil {
		log.Fatal().Err(err).Str("sketch", p.sketch).Msg("spicy failed")
	}
}

// merge applies the non-zero fields of a config file on top of the flag values
func (p params) merge(cfg *config.File) params {
	if cfg.Sketch != "" {
		p.sketch = cfg.Sketch
	}
	if cfg.Window.Width > 0 {
		p.width = cfg.Window.Width
	}
	if cfg.Window.Height > 0 {
		p.height = cfg.Window.Height
	}
	if cfg.Window.Title != "" {
		p.title = cfg.Window.Title
	}
	if cfg.FPS > 0 {
		p.fps = cfg.FPS
	}
	if cfg.VSync != nil {
		p.vsync = *cfg.VSync
	}
	if cfg.Animate != nil {
		p.animate = cfg.Animate
	}
	if cfg.Stats != nil {
		p.stats = *cfg.Stats
	}
	if cfg.AssetDir != "" {
		p.assetDir = cfg.AssetDir
	}
	if cfg.LogLevel != "" {
		p.logLevel = cfg.LogLevel
	}
	return p
}

func run(p params) error {
	entry, err := sketches.Lookup(p.sketch)
	if err != nil {
		return err
	}

	settings := entry.Settings
	settings.FPS = p.fps
	if p.title != "" {
		settings.Title = p.title
	}
	if p.animate != nil {
		settings.Animate = *p.animate
	}
	settings.Stats = p.stats

	config.SetFPSLimit(p.fps)
	config.SetVSync(p.vsync)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(p.width, p.height, settings.Title)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	log.Info().
		Str("sketch", entry.Name).
		Bool("animate", settings.Animate).
		Int("fps", config.GetFPSLimit()).
		Bool("vsync", config.GetVSync()).
		Msg("running")

	return sketch.Run(window, settings, entry.Build(sketches.Options{AssetDir: p.assetDir}))
}
