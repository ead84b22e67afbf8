package main

import (
	"embed"
	"flag"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	boardApp "moodboard/internal/app"
	"moodboard/internal/config"
	"moodboard/internal/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	mcpMode := flag.Bool("mcp", false, "serve the board over MCP on stdin/stdout")
	ephemeral := flag.Bool("ephemeral", false, "keep the board in memory only")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	logCloser, err := logging.Init(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing logging:", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	opts := boardApp.Options{Ephemeral: *ephemeral}

	if *mcpMode {
		if err := boardApp.ServeMCP(cfg, opts); err != nil {
			logging.Logger.Error("mcp server", "error", err)
			os.Exit(1)
		}
		return
	}

	app, err := boardApp.New(cfg, opts)
	if err != nil {
		logging.Logger.Error("startup", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	size := app.WindowSize()

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu := menu.NewMenu()
	appMenu.Append(menu.EditMenu())

	err = wails.Run(&options.App{
		Title:     "Mood Board",
		Width:     size.Width,
		Height:    size.Height,
		MinWidth:  800,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour:   &options.RGBA{R: 250, G: 248, B: 244, A: 1},
		Menu:               appMenu,
		Logger:             logging.NewWailsLogger(logging.Logger),
		LogLevel:           logger.INFO,
		LogLevelProduction: logger.WARNING,
		OnStartup:          app.Startup,
		OnBeforeClose:      app.BeforeClose,
		OnShutdown:         app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  true,
				FullSizeContent:            true,
			},
			About: &mac.AboutInfo{
				Title:   "Mood Board",
				Message: "Pin images and notes, drag them around",
			},
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
