package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"

	"foodctl/cmd"
	"foodctl/internal/api"
	"foodctl/internal/db"
	"foodctl/internal/logger"
	"foodctl/internal/mockapi"
	"foodctl/internal/notify"
	"foodctl/internal/store"
	"foodctl/internal/ui"
)

// version is set at build time via -ldflags
var version = "dev"

const previewCacheSize = 64

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if config.ShowVersion {
		fmt.Println("foodctl " + version)
		return
	}

	log, err := logger.New(logger.Config{
		Level:  logger.LogLevel(config.LogLevel),
		Format: "text",
		Output: config.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ℹ  Logging disabled: %v\n", err)
	}
	defer log.Close()
	mainLog := log.WithComponent("main")
	mainLog.Info("starting foodctl", "version", version, "demo", config.Demo, "api", config.APIBaseURL)

	// Demo mode serves the sample data locally
	if config.Demo {
		gin.SetMode(gin.ReleaseMode)
		baseURL, shutdown, err := mockapi.NewSeeded(log.Logger).Start("127.0.0.1:0")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start demo API: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
		config.APIBaseURL = baseURL
		config.AssetBaseURL = baseURL
		mainLog.Info("demo api ready", "url", baseURL)
	}

	// Open database
	database, err := db.Open(config.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	activity := db.NewActivityLog(database, log.Logger)
	inbox := ui.NewInbox(0, log.Logger)
	notifier := notify.Multi{activity, inbox}

	client := api.NewClient(config.APIBaseURL, config.Timeout, log.Logger)
	foods := store.NewFoodStore(client, notifier, log.Logger)
	gateway := store.NewMutationGateway(client, notifier, inbox.RequestRefetch, log.Logger)

	previewer, err := ui.NewImagePreviewer(config.AssetBaseURL, config.Timeout, previewCacheSize, log.Logger)
	if err != nil {
		mainLog.Warn("image previews disabled", "error", err)
		previewer = nil
	}

	app := ui.New(ui.Deps{
		Foods:     foods,
		Ops:       gateway,
		Search:    client,
		Activity:  activity,
		Inbox:     inbox,
		Notifier:  notifier,
		Previewer: previewer,
		PrefsPath: ui.PrefsPath(config.ConfigDir),
		Timeout:   config.Timeout,
		Logger:    log.Logger,
	})

	// Create and run Bubble Tea app
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
