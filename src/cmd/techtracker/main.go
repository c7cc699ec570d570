// Package main is the entry point for the Techtracker application.
// It initializes all components and runs the main program loop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"techtracker/local-app/src/pkg/cli"
	"techtracker/local-app/src/pkg/config"
	"techtracker/local-app/src/pkg/data"
	"techtracker/local-app/src/pkg/log"
	"techtracker/local-app/src/pkg/session"
	"techtracker/local-app/src/pkg/storage"
)

// main initializes all components, sets up signal handling, and runs the
// interactive loop.
func main() {
	// Set up channel to receive interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Load configuration
	if err := config.ConfigLoad(); err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := config.ConfigGet()

	// Initialize logger
	level := log.LevelInfo
	if cfg.DebugLog {
		level = log.LevelDebug
	}
	logger, err := log.NewLogger(cfg, level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info(context.Background(), "Application started", log.Fields{"config": cfg})

	// Initialize storage
	store, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize storage", log.Fields{"error": err})
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(context.Background(), "Failed to close storage", log.Fields{"error": err})
		}
	}()

	// Initialize data manager
	dataManager, err := data.NewDataManager(store, cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize data manager", log.Fields{"error": err})
		fmt.Printf("Failed to initialize data manager: %v\n", err)
		os.Exit(1)
	}

	// Resume the roadmap selected in a previous run, if any
	if roadmap, err := dataManager.RoadmapManager.RoadmapResume(); err != nil {
		logger.Error(context.Background(), "Failed to resume roadmap", log.Fields{"error": err})
	} else if roadmap != nil {
		fmt.Printf("Resumed roadmap '%s'\n", roadmap.Title)
	}

	// Initialize session
	sess := session.NewSession(dataManager, logger)

	// Create CLI
	cliInstance, err := cli.NewCLI(sess, dataManager.EventManager, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initiate CLI", log.Fields{"error": err})
		fmt.Printf("Failed to initiate CLI: %v\n", err)
		os.Exit(1)
	}

	// Set up graceful shutdown
	go func() {
		<-sigChan
		logger.Info(context.Background(), "Received interrupt signal. Shutting down...", nil)
		fmt.Println("\nReceived interrupt signal. Shutting down...")
		cliInstance.Stop()
	}()

	// Run CLI
	if err := cliInstance.Run(); err != nil {
		logger.Error(context.Background(), "CLI error", log.Fields{"error": err})
	}

	logger.Info(context.Background(), "Application shutting down", nil)
	fmt.Println("Goodbye!")
}
