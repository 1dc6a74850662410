package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"runcoach/internal/config"
	"runcoach/internal/service"
	"runcoach/internal/store"
	"runcoach/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating one with defaults...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config written to %s/config.json - edit it to set your max HR or known VDOT.\n\n", configDir)
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Import mode: runcoach import run1.fit run2.fit ...
	if len(os.Args) > 1 && os.Args[1] == "import" {
		return runImport(db, os.Args[2:])
	}

	// Launch TUI
	querySvc := service.NewQueryService(db, cfg)
	app := tui.NewApp(db, querySvc, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func runImport(db *store.DB, paths []string) error {
	if len(paths) == 0 {
		return errors.New("usage: runcoach import <files.fit...>")
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	importSvc := service.NewImportService(db, logger)
	imported, err := importSvc.ImportFiles(paths)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d workout(s).\n", imported)
	return nil
}
