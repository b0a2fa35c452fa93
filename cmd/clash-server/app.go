package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ericogr/clash-of-gods/internal/config"
	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/logging"
	"github.com/ericogr/clash-of-gods/internal/roster"
	"github.com/ericogr/clash-of-gods/internal/storage"
)

// loadConfigOrExit reads the config file. A missing file falls back to
// the built-in defaults with characters.json next to where the file
// would have been.
func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Info("config file not found, using defaults", logging.Fields{"config_path": path})
		cfg = config.Default()
		cfg.RosterPath = filepath.Join(filepath.Dir(path), defaultRosterFile)
		return cfg
	}
	if err != nil {
		logging.Fatal("Missing or invalid clash configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

const defaultRosterFile = "characters.json"

func configureLoggingOrExit(opts logging.Options, levelOverride string) {
	if levelOverride != "" {
		opts.Level = levelOverride
	}
	if err := logging.Configure(opts); err != nil {
		logging.Fatal("Invalid logging configuration", err, nil)
	}
}

func loadRosterOrExit(path string) ([]game.Combatant, *roster.Library) {
	if path == "" {
		logging.Fatal("roster_path is required", nil, logging.Fields{"hint": "set roster_path in clash_config.json to a JSON or YAML character file"})
	}
	chars, err := config.LoadRoster(path)
	if err != nil {
		logging.Fatal("Failed to load roster", err, logging.Fields{"roster_path": path})
	}
	lib, err := roster.New(chars)
	if err != nil {
		logging.Fatal("Invalid roster", err, logging.Fields{"roster_path": path})
	}
	return chars, lib
}

func createRepositoryOrExit(dbPath string, chars []game.Combatant) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, chars)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}

func engineOptionsOrExit(cfg *config.LoadedConfig) []engine.Option {
	opts, err := cfg.EngineOptions()
	if err != nil {
		logging.Fatal("Invalid engine configuration", err, nil)
	}
	return opts
}
