package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/clash-of-gods/internal/api"
	"github.com/ericogr/clash-of-gods/internal/config"
	"github.com/ericogr/clash-of-gods/internal/constants"
	"github.com/ericogr/clash-of-gods/internal/dice"
	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/logging"
	"github.com/ericogr/clash-of-gods/internal/version"
)

func main() {
	var env config.Env
	if err := config.ParseEnv(&env); err != nil {
		logging.Fatal("Invalid environment", err, nil)
	}
	cfg := loadConfigOrExit(env.ConfigPath)
	configureLoggingOrExit(cfg.Logging, env.LogLevel)
	defer logging.Sync()

	chars, lib := loadRosterOrExit(cfg.RosterPath)
	repo := createRepositoryOrExit(env.DBPath, chars)

	seed := env.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng := engine.New(dice.New(seed), engineOptionsOrExit(cfg)...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	startTimeoutScanner(ctx, repo, eng, cfg.TurnTimeout)

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewBattleHandler(repo, eng, lib, cfg.TurnTimeout)

	addr := cfg.ServerAddress
	if env.Address != "" {
		addr = env.Address
	}
	srv := &http.Server{Addr: addr, Handler: api.NewRouter(handler), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr: addr,
		"characters":           lib.Len(),
		"rules":                eng.Rules(),
		"turn_timeout":         cfg.TurnTimeout.String(),
		"version":              version.String(),
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("Failed to start server", err, nil)
	}
	logging.Info("Server stopped", nil)
}
