package main

import (
	"net/http"
	"os"
	"time"

	"github.com/blogportal-dev/blogportal/internal/config"
	"github.com/blogportal-dev/blogportal/internal/logger"
	"github.com/blogportal-dev/blogportal/internal/router"
	"github.com/blogportal-dev/blogportal/internal/setup"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 30 * time.Second
)

func main() {
	configFolder := os.Getenv("CONFIG_FOLDER")
	if configFolder == "" {
		configFolder = "config"
	}
	cfg := config.MustLoad(configFolder)

	logger.Initialize(cfg.Server.LogLevel, cfg.Server.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("setup failed", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.SetupRouter(deps),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logger.Log.Info("starting blog portal web", "addr", server.Addr, "backend", deps.Cfg.API.BaseURL)
	if err := server.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
