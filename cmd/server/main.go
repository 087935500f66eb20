package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"salesdash/internal/api"
	"salesdash/internal/config"
	"salesdash/internal/engine"
	"salesdash/internal/i18n"
	"salesdash/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config")
	flag.Parse()

	// 1. Config (file is optional, env wins)
	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		logger.Get().Fatalf("config: %v", err)
	}

	// 2. Logger shared by echo and the engine
	lg := logger.New("salesdash", cfg.Log.Level, os.Stderr)
	logger.Set(lg)

	// 3. Sessions start empty; each client uploads its own file
	settings := engine.Settings{
		PreviewRows:           cfg.Dashboard.PreviewRows,
		CategoricalThreshold:  cfg.Dashboard.CategoricalThreshold,
		MaxCategoricalFilters: cfg.Dashboard.MaxCategoricalFilters,
	}
	reg := api.NewRegistry(settings, i18n.Resolve(cfg.Dashboard.DefaultLanguage), cfg.Dashboard.SessionTTL)
	h := api.NewHandler(reg, lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go reg.Run(ctx, time.Minute)

	// 4. Start Server
	e := api.NewServer(cfg, h, lg)
	lg.Infof("Server ready on %s", cfg.Addr())
	e.Logger.Fatal(e.Start(cfg.Addr()))
}
