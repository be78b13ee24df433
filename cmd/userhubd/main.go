package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/omargad/userhub/internal/config"
	"github.com/omargad/userhub/internal/logger"
	"github.com/omargad/userhub/internal/server"
	"github.com/omargad/userhub/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.LogDir != "" {
		if err := logger.Init(cfg.LogDir); err != nil {
			log.Fatal(err)
		}
		defer logger.Close()
	}

	st, err := store.Open(cfg.DataPath)
	if err != nil {
		log.Fatal(err)
	}

	app, err := server.NewApp(cfg, st)
	if err != nil {
		log.Fatal(err)
	}

	srv := server.New(server.Config{ListenAddr: cfg.ListenAddr}, app)
	logger.Info("userhub listening on %s", cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
