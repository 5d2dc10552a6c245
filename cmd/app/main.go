package main

import (
	"flag"
	"log"
	"os"

	"JaxSpot/internal/di"
	"JaxSpot/pkg/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("starting env=%s tick=%s sqlite=%s", cfg.Environment, cfg.TickInterval(), cfg.SQLite.Path)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("initialize app: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Printf("app: %v", err)
		os.Exit(1)
	}
}
