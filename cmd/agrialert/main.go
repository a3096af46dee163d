package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/you/agrialert/internal/app"
	"github.com/you/agrialert/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
