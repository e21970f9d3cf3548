package main

import (
	"log"

	"github.com/joho/godotenv"

	"crimerisk/adapters/forest"
	"crimerisk/app"
	"crimerisk/internal/config"
	"crimerisk/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// One-time artifact load. Without it no prediction is possible, so
	// any failure here halts the process with the expected path in the
	// message.
	classifier, err := forest.Load(appConfig.Model.Path)
	if err != nil {
		log.Fatalf("Failed to provision classifier: %v", err)
	}
	info := classifier.Info()
	log.Printf("[main] Loaded %s v%s (%s, %d trees) from %s",
		info.Name, info.Version, info.ModelType, info.TreeCount, appConfig.Model.Path)

	service := app.NewPredictionService(classifier, int64(appConfig.Batch.Concurrency))

	server, err := ui.NewServer(service, appConfig)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	log.Fatal(server.Start())
}
