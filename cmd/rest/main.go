package main

import (
	"context"
	"log"

	"bookmark-reorder-be/internal/bootstrap"
	"bookmark-reorder-be/internal/config"
	"bookmark-reorder-be/internal/server"
	"bookmark-reorder-be/internal/tracer"
	"bookmark-reorder-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Telemetry Consumer...")
		if err := container.TelemetryService.Consume(context.Background()); err != nil {
			log.Printf("Background Telemetry Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
