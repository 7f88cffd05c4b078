package main

import (
	"context"
	"log"

	"babyname-be/internal/bootstrap"
	"babyname-be/internal/config"
	"babyname-be/internal/server"
	"babyname-be/internal/tracer"
	"babyname-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	// A missing or unreachable database is not fatal: the favorites layer
	// degrades to its local file cache.
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Printf("[WARN] Unable to connect to GORM DB, favorites will use the local cache: %v", err)
		gormDB = nil
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
