package main

import (
	"context"
	"log"

	"pumphouse-kiosk-be/internal/bootstrap"
	"pumphouse-kiosk-be/internal/config"
	"pumphouse-kiosk-be/internal/server"
	"pumphouse-kiosk-be/internal/tracer"
	"pumphouse-kiosk-be/pkg/database"
)

func main() {
	// 0. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Configuration
	cfg := config.Load()

	// 2. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Dependency container
	container := bootstrap.NewContainer(gormDB, cfg)

	ctx := context.Background()

	// 4. Background loops
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(ctx); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	go container.Animator.Run(ctx)
	go container.Monitor.Run(ctx, cfg.Kiosk.IdleCheckInterval)

	// 5. Apply the active display config before taking traffic
	if err := container.SceneService.ReloadActiveConfig(ctx); err != nil {
		log.Printf("Warning: could not load active display config: %v", err)
	}

	// 6. Serve
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
