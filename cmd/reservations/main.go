package main

import (
	"context"

	"spacebook/internal/seed"
	"spacebook/pkg/app"
	"spacebook/pkg/clock"
	"spacebook/pkg/config"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetStorage()

	cfg.Log.Info("Starting Reservations service")
	services, err := app.InitServices(cfg, clock.NewSystem(nil), nil)
	if err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Failed to initialize services", "error", err)
	}

	if cfg.SeedDemoData {
		result, err := seed.Run(context.Background(), services.SpaceRepo, services.AccountRepo, cfg.Log)
		if err != nil {
			cfg.Log.Error("Demo data seeding failed", "error", err)
		} else {
			cfg.Log.Info("Demo data seeded", "spaces", result.SpacesCreated, "members", result.MembersCreated)
		}
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(services.Handlers(cfg)...)
	serverApp.OnShutdown("event publisher", services.Publisher.Close)
	serverApp.Run()
}
