package main

import (
	"context"
	"time"

	accountsrepo "spacebook/internal/accounts/repository"
	"spacebook/internal/seed"
	spacesrepo "spacebook/internal/spaces/repository"
	"spacebook/pkg/config"
)

const JobName = "spacebook-seed"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	if cfg.StorageDriver == config.StorageMemory {
		cfg.Log.Fatal("Seeding the memory driver has no effect; set STORAGE_DRIVER to mongo or postgres")
	}
	cfg.SetStorage()
	defer cfg.GracefulShutdown()

	result, err := seed.Run(ctx, spacesrepo.New(cfg), accountsrepo.New(cfg), cfg.Log)
	if err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Seeding failed", "error", err)
	}
	cfg.Log.Info("Seeding completed",
		"institution_id", seed.DemoInstitutionID,
		"spaces_created", result.SpacesCreated,
		"members_created", result.MembersCreated,
	)
}
