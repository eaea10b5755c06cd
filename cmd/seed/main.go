// Command seed populates empty collections with the built-in system labels
// and the demo dataset. Collections that already hold data are left alone.
package main

import (
	"fmt"
	"os"

	"refutree/internal/database"
	"refutree/internal/logger"
	"refutree/internal/models"
	"refutree/internal/seed"
	"refutree/internal/store"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	st := store.New(dbManager.DB())
	seed.Register(st, true)

	// Loading each collection triggers the registered seed for any that are
	// still empty.
	counts := map[string]int{
		models.CollectionResidents:     len(store.Load[*models.Resident](st, models.CollectionResidents)),
		models.CollectionIncidents:     len(store.Load[*models.Incident](st, models.CollectionIncidents)),
		models.CollectionLeaveRequests: len(store.Load[*models.LeaveRequest](st, models.CollectionLeaveRequests)),
		models.CollectionDocuments:     len(store.Load[*models.Document](st, models.CollectionDocuments)),
		models.CollectionLabels:        len(store.Load[*models.Label](st, models.CollectionLabels)),
	}

	for name, count := range counts {
		logger.Get().Infof("Collection %s holds %d record(s)", name, count)
	}
	return nil
}
