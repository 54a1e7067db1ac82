package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"kakeibo/internal/config"
	"kakeibo/internal/database"
	"kakeibo/internal/logger"
	"kakeibo/internal/models"
	"kakeibo/internal/seed"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	now := time.Now()
	rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(os.Getpid())))
	purchases := seed.Generate(rng, models.DateOf(now))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	created, err := seed.Run(ctx, dbManager.DB(), purchases)
	if err != nil {
		return err
	}

	logger.Get().Infof("Created %d sample purchases", created)
	return nil
}
