package main

import (
	"context"
	"flag"
	"os"
	"time"

	"revu/internal/app/seed"
	"revu/internal/domain/catalog"
	"revu/internal/infra/config"
	mongostore "revu/internal/infra/db/mongo"
	"revu/internal/infra/obs"
)

func main() {
	cars := flag.Int("cars", 5, "number of sample cars to insert")
	restaurants := flag.Int("restaurants", 5, "number of sample restaurants to insert")
	randomSeed := flag.Int64("seed", time.Now().UnixNano(), "random seed for generated data")
	flag.Parse()

	logger := obs.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connect failed", "error", err)
		os.Exit(1)
	}
	defer client.Close(context.Background())
	if err := client.Ping(ctx); err != nil {
		logger.Error("mongo ping failed", "error", err)
		os.Exit(1)
	}
	store := mongostore.NewStore(client)

	generator := seed.NewGenerator(*randomSeed)
	if err := seed.Apply(ctx, store, catalog.Cars, generator.Cars(*cars)); err != nil {
		logger.Error("seeding cars failed", "error", err)
		os.Exit(1)
	}
	if err := seed.Apply(ctx, store, catalog.Restaurants, generator.Restaurants(*restaurants)); err != nil {
		logger.Error("seeding restaurants failed", "error", err)
		os.Exit(1)
	}
	logger.Info("sample data inserted", "cars", *cars, "restaurants", *restaurants)
}
