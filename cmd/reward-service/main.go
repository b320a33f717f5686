package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mallmarketing055-de/mall-sub000/internal/app/background"
	"github.com/mallmarketing055-de/mall-sub000/internal/config"
	publisher "github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/kafka"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/metrics"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/migrate"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres"
	"github.com/mallmarketing055-de/mall-sub000/internal/infrastructure/postgres/repository"
	"github.com/mallmarketing055-de/mall-sub000/internal/usecase/reward"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	// Optional versioned schema migrations on top of AutoMigrate
	if migrationsPath := os.Getenv("REWARD_MIGRATIONS_PATH"); migrationsPath != "" {
		if err := migrate.RunMigrations(db, migrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init repositories
	customerRepo := repository.NewDefaultCustomerRepository(db)
	txRepo := repository.NewDefaultTransactionRepository(db)
	jobRepo := repository.NewDefaultRewardJobRepository(db)
	settingsRepo := repository.NewDefaultRewardSettingsRepository(db)
	distributionRepo := repository.NewDefaultDistributionRepository(db)

	// Init kafka publisher for reward events
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	eventPublisher := publisher.NewRewardEventPublisher(brokers, "reward-events")
	defer eventPublisher.Close()

	// Init metrics
	rewardMetrics := metrics.NewRewardMetrics()

	// Init reward usecase
	rewardUsecase := reward.NewDefaultRewardUsecase(
		customerRepo,
		jobRepo,
		txRepo,
		settingsRepo,
		distributionRepo,
		eventPublisher,
		rewardMetrics,
		reward.WorkerConfig{
			PollInterval:  cfg.Worker.PollInterval,
			SweepInterval: cfg.Worker.SweepInterval,
			LeaseDuration: cfg.Worker.LeaseDuration,
		},
	)

	// Worker + lease sweeper
	tasks := background.NewBackgroundTasks(rewardUsecase)
	tasks.StartAll(context.Background())

	// Prometheus endpoint
	http.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
	log.Printf("reward worker started, metrics on %s\n", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("failed to serve metrics: %v\n", err)
	}
}
