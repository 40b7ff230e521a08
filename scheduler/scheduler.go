package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourneyhub/api/cache"
	grpcclient "tourneyhub/api/grpc"
	accountservice "tourneyhub/api/services/account"
	"tourneyhub/pkg/config"
	"tourneyhub/pkg/database"
	"tourneyhub/pkg/logger"
	"tourneyhub/pkg/redis"
	"tourneyhub/scheduler/jobs"

	"github.com/go-co-op/gocron/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	logger, err := logger.CreateLogger("scheduler")
	if err != nil {
		log.Fatalf("Couldn't create the logger: %v", err)
	}
	defer logger.Close()

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	// Runs the migrations.
	rawDb, err := db.DB()
	if err != nil {
		log.Fatalf("Couldn't get raw db connection: %v", err)
	}
	defer rawDb.Close()

	if err := database.RunMigrations(cfg.Database, rawDb); err != nil {
		if !errors.Is(err, database.ErrMigrationsLocked) {
			log.Fatal(err)
		}
		logger.Warnf("Skipping migrations: %v", err)
	}

	// Refreshes go through the fetcher, the only owner of the rate limit.
	grpcConn, err := grpcclient.Dial(cfg.Fetcher.Addr)
	if err != nil {
		log.Fatalf("Error to connect to the gRPC server: %v", err)
	}
	defer grpcConn.Close()

	accountDeps := &accountservice.AccountServiceDeps{
		DB:      db,
		Fetcher: grpcclient.NewStatsGRPCClient(grpcConn),
		Logger:  logger,
	}

	// Share the refresh locks with the api so a manual refresh and the job don't overlap.
	redisClient := redis.GetClient(cfg.Redis)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		logger.Warnf("Redis unavailable, refreshing without locks: %v", err)
	} else {
		accountDeps.RefreshLock = cache.NewRefreshLock(redisClient, cfg.Api.RefreshLockTTL)
	}

	accountService := accountservice.NewAccountService(accountDeps)

	logger.Infof("Starting scheduler.")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Register the stale stats refresh, a run still going skips the next one.
	_, err = s.NewJob(
		gocron.DurationJob(cfg.Scheduler.Interval),
		gocron.NewTask(func() {
			if err := jobs.RefreshStaleStats(ctx, accountService, cfg.Scheduler, logger, time.Now); err != nil {
				logger.Errorf("%v", err)
			}
		}),
		gocron.WithName("stale-stats-refresh"),
		gocron.WithTags("stats"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatalf("Failed to create stale stats refresh job: %v", err)
	}

	// Start the scheduler.
	s.Start()

	// Setup signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for termination signal.
	<-sigChan
	logger.Infof("Shutting down scheduler...")

	stop()
	if err := s.Shutdown(); err != nil {
		logger.Errorf("Error shutting down scheduler: %v", err)
	}

	// Keep the logs of the run before exiting.
	if cfg.Bucket.LogBucket != "" {
		uploadCtx, cancelUpload := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelUpload()

		key := "scheduler/" + time.Now().UTC().Format("2006-01-02T15-04-05") + ".log"
		if err := logger.UploadToS3Bucket(uploadCtx, cfg.Bucket, key); err != nil {
			log.Printf("Couldn't upload the logs: %v", err)
		}
	}
}
