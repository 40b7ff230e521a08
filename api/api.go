package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcclient "tourneyhub/api/grpc"
	"tourneyhub/api/modules"
	"tourneyhub/api/routes"
	accountservice "tourneyhub/api/services/account"
	"tourneyhub/pkg/config"
	"tourneyhub/pkg/database"
	"tourneyhub/pkg/logger"
	"tourneyhub/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't load the configuration: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	logger, err := logger.CreateLogger("api")
	if err != nil {
		log.Fatalf("Couldn't create the logger: %v", err)
	}
	defer logger.Close()

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Couldn't connect to the database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Couldn't get the database handle: %v", err)
	}
	defer sqlDB.Close()

	// Another process running them is fine.
	if err := database.RunMigrations(cfg.Database, sqlDB); err != nil {
		if !errors.Is(err, database.ErrMigrationsLocked) {
			log.Fatalf("Couldn't run the migrations: %v", err)
		}
		logger.Warnf("Skipping migrations: %v", err)
	}

	// Redis only backs the cache and the refresh locks, the api works without it.
	redisClient := redis.GetClient(cfg.Redis)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		logger.Warnf("Redis unavailable, running without cache: %v", err)
		redisClient = nil
	}

	// Connect to the fetcher grpc.
	grpcConn, err := grpcclient.Dial(cfg.Fetcher.Addr)
	if err != nil {
		log.Fatalf("Error to connect to the gRPC server: %v", err)
	}
	defer grpcConn.Close()

	// Create a module with all necessary handlers.
	module := modules.NewModule(&modules.ModuleDependencies{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Fetcher: grpcclient.NewStatsGRPCClient(grpcConn),
		Logger:  logger,
	})

	seedGames(ctx, cfg.Api.GamesCatalogPath, module.AccountService, logger)

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.GamesHandler,
		module.LeaderboardHandler,
	)

	srv := &http.Server{
		Addr:              cfg.Api.ListenAddr,
		Handler:           router.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infof("Running api on %s", cfg.Api.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve the api: %v", err)
		}
	}()

	handleShutdown(srv, stop)

	// Keep the logs of the run before exiting.
	if cfg.Bucket.LogBucket != "" {
		uploadCtx, cancelUpload := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelUpload()

		key := "api/" + time.Now().UTC().Format("2006-01-02T15-04-05") + ".log"
		if err := logger.UploadToS3Bucket(uploadCtx, cfg.Bucket, key); err != nil {
			log.Printf("Couldn't upload the logs: %v", err)
		}
	}
}

// Seed the game catalog, a missing file only skips it.
func seedGames(ctx context.Context, path string, service *accountservice.AccountService, logger *logger.NewLogger) {
	catalog, err := accountservice.LoadCatalog(path)
	if err != nil {
		logger.Warnf("Couldn't load the game catalog: %v", err)
		return
	}

	if err := service.SeedGames(ctx, catalog); err != nil {
		logger.Errorf("Couldn't seed the game catalog: %v", err)
	}
}

// Handle the shutdown of the http server.
func handleShutdown(srv *http.Server, cancel context.CancelFunc) {
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
	<-signalChannel

	ctx, cancelTimeout := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelTimeout()
	_ = srv.Shutdown(ctx)

	cancel()
}
