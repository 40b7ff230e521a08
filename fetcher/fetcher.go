package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"tourneyhub/fetcher/data"
	"tourneyhub/pkg/config"
	pb "tourneyhub/pkg/grpc"
	"tourneyhub/pkg/logger"
	"tourneyhub/pkg/ratelimit"
	"tourneyhub/pkg/stats"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't load the configuration: %v", err)
	}

	_, stop := context.WithCancel(context.Background())
	defer stop()

	logger, err := logger.CreateLogger("fetcher")
	if err != nil {
		log.Fatalf("Couldn't create the logger: %v", err)
	}
	defer logger.Close()

	logger.Infof("Starting fetcher on %s", cfg.Riot.Platform)

	// The single limiter of the process, shared by every request.
	limiter := ratelimit.New(cfg.Limits.Count, cfg.Limits.Window, ratelimit.SystemClock{})

	fetcher, err := data.CreateMainFetcher(cfg.Riot, limiter, logger)
	if err != nil {
		log.Fatalf("Couldn't create the fetcher: %v", err)
	}

	metricsServer := startMetricsServer(cfg.Fetcher.MetricsAddr, logger)

	list, err := net.Listen("tcp", cfg.Fetcher.ListenAddr)
	if err != nil {
		log.Fatalf("Couldn't start the tcp server: %v", err)
	}

	grpcServer, healthServer := startGRPCServer(list, fetcher, logger)

	// Shutdown everything.
	handleShutdown(grpcServer, healthServer, metricsServer, stop)

	// Keep the logs of the run before exiting.
	if cfg.Bucket.LogBucket != "" {
		uploadCtx, cancelUpload := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelUpload()

		key := "fetcher/" + time.Now().UTC().Format("2006-01-02T15-04-05") + ".log"
		if err := logger.UploadToS3Bucket(uploadCtx, cfg.Bucket, key); err != nil {
			log.Printf("Couldn't upload the logs: %v", err)
		}
	}
}

// Start the grpc server serving the stats on demand.
func startGRPCServer(list net.Listener, fetcher stats.StatsFetcher, logger *logger.NewLogger) (*grpc.Server, *health.Server) {
	// Create the server, register it and serve.
	grpcServer := grpc.NewServer()
	srv := &server{fetcher: fetcher, logger: logger}
	pb.RegisterStatsServiceServer(grpcServer, srv)

	// Register the health check.
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	// Set the serving status as serving.
	healthServer.SetServingStatus(pb.StatsServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	// Run a go routine for the grpc server.
	go func() {
		logger.Infof("Running gRPC server on %s", list.Addr())
		if err := grpcServer.Serve(list); err != nil {
			log.Fatalf("Failed to serve grpc: %v", err)
		}
	}()

	//  Return the grpc and health server.
	return grpcServer, healthServer
}

// Expose the outbound request metrics.
func startMetricsServer(addr string, logger *logger.NewLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("metrics server stopped: %v", err)
		}
	}()

	return srv
}

// Handle the shutdown of the whole server.
func handleShutdown(grpcServer *grpc.Server, healthServer *health.Server, metricsServer *http.Server, cancel context.CancelFunc) {
	// Create the signal channel.
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
	<-signalChannel

	// Set it to not serving.
	healthServer.SetServingStatus(pb.StatsServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()
		grpcServer.GracefulStop()
	}()

	go func() {
		defer wg.Done()
		ctx, cancelTimeout := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelTimeout()
		_ = metricsServer.Shutdown(ctx)
	}()

	wg.Wait()

	cancel()
}
