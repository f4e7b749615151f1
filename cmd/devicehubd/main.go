package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/devicehub/errstatus/internal/config"
	"github.com/devicehub/errstatus/internal/devicehub"
	"github.com/devicehub/errstatus/internal/server"
)

type CmdLineOpts struct {
	configPath string
}

var (
	opts CmdLineOpts
)

func init() {
	// Parse CmdLine flags
	flag.StringVar(&opts.configPath, "config", "/etc/devicehub/config.yaml", "devicehub configuration file path")
}

func main() {
	flag.Parse()
	viper.SetConfigFile(opts.configPath)
	if err := viper.ReadInConfig(); err != nil {
		log.Printf("No configuration read from path %s, continuing with defaults: %v", opts.configPath, err)
	}
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to parse devicehub configuration from path %s. Error %v", opts.configPath, err)
	}

	// Initialize the logger
	logger, err := config.InitLogger(cfg.Service.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize zap logger: %v", err)
	}
	defer logger.Sync() // Ensure all logs are flushed before the application exits

	svc := devicehub.NewService(logger.Named("DeviceService"))
	seed(svc)

	srv, err := server.NewDeviceHubServer(cfg.Service, logger.Named("Server"), svc)
	if err != nil {
		log.Fatalf("failed to initialize devicehub server: %v", err)
	}

	// Create main context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger.Info("Installing signal handlers")
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}

	wg.Add(2)
	go func() {
		defer wg.Done()
		shutdownHandler(logger, ctx, sigs, cancel)
	}()
	go func() {
		defer wg.Done()
		if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("failed to start devicehub server. %v", err)
		}
	}()
	wg.Wait()
	logger.Info("Exiting cleanly...")
	os.Exit(0)
}

// seed registers the demo accounts and devices the probe client runs against.
func seed(svc *devicehub.Service) {
	svc.AddToken("demo-token")
	svc.AddDevice("acme", devicehub.Device{ID: "thermostat-1", Name: "Lobby thermostat", State: "online"})
	svc.AddDevice("acme", devicehub.Device{ID: "camera-7", Name: "Dock camera", State: "offline"})
}

func shutdownHandler(log *zap.Logger, ctx context.Context, sigs chan os.Signal, cancel context.CancelFunc) {
	// Wait for the context to be Done or for the signal to come in to shutdown.
	select {
	case <-ctx.Done():
		log.Info("Stopping shutdownHandler...")
	case <-sigs:
		// Call cancel on the context to close everything down.
		cancel()
		log.Info("shutdownHandler sent cancel signal...")
	}

	// Unregister to get default OS nuke behaviour in case we don't exit cleanly
	signal.Stop(sigs)
}
