package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"coatlas/internal/colorscale"
	"coatlas/internal/config"
	"coatlas/internal/dataset"
	"coatlas/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	// Load the dataset eagerly: a missing or malformed file is fatal before
	// the server accepts a single request.
	store := dataset.NewStore(appConfig.Data.GeoJSONFile)
	if err := store.Warm(); err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	ramp := colorscale.RampSpec{
		Name:    appConfig.Color.Ramp,
		Classes: appConfig.Color.Classes,
	}
	server, err := ui.NewServer(store, ramp)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("Profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("pprof server failed: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:    ":" + appConfig.Server.Port,
		Handler: server.Router(),
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Printf("Starting CO dashboard server on port %s", appConfig.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Println("Shutting down dashboard server")
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
