package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-dashboard/internal/api"
	"meal-dashboard/internal/app"
	"meal-dashboard/internal/config"
	"meal-dashboard/internal/web"

	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	// 1. Load Configuration
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.NewFromEnv()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Wire the store, loader and dashboard. This issues the initial fetch.
	application := app.NewApp(cfg, api.NewClient(cfg), os.Stdout)

	// 3. Web server and snapshot push
	server := web.NewServer(cfg, application.Store(), application.Loader(), application.Dashboard(), application.Metrics())

	snapshots, unsubscribe := application.Store().Subscribe()
	go server.Hub().Run(snapshots)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Router(),
	}

	go func() {
		log.Printf("Dashboard server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	unsubscribe()
	application.Close()
	log.Println("Server exiting")
}
