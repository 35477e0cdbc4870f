package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"planner-backend/internal/config"
	"planner-backend/internal/events"
	"planner-backend/internal/handlers"
	"planner-backend/internal/repository"
	"planner-backend/internal/router"
	"planner-backend/internal/services"
	"planner-backend/internal/storage"
)

func main() {
	log.Println("🚀 Starting Study Planner Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Open the Record Store ────
	store, cleanup, err := newStore(cfg)
	if err != nil {
		log.Fatalf("✗ Storage initialization failed: %v", err)
	}
	defer cleanup()
	log.Printf("✓ Record store ready (%s)", cfg.StorageType)

	// ──── Step 3: Start the Change Notification Hub ────
	hub := events.NewHub()
	log.Println("✓ WebSocket hub started")

	// ──── Initialize Repositories ────
	subjectRepo := repository.NewSubjectRepo(store)
	taskRepo := repository.NewTaskRepo(store)
	sessionRepo := repository.NewSessionRepo(store)
	examRepo := repository.NewExamRepo(store)

	// ──── Initialize Services ────
	subjectService := services.NewSubjectService(subjectRepo, hub)
	taskService := services.NewTaskService(taskRepo, hub, nil)
	examService := services.NewExamService(examRepo, hub, nil)
	scheduler := services.NewScheduler(sessionRepo, hub, nil)
	analyticsService := services.NewAnalyticsService(sessionRepo, subjectRepo, taskRepo)

	// ──── Initialize Handlers ────
	subjectHandler := handlers.NewSubjectHandler(subjectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	examHandler := handlers.NewExamHandler(examService)
	scheduleHandler := handlers.NewScheduleHandler(scheduler, subjectService)
	dashboardHandler := handlers.NewDashboardHandler(subjectService, taskService, examService, scheduler, scheduleHandler)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	exportHandler := handlers.NewExportHandler(subjectRepo, taskRepo, sessionRepo, examRepo, store, hub)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(
		subjectHandler,
		taskHandler,
		examHandler,
		scheduleHandler,
		dashboardHandler,
		analyticsHandler,
		exportHandler,
		hub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("✓ Server listening on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("✗ Server failed: %v", err)
	}
	log.Println("Server stopped")
}

// newStore opens the configured storage backend. The returned cleanup
// releases backend connections.
func newStore(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.StorageType {
	case config.StorageFile:
		store, err := storage.NewFileStore(cfg.DataPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case config.StorageMemory:
		return storage.NewMemoryStore(), func() {}, nil
	case config.StorageRedis:
		store, err := storage.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case config.StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for postgres storage")
		}
		store, err := storage.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_TYPE %q", cfg.StorageType)
	}
}
