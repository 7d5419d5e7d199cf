package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "cafe-ops-system.com/cafe-ops-system/internal/configs"
	httpapi "cafe-ops-system.com/cafe-ops-system/internal/http"
	"cafe-ops-system.com/cafe-ops-system/internal/lock"
	repository "cafe-ops-system.com/cafe-ops-system/internal/repositories"
	"cafe-ops-system.com/cafe-ops-system/internal/scheduler"
	"cafe-ops-system.com/cafe-ops-system/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the daily-task API: reconciliation, lifecycle, reporting and maintenance endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.New(cfg.DatabaseDSN)

		occurrenceRepo := repository.NewOccurrenceRepository(database)
		slotRepo := repository.NewSlotRepository(database)
		templateRepo := repository.NewTemplateRepository(database)
		teamRepo := repository.NewTeamRepository(database)

		locker, closeLocker := newLocker(cfg)
		defer closeLocker()

		materializer := services.NewMaterializerService(occurrenceRepo, slotRepo, templateRepo, locker)
		lifecycle := services.NewLifecycleService(occurrenceRepo)
		reports := services.NewReportService(occurrenceRepo, teamRepo)
		maintenance := services.NewMaintenanceService(occurrenceRepo, slotRepo, locker)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sched := startMaintenanceSchedule(cfg, maintenance)
		if sched != nil {
			defer sched.Stop()
		}

		e := echo.New()
		handler := httpapi.NewHandler(materializer, lifecycle, reports, maintenance)
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

// newLocker picks the redis lock when an address is configured, so several
// API replicas can share one occurrence store without racing reconcile.
func newLocker(cfg config.Config) (lock.ReconcileLocker, func()) {
	if cfg.RedisAddr == "" {
		return lock.NewLocalLocker(), func() {}
	}

	redisClient := config.NewRedisClient(cfg.RedisAddr)
	locker := lock.NewRedisLocker(redisClient, cfg.ReconcileLockKey)
	if err := locker.Initialize(context.Background()); err != nil {
		log.Fatalf("failed to initialize reconcile lock: %v", err)
	}
	return locker, redisClient.Close
}

func startMaintenanceSchedule(cfg config.Config, maintenance *services.MaintenanceService) *scheduler.Scheduler {
	if cfg.MaintenanceIntervalMinutes <= 0 {
		return nil
	}

	sched := scheduler.New(time.Local)
	interval := time.Duration(cfg.MaintenanceIntervalMinutes) * time.Minute
	_, err := sched.ScheduleInterval(interval, func() {
		ctx := context.Background()
		if _, err := maintenance.RemoveDuplicates(ctx); err != nil {
			log.Printf("scheduled maintenance: remove duplicates failed: %v", err)
		}
		if _, err := maintenance.RemovePastScheduled(ctx); err != nil {
			log.Printf("scheduled maintenance: remove past scheduled failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("failed to schedule maintenance: %v", err)
	}

	sched.Start()
	log.Printf("maintenance scheduled every %d minutes", cfg.MaintenanceIntervalMinutes)
	return sched
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
