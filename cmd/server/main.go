package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/app"
	"github.com/sunpeak-rentals/scheduling-backend/internal/config"
	"github.com/sunpeak-rentals/scheduling-backend/internal/db"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	loc, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		log.Fatalf("failed to load business timezone: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	container := app.NewContainer(app.Config{
		IsProduction:     cfg.IsProduction,
		ProdOrigins:      cfg.ProdOrigins,
		DBPool:           pool,
		JWTSecret:        cfg.JWTSecret,
		JWTTTL:           cfg.JWTAccessTokenTTL,
		BcryptCost:       cfg.BcryptCost,
		BusinessLocation: loc,
		LeadTime:         time.Duration(cfg.LeadTimeHours) * time.Hour,
		CutoffHour:       cfg.BookingCutoffHour,
		DeliveryGrace:    cfg.DeliveryGrace,
		PickupGrace:      cfg.PickupGrace,
	})

	// The automation processor is normally triggered by an external
	// scheduler hitting POST /v1/automation/run. The in-process ticker
	// covers deployments without one.
	if cfg.AutomationInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.AutomationInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					result, err := container.Automation.Run(ctx)
					if err != nil {
						log.Printf("automation run failed: %v", err)
						continue
					}
					log.Printf("automation run: processed=%d attention=%d completed=%d errors=%d",
						result.Processed, result.AttentionCreated, result.AutoCompleted, result.Errors)
				}
			}
		}()
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
