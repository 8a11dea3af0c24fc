package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/studysync/tutor-scheduler/internal/config"
	dbpkg "github.com/studysync/tutor-scheduler/internal/db"
	"github.com/studysync/tutor-scheduler/internal/logger"
	"github.com/studysync/tutor-scheduler/internal/routes"
	ucBooking "github.com/studysync/tutor-scheduler/internal/usecase/booking"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	wiring := routes.RegisterRoutes(r, db, cfg, log)

	go runSweeper(wiring.Sweeper, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// runSweeper promotes past approved bookings to completed once an hour.
func runSweeper(sweeper *ucBooking.CompletePastBookings, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		n, err := sweeper.Execute(context.Background())
		if err != nil {
			log.Warn("booking sweep failed", zap.Error(err))
		} else if n > 0 {
			log.Info("bookings auto-completed", zap.Int("count", n))
		}

		<-ticker.C
	}
}
