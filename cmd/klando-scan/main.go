// README: One-shot global scan runner, meant for cron.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/ai"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/config"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/infra"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/logging"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/aiusage"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/card"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/driver"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/matching"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/request"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/scan"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/trip"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.NewLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	gemini, err := ai.NewGeminiClient(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer gemini.Close()

	requestStore := request.NewStore(dbPool)
	tripStore := trip.NewStore(dbPool)
	driverStore := driver.NewStore(dbPool)
	cardStore := card.NewStore(dbPool)
	usageSvc := aiusage.NewService(aiusage.NewStore(dbPool, cfg.AI.MonthlyQuota))

	matchingSvc := matching.NewService(requestStore, tripStore, gemini, usageSvc, cfg.Matching, logger)
	scanSvc := scan.NewService(requestStore, matchingSvc, cardStore, driverStore, scan.NewRedisLock(redisClient), cfg.Scan, logger)

	inserted, err := scanSvc.Run(ctx)
	if err != nil {
		log.Fatalf("global scan: %v", err)
	}
	logger.Info("global scan finished", "cards_inserted", inserted)
}
