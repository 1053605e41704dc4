// README: Entry point; loads config, wires the pipeline, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/ai"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/config"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/geo"
	httptransport "github.com/TsakasAchille/KlandoDash-sub000/internal/http"
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
	// .env is optional; real deployments set the environment directly.
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

	geocoder := geo.NewGeocoder(cfg.Geo.NominatimBaseURL, cfg.Geo.CountryCode, logger)
	router := geo.NewRouter(cfg.Geo.OSRMBaseURL, logger)

	requestStore := request.NewStore(dbPool)
	requestSvc := request.NewService(requestStore)

	tripStore := trip.NewStore(dbPool)
	driverStore := driver.NewStore(dbPool)
	cardStore := card.NewStore(dbPool)

	usageStore := aiusage.NewStore(dbPool, cfg.AI.MonthlyQuota)
	usageSvc := aiusage.NewService(usageStore)

	matchingSvc := matching.NewService(requestStore, tripStore, gemini, usageSvc, cfg.Matching, logger)
	scanSvc := scan.NewService(requestStore, matchingSvc, cardStore, driverStore, scan.NewRedisLock(redisClient), cfg.Scan, logger)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Requests: requestSvc,
		Matching: matchingSvc,
		Scan:     scanSvc,
		Cards:    cardStore,
		Geocoder: geocoder,
		Router:   router,
		Log:      logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	logger.Info("klando-api listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
