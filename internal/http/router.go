// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/geo"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/http/handlers"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/http/middleware"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/card"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/matching"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/request"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/scan"
)

type RouterDeps struct {
	Requests *request.Service
	Matching *matching.Service
	Scan     *scan.Service
	Cards    *card.Store
	Geocoder *geo.Geocoder
	Router   *geo.Router
	Log      *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))

	requestHandler := handlers.NewRequestHandler(deps.Requests, deps.Matching)
	r.GET("/api/requests", requestHandler.ListOpen)
	r.GET("/api/requests/:id", requestHandler.Get)
	r.POST("/api/requests/:id/status", requestHandler.SetStatus)
	r.POST("/api/requests/:id/recommendation", requestHandler.Recommend)
	r.POST("/api/requests/:id/recommendation/refresh", requestHandler.ForceRecommend)
	r.GET("/api/requests/:id/candidates", requestHandler.Candidates)

	cardHandler := handlers.NewCardHandler(deps.Cards)
	r.GET("/api/cards", cardHandler.List)
	r.POST("/api/cards/:id/apply", cardHandler.Apply)
	r.POST("/api/cards/:id/dismiss", cardHandler.Dismiss)
	r.DELETE("/api/cards/:id", cardHandler.Delete)

	scanHandler := handlers.NewScanHandler(deps.Scan)
	r.POST("/api/scan", scanHandler.Run)

	geoHandler := handlers.NewGeoHandler(deps.Geocoder, deps.Router)
	r.GET("/api/geocode", geoHandler.Geocode)
	r.GET("/api/route", geoHandler.Route)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
