package http

import (
	"context"

	"github.com/go-chi/chi/v5"

	"seo_insight/internal/adaptors"
	"seo_insight/internal/application/config"
	"seo_insight/internal/http/handlers"
	"seo_insight/internal/http/middleware"
	"seo_insight/internal/service"
)

func initRoutes(_ context.Context, r *Router, appCfg *config.AppConfig) {
	r.httpRouter.Use(middleware.MetricsMiddleware)
	r.httpRouter.Use(middleware.RequestIDLoggerMiddleware(r.log))

	limiter := middleware.NewTokenBucketLimiter(appCfg.RateLimitPerSec, appCfg.RateLimitBurst, nil)

	webClient := adaptors.NewWebClient(appCfg.FetchTimeout, r.log)
	pageSpeedClient := adaptors.NewPageSpeedClient(appCfg.PageSpeedAPIURL, appCfg.PageSpeedAPIKey, appCfg.FetchTimeout, r.log)

	seoHandler := handlers.NewSEOAnalysisHandler(service.NewSEOAnalyzer(r.log, webClient), r.log)
	pageSpeedHandler := handlers.NewPageSpeedHandler(service.NewPageSpeedAuditor(r.log, pageSpeedClient), r.log)

	// Routes
	r.httpRouter.Get("/ready", handlers.NewReadyHandler().Handle)
	r.httpRouter.Group(func(g chi.Router) {
		g.Use(middleware.RateLimitMiddleware(limiter))
		g.Post("/analyze/seo", seoHandler.Handle)
		g.Post("/analyze/pagespeed", pageSpeedHandler.Handle)
	})
}
