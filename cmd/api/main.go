package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/imobiliaria-api/internal/cache"
	"github.com/BruksfildServices01/imobiliaria-api/internal/config"
	dbpkg "github.com/BruksfildServices01/imobiliaria-api/internal/db"
	"github.com/BruksfildServices01/imobiliaria-api/internal/httpmetrics"
	"github.com/BruksfildServices01/imobiliaria-api/internal/logger"
	"github.com/BruksfildServices01/imobiliaria-api/internal/middleware"
	"github.com/BruksfildServices01/imobiliaria-api/internal/routes"
	"github.com/BruksfildServices01/imobiliaria-api/internal/storage"
)

func main() {

	cfg := config.Load()

	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	db := dbpkg.NewDB(cfg)

	uploader := storage.NewS3Storage(cfg)
	dashCache := cache.New(cfg.RedisAddr)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(logger.RequestLogger())
	r.Use(httpmetrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", httpmetrics.Handler())

	routes.RegisterRoutes(r, db, cfg, uploader, dashCache)

	zap.L().Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		zap.L().Fatal("failed to start server", zap.Error(err))
	}
}
