package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/civic-issues/backend/internal/classifier"
	"github.com/civic-issues/backend/internal/config"
	"github.com/civic-issues/backend/internal/http/handlers"
	"github.com/civic-issues/backend/internal/http/middleware"
	"github.com/civic-issues/backend/internal/issue"
	"github.com/civic-issues/backend/internal/metrics"

	_ "github.com/civic-issues/backend/docs"
)

// IssueRouter serves the issue intake API.
func IssueRouter(cfg config.Config, svc *issue.Service, m *metrics.Metrics, logger zerolog.Logger) *gin.Engine {
	r := newEngine(cfg, m, logger, handlers.ServerErrorRecovery(logger))

	h := &handlers.Handler{Issues: svc, Metrics: m, Logger: logger}

	r.GET("/healthz", h.Healthz)
	r.POST("/issue", h.ReportIssue)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// ClassifierRouter serves the drag-and-drop demo and its predict endpoint.
func ClassifierRouter(cfg config.Config, clf *classifier.Classifier, m *metrics.Metrics, logger zerolog.Logger) *gin.Engine {
	r := newEngine(cfg, m, logger, handlers.ClassifierErrorRecovery(logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	h := &handlers.Handler{Classifier: clf, Metrics: m, Logger: logger}

	r.GET("/", h.Index)
	r.GET("/healthz", h.ClassifierHealthz)

	api := r.Group("/api")
	{
		api.POST("/predict", h.Predict)
	}

	return r
}

func newEngine(cfg config.Config, m *metrics.Metrics, logger zerolog.Logger, recovery gin.RecoveryFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(recovery))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, m))
	r.Use(middleware.BodyLimit(cfg.MaxUploadSizeMB << 20))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	if m != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}
	return r
}
