package bootstrap

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/duis-detector/config"
	httpapi "github.com/GoSim-25-26J-441/duis-detector/internal/api/http"
	"github.com/GoSim-25-26J-441/duis-detector/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	duishttp "github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/http"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/repository"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/service"
)

type RouterDeps struct {
	Config *config.Config
	Rules  detection.Config
	DB     *sql.DB
	Redis  *redis.Client
	Log    *logrus.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config
	log := dep.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(log))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	var (
		svcOpts   = []service.Option{service.WithLogger(log)}
		hOpts     = duishttp.HandlerOptions{MaxBodyBytes: cfg.Server.MaxBodyBytes, Logger: log}
		dbPing    httpapi.Pinger
		cachePing httpapi.Pinger
	)
	if dep.Redis != nil {
		cache := repository.NewReportCache(dep.Redis, cfg.Redis.ReportTTL)
		svcOpts = append(svcOpts, service.WithCache(cache))
		hOpts.Reports = cache
		cachePing = cache
	}
	if dep.DB != nil {
		runs := repository.NewRunRepository(dep.DB)
		svcOpts = append(svcOpts, service.WithRuns(runs))
		hOpts.Runs = runs
		dbPing = runs
	}

	health := httpapi.NewHealthHandler(cfg.App.ServiceName, cfg.App.Version, len(detection.All()), dbPing, cachePing)
	health.RegisterRoutes(r)

	var analysis []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		analysis = append(analysis, middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware())
	}

	api := r.Group("/api/v1")
	duishttp.NewHandler(service.New(svcOpts...), dep.Rules, hOpts).Register(api, analysis...)

	return r
}
