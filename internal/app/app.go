package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/BuildLoopLLC/clearview-core/internal/config"
	"github.com/BuildLoopLLC/clearview-core/internal/database"
	"github.com/BuildLoopLLC/clearview-core/internal/middleware"
	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/content"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/contentcache"
	jwtpkg "github.com/BuildLoopLLC/clearview-core/internal/pkg/jwt"
	pkgredis "github.com/BuildLoopLLC/clearview-core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	logger *zap.Logger
	cache  *contentcache.Cache
	cancel context.CancelFunc
}

// New initializes the application: config → DB → Redis → cache → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	// Redis is optional: without it the app still runs, but cache
	// invalidation stays process-local and rate limiting is off.
	var rc *pkgredis.Client
	if url := cfg.Redis.URLValue(); url != "" {
		rc, err = pkgredis.Connect(url)
		if err != nil {
			logger.Warn("redis unavailable, continuing without it", zap.Error(err))
			rc = nil
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	contentSvc := content.NewService(db)
	loader := func(ctx context.Context, section string) ([]models.ContentItemModel, error) {
		return contentSvc.FetchSection(section, "")
	}
	cache := contentcache.New(loader, logger, contentcache.Options{
		TTL:   cfg.ContentCacheTTL,
		Redis: rc,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go cache.ListenInvalidations(ctx)

	app := &App{cfg: cfg, router: router, db: db, logger: logger, cache: cache, cancel: cancel}
	app.registerRoutes(rc, contentSvc)

	return app, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	return corsConfig
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }
