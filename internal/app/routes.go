package app

import (
	"github.com/gin-gonic/gin"
	"github.com/BuildLoopLLC/clearview-core/internal/middleware"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/auth"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/blog"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/contact"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/content"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/event"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/gallery"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/newsletter"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/render"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/settings"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/staff"
	"github.com/BuildLoopLLC/clearview-core/internal/modules/storage/object"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/mail"
	pkgredis "github.com/BuildLoopLLC/clearview-core/internal/pkg/redis"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/response"
	"go.uber.org/zap"
)

// registerRoutes wires every module under /api/v1. Public reads carry
// OptionalAuth so admins see hidden rows; writes stack Auth+RequireAdmin.
func (a *App) registerRoutes(rc *pkgredis.Client, contentSvc *content.Service) {
	sender := mail.New(a.cfg.SMTP, a.logger)
	settingsSvc := settings.NewService(a.db)

	store, err := object.New(a.cfg.ObjectStorage, a.logger)
	if err != nil {
		a.logger.Warn("object storage disabled", zap.Error(err))
		disabled := a.cfg.ObjectStorage
		disabled.Enable = false
		store, _ = object.New(disabled, a.logger)
	}

	a.router.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{"name": "clearview-core"})
	})

	v1 := a.router.Group("/api/v1")
	v1.Use(middleware.OptionalAuth())
	if rc != nil {
		v1.Use(middleware.RateLimit(rc.Raw()))
	}

	adminMW := []gin.HandlerFunc{middleware.Auth(), middleware.RequireAdmin()}

	content.NewHandler(contentSvc, a.cache).RegisterRoutes(v1, adminMW...)
	render.NewHandler(a.cache, a.logger).RegisterRoutes(v1)

	blog.NewHandler(blog.NewService(a.db)).RegisterRoutes(v1, adminMW...)
	event.NewHandler(event.NewService(a.db), sender, settingsSvc).RegisterRoutes(v1, adminMW...)
	gallery.NewHandler(gallery.NewService(a.db, store, a.logger)).RegisterRoutes(v1, adminMW...)
	staff.NewHandler(staff.NewService(a.db)).RegisterRoutes(v1, adminMW...)
	newsletter.NewHandler(newsletter.NewService(a.db), sender, settingsSvc, a.cfg.SiteURL).RegisterRoutes(v1, adminMW...)
	contact.NewHandler(contact.NewService(a.db), sender, settingsSvc).RegisterRoutes(v1, adminMW...)
	settings.NewHandler(settingsSvc).RegisterRoutes(v1, adminMW...)
	auth.NewHandler(auth.NewService(a.db)).RegisterRoutes(v1, middleware.Auth())

	if store.Enabled() && store.Private() {
		object.NewHandler(store).RegisterRoutes(v1)
	}
}
