// Package router assembles the Echo application: global middleware, the
// error handler, and the route groups for all four surfaces.
package router

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/authz"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/handler"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/limiter"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/middleware"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/session"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/surface"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/config"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/logger"
	"github.com/randy-gonzalez/faith-interactive-sub006/prometheus"
)

// Options carries the router's dependencies.
type Options struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Sessions *session.Service
	Store    limiter.CounterStore
}

// New builds the Echo application.
func New(opts Options) *echo.Echo {
	cfg := opts.Cfg
	h := handler.New(opts.DB, opts.Sessions, cfg)

	generalLimiter := limiter.New(cfg.RateLimit.Max, cfg.RateLimit.Window, opts.Store)
	leadLimiter := limiter.New(cfg.RateLimit.LeadMax, cfg.RateLimit.LeadWindow, opts.Store)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler()

	// Global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())
	e.Use(middleware.ResolveSurface)
	e.Use(middleware.LoadAuthContext(opts.Sessions, cfg))

	// System routes, served on every surface
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Admin dashboard surface
	admin := e.Group("/admin/api", middleware.RequireSurface(surface.SurfaceAdmin))
	admin.POST("/auth/login", h.Login, middleware.RateLimit(generalLimiter, "login"))
	admin.POST("/auth/register", h.Register, middleware.RateLimit(generalLimiter, "register"))
	admin.POST("/auth/logout", h.Logout)

	authed := admin.Group("", middleware.RequireAuth(cfg))
	authed.GET("/me", h.Profile)
	authed.GET("/tenants", h.ListMyTenants)
	authed.POST("/tenants", h.CreateTenant)
	authed.POST("/tenant/select", h.SelectTenant)
	authed.POST("/tenant/switch", h.SelectTenant)
	authed.POST("/invites/accept", h.AcceptInvite)

	tenant := authed.Group("", middleware.RequireTenant())
	tenant.GET("/tenant", h.CurrentTenant)

	tenant.GET("/team", h.ListMembers, middleware.RequireRole(authz.CanViewTeam))
	tenant.POST("/team/invites", h.InviteMember, middleware.RequireRole(authz.CanManageTeam))
	tenant.PATCH("/team/:user_id", h.UpdateMemberRole, middleware.RequireRole(authz.CanManageTeam))
	tenant.DELETE("/team/:user_id", h.DeactivateMember, middleware.RequireRole(authz.CanManageTeam))

	tenant.GET("/pages", h.ListPages, middleware.RequireRole(authz.CanViewContent))
	tenant.POST("/pages", h.CreatePage, middleware.RequireRole(authz.CanEditContent))
	tenant.GET("/pages/:id", h.GetPage, middleware.RequireRole(authz.CanViewContent))
	tenant.PATCH("/pages/:id", h.UpdatePage, middleware.RequireRole(authz.CanEditContent))
	tenant.POST("/pages/:id/publish", h.PublishPage, middleware.RequireRole(authz.CanPublishContent))
	tenant.POST("/pages/:id/unpublish", h.UnpublishPage, middleware.RequireRole(authz.CanPublishContent))
	tenant.DELETE("/pages/:id", h.DeletePage, middleware.RequireRole(authz.CanDeleteContent))

	tenant.GET("/sermons", h.ListSermons, middleware.RequireRole(authz.CanViewContent))
	tenant.POST("/sermons", h.CreateSermon, middleware.RequireRole(authz.CanEditContent))
	tenant.GET("/sermons/:id", h.GetSermon, middleware.RequireRole(authz.CanViewContent))
	tenant.PATCH("/sermons/:id", h.UpdateSermon, middleware.RequireRole(authz.CanEditContent))
	tenant.DELETE("/sermons/:id", h.DeleteSermon, middleware.RequireRole(authz.CanDeleteContent))

	tenant.GET("/events", h.ListEvents, middleware.RequireRole(authz.CanViewContent))
	tenant.POST("/events", h.CreateEvent, middleware.RequireRole(authz.CanEditContent))
	tenant.GET("/events/:id", h.GetEvent, middleware.RequireRole(authz.CanViewContent))
	tenant.DELETE("/events/:id", h.DeleteEvent, middleware.RequireRole(authz.CanDeleteContent))

	tenant.GET("/forms/submissions", h.ListFormSubmissions, middleware.RequireRole(authz.CanViewContent))

	// Public church site surface, tenant resolved from the host
	site := e.Group("/site",
		middleware.RequireSurface(surface.SurfacePublic),
		middleware.ResolvePublicTenant(opts.DB))
	site.GET("/pages", h.SitePages)
	site.GET("/pages/:slug", h.SitePage)
	site.GET("/sermons", h.SiteSermons)
	site.GET("/events", h.SiteEvents)
	site.POST("/forms", h.SubmitForm, middleware.RateLimit(generalLimiter, "form_submit"))

	// Internal platform surface
	platform := e.Group("/platform/api", middleware.RequireSurface(surface.SurfacePlatform))
	platform.POST("/auth/login", h.Login, middleware.RateLimit(generalLimiter, "login"))
	platform.POST("/auth/logout", h.Logout)

	staff := platform.Group("", middleware.RequireAuth(cfg), middleware.RequirePlatformStaff())
	staff.GET("/tenants", h.PlatformListTenants)
	staff.GET("/tenants/:id", h.PlatformGetTenant)
	staff.POST("/tenants/:id/suspend", h.PlatformSuspendTenant, middleware.RequirePlatformAdmin())
	staff.POST("/tenants/:id/reactivate", h.PlatformReactivateTenant, middleware.RequirePlatformAdmin())
	staff.GET("/leads", h.ListLeads)
	staff.PATCH("/leads/:id", h.UpdateLeadStatus)

	// Marketing surface
	marketing := e.Group("/marketing", middleware.RequireSurface(surface.SurfaceMarketing))
	marketing.POST("/leads", h.CreateLead, middleware.RateLimit(leadLimiter, "lead_capture"))

	return e
}
