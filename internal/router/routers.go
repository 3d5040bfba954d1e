package router

import (
	"net/http"
	"time"

	"github.com/Payphone-Digital/dashboard/config"
	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/handler"
	"github.com/Payphone-Digital/dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	User    *handler.UserHandler
	Auth    *handler.AuthHandler
	Article *handler.ArticleHandler
	Coupon  *handler.CouponHandler
	Address *handler.AddressHandler
	Health  *handler.HealthHandler
	Cache   *handler.CacheHandler
}

type Router struct {
	handlers Handlers
	jwtMw    *middleware.JWTMiddleware
	metrics  *middleware.Metrics
	Config   *config.Config
}

func NewRouter(handlers Handlers, jwtMw *middleware.JWTMiddleware, metrics *middleware.Metrics, cfg *config.Config) *Router {
	return &Router{
		handlers: handlers,
		jwtMw:    jwtMw,
		metrics:  metrics,
		Config:   cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestContext())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityLoggingMiddleware())
	router.Use(middleware.CORS())
	if r.metrics != nil {
		router.Use(r.metrics.Middleware())
		router.GET("/metrics", r.metrics.Handler())
	}

	api := router.Group("/api")
	{
		api.GET("/health", r.handlers.Health.BasicHealth)
		api.GET("/health/detail", r.handlers.Health.HealthCheck)

		v1 := api.Group("/v1")
		{
			v1.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))
			v1.Use(middleware.RequestTimeout(r.Config.App.Timeout))

			r.authRoutes(v1)

			authenticated := v1.Group("")
			authenticated.Use(r.jwtMw.RequireAuth())
			{
				r.redeemRoutes(authenticated)
			}

			protected := v1.Group("")
			protected.Use(r.jwtMw.RequireAuth(), r.jwtMw.RequireAdmin())
			{
				r.userRoutes(protected)
				r.articleRoutes(protected)
				r.couponRoutes(protected)
				r.addressRoutes(protected)
				r.cacheRoutes(protected)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, constants.BuildErrorResponse(constants.MsgNotFound, nil))
	})

	return router
}

func (r *Router) cacheRoutes(rg *gin.RouterGroup) {
	cache := rg.Group("/cache")
	{
		cache.DELETE("/lists", r.handlers.Cache.InvalidateLists)
	}
}
