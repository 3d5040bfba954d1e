package router

import "github.com/gin-gonic/gin"

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		auth.POST("/login", r.handlers.Auth.Login)
		auth.GET("/me", r.jwtMw.RequireAuth(), r.handlers.Auth.Me)
	}
}
