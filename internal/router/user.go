package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	{
		// ?page&pageSize&q&orderBy&orderSort
		users.GET("", r.handlers.User.GetAll)
		users.GET("/:id", r.handlers.User.GetByID)
		users.POST("", r.handlers.User.CreateUser)
		users.PUT("/:id", r.handlers.User.UpdateUser)
		users.DELETE("/:id", r.handlers.User.DeleteUser)
	}
}
