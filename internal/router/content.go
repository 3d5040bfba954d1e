package router

import "github.com/gin-gonic/gin"

func (r *Router) articleRoutes(version *gin.RouterGroup) {
	articles := version.Group("/articles")
	{
		articles.GET("", r.handlers.Article.GetAll)
		articles.GET("/:id", r.handlers.Article.GetByID)
		articles.POST("", r.handlers.Article.Create)
		articles.PUT("/:id", r.handlers.Article.Update)
		articles.DELETE("/:id", r.handlers.Article.Delete)
	}
}

func (r *Router) couponRoutes(version *gin.RouterGroup) {
	coupons := version.Group("/coupons")
	{
		coupons.GET("", r.handlers.Coupon.GetAll)
		coupons.GET("/:id", r.handlers.Coupon.GetByID)
		coupons.POST("", r.handlers.Coupon.Create)
		coupons.PUT("/:id", r.handlers.Coupon.Update)
		coupons.DELETE("/:id", r.handlers.Coupon.Delete)
	}
}

// redeemRoutes are open to every authenticated user, not only admins.
func (r *Router) redeemRoutes(version *gin.RouterGroup) {
	// The wildcard carries the coupon code; gin needs one name per segment.
	version.POST("/coupons/:id/redeem", r.handlers.Coupon.Redeem)
}

func (r *Router) addressRoutes(version *gin.RouterGroup) {
	addresses := version.Group("/addresses")
	{
		addresses.GET("", r.handlers.Address.GetAll)
		addresses.GET("/:id", r.handlers.Address.GetByID)
		addresses.POST("", r.handlers.Address.Create)
		addresses.PUT("/:id", r.handlers.Address.Update)
		addresses.DELETE("/:id", r.handlers.Address.Delete)
	}
}
