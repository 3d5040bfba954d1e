package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Invalidator drops cached list pages under a key prefix.
type Invalidator interface {
	Invalidate(ctx context.Context, prefix string)
}

var listCachePrefixes = map[string]string{
	"users":     constants.CacheKeyUser,
	"articles":  constants.CacheKeyArticle,
	"coupons":   constants.CacheKeyCoupon,
	"addresses": constants.CacheKeyAddress,
}

type CacheHandler struct {
	cache Invalidator
}

// NewCacheHandler builds the handler; a nil cache means list caching is off.
func NewCacheHandler(cache Invalidator) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// InvalidateLists drops the cached pages of one entity, or of every list when
// no entity is given.
func (h *CacheHandler) InvalidateLists(c *gin.Context) {
	ctx := handlerContext(c, "InvalidateLists")

	if h.cache == nil {
		c.JSON(http.StatusServiceUnavailable, constants.BuildErrorResponse(constants.MsgCacheDisabled, nil))
		return
	}

	entity := c.Query("entity")
	prefix := constants.CacheKeyList
	if entity != "" {
		p, ok := listCachePrefixes[entity]
		if !ok {
			c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Unknown entity", entity))
			return
		}
		prefix = p
	}

	h.cache.Invalidate(ctx, prefix)

	logger.InfoWithContext(ctx, "List cache invalidated").
		String("entity", entity).
		String("prefix", prefix).
		Log()

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Cache invalidated successfully"))
}
