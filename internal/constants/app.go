package constants

const AppVersion = "1.0.0"

// Cache Key Prefixes
const (
	CacheKeyList    = "dash:list:"
	CacheKeyUser    = CacheKeyList + "users:"
	CacheKeyArticle = CacheKeyList + "articles:"
	CacheKeyCoupon  = CacheKeyList + "coupons:"
	CacheKeyAddress = CacheKeyList + "addresses:"
)

// Module names carried in the request context for log entries
const (
	ModuleUser    = "user"
	ModuleArticle = "article"
	ModuleCoupon  = "coupon"
	ModuleAddress = "address"
	ModuleAuth    = "auth"
)
