package constants

// HTTP Header Names
const (
	HeaderContentType    = "Content-Type"
	HeaderAccept         = "Accept"
	HeaderAuthorization  = "Authorization"
	HeaderXRequestID     = "X-Request-ID"
	HeaderXCorrelationID = "X-Correlation-ID"
	HeaderRetryAfter     = "Retry-After"
)

const ContentTypeJSON = "application/json"

// Error messages shared by middleware and handlers
const (
	MsgUnauthorized  = "Unauthorized access"
	MsgForbidden     = "Access forbidden"
	MsgNotFound      = "Resource not found"
	MsgBadRequest    = "Invalid request"
	MsgInternalError = "Internal server error"
	MsgTimeout       = "Request timeout"
	MsgCacheDisabled = "List cache is disabled"
)
