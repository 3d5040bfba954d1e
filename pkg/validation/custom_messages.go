package validation

// customMessages overrides the default text for a field and tag, keyed by the
// JSON field name.
var customMessages = map[string]map[string]string{
	"email": {
		"required": "email is required",
		"email":    "email is not a valid address",
	},
	"password": {
		"required": "password is required",
		"min":      "password must be at least 6 characters",
	},
	"quantity": {
		"min": "quantity must be at least 1",
		"max": "at most 1000 coupons can be created at once",
	},
	"status": {
		"oneof": "status must be 0 (disabled) or 1 (enabled)",
	},
	"type": {
		"oneof": "type must be coupon",
	},
}

// CustomMessage returns the overrides for field, or nil.
func CustomMessage(field string) map[string]string {
	return customMessages[field]
}
