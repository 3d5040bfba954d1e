package constants

// Standard Response Field Keys
const (
	// List fields
	ResponseFieldItems     = "items"
	ResponseFieldTotal     = "total"
	ResponseFieldPage      = "page"
	ResponseFieldPageSize  = "pageSize"
	ResponseFieldPageTotal = "pageTotal"
	ResponseFieldQuery     = "query"
	ResponseFieldData      = "data"

	// Common response fields
	ResponseFieldMessage = "message"
	ResponseFieldDetails = "details"
)

// PageTotal is the number of pages needed for total rows.
func PageTotal(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// BuildListResponse renders one page of a list. query is the canonical query
// string of the request so clients can replace their location with it.
func BuildListResponse(items any, total int64, page, pageSize int, query string) map[string]any {
	return map[string]any{
		ResponseFieldItems:     items,
		ResponseFieldTotal:     total,
		ResponseFieldPage:      page,
		ResponseFieldPageSize:  pageSize,
		ResponseFieldPageTotal: PageTotal(total, pageSize),
		ResponseFieldQuery:     query,
	}
}

func BuildDataResponse(data any) map[string]any {
	return map[string]any{
		ResponseFieldData: data,
	}
}

func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
	}
}
