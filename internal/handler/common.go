package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	apperrors "github.com/Payphone-Digital/dashboard/internal/errors"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	ctxutil "github.com/Payphone-Digital/dashboard/pkg/context"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"github.com/Payphone-Digital/dashboard/pkg/validation"
	"github.com/gin-gonic/gin"
)

// ListFunc loads one page of rows for params.
type ListFunc[T any] func(ctx context.Context, params listview.RequestParams) (listview.Page[T], error)

func handlerContext(c *gin.Context, function string) context.Context {
	return ctxutil.WithFunction(c.Request.Context(), "handler", function)
}

// serveList answers a list request. The query string is normalized by ctrl, so
// malformed parameters fall back to defaults instead of failing the request.
func serveList[T any](c *gin.Context, ctrl *listview.Controller, entity string, list ListFunc[T]) {
	ctx := handlerContext(c, "List")

	state := ctrl.InitFromLocation(c.Request.URL.RawQuery)
	params := ctrl.ToRequestParams(state)
	orderBy, orderSort := params.Order()

	logger.InfoWithContext(ctx, "List request").
		String("entity", entity).
		String("raw_query", c.Request.URL.RawQuery).
		Int("page", params.Page).
		Int("page_size", params.PageSize).
		String("search", params.Search()).
		String("order_by", orderBy).
		String("order_sort", orderSort.Token()).
		Log()

	page, err := list(ctx, params)
	if err != nil {
		respondError(ctx, c, "Failed to fetch "+entity, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(page.Items, page.Total, params.Page, params.PageSize, ctrl.ToQueryString(state)))
}

// parseID reads the :id path parameter and answers 400 when it is not a positive integer.
func parseID(ctx context.Context, c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		logger.WarnWithContext(ctx, "Invalid ID format").
			String("raw_id", raw).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrInvalidID.Message, nil))
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body into req and answers 400 with the validation messages on failure.
func bindJSON(ctx context.Context, c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		messages := validation.Messages(err)
		logger.WarnWithContext(ctx, "Invalid request body").
			Any("validation_errors", messages).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, messages))
		return false
	}
	return true
}

// respondError logs err and writes the status ToHTTPStatus maps it to.
func respondError(ctx context.Context, c *gin.Context, message string, err error) {
	status := apperrors.ToHTTPStatus(err)
	entry := logger.WarnWithContext(ctx, message)
	if status >= http.StatusInternalServerError {
		entry = logger.ErrorWithContext(ctx, message)
	}
	entry.StatusCode(status).Err(err).Log()

	c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
}

// currentUserID is the authenticated user set by the JWT middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	return ctxutil.GetUserIDUint(c.Request.Context())
}
