package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/dto"
	apperrors "github.com/Payphone-Digital/dashboard/internal/errors"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

type Coupons interface {
	List(ctx context.Context, params listview.RequestParams) (listview.Page[dto.CouponResponse], error)
	GetByID(ctx context.Context, id uint) (*dto.CouponResponse, error)
	Create(ctx context.Context, req *dto.CreateCouponRequest) ([]dto.CouponResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateCouponRequest) (*dto.CouponResponse, error)
	Delete(ctx context.Context, id uint) error
	Redeem(ctx context.Context, code string, userID uint) (*dto.CouponResponse, error)
}

type CouponHandler struct {
	coupons Coupons
	list    *listview.Controller
}

func NewCouponHandler(coupons Coupons, list *listview.Controller) *CouponHandler {
	return &CouponHandler{coupons: coupons, list: list}
}

func (h *CouponHandler) GetAll(c *gin.Context) {
	serveList(c, h.list, "coupons", h.coupons.List)
}

func (h *CouponHandler) GetByID(c *gin.Context) {
	ctx := handlerContext(c, "GetCouponByID")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}
	coupon, err := h.coupons.GetByID(ctx, id)
	if err != nil {
		respondError(ctx, c, "Failed to fetch coupon", err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(coupon))
}

// Create issues a batch of coupons and returns all of them.
func (h *CouponHandler) Create(c *gin.Context) {
	ctx := handlerContext(c, "CreateCoupons")

	var req dto.CreateCouponRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	coupons, err := h.coupons.Create(ctx, &req)
	if err != nil {
		respondError(ctx, c, "Failed to create coupons", err)
		return
	}

	logger.InfoWithContext(ctx, "Coupons issued").
		String("name", req.Name).
		Int("quantity", len(coupons)).
		Log()

	c.JSON(http.StatusCreated, constants.BuildDataResponse(coupons))
}

func (h *CouponHandler) Update(c *gin.Context) {
	ctx := handlerContext(c, "UpdateCoupon")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}
	var req dto.UpdateCouponRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	coupon, err := h.coupons.Update(ctx, id, &req)
	if err != nil {
		respondError(ctx, c, "Failed to update coupon", err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(coupon))
}

func (h *CouponHandler) Delete(c *gin.Context) {
	ctx := handlerContext(c, "DeleteCoupon")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}
	if err := h.coupons.Delete(ctx, id); err != nil {
		respondError(ctx, c, "Failed to delete coupon", err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(listview.MsgDeletedSuccessfully))
}

// Redeem assigns the coupon whose code is in the :id segment to the authenticated user.
func (h *CouponHandler) Redeem(c *gin.Context) {
	ctx := handlerContext(c, "RedeemCoupon")

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	coupon, err := h.coupons.Redeem(ctx, c.Param("id"), userID)
	if err != nil {
		respondError(ctx, c, "Failed to redeem coupon", err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(coupon))
}
