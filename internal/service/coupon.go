package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/dto"
	apperrors "github.com/Payphone-Digital/dashboard/internal/errors"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/internal/model"
	ctxutil "github.com/Payphone-Digital/dashboard/pkg/context"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CouponStore is the persistence CouponService needs.
type CouponStore interface {
	List(ctx context.Context, params listview.RequestParams) ([]model.Coupon, int64, error)
	GetByID(ctx context.Context, id uint) (*model.Coupon, error)
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	CreateBatch(ctx context.Context, coupons []model.Coupon) error
	Updates(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	Redeem(ctx context.Context, id, userID uint, at time.Time) (bool, error)
}

type CouponService struct {
	repo    CouponStore
	cache   *ListCache
	now     func() time.Time
	newCode func() string
}

func NewCouponService(repo CouponStore, cache *ListCache) *CouponService {
	return &CouponService{
		repo:    repo,
		cache:   cache,
		now:     time.Now,
		newCode: newCouponCode,
	}
}

func newCouponCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

func toCouponResponse(c *model.Coupon) dto.CouponResponse {
	return dto.CouponResponse{
		ID:         c.ID,
		Type:       c.Type,
		Code:       c.Code,
		Name:       c.Name,
		Amount:     c.Amount,
		OverAmount: c.OverAmount,
		Status:     c.Status,
		UserID:     c.UserID,
		StartTime:  c.StartTime,
		ExpireTime: c.ExpireTime,
		RedeemedAt: c.RedeemedAt,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// NormalizeCouponRange fills and orders an availability range. A missing bound
// defaults to now and now plus DefaultCouponValidity; a reversed range is
// swapped. Equal bounds are rejected with ErrCouponRange.
func NormalizeCouponRange(start, expire *time.Time, now time.Time) (time.Time, time.Time, error) {
	var from, to time.Time
	switch {
	case start == nil && expire == nil:
		from, to = now, now.Add(constants.DefaultCouponValidity)
	case start == nil:
		from, to = now, *expire
	case expire == nil:
		from, to = *start, start.Add(constants.DefaultCouponValidity)
	default:
		from, to = *start, *expire
	}

	if to.Before(from) {
		from, to = to, from
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, apperrors.ErrCouponRange
	}
	return from, to, nil
}

func (s *CouponService) List(ctx context.Context, params listview.RequestParams) (listview.Page[dto.CouponResponse], error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleCoupon, "List")

	page, err := cachedList(ctx, s.cache, constants.CacheKeyCoupon, params, func(ctx context.Context) (listview.Page[dto.CouponResponse], error) {
		rows, total, err := s.repo.List(ctx, params)
		if err != nil {
			return listview.Page[dto.CouponResponse]{}, err
		}
		items := make([]dto.CouponResponse, len(rows))
		for i := range rows {
			items[i] = toCouponResponse(&rows[i])
		}
		return listview.Page[dto.CouponResponse]{Items: items, Total: total}, nil
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list coupons").
			Int("page", params.Page).
			Err(err).
			Log()
		return listview.Page[dto.CouponResponse]{}, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return page, nil
}

func (s *CouponService) GetByID(ctx context.Context, id uint) (*dto.CouponResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleCoupon, "GetByID")

	coupon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.ErrCouponNotFound)
	}
	res := toCouponResponse(coupon)
	return &res, nil
}

// Create issues req.Quantity coupons sharing one definition, each with its own code.
func (s *CouponService) Create(ctx context.Context, req *dto.CreateCouponRequest) ([]dto.CouponResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleCoupon, "Create")

	quantity := req.Quantity
	if quantity == 0 {
		quantity = constants.DefaultCouponQuantity
	}
	if quantity < 1 || quantity > constants.MaxCouponQuantity {
		return nil, apperrors.ErrCouponQuantity
	}

	start, expire, err := NormalizeCouponRange(req.StartTime, req.ExpireTime, s.now())
	if err != nil {
		return nil, err
	}

	status := model.StatusEnabled
	if req.Status != nil {
		status = *req.Status
	}

	coupons := make([]model.Coupon, quantity)
	for i := range coupons {
		coupons[i] = model.Coupon{
			Type:       constants.CouponType,
			Code:       s.newCode(),
			Name:       strings.TrimSpace(req.Name),
			Amount:     req.Amount,
			OverAmount: req.OverAmount,
			Status:     status,
			StartTime:  start,
			ExpireTime: expire,
		}
	}

	if err := s.repo.CreateBatch(ctx, coupons); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyCoupon)

	res := make([]dto.CouponResponse, len(coupons))
	for i := range coupons {
		res[i] = toCouponResponse(&coupons[i])
	}
	return res, nil
}

// Update applies the provided fields. A new range is normalized against the stored one.
func (s *CouponService) Update(ctx context.Context, id uint, req *dto.UpdateCouponRequest) (*dto.CouponResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleCoupon, "Update")

	updates := make(map[string]interface{})
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.OverAmount != nil {
		updates["over_amount"] = *req.OverAmount
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if req.StartTime != nil || req.ExpireTime != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, mapNotFound(err, apperrors.ErrCouponNotFound)
		}
		startTime, expireTime := req.StartTime, req.ExpireTime
		if startTime == nil {
			startTime = &current.StartTime
		}
		if expireTime == nil {
			expireTime = &current.ExpireTime
		}
		start, expire, err := NormalizeCouponRange(startTime, expireTime, s.now())
		if err != nil {
			return nil, err
		}
		updates["start_time"] = start
		updates["expire_time"] = expire
	}

	if err := s.repo.Updates(ctx, id, updates); err != nil {
		return nil, mapNotFound(err, apperrors.ErrCouponNotFound)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyCoupon)

	return s.GetByID(ctx, id)
}

func (s *CouponService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleCoupon, "Delete")

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, apperrors.ErrCouponNotFound)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyCoupon)
	return nil
}

// Redeem assigns the coupon with code to userID.
func (s *CouponService) Redeem(ctx context.Context, code string, userID uint) (*dto.CouponResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleCoupon, "Redeem")

	coupon, err := s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCouponNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	now := s.now()
	if coupon.UserID != nil {
		return nil, apperrors.ErrCouponRedeemed
	}
	if !coupon.Available(now) {
		logger.InfoWithContext(ctx, "Coupon not available").
			String("code", coupon.Code).
			Int("status", coupon.Status).
			Log()
		return nil, apperrors.ErrCouponNotAvailable
	}

	ok, err := s.repo.Redeem(ctx, coupon.ID, userID, now)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !ok {
		// The row changed after it was read; report what it changed into.
		current, err := s.repo.GetByID(ctx, coupon.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCouponNotFound
			}
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if current.UserID != nil {
			return nil, apperrors.ErrCouponRedeemed
		}
		return nil, apperrors.ErrCouponNotAvailable
	}
	s.cache.Invalidate(ctx, constants.CacheKeyCoupon)

	logger.InfoWithContext(ctx, "Coupon redeemed").
		Uint("coupon_id", coupon.ID).
		Uint("user_id", userID).
		Log()

	coupon.UserID = &userID
	coupon.RedeemedAt = &now
	res := toCouponResponse(coupon)
	return &res, nil
}
