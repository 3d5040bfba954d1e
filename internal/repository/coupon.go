package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/model"
	"github.com/Payphone-Digital/dashboard/pkg/database"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"gorm.io/gorm"
)

// CouponListSpec is how the coupons list is searched and sorted.
var CouponListSpec = database.ListSpec{
	SearchColumns: []string{"name", "code"},
	SortColumns: map[string]string{
		"id":          "id",
		"name":        "name",
		"code":        "code",
		"amount":      "amount",
		"over_amount": "over_amount",
		"status":      "status",
		"start_time":  "start_time",
		"expire_time": "expire_time",
		"created_at":  "created_at",
	},
}

// couponBatchSize bounds the rows per INSERT when creating coupons in bulk.
const couponBatchSize = 200

type CouponRepository struct {
	crudRepository[model.Coupon]
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{crudRepository[model.Coupon]{db: db, table: "coupons", lister: CouponListSpec}}
}

// CreateBatch inserts every coupon in one transaction.
func (r *CouponRepository) CreateBatch(ctx context.Context, coupons []model.Coupon) error {
	ctx = r.ctx(ctx, "CreateBatch")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&coupons, couponBatchSize).Error
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to create coupons").
			Int("quantity", len(coupons)).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Coupons created").
		Int("quantity", len(coupons)).
		Duration(time.Since(start)).
		Log()
	return nil
}

// GetByCode finds a coupon by its redeem code.
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	ctx = r.ctx(ctx, "GetByCode")

	var coupon model.Coupon
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Redeem assigns the coupon to userID when it is still unclaimed, enabled and
// inside its availability window at the given time. It reports false when no
// row matched.
func (r *CouponRepository) Redeem(ctx context.Context, id, userID uint, at time.Time) (bool, error) {
	ctx = r.ctx(ctx, "Redeem")

	result := r.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("id = ? AND user_id IS NULL AND status = ? AND start_time <= ? AND expire_time > ?",
			id, model.StatusEnabled, at, at).
		Updates(map[string]interface{}{"user_id": userID, "redeemed_at": at})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to redeem coupon").
			Uint("coupon_id", id).
			Uint("user_id", userID).
			Err(result.Error).
			Log()
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
