package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/pkg/database"
	ctxutil "github.com/Payphone-Digital/dashboard/pkg/context"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"gorm.io/gorm"
)

// crudRepository holds the list and row operations every dashboard table shares.
type crudRepository[T any] struct {
	db     *gorm.DB
	table  string
	lister database.ListSpec
}

func (r *crudRepository[T]) ctx(ctx context.Context, function string) context.Context {
	return ctxutil.WithFunction(ctx, "repository."+r.table, function)
}

// List loads one page of rows matching params.
func (r *crudRepository[T]) List(ctx context.Context, params listview.RequestParams) ([]T, int64, error) {
	ctx = r.ctx(ctx, "List")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, 0, err
	}

	orderBy, orderSort := params.Order()
	start := time.Now()
	items, total, err := database.FindPage[T](ctx, r.db, r.lister, params)
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list rows").
			Int("page", params.Page).
			Int("page_size", params.PageSize).
			String("search", params.Search()).
			Duration(duration).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.DebugWithContext(ctx, "Rows listed").
		Int("page", params.Page).
		Int("page_size", params.PageSize).
		String("search", params.Search()).
		String("order_by", orderBy).
		String("order_sort", orderSort.Token()).
		Int64("total", total).
		Int("returned_count", len(items)).
		Duration(duration).
		Log()

	return items, total, nil
}

// GetByID returns gorm.ErrRecordNotFound when the row does not exist.
func (r *crudRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	ctx = r.ctx(ctx, "GetByID")

	start := time.Now()
	var row T
	err := r.db.WithContext(ctx).First(&row, id).Error
	if err != nil {
		logger.DebugWithContext(ctx, "Row lookup failed").
			Uint("id", id).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}
	return &row, nil
}

func (r *crudRepository[T]) Create(ctx context.Context, row *T) error {
	ctx = r.ctx(ctx, "Create")

	start := time.Now()
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create row").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Row created").
		Duration(time.Since(start)).
		Log()
	return nil
}

// Updates applies the column map to row id. A missing row is gorm.ErrRecordNotFound.
func (r *crudRepository[T]) Updates(ctx context.Context, id uint, updates map[string]interface{}) error {
	ctx = r.ctx(ctx, "Updates")

	if len(updates) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}

	start := time.Now()
	result := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update row").
			Uint("id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		// MySQL reports 0 affected rows when values are unchanged, so confirm existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}

	logger.InfoWithContext(ctx, "Row updated").
		Uint("id", id).
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()
	return nil
}

// Delete soft-deletes row id. A missing row is gorm.ErrRecordNotFound.
func (r *crudRepository[T]) Delete(ctx context.Context, id uint) error {
	ctx = r.ctx(ctx, "Delete")

	start := time.Now()
	result := r.db.WithContext(ctx).Delete(new(T), id)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete row").
			Uint("id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No row found to delete").
			Uint("id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Row deleted").
		Uint("id", id).
		Duration(duration).
		Log()
	return nil
}
