package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/listview"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// sqlRecorder captures the statements a dry-run database would have executed.
type sqlRecorder struct {
	mu   sync.Mutex
	stmt []string
}

func (r *sqlRecorder) record(tx *gorm.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stmt = append(r.stmt, tx.Statement.SQL.String())
}

func (r *sqlRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stmt) == 0 {
		return ""
	}
	return r.stmt[len(r.stmt)-1]
}

func dryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "root:secret@tcp(127.0.0.1:3306)/dashboard?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("Failed to open dry-run database: %v", err)
	}

	rec := &sqlRecorder{}
	cb := db.Callback()
	if err := cb.Query().After("gorm:query").Register("test:record_query", rec.record); err != nil {
		t.Fatal(err)
	}
	if err := cb.Update().After("gorm:update").Register("test:record_update", rec.record); err != nil {
		t.Fatal(err)
	}
	if err := cb.Delete().After("gorm:delete").Register("test:record_delete", rec.record); err != nil {
		t.Fatal(err)
	}
	return db, rec
}

func TestUserRepository_ListCountsWithSearch(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewUserRepository(db)

	q := "alice"
	items, total, err := repo.List(context.Background(), listview.RequestParams{Page: 1, PageSize: 20, Q: &q})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Errorf("Expected empty dry-run page, got total=%d items=%d", total, len(items))
	}

	sql := rec.last()
	for _, fragment := range []string{"count(*)", "FROM `users`", "LOWER(name) LIKE ?", "LOWER(email) LIKE ?", "`deleted_at` IS NULL"} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("Expected count SQL to contain %q\nSQL: %s", fragment, sql)
		}
	}
}

func TestUserRepository_ListHonorsCancelledContext(t *testing.T) {
	db, _ := dryRunDB(t)
	repo := NewUserRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := repo.List(ctx, listview.RequestParams{Page: 1, PageSize: 20}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestCouponRepository_RedeemOnlyUnclaimed(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewCouponRepository(db)

	ok, err := repo.Redeem(context.Background(), 9, 3, time.Now())
	if err != nil {
		t.Fatalf("Redeem returned error: %v", err)
	}
	if ok {
		t.Error("Expected dry run to report no row claimed")
	}

	sql := rec.last()
	for _, fragment := range []string{"UPDATE `coupons`", "user_id IS NULL", "status = ?", "start_time <= ?", "expire_time > ?", "`redeemed_at`=?", "`user_id`=?"} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("Expected redeem SQL to contain %q\nSQL: %s", fragment, sql)
		}
	}
}

func TestArticleRepository_DeleteIsSoft(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewArticleRepository(db)

	err := repo.Delete(context.Background(), 4)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound when nothing was affected, got %v", err)
	}

	sql := rec.last()
	if !strings.Contains(sql, "UPDATE `articles` SET `deleted_at`=?") {
		t.Errorf("Expected soft delete, got SQL: %s", sql)
	}
}
