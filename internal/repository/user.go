package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/model"
	"github.com/Payphone-Digital/dashboard/pkg/database"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"gorm.io/gorm"
)

// UserListSpec is how the users list is searched and sorted.
var UserListSpec = database.ListSpec{
	SearchColumns: []string{"name", "email"},
	SortColumns: map[string]string{
		"id":         "id",
		"name":       "name",
		"email":      "email",
		"status":     "status",
		"last_login": "last_login",
		"created_at": "created_at",
	},
}

type UserRepository struct {
	crudRepository[model.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{crudRepository[model.User]{db: db, table: "users", lister: UserListSpec}}
}

// GetByEmail finds user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = r.ctx(ctx, "GetByEmail")

	start := time.Now()
	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "User lookup by email failed").
			String("email", email).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return nil, result.Error
	}
	return &user, nil
}

// UpdateLastLogin updates the last login timestamp
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	ctx = r.ctx(ctx, "UpdateLastLogin")

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("last_login", at)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update last login").
			Uint("user_id", id).
			Err(result.Error).
			Log()
	}
	return result.Error
}
