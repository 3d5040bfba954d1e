package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/dto"
	apperrors "github.com/Payphone-Digital/dashboard/internal/errors"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/internal/model"
	ctxutil "github.com/Payphone-Digital/dashboard/pkg/context"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore is the persistence UserService needs.
type UserStore interface {
	List(ctx context.Context, params listview.RequestParams) ([]model.User, int64, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Updates(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

type UserService struct {
	repoUser   UserStore
	jwtService *JWTService
	cache      *ListCache
	now        func() time.Time
}

func NewUserService(repo UserStore, jwtService *JWTService, cache *ListCache) *UserService {
	return &UserService{
		repoUser:   repo,
		jwtService: jwtService,
		cache:      cache,
		now:        time.Now,
	}
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Status:    user.Status,
		IsAdmin:   user.IsAdmin,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// List returns one page of users for params.
func (s *UserService) List(ctx context.Context, params listview.RequestParams) (listview.Page[dto.UserResponse], error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleUser, "List")

	page, err := cachedList(ctx, s.cache, constants.CacheKeyUser, params, func(ctx context.Context) (listview.Page[dto.UserResponse], error) {
		rows, total, err := s.repoUser.List(ctx, params)
		if err != nil {
			return listview.Page[dto.UserResponse]{}, err
		}
		items := make([]dto.UserResponse, len(rows))
		for i := range rows {
			items[i] = toUserResponse(&rows[i])
		}
		return listview.Page[dto.UserResponse]{Items: items, Total: total}, nil
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list users").
			Int("page", params.Page).
			String("search", params.Search()).
			Err(err).
			Log()
		return listview.Page[dto.UserResponse]{}, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return page, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleUser, "GetByID")

	user, err := s.repoUser.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(ctx, id, err)
	}
	res := toUserResponse(user)
	return &res, nil
}

// CreateUser creates a new user with hashed password
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleUser, "CreateUser")

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hashedPassword,
		Status:   model.StatusEnabled,
		IsAdmin:  req.IsAdmin,
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := s.repoUser.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyUser)

	logger.InfoWithContext(ctx, "User created").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Log()

	res := toUserResponse(user)
	return &res, nil
}

// UpdateUser applies the non-empty fields of req.
func (s *UserService) UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleUser, "UpdateUser")

	updates := make(map[string]interface{})
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	if req.Password != "" {
		hashed, err := hashPassword(req.Password)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		updates["password"] = hashed
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.IsAdmin != nil {
		updates["is_admin"] = *req.IsAdmin
	}

	if err := s.repoUser.Updates(ctx, id, updates); err != nil {
		return nil, s.mapLookupError(ctx, id, err)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyUser)

	logger.InfoWithContext(ctx, "User updated").
		Uint("user_id", id).
		Int("fields", len(updates)).
		Log()

	return s.GetByID(ctx, id)
}

// DeleteUser removes a user. Users cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, id uint, requestingUserID uint) error {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleUser, "DeleteUser")

	if id == requestingUserID {
		logger.WarnWithContext(ctx, "User attempted to delete themselves").
			Uint("user_id", id).
			Log()
		return apperrors.ErrSelfDeletion
	}

	if err := s.repoUser.Delete(ctx, id); err != nil {
		return s.mapLookupError(ctx, id, err)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyUser)

	logger.InfoWithContext(ctx, "User deleted").
		Uint("target_user_id", id).
		Uint("requesting_user_id", requestingUserID).
		Log()
	return nil
}

// AuthenticateUser checks the credentials of an enabled user.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleAuth, "AuthenticateUser")

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repoUser.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.LogAuth("", "login", false)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !checkPassword(user.Password, password) {
		logger.LogAuth(fmt.Sprint(user.ID), "login", false)
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status != model.StatusEnabled {
		logger.LogAuth(fmt.Sprint(user.ID), "login", false)
		return nil, apperrors.ErrUserDisabled
	}

	now := s.now()
	if err := s.repoUser.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.WarnWithContext(ctx, "Failed to update last login timestamp").
			Uint("user_id", user.ID).
			Err(err).
			Log()
	} else {
		user.LastLogin = &now
	}

	logger.LogAuth(fmt.Sprint(user.ID), "login", true)
	res := toUserResponse(user)
	return &res, nil
}

// LoginUser authenticates an admin and issues an access token.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*dto.UserLoginResponse, error) {
	user, err := s.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, apperrors.ErrUnauthorized
	}
	if s.jwtService == nil {
		return nil, apperrors.ErrServiceUnavailable
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.UserLoginResponse{
		Token:     token,
		ExpiresIn: int(s.jwtService.TTL().Seconds()),
		User:      *user,
	}, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, excludeID uint) error {
	existing, err := s.repoUser.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.WrapError(apperrors.ErrInternal, fmt.Errorf("failed to check email availability: %w", err))
	}
	if excludeID != 0 && existing.ID == excludeID {
		return nil
	}
	logger.WarnWithContext(ctx, "Email already in use").
		String("email", email).
		Log()
	return apperrors.ErrEmailExists
}

func (s *UserService) mapLookupError(ctx context.Context, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.InfoWithContext(ctx, "User not found").
			Uint("user_id", id).
			Log()
		return apperrors.ErrUserNotFound
	}
	logger.ErrorWithContext(ctx, "User store failed").
		Uint("user_id", id).
		Err(err).
		Log()
	return apperrors.WrapError(apperrors.ErrInternal, err)
}

// hashPassword hashes password using bcrypt
func hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// checkPassword verifies password against hash
func checkPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
