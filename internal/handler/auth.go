package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/dto"
	apperrors "github.com/Payphone-Digital/dashboard/internal/errors"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Authenticator issues access tokens.
type Authenticator interface {
	LoginUser(ctx context.Context, email, password string) (*dto.UserLoginResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
}

type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := handlerContext(c, "Login")

	var req dto.UserLoginRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	logger.InfoWithContext(ctx, "User login attempt").
		String("email", req.Email).
		Log()

	response, err := h.auth.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		respondError(ctx, c, "Login failed", err)
		return
	}

	logger.InfoWithContext(ctx, "User logged in successfully").
		Uint("user_id", response.User.ID).
		Log()

	c.JSON(http.StatusOK, response)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := handlerContext(c, "Me")

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	user, err := h.auth.GetByID(ctx, userID)
	if err != nil {
		respondError(ctx, c, "Failed to fetch current user", err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(user))
}
