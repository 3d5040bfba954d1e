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

// Users is the user service the handlers call.
type Users interface {
	List(ctx context.Context, params listview.RequestParams) (listview.Page[dto.UserResponse], error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uint, requestingUserID uint) error
}

type UserHandler struct {
	userService Users
	list        *listview.Controller
}

func NewUserHandler(service Users, list *listview.Controller) *UserHandler {
	return &UserHandler{userService: service, list: list}
}

func (h *UserHandler) GetAll(c *gin.Context) {
	serveList(c, h.list, "users", h.userService.List)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := handlerContext(c, "GetUserByID")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(ctx, id)
	if err != nil {
		respondError(ctx, c, "Failed to fetch user", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(user))
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := handlerContext(c, "CreateUser")

	var req dto.CreateUserRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	logger.InfoWithContext(ctx, "Create user request").
		String("email", req.Email).
		String("name", req.Name).
		Log()

	user, err := h.userService.CreateUser(ctx, &req)
	if err != nil {
		respondError(ctx, c, "Failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataResponse(user))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	ctx := handlerContext(c, "UpdateUser")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(ctx, id, &req)
	if err != nil {
		respondError(ctx, c, "Failed to update user", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(user))
}

// DeleteUser soft-deletes a user. The authenticated user cannot delete themselves.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx := handlerContext(c, "DeleteUser")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}

	requestingUserID, ok := currentUserID(c)
	if !ok {
		logger.ErrorWithContext(ctx, "User ID not found in request context").Log()
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	if err := h.userService.DeleteUser(ctx, id, requestingUserID); err != nil {
		respondError(ctx, c, "Failed to delete user", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(listview.MsgDeletedSuccessfully))
}
