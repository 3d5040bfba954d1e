package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/dto"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/gin-gonic/gin"
)

type Addresses interface {
	List(ctx context.Context, params listview.RequestParams) (listview.Page[dto.AddressResponse], error)
	GetByID(ctx context.Context, id uint) (*dto.AddressResponse, error)
	Create(ctx context.Context, req *dto.CreateAddressRequest) (*dto.AddressResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateAddressRequest) (*dto.AddressResponse, error)
	Delete(ctx context.Context, id uint) error
}

type AddressHandler struct {
	addresses Addresses
	list      *listview.Controller
}

func NewAddressHandler(addresses Addresses, list *listview.Controller) *AddressHandler {
	return &AddressHandler{addresses: addresses, list: list}
}

func (h *AddressHandler) GetAll(c *gin.Context) {
	serveList(c, h.list, "addresses", h.addresses.List)
}

func (h *AddressHandler) GetByID(c *gin.Context) {
	ctx := handlerContext(c, "GetAddressByID")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}
	address, err := h.addresses.GetByID(ctx, id)
	if err != nil {
		respondError(ctx, c, "Failed to fetch address", err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(address))
}

func (h *AddressHandler) Create(c *gin.Context) {
	ctx := handlerContext(c, "CreateAddress")

	var req dto.CreateAddressRequest
	if !bindJSON(ctx, c, &req) {
		return
	}
	address, err := h.addresses.Create(ctx, &req)
	if err != nil {
		respondError(ctx, c, "Failed to create address", err)
		return
	}
	c.JSON(http.StatusCreated, constants.BuildDataResponse(address))
}

func (h *AddressHandler) Update(c *gin.Context) {
	ctx := handlerContext(c, "UpdateAddress")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}
	var req dto.UpdateAddressRequest
	if !bindJSON(ctx, c, &req) {
		return
	}
	address, err := h.addresses.Update(ctx, id, &req)
	if err != nil {
		respondError(ctx, c, "Failed to update address", err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(address))
}

func (h *AddressHandler) Delete(c *gin.Context) {
	ctx := handlerContext(c, "DeleteAddress")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}
	if err := h.addresses.Delete(ctx, id); err != nil {
		respondError(ctx, c, "Failed to delete address", err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(listview.MsgDeletedSuccessfully))
}
