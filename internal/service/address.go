package service

import (
	"context"
	"strings"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/dto"
	apperrors "github.com/Payphone-Digital/dashboard/internal/errors"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/internal/model"
	ctxutil "github.com/Payphone-Digital/dashboard/pkg/context"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
)

// AddressStore is the persistence AddressService needs.
type AddressStore interface {
	List(ctx context.Context, params listview.RequestParams) ([]model.Address, int64, error)
	GetByID(ctx context.Context, id uint) (*model.Address, error)
	Create(ctx context.Context, address *model.Address) error
	Updates(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type AddressService struct {
	repo  AddressStore
	cache *ListCache
}

func NewAddressService(repo AddressStore, cache *ListCache) *AddressService {
	return &AddressService{repo: repo, cache: cache}
}

func toAddressResponse(a *model.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:        a.ID,
		Consignee: a.Consignee,
		Phone:     a.Phone,
		Province:  a.Province,
		City:      a.City,
		Area:      a.Area,
		Address:   a.Address,
		Zip:       a.Zip,
		Status:    a.Status,
		UserID:    a.UserID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (s *AddressService) List(ctx context.Context, params listview.RequestParams) (listview.Page[dto.AddressResponse], error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleAddress, "List")

	page, err := cachedList(ctx, s.cache, constants.CacheKeyAddress, params, func(ctx context.Context) (listview.Page[dto.AddressResponse], error) {
		rows, total, err := s.repo.List(ctx, params)
		if err != nil {
			return listview.Page[dto.AddressResponse]{}, err
		}
		items := make([]dto.AddressResponse, len(rows))
		for i := range rows {
			items[i] = toAddressResponse(&rows[i])
		}
		return listview.Page[dto.AddressResponse]{Items: items, Total: total}, nil
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list addresses").
			Int("page", params.Page).
			Err(err).
			Log()
		return listview.Page[dto.AddressResponse]{}, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return page, nil
}

func (s *AddressService) GetByID(ctx context.Context, id uint) (*dto.AddressResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleAddress, "GetByID")

	address, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.ErrAddressNotFound)
	}
	res := toAddressResponse(address)
	return &res, nil
}

func (s *AddressService) Create(ctx context.Context, req *dto.CreateAddressRequest) (*dto.AddressResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleAddress, "Create")

	address := &model.Address{
		Consignee: strings.TrimSpace(req.Consignee),
		Phone:     strings.TrimSpace(req.Phone),
		Province:  req.Province,
		City:      req.City,
		Area:      req.Area,
		Address:   strings.TrimSpace(req.Address),
		Zip:       req.Zip,
		Status:    model.StatusEnabled,
		UserID:    req.UserID,
	}
	if req.Status != nil {
		address.Status = *req.Status
	}

	if err := s.repo.Create(ctx, address); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyAddress)

	res := toAddressResponse(address)
	return &res, nil
}

func (s *AddressService) Update(ctx context.Context, id uint, req *dto.UpdateAddressRequest) (*dto.AddressResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleAddress, "Update")

	updates := make(map[string]interface{})
	for column, value := range map[string]string{
		"consignee": strings.TrimSpace(req.Consignee),
		"phone":     strings.TrimSpace(req.Phone),
		"province":  req.Province,
		"city":      req.City,
		"area":      req.Area,
		"address":   strings.TrimSpace(req.Address),
		"zip":       req.Zip,
	} {
		if value != "" {
			updates[column] = value
		}
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if err := s.repo.Updates(ctx, id, updates); err != nil {
		return nil, mapNotFound(err, apperrors.ErrAddressNotFound)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyAddress)

	return s.GetByID(ctx, id)
}

func (s *AddressService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleAddress, "Delete")

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, apperrors.ErrAddressNotFound)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyAddress)
	return nil
}
