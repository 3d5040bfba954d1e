package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Payphone-Digital/dashboard/internal/dto"
	apperrors "github.com/Payphone-Digital/dashboard/internal/errors"
	"github.com/Payphone-Digital/dashboard/internal/model"
)

func TestAddressService_CRUD(t *testing.T) {
	store := &fakeAddressStore{}
	svc := NewAddressService(store, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateAddressRequest{
		Consignee: " Dana ",
		Phone:     "0812345678",
		City:      "Bandung",
		Address:   "Jl. Merdeka 1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Consignee != "Dana" || created.Status != model.StatusEnabled {
		t.Errorf("Unexpected address %+v", created)
	}

	updated, err := svc.Update(ctx, created.ID, &dto.UpdateAddressRequest{City: "Jakarta"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.City != "Jakarta" || updated.Phone != "0812345678" {
		t.Errorf("Unexpected address after update %+v", updated)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, apperrors.ErrAddressNotFound) {
		t.Errorf("Expected ErrAddressNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, apperrors.ErrAddressNotFound) {
		t.Errorf("Expected ErrAddressNotFound on second delete, got %v", err)
	}
}
