package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
)

type sampleRequest struct {
	Email      string `validate:"required,email"`
	OverAmount int64  `validate:"gte=0"`
	Quantity   int    `validate:"omitempty,max=1000"`
	Name       string `validate:"max=3"`
}

func TestMessages(t *testing.T) {
	v := validator.New()
	err := v.Struct(sampleRequest{Email: "nope", OverAmount: -1, Quantity: 2000, Name: "toolong"})

	want := []string{
		"email is not a valid address",
		"over_amount must be greater than or equal to 0",
		"at most 1000 coupons can be created at once",
		"name must be at most 3",
	}
	if diff := cmp.Diff(want, Messages(err)); diff != "" {
		t.Errorf("Messages mismatch (-want +got):\n%s", diff)
	}
}

func TestMessages_NonValidationError(t *testing.T) {
	got := Messages(errors.New("unexpected EOF"))
	if diff := cmp.Diff([]string{"unexpected EOF"}, got); diff != "" {
		t.Errorf("Messages mismatch (-want +got):\n%s", diff)
	}
	if Messages(nil) != nil {
		t.Error("Expected nil for nil error")
	}
}
