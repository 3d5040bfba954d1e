package model

import (
	"testing"
	"time"
)

func TestCoupon_Available(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	owner := uint(3)

	tests := []struct {
		name   string
		coupon Coupon
		want   bool
	}{
		{
			name:   "inside range",
			coupon: Coupon{Status: StatusEnabled, StartTime: now.Add(-time.Hour), ExpireTime: now.Add(time.Hour)},
			want:   true,
		},
		{
			name:   "starts exactly now",
			coupon: Coupon{Status: StatusEnabled, StartTime: now, ExpireTime: now.Add(time.Hour)},
			want:   true,
		},
		{
			name:   "expired",
			coupon: Coupon{Status: StatusEnabled, StartTime: now.Add(-2 * time.Hour), ExpireTime: now},
			want:   false,
		},
		{
			name:   "disabled",
			coupon: Coupon{Status: StatusDisabled, StartTime: now.Add(-time.Hour), ExpireTime: now.Add(time.Hour)},
			want:   false,
		},
		{
			name:   "already redeemed",
			coupon: Coupon{Status: StatusEnabled, UserID: &owner, StartTime: now.Add(-time.Hour), ExpireTime: now.Add(time.Hour)},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coupon.Available(now); got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}
