package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/dto"
	"github.com/Payphone-Digital/dashboard/internal/service"
	ctxutil "github.com/Payphone-Digital/dashboard/pkg/context"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestJWTMiddleware_RequireAuth(t *testing.T) {
	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	adminToken, err := jwtSvc.GenerateToken(&dto.UserResponse{ID: 7, Email: "admin@example.com", IsAdmin: true})
	if err != nil {
		t.Fatal(err)
	}
	staffToken, err := jwtSvc.GenerateToken(&dto.UserResponse{ID: 8, Email: "staff@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := service.NewJWTService("other-secret", time.Hour).GenerateToken(&dto.UserResponse{ID: 7, IsAdmin: true})
	if err != nil {
		t.Fatal(err)
	}

	mw := NewJWTMiddleware(jwtSvc)
	r := gin.New()
	r.GET("/me", mw.RequireAuth(), mw.RequireAdmin(), func(c *gin.Context) {
		id, ok := ctxutil.GetUserIDUint(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + adminToken, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"foreign signature", "Bearer " + foreign, http.StatusUnauthorized},
		{"not an admin", "Bearer " + staffToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
		{"lowercase scheme", "bearer " + adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Expected status %d, got %d (%s)", tt.want, w.Code, w.Body.String())
			}
		})
	}
}
