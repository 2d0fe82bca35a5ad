package session

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/gin-gonic/gin"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}
func (nopLogger) Fatalf(format string, args ...interface{}) {}

func TestAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name     string
		userID   string
		role     string
		wantRole core.Role
		wantErr  error
	}{
		{"missing user", "", "admin", "", errs.ErrUnauthorized},
		{"admin role", "u-1", "admin", core.RoleAdmin, nil},
		{"user role", "u-1", "user", core.RoleUser, nil},
		{"unknown role falls back to user", "u-1", "ops", core.RoleUser, nil},
		{"missing role falls back to user", "u-1", "", core.RoleUser, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			if tc.userID != "" {
				c.Request.Header.Set("X-Auth-User", tc.userID)
			}
			if tc.role != "" {
				c.Request.Header.Set("X-Auth-Role", tc.role)
			}

			claims, err := New(nopLogger{}).Authorize(c)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.UserID != tc.userID {
				t.Errorf("expected user id %s, got %s", tc.userID, claims.UserID)
			}
			if claims.Role != tc.wantRole {
				t.Errorf("expected role %s, got %s", tc.wantRole, claims.Role)
			}
		})
	}
}
