package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct{ clientID string }

func (c *stubClaims) GetClientID() string { return c.clientID }

type stubValidator struct {
	valid map[string]string
}

func (v *stubValidator) ValidateToken(tokenString string) (ClientIDGetter, error) {
	clientID, ok := v.valid[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return &stubClaims{clientID: clientID}, nil
}

func TestAuthMiddleware(t *testing.T) {
	validator := &stubValidator{valid: map[string]string{"good-token": "portal"}}

	var gotClientID string
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetClientID(r)
		require.NoError(t, err)
		gotClientID = id
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid bearer token", authHeader: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "case insensitive scheme", authHeader: "bearer good-token", wantStatus: http.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic good-token", wantStatus: http.StatusUnauthorized},
		{name: "no token", authHeader: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", authHeader: "Bearer bad-token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClientID = ""
			req := httptest.NewRequest(http.MethodGet, "/tools/assess_project", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "portal", gotClientID)
			}
		})
	}
}

func TestGetClientIDMissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetClientID(req)
	assert.Error(t, err)
}
