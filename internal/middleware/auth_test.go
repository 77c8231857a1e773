package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret, subject string, expires time.Time) string {
	t.Helper()
	claims := model.JWTCustomClaims{
		Email: "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// echoProfileID はコンテキストのプロフィールIDをそのまま返すハンドラー
var echoProfileID = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, err := GetProfileIDFromContext(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Write([]byte(id))
})

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "test-secret"}}
	handler := JWTAuthMiddleware(cfg)(echoProfileID)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
		wantBody   string
	}{
		{name: "Success", header: "Bearer " + signToken(t, "test-secret", "u1", time.Now().Add(time.Hour)), wantStatus: http.StatusOK, wantBody: "u1"},
		{name: "ヘッダーなし", header: "", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "Bearer 以外", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "署名が違う", header: "Bearer " + signToken(t, "other", "u1", time.Now().Add(time.Hour)), wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
		{name: "期限切れ", header: "Bearer " + signToken(t, "test-secret", "u1", time.Now().Add(-time.Hour)), wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
		{name: "subject なし", header: "Bearer " + signToken(t, "test-secret", "", time.Now().Add(time.Hour)), wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}
			if tt.wantCode != "" {
				var resp model.APIErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestDevProfileContextMiddleware(t *testing.T) {
	handler := DevProfileContextMiddleware(echoProfileID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Profile-ID", "dev-user")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "dev-user", rr.Body.String())

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestFormatHeaders_MasksSensitiveValues(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer secret")
	h.Set("Content-Type", "application/json")

	got := formatHeaders(h)
	assert.NotContains(t, got["Authorization"], "secret")
	assert.Equal(t, "application/json", got["Content-Type"])
}
