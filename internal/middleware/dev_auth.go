// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"net/http"

	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/webutil"
)

// DevProfileContextMiddleware は開発・テスト用のミドルウェアです。
// X-Profile-ID ヘッダーの値をそのままコンテキストに設定します (トークン検証なし)。
func DevProfileContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())
		profileID := r.Header.Get("X-Profile-ID")
		if profileID == "" {
			logger.Warn("[DEV AUTH] Failed: X-Profile-ID header missing")
			appErr := model.NewAppError("UNAUTHORIZED", "[DEV] X-Profile-ID ヘッダーが必要です。", "", model.ErrUnauthenticated)
			webutil.HandleError(w, logger, appErr)
			return
		}

		logger.Debug("[DEV AUTH] Profile ID set to context (no validation)", "profile_id", profileID)
		ctx := context.WithValue(r.Context(), model.ProfileIDKey, profileID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
