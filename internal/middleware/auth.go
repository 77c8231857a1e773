package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証し、
// subject (プロフィールID) をコンテキストにセットするミドルウェア
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーが必要です。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			claims := &model.JWTCustomClaims{}
			token, err := jwt.ParseWithClaims(headerParts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			if claims.Subject == "" {
				logger.Warn("JWT auth failed: Subject (sub) claim missing")
				appErr := model.NewAppError("INVALID_TOKEN", "トークンにユーザー情報が含まれていません。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.ProfileIDKey, claims.Subject)
			ctx = WithLogger(ctx, logger.With("profile_id", claims.Subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetProfileIDFromContext はミドルウェアがセットしたプロフィールIDを取得します
func GetProfileIDFromContext(ctx context.Context) (string, error) {
	value, ok := ctx.Value(model.ProfileIDKey).(string)
	if !ok || value == "" {
		return "", model.NewAppError("UNAUTHORIZED", "コンテキストからユーザー情報を取得できませんでした。", "", model.ErrUnauthenticated)
	}
	return value, nil
}
