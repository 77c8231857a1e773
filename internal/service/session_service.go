// internal/service/session_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// SessionService はログイン/ログアウトとアクセストークンの発行を担当します
type SessionService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, profileID string) error
	Authorize(ctx context.Context, profileID string) (*model.UserProfile, error)
}

type sessionService struct {
	profiles ProfileService
	cfg      *config.Config
	now      func() time.Time
}

func NewSessionService(profiles ProfileService, cfg *config.Config) SessionService {
	if profiles == nil {
		panic("service.NewSessionService: profile service is nil")
	}
	return &sessionService{
		profiles: profiles,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Login はプロフィールをログイン状態にしてトークンを発行します。
// 保存に失敗した場合もログイン自体は成立し、Persisted=false で返します。
func (s *sessionService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)

	profile, err := s.profiles.Login(ctx, req)
	persisted := true
	if err != nil {
		if !errors.Is(err, model.ErrPersistence) || profile == nil {
			logger.Warn("Login failed", "error", err)
			return nil, err
		}
		persisted = false
	}

	signedToken, err := s.issueToken(profile)
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "profile_id", profile.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
	}

	logger.Info("Login successful", "profile_id", profile.ID, "persisted", persisted)
	return &model.LoginResponse{AccessToken: signedToken, Profile: profile, Persisted: persisted}, nil
}

func (s *sessionService) issueToken(profile *model.UserProfile) (string, error) {
	now := s.now()
	claims := &model.JWTCustomClaims{
		Email: profile.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.AppName,
			Subject:   profile.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWT.ExpiresInHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}

func (s *sessionService) Logout(ctx context.Context, profileID string) error {
	if _, err := s.Authorize(ctx, profileID); err != nil {
		return err
	}
	return s.profiles.Logout(ctx)
}

// Authorize は profileID が現在ログイン中のプロフィールかどうかを確認します
func (s *sessionService) Authorize(ctx context.Context, profileID string) (*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx)

	profile, ok := s.profiles.Current()
	if !ok || !profile.IsLoggedIn {
		logger.Warn("No active profile", "profile_id", profileID)
		return nil, model.NewAppError("NOT_LOGGED_IN", "ログインしていません。", "", model.ErrUnauthenticated)
	}
	if profile.ID != profileID {
		logger.Warn("Token subject is not the active profile", "profile_id", profileID, "active_profile_id", profile.ID)
		return nil, model.NewAppError("PROFILE_MISMATCH", "このプロフィールにはアクセスできません。", "", model.ErrForbidden)
	}
	return profile, nil
}
