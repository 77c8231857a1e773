// internal/service/profile_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/repository"

	"github.com/google/uuid"
)

// ProfileService はサインイン中のユーザー1人分の状態と、その永続化を管理します。
type ProfileService interface {
	Load(ctx context.Context) error
	Current() (*model.UserProfile, bool)
	Login(ctx context.Context, req *model.LoginRequest) (*model.UserProfile, error)
	Logout(ctx context.Context) error
	UpdateUserLevel(ctx context.Context, level model.ProficiencyLevel) error
	UpdateProgress(ctx context.Context, progress model.UserProgress) error
	UpdateGoal(ctx context.Context, goal string, dailyMinutes int) error
	UpdateFollowedTopics(ctx context.Context, topics []string) error
}

type profileService struct {
	kvRepo     repository.KeyValueRepository
	storageKey string
	now        func() time.Time

	mu          sync.RWMutex
	initialized bool
	profile     *model.UserProfile
}

func NewProfileService(kvRepo repository.KeyValueRepository, storageKey string) ProfileService {
	return &profileService{
		kvRepo:     kvRepo,
		storageKey: storageKey,
		now:        time.Now,
	}
}

// Load は保存済みのプロフィールを読み込みます (起動時に1回)。
// 壊れたデータは「保存なし」として扱い、エラーは返しません。
func (s *profileService) Load(ctx context.Context) error {
	logger := middleware.GetLogger(ctx).With("storage_key", s.storageKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	s.profile = nil

	raw, err := s.kvRepo.Get(ctx, s.storageKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("No stored profile found")
			return nil
		}
		logger.Error("Failed to read stored profile", "error", err)
		return fmt.Errorf("profileService.Load: %w: %v", model.ErrPersistence, err)
	}

	var stored model.UserProfile
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Error("Stored profile is corrupt, treating as signed out", "error", err)
		return nil
	}
	// "null" や "{}" は ID を持たないので保存なしと同じ扱い
	if stored.ID == "" {
		logger.Warn("Stored profile has no id, treating as signed out")
		return nil
	}

	s.profile = &stored
	logger.Info("Stored profile loaded", "profile_id", stored.ID, "is_logged_in", stored.IsLoggedIn)
	return nil
}

// Current はメモリ上のプロフィールのコピーを返します
func (s *profileService) Current() (*model.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil, false
	}
	return s.profile.Clone(), true
}

func (s *profileService) Login(ctx context.Context, req *model.LoginRequest) (*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, model.ErrNotInitialized
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := s.now()
	s.profile = &model.UserProfile{
		ID:         id,
		Email:      req.Email,
		Name:       req.Name,
		Level:      req.Level,
		IsLoggedIn: true,
		LastLogin:  &now,
	}
	logger.Info("Profile logged in", "profile_id", id, "level", req.Level)

	// 保存に失敗してもメモリ上の状態は戻さない
	err := s.persistLocked(ctx, logger)
	return s.profile.Clone(), err
}

func (s *profileService) Logout(ctx context.Context) error {
	logger := middleware.GetLogger(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return model.ErrNotInitialized
	}
	if s.profile == nil {
		logger.Debug("Logout called without a profile, nothing to do")
		return nil
	}

	s.profile.IsLoggedIn = false
	logger.Info("Profile logged out", "profile_id", s.profile.ID)
	return s.persistLocked(ctx, logger)
}

func (s *profileService) UpdateUserLevel(ctx context.Context, level model.ProficiencyLevel) error {
	validate := func() error {
		if !level.Valid() {
			return model.NewAppError("INVALID_LEVEL", "レベルの値が正しくありません。", "level", model.ErrInvalidInput)
		}
		return nil
	}
	return s.mutate(ctx, "level", validate, func(p *model.UserProfile) {
		p.Level = level
	})
}

func (s *profileService) UpdateProgress(ctx context.Context, progress model.UserProgress) error {
	validate := func() error {
		if progress.CompletedLessons < 0 || progress.TotalLessons < 0 || progress.Streak < 0 {
			return model.NewAppError("INVALID_PROGRESS", "学習状況に負の値は指定できません。", "progress", model.ErrInvalidInput)
		}
		return nil
	}
	return s.mutate(ctx, "progress", validate, func(p *model.UserProfile) {
		p.Progress = &progress
	})
}

func (s *profileService) UpdateGoal(ctx context.Context, goal string, dailyMinutes int) error {
	validate := func() error {
		if !model.IsGoal(goal) {
			return model.NewAppError("INVALID_GOAL", "学習目標の値が正しくありません。", "goal", model.ErrInvalidInput)
		}
		if !model.IsDailyMinutes(dailyMinutes) {
			return model.NewAppError("INVALID_DAILY_MINUTES", fmt.Sprintf("1日の学習時間は %v 分のいずれかを指定してください。", model.DailyMinutesOptions), "dailyMinutes", model.ErrInvalidInput)
		}
		return nil
	}
	return s.mutate(ctx, "goal", validate, func(p *model.UserProfile) {
		p.Goal = goal
		p.DailyMinutes = dailyMinutes
	})
}

func (s *profileService) UpdateFollowedTopics(ctx context.Context, topics []string) error {
	validate := func() error {
		for _, t := range topics {
			if !model.IsTopic(t) {
				return model.NewAppError("INVALID_TOPIC", fmt.Sprintf("トピック %q は選択肢にありません。", t), "topics", model.ErrInvalidInput)
			}
		}
		return nil
	}
	followed := append([]string{}, topics...)
	return s.mutate(ctx, "followed_topics", validate, func(p *model.UserProfile) {
		p.FollowedTopics = followed
	})
}

// mutate はログイン中のプロフィールにだけ変更を適用し、保存します。
// 初期化チェックの後、ログイン状態を見る前に validate を呼びます。
func (s *profileService) mutate(ctx context.Context, field string, validate func() error, apply func(p *model.UserProfile)) error {
	logger := middleware.GetLogger(ctx).With("field", field)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return model.ErrNotInitialized
	}
	if err := validate(); err != nil {
		return err
	}
	if s.profile == nil || !s.profile.IsLoggedIn {
		logger.Warn("Profile update ignored: not authenticated")
		return model.ErrUnauthenticated
	}

	apply(s.profile)
	logger.Info("Profile updated", "profile_id", s.profile.ID)
	return s.persistLocked(ctx, logger)
}

// persistLocked は s.mu を保持した状態で呼ぶこと
func (s *profileService) persistLocked(ctx context.Context, logger *slog.Logger) error {
	raw, err := json.Marshal(s.profile)
	if err != nil {
		logger.Error("Failed to encode profile", "error", err)
		return fmt.Errorf("profileService.persist: %w: %v", model.ErrPersistence, err)
	}
	if err := s.kvRepo.Set(ctx, s.storageKey, string(raw)); err != nil {
		logger.Error("Failed to persist profile, in-memory state kept", "error", err, "storage_key", s.storageKey)
		return fmt.Errorf("profileService.persist: %w: %v", model.ErrPersistence, err)
	}
	return nil
}
