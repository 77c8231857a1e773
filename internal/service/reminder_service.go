// internal/service/reminder_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"
)

// Notifier は端末側のローカル通知機能を抽象化したものです。
// 存在しない ID の Cancel は model.ErrNotFound を返すこと。
type Notifier interface {
	RequestPermission(ctx context.Context) (model.PermissionStatus, error)
	EnsureChannel(ctx context.Context, ch model.Channel) error
	Schedule(ctx context.Context, n model.Notification, at model.DailyTime) (string, error)
	Cancel(ctx context.Context, id string) error
}

type ReminderService interface {
	RequestPermission(ctx context.Context) (model.PermissionStatus, error)
	ConfigureChannel(ctx context.Context) error
	ScheduleDaily(ctx context.Context, at model.DailyTime, previousID string) (string, error)
	Cancel(ctx context.Context, id string) error
}

type reminderService struct {
	notifier Notifier
	content  model.Notification

	mu         sync.Mutex
	permission model.PermissionStatus
}

// ReminderChannel は毎日のリマインダー用の通知チャンネル定義
var ReminderChannel = model.Channel{
	ID:         config.ReminderChannelID,
	Name:       config.ReminderChannelName,
	Importance: model.ImportanceHigh,
	Sound:      config.DefaultReminderSound,
	ShowBadge:  true,
}

// NewReminderService は通知内容 content を固定したリマインダーサービスを生成します。
func NewReminderService(notifier Notifier, content model.Notification) ReminderService {
	if notifier == nil {
		panic("service.NewReminderService: notifier is nil")
	}
	return &reminderService{
		notifier:   notifier,
		content:    content,
		permission: model.PermissionUndetermined,
	}
}

func (s *reminderService) RequestPermission(ctx context.Context) (model.PermissionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestPermissionLocked(ctx)
}

func (s *reminderService) requestPermissionLocked(ctx context.Context) (model.PermissionStatus, error) {
	logger := middleware.GetLogger(ctx)

	status, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		logger.Error("Failed to request notification permission", "error", err)
		return model.PermissionUndetermined, fmt.Errorf("reminderService.RequestPermission: %w", err)
	}
	s.permission = status
	logger.Info("Notification permission resolved", "status", status)
	return status, nil
}

func (s *reminderService) ConfigureChannel(ctx context.Context) error {
	if err := s.notifier.EnsureChannel(ctx, ReminderChannel); err != nil {
		middleware.GetLogger(ctx).Error("Failed to configure notification channel", "error", err, "channel_id", ReminderChannel.ID)
		return fmt.Errorf("reminderService.ConfigureChannel: %w", err)
	}
	return nil
}

// ScheduleDaily は previousID の通知を取り消してから、毎日 at に鳴る通知を1件だけ登録します。
func (s *reminderService) ScheduleDaily(ctx context.Context, at model.DailyTime, previousID string) (string, error) {
	logger := middleware.GetLogger(ctx).With("hour", at.Hour, "minute", at.Minute)

	if at.Hour < 0 || at.Hour > 23 || at.Minute < 0 || at.Minute > 59 {
		return "", model.NewAppError("INVALID_TIME", "時刻は 00:00 から 23:59 の範囲で指定してください。", "time", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.permission == model.PermissionUndetermined {
		if _, err := s.requestPermissionLocked(ctx); err != nil {
			return "", err
		}
	}
	if s.permission != model.PermissionGranted {
		logger.Warn("Reminder not scheduled: permission denied")
		return "", model.NewAppError("NOTIFICATION_PERMISSION_DENIED", "通知が許可されていません。", "", model.ErrPermissionDenied)
	}

	if previousID != "" {
		if err := s.cancel(ctx, previousID); err != nil {
			return "", err
		}
	}

	id, err := s.notifier.Schedule(ctx, s.content, at)
	if err != nil {
		logger.Error("Failed to schedule daily reminder", "error", err)
		return "", fmt.Errorf("reminderService.ScheduleDaily: %w", err)
	}
	logger.Info("Daily reminder scheduled", "reminder_id", id)
	return id, nil
}

func (s *reminderService) Cancel(ctx context.Context, id string) error {
	return s.cancel(ctx, id)
}

func (s *reminderService) cancel(ctx context.Context, id string) error {
	logger := middleware.GetLogger(ctx).With("reminder_id", id)

	err := s.notifier.Cancel(ctx, id)
	if err == nil {
		logger.Info("Reminder cancelled")
		return nil
	}
	if errors.Is(err, model.ErrNotFound) {
		logger.Debug("Reminder to cancel does not exist, ignoring")
		return nil
	}
	logger.Error("Failed to cancel reminder", "error", err)
	return fmt.Errorf("reminderService.Cancel: %w", err)
}
