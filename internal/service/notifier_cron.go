// internal/service/notifier_cron.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// CronNotifier は cron でローカル通知を再現する Notifier 実装です。
// 発火時に Mailer を使って通知を届けます。
type CronNotifier struct {
	cron      *cron.Cron
	mailer    Mailer
	recipient func() string
	policy    string
	location  *time.Location
	logger    *slog.Logger

	mu       sync.Mutex
	channels map[string]model.Channel
	entries  map[string]cron.EntryID
}

// NewCronNotifier は設定のタイムゾーンで動く CronNotifier を生成します。
// recipient は発火時に宛先を解決する関数で、空文字を返すと配信をスキップします。
func NewCronNotifier(cfg *config.NotificationConfig, mailer Mailer, recipient func() string, logger *slog.Logger) (*CronNotifier, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("NewCronNotifier: invalid timezone %q: %w", cfg.Timezone, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CronNotifier{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)),
		),
		mailer:    mailer,
		recipient: recipient,
		policy:    cfg.Permission,
		location:  loc,
		logger:    logger.With("component", "cron_notifier"),
		channels:  make(map[string]model.Channel),
		entries:   make(map[string]cron.EntryID),
	}, nil
}

func (n *CronNotifier) Start() {
	n.cron.Start()
	n.logger.Info("Cron notifier started")
}

// Stop は実行中のジョブの終了を待ってから戻ります
func (n *CronNotifier) Stop() {
	ctx := n.cron.Stop()
	<-ctx.Done()
	n.logger.Info("Cron notifier stopped")
}

// RequestPermission は設定の permission ポリシーを返します ("prompt" は許可扱い)
func (n *CronNotifier) RequestPermission(ctx context.Context) (model.PermissionStatus, error) {
	switch n.policy {
	case "denied":
		return model.PermissionDenied, nil
	case "granted", "prompt", "":
		return model.PermissionGranted, nil
	default:
		return model.PermissionUndetermined, fmt.Errorf("CronNotifier: unknown permission policy %q", n.policy)
	}
}

func (n *CronNotifier) EnsureChannel(ctx context.Context, ch model.Channel) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.channels[ch.ID]; ok {
		return nil
	}
	n.channels[ch.ID] = ch
	middleware.GetLogger(ctx).Info("Notification channel created", "channel_id", ch.ID, "importance", ch.Importance)
	return nil
}

func (n *CronNotifier) Channels() []model.Channel {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]model.Channel, 0, len(n.channels))
	for _, ch := range n.channels {
		out = append(out, ch)
	}
	return out
}

// Schedule は毎日 at に発火するジョブを登録し、その ID を返します
func (n *CronNotifier) Schedule(ctx context.Context, msg model.Notification, at model.DailyTime) (string, error) {
	id := uuid.NewString()
	spec := fmt.Sprintf("%d %d * * *", at.Minute, at.Hour)

	entryID, err := n.cron.AddFunc(spec, func() {
		n.deliver(id, msg)
	})
	if err != nil {
		return "", fmt.Errorf("CronNotifier.Schedule: %w", err)
	}

	n.mu.Lock()
	n.entries[id] = entryID
	n.mu.Unlock()

	middleware.GetLogger(ctx).Debug("Cron entry added", "reminder_id", id, "spec", spec)
	return id, nil
}

func (n *CronNotifier) Cancel(ctx context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	entryID, ok := n.entries[id]
	if !ok {
		return model.ErrNotFound
	}
	n.cron.Remove(entryID)
	delete(n.entries, id)
	return nil
}

// NextRun は登録済みリマインダーの次回発火時刻を返します
func (n *CronNotifier) NextRun(id string) (time.Time, bool) {
	n.mu.Lock()
	entryID, ok := n.entries[id]
	n.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	entry := n.cron.Entry(entryID)
	if !entry.Valid() {
		return time.Time{}, false
	}
	return entry.Schedule.Next(time.Now().In(n.location)), true
}

func (n *CronNotifier) deliver(id string, msg model.Notification) {
	logger := n.logger.With("reminder_id", id)
	ctx := middleware.WithLogger(context.Background(), logger)

	to := msg.Recipient
	if to == "" && n.recipient != nil {
		to = n.recipient()
	}
	if to == "" {
		logger.Info("No signed-in profile, reminder skipped")
		return
	}
	if err := n.mailer.Send(ctx, to, msg.Title, msg.Body); err != nil {
		logger.Error("Failed to deliver reminder", "error", err)
		return
	}
	logger.Info("Reminder delivered", "to", to)
}
