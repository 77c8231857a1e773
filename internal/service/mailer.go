// internal/service/mailer.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/middleware"
)

// Mailer はリマインダー通知の配信手段です
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---
// 通知をログに出すだけの実装 (開発用)
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Reminder (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// --- SmtpMailer ---
type SmtpMailer struct {
	cfg *config.SMTPConfig
}

func NewSmtpMailer(cfg *config.SMTPConfig) *SmtpMailer {
	return &SmtpMailer{cfg: cfg}
}

func (m *SmtpMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	logger.Debug("Sending reminder via SMTP", "smtp_addr", addr, "from", m.cfg.From, "to", to)

	// ローカルの MailHog などを想定して平文で接続する
	c, err := smtp.Dial(addr)
	if err != nil {
		logger.Error("Failed to connect to SMTP server", "error", err, "addr", addr)
		return fmt.Errorf("SmtpMailer.Send: dial: %w", err)
	}
	defer c.Close()

	if err = c.Mail(m.cfg.From); err != nil {
		logger.Error("Failed to set MAIL FROM", "error", err, "from", m.cfg.From)
		return fmt.Errorf("SmtpMailer.Send: mail: %w", err)
	}
	if err = c.Rcpt(to); err != nil {
		logger.Error("Failed to set RCPT TO", "error", err, "to", to)
		return fmt.Errorf("SmtpMailer.Send: rcpt: %w", err)
	}

	wc, err := c.Data()
	if err != nil {
		logger.Error("Failed to open data writer", "error", err)
		return fmt.Errorf("SmtpMailer.Send: data: %w", err)
	}
	if _, err = wc.Write([]byte(buildReminderMessage(m.cfg.From, to, subject, body, time.Now()))); err != nil {
		wc.Close()
		logger.Error("Failed to write reminder message", "error", err)
		return fmt.Errorf("SmtpMailer.Send: write: %w", err)
	}
	if err = wc.Close(); err != nil {
		logger.Error("Failed to finish reminder message", "error", err)
		return fmt.Errorf("SmtpMailer.Send: close: %w", err)
	}

	if err = c.Quit(); err != nil {
		logger.Warn("SMTP QUIT failed after delivery", "error", err)
	}
	logger.Info("Reminder sent via SMTP", "to", to, "subject", subject)
	return nil
}

// buildReminderMessage はヘッダーと本文を CRLF 区切りで組み立てます
func buildReminderMessage(from, to, subject, body string, now time.Time) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return b.String()
}

// --- NewMailer ファクトリ関数 ---
func NewMailer(cfg *config.Config) Mailer {
	logger := slog.Default()
	switch cfg.Mailer.Type {
	case "smtp":
		logger.Info("Initializing SMTP mailer for reminders...")
		return NewSmtpMailer(&cfg.SMTP)
	case "ses":
		logger.Info("Initializing SES mailer for reminders...")
		return NewSESMailer(cfg)
	case "log":
		logger.Info("Initializing Log mailer for reminders...")
		return &LogMailer{}
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}
	}
}
