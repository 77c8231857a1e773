// internal/service/mailer_ses.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/middleware"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESMailer は AWS SES でリマインダーを届ける実装です
type SESMailer struct {
	client *sesv2.Client
	from   string
}

// NewSESMailer は auth_type に応じて認証方法を切り替えます。
// 設定ミスは起動時に気づけるよう panic します。
func NewSESMailer(cfg *config.Config) Mailer {
	awsCfg, err := loadSESAWSConfig(context.Background(), &cfg.SES)
	if err != nil {
		slog.Error("Failed to load AWS config for SES", "error", err)
		panic(err)
	}
	return &SESMailer{
		client: sesv2.NewFromConfig(awsCfg),
		from:   cfg.SES.From,
	}
}

func loadSESAWSConfig(ctx context.Context, cfg *config.SESConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	switch cfg.AuthType {
	case "static_credentials":
		slog.Info("Configuring SES with static credentials.")
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return aws.Config{}, fmt.Errorf("ses auth_type is static_credentials but access_key_id or secret_access_key is empty")
		}
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	case "iam_role":
		// SDK のデフォルトチェーンに任せる
		slog.Info("Configuring SES with IAM Role credentials.")
	default:
		slog.Warn("Unknown SES auth_type specified, defaulting to IAM Role.", "type", cfg.AuthType)
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// newReminderEmailInput はリマインダー1件分の SendEmail 入力を組み立てます
func newReminderEmailInput(from, to, subject, body string) *sesv2.SendEmailInput {
	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}
}

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)

	out, err := m.client.SendEmail(ctx, newReminderEmailInput(m.from, to, subject, body))
	if err != nil {
		logger.Error("Failed to send reminder via SES", "error", err, "to", to)
		return fmt.Errorf("SESMailer.Send: %w", err)
	}

	logger.Info("Reminder sent via SES", "to", to, "subject", subject, "message_id", aws.ToString(out.MessageId))
	return nil
}
