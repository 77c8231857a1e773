// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "VocabLearn"
	AppVersion = "1.1.0"
)

// デフォルト設定値
const (
	DefaultServerPort             = ":8080"
	DefaultLogLevel               = "info"
	DefaultDatabaseURL            = "vocab_learn.db"
	DefaultStorageBackend         = "gorm"
	DefaultProfileKey             = "@user_data"
	DefaultJWTExpiresInHours      = 24 * 7
	DefaultNotificationPermission = "prompt"
	DefaultNotificationTimezone   = "Local"
	DefaultMailerType             = "log"
)

// リマインダー通知の固定文言
const (
	ReminderChannelID    = "reminder"
	ReminderChannelName  = "Daily reminder"
	DefaultReminderTitle = "Time for your daily words!"
	DefaultReminderBody  = "A few minutes a day keeps your streak alive."
	DefaultReminderSound = "default"
)

// copy_database が扱うビルド成果物のパス
const (
	VocabDatabaseBuildPath = "build/vocab.db"
	VocabDatabaseAssetPath = "assets/database/vocab.db"
)
