// internal/config/config.go
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// StorageConfig はプロフィール保存先 (key-value ストア) の設定
type StorageConfig struct {
	Backend    string `mapstructure:"backend"` // "gorm" or "redis"
	ProfileKey string `mapstructure:"profile_key"`
	RedisAddr  string `mapstructure:"redis_addr"`
	RedisDB    int    `mapstructure:"redis_db"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type JWTConfig struct {
	SecretKey      string `mapstructure:"secret_key"`
	ExpiresInHours int    `mapstructure:"expires_in_hours"`
}

// NotificationConfig はリマインダー通知の設定
type NotificationConfig struct {
	Permission string `mapstructure:"permission"` // "granted", "denied", "prompt"
	Timezone   string `mapstructure:"timezone"`
	Title      string `mapstructure:"title"`
	Body       string `mapstructure:"body"`
	Sound      string `mapstructure:"sound"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // "log", "smtp", "ses"
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	From            string `mapstructure:"from"`
}

type Config struct {
	Database     DatabaseConfig     `mapstructure:"database"`
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	Storage      StorageConfig      `mapstructure:"storage"`
	CORS         CORSConfig         `mapstructure:"cors"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Notification NotificationConfig `mapstructure:"notification"`
	Mailer       MailerConfig       `mapstructure:"mailer"`
	SMTP         SMTPConfig         `mapstructure:"smtp"`
	SES          SESConfig          `mapstructure:"ses"`
}

var Cfg Config

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 例: APP_DATABASE_URL, APP_JWT_SECRET_KEY
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("database.url", "APP_DATABASE_URL", "DATABASE_URL")
	v.BindEnv("jwt.secret_key", "APP_JWT_SECRET_KEY", "JWT_SECRET_KEY")
	v.BindEnv("storage.redis_addr", "APP_STORAGE_REDIS_ADDR", "REDIS_ADDR")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}
	ApplyDefaults(&cfg)
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Storage Backend: %s", Cfg.Storage.Backend)
	log.Printf("Notification Permission: %s", Cfg.Notification.Permission)

	return nil
}

// ApplyDefaults は未設定の項目にデフォルト値を入れます
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Database.URL == "" {
		log.Printf("Database URL not set, using default '%s'", DefaultDatabaseURL)
		cfg.Database.URL = DefaultDatabaseURL
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.ProfileKey == "" {
		cfg.Storage.ProfileKey = DefaultProfileKey
	}
	if cfg.JWT.ExpiresInHours <= 0 {
		cfg.JWT.ExpiresInHours = DefaultJWTExpiresInHours
	}
	if cfg.JWT.SecretKey == "" {
		log.Println("Warning: JWT secret key is not set in config.")
	}
	if cfg.Notification.Permission == "" {
		cfg.Notification.Permission = DefaultNotificationPermission
	}
	if cfg.Notification.Timezone == "" {
		cfg.Notification.Timezone = DefaultNotificationTimezone
	}
	if cfg.Notification.Title == "" {
		cfg.Notification.Title = DefaultReminderTitle
	}
	if cfg.Notification.Body == "" {
		cfg.Notification.Body = DefaultReminderBody
	}
	if cfg.Notification.Sound == "" {
		cfg.Notification.Sound = DefaultReminderSound
	}
	if cfg.Mailer.Type == "" {
		cfg.Mailer.Type = DefaultMailerType
	}
}
