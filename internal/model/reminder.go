// internal/model/reminder.go
package model

type PermissionStatus string

const (
	PermissionUndetermined PermissionStatus = "undetermined"
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
)

type Importance int

const (
	ImportanceDefault Importance = iota
	ImportanceHigh
)

// Channel は通知チャンネル (Androidのチャンネル相当)
type Channel struct {
	ID         string
	Name       string
	Importance Importance
	Sound      string
	ShowBadge  bool
}

// DailyTime は毎日の通知時刻
type DailyTime struct {
	Hour   int `json:"hour" validate:"gte=0,lte=23"`
	Minute int `json:"minute" validate:"gte=0,lte=59"`
}

// Notification は通知の内容
type Notification struct {
	Title     string
	Body      string
	Sound     string
	Recipient string
}

type PermissionResponse struct {
	Status PermissionStatus `json:"status"`
}

type ScheduleReminderRequest struct {
	Time       *DailyTime `json:"time" validate:"required"`
	PreviousID string     `json:"previous_id,omitempty"`
}

type ScheduleReminderResponse struct {
	ID   string    `json:"id"`
	Time DailyTime `json:"time"`
}
