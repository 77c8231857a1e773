// internal/model/profile.go
package model

import "time"

// ProficiencyLevel は英語レベル。保存済みデータとの互換性のため表記はそのまま使う。
type ProficiencyLevel string

const (
	LevelBeginner          ProficiencyLevel = "beginner"
	LevelElementary        ProficiencyLevel = "Elementary"
	LevelIntermediate      ProficiencyLevel = "Intermediate"
	LevelUpperIntermediate ProficiencyLevel = "Upper-Intermediate"
	LevelAdvanced          ProficiencyLevel = "Advanced"
	LevelProficient        ProficiencyLevel = "Proficient"
)

var ProficiencyLevels = []ProficiencyLevel{
	LevelBeginner,
	LevelElementary,
	LevelIntermediate,
	LevelUpperIntermediate,
	LevelAdvanced,
	LevelProficient,
}

func (l ProficiencyLevel) Valid() bool {
	for _, v := range ProficiencyLevels {
		if v == l {
			return true
		}
	}
	return false
}

// UserProgress は学習の進み具合
type UserProgress struct {
	CompletedLessons int `json:"completedLessons" validate:"gte=0"`
	TotalLessons     int `json:"totalLessons" validate:"gte=0"`
	Streak           int `json:"streak" validate:"gte=0"`
}

// UserProfile はサインイン中のユーザー。ストレージには "@user_data" キーでJSONとして保存される。
type UserProfile struct {
	ID             string           `json:"id"`
	Email          string           `json:"email"`
	Name           string           `json:"name"`
	Level          ProficiencyLevel `json:"level"`
	IsLoggedIn     bool             `json:"isLoggedIn"`
	LastLogin      *time.Time       `json:"lastLogin,omitempty"`
	Progress       *UserProgress    `json:"progress,omitempty"`
	Goal           string           `json:"goal,omitempty"`
	DailyMinutes   int              `json:"dailyMinutes,omitempty"`
	FollowedTopics []string         `json:"followedTopics,omitempty"`
}

// Clone はポインタ・スライスを含めたコピーを返す
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	if p.LastLogin != nil {
		t := *p.LastLogin
		c.LastLogin = &t
	}
	if p.Progress != nil {
		pr := *p.Progress
		c.Progress = &pr
	}
	if p.FollowedTopics != nil {
		c.FollowedTopics = append([]string(nil), p.FollowedTopics...)
	}
	return &c
}

// LoginRequest はログインAPIのリクエストボディ (isLoggedIn は含めない)
type LoginRequest struct {
	ID    string           `json:"id"`
	Email string           `json:"email" validate:"required,email"`
	Name  string           `json:"name" validate:"required,min=1,max=100"`
	Level ProficiencyLevel `json:"level" validate:"required,proficiency"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	Profile     *UserProfile `json:"profile"`
	Persisted   bool         `json:"persisted"`
}

// ProfileResponse はプロフィール更新系APIのレスポンス
type ProfileResponse struct {
	Profile   *UserProfile `json:"profile"`
	Persisted bool         `json:"persisted"`
}

type UpdateLevelRequest struct {
	Level ProficiencyLevel `json:"level" validate:"required,proficiency"`
}

type UpdateProgressRequest struct {
	Progress *UserProgress `json:"progress" validate:"required"`
}

type UpdateGoalRequest struct {
	Goal         string `json:"goal" validate:"required,goal"`
	DailyMinutes int    `json:"dailyMinutes" validate:"required,oneof=5 10 15 30"`
}

type UpdateTopicsRequest struct {
	Topics []string `json:"topics" validate:"dive,topic"`
}
