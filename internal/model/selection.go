// internal/model/selection.go
package model

// Option は選択画面に表示する固定の選択肢
type Option struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// LearningGoals は目標選択画面の選択肢
var LearningGoals = []Option{
	{ID: "daily_conversation", Label: "Daily conversation", Description: "Chat with friends and coworkers"},
	{ID: "travel", Label: "Travel", Description: "Get around comfortably abroad"},
	{ID: "career", Label: "Career", Description: "Meetings, emails and interviews"},
	{ID: "exam", Label: "Exam preparation", Description: "IELTS, TOEIC and TOEFL vocabulary"},
	{ID: "academic", Label: "Academic study", Description: "Read papers and write essays"},
	{ID: "fun", Label: "Just for fun", Description: "Movies, music and books"},
}

// DailyMinutesOptions は1日の学習時間のドロップダウン
var DailyMinutesOptions = []int{5, 10, 15, 30}

// Topics はトピック画面でフォローできるトピック
var Topics = []Option{
	{ID: "animals", Label: "Animals"},
	{ID: "business", Label: "Business"},
	{ID: "food", Label: "Food & Drink"},
	{ID: "health", Label: "Health"},
	{ID: "nature", Label: "Nature"},
	{ID: "science", Label: "Science"},
	{ID: "sports", Label: "Sports"},
	{ID: "technology", Label: "Technology"},
	{ID: "travel", Label: "Travel"},
}

func IsGoal(id string) bool {
	return findOption(LearningGoals, id)
}

func IsTopic(id string) bool {
	return findOption(Topics, id)
}

func IsDailyMinutes(minutes int) bool {
	for _, m := range DailyMinutesOptions {
		if m == minutes {
			return true
		}
	}
	return false
}

func findOption(options []Option, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}
