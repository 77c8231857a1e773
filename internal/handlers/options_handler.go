// internal/handlers/options_handler.go
package handlers

import (
	"net/http"

	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/webutil"
)

type goalOptionsResponse struct {
	Goals        []model.Option `json:"goals"`
	DailyMinutes []int          `json:"daily_minutes"`
}

// GetGoalOptions は学習目標と1日の学習時間の選択肢を返します
func GetGoalOptions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	webutil.RespondWithJSON(w, http.StatusOK, goalOptionsResponse{
		Goals:        model.LearningGoals,
		DailyMinutes: model.DailyMinutesOptions,
	}, logger)
}

func GetTopicOptions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	webutil.RespondWithJSON(w, http.StatusOK, model.Topics, logger)
}
