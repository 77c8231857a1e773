// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go_4_vocab_learn/internal/model"

	"github.com/go-playground/validator/v10"
)

// HandleError はエラーを解釈し、適切なJSONエラーレスポンスを返します。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	statusCode := MapErrorToStatusCode(err)

	var errResp model.APIErrorResponse
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		errResp = model.APIErrorResponse{Error: appErr.Detail}
	} else {
		// AppError ではない予期せぬエラーはログにだけ詳細を出す
		logger.Error("Unhandled error", slog.Any("error", err))
		errResp = model.APIErrorResponse{Error: defaultErrorDetail(statusCode)}
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden), errors.Is(err, model.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotInitialized):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func defaultErrorDetail(statusCode int) model.ErrorDetail {
	switch statusCode {
	case http.StatusNotFound:
		return model.ErrorDetail{Code: "NOT_FOUND", Message: "リソースが見つかりません。"}
	case http.StatusBadRequest:
		return model.ErrorDetail{Code: "INVALID_INPUT", Message: "入力内容が正しくありません。"}
	case http.StatusUnauthorized:
		return model.ErrorDetail{Code: "UNAUTHORIZED", Message: "ログインが必要です。"}
	case http.StatusForbidden:
		return model.ErrorDetail{Code: "FORBIDDEN", Message: "この操作は許可されていません。"}
	case http.StatusServiceUnavailable:
		return model.ErrorDetail{Code: "SERVICE_UNAVAILABLE", Message: "サービスの準備ができていません。"}
	default:
		return model.ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: "サーバー内部でエラーが発生しました。"}
	}
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		if logger != nil {
			logger.Error("Error marshaling JSON response", slog.Any("error", err))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR","message":"レスポンス生成中にエラーが発生しました。"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// NewValidationErrorResponse は全てのバリデーションエラーを1つの AppError にまとめます
func NewValidationErrorResponse(errs validator.ValidationErrors) *model.AppError {
	var fields []string
	var messages []string

	for _, err := range errs {
		fields = append(fields, err.Field())
		messages = append(messages, err.Translate(Trans))
	}

	return model.NewAppError(
		"VALIDATION_ERROR",
		strings.Join(messages, " "),
		strings.Join(fields, ","),
		model.ErrInvalidInput,
	)
}

// ValidateStruct は validator でチェックし、失敗した場合は最初のエラーを翻訳した AppError を返します
func ValidateStruct(req interface{}) error {
	err := Validator.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		firstErr := validationErrors[0]
		return model.NewAppError("VALIDATION_ERROR", firstErr.Translate(Trans), firstErr.Field(), model.ErrInvalidInput)
	}
	return fmt.Errorf("webutil.ValidateStruct: %w", err)
}
