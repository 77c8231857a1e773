// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternalServer   = errors.New("internal server error")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthenticated  = errors.New("no authenticated profile")
	ErrConflict         = errors.New("resource conflict")
	ErrPersistence      = errors.New("persistence failed")
	ErrNotInitialized   = errors.New("service not initialized")
	ErrPermissionDenied = errors.New("notification permission denied")
)

// AppError はクライアントに返すエラー情報と根本原因のエラーをまとめたものです。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

// ErrorDetail はレスポンスに含めるエラー内容
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
