// Package apperr 定義服務共用的錯誤分類，並對應到 HTTP 狀態碼。
package apperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrUnauthorized = errors.New("not authorized")
	ErrForbidden    = errors.New("insufficient privileges")
)

// Error 帶有可直接回給呼叫端的訊息，並以 Kind 分類
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

// New 建立一個分類為 kind、訊息為 msg 的錯誤
func New(kind error, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// uniqueViolation 是 PostgreSQL unique constraint 違反的 SQLSTATE
const uniqueViolation = "23505"

// IsUniqueViolation 判斷 err 是否為 unique constraint 衝突
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// HTTPStatus 將錯誤對應到 HTTP 狀態碼。
// 重複資料 (Conflict) 依照本服務慣例回傳 400。
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict), IsUniqueViolation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// kinds 是可以直接回給呼叫端的錯誤分類
var kinds = []error{ErrValidation, ErrConflict, ErrNotFound, ErrUnauthorized, ErrForbidden}

// Public 回傳可以給呼叫端看的錯誤訊息。
// 只包了分類的錯誤回傳分類本身的訊息，不帶出內部的操作名稱；
// 非預期錯誤只在 debug 模式下帶出原始訊息。
func Public(err error, debug bool) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	if IsUniqueViolation(err) {
		return ErrConflict.Error()
	}
	if HTTPStatus(err) == http.StatusInternalServerError && !debug {
		return "server error"
	}
	return err.Error()
}
