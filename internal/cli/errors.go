package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Ошибки взаимодействия с Orchestra API.
var (
	// ErrMissingCredential — ORCHESTRA_API_KEY не задан.
	ErrMissingCredential = errors.New("ORCHESTRA_API_KEY is not set")

	// ErrSchemaRejected — endpoint валидации отклонил определение.
	ErrSchemaRejected = errors.New("schema validation rejected")

	// ErrTransport — запрос не дошёл до API (сеть, таймаут, отмена).
	ErrTransport = errors.New("HTTP request failed")

	// ErrUnexpectedStatus — API ответил неуспешным статусом.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrMalformedResponse — успешный ответ без JSON или без ожидаемого поля.
	ErrMalformedResponse = errors.New("malformed success response")

	// ErrAborted — пользователь прервал подтверждение.
	ErrAborted = errors.New("aborted")
)

// APIError — неуспешный или некорректный ответ API.
type APIError struct {
	Op          string // "Create", "Update", "Import", "Run"
	StatusCode  int
	ContentType string
	Body        []byte
	Reason      string // для ErrMalformedResponse
	Err         error  // ErrUnexpectedStatus или ErrMalformedResponse
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
}

// Unwrap возвращает базовую ошибку.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Detail возвращает тело ответа: JSON с отступами, если тело
// разбирается как JSON, иначе текст как есть.
func (e *APIError) Detail() string {
	return prettyBody(e.Body)
}

// ContentDetail учитывает Content-Type: JSON переформатируется,
// текстовые ответы выводятся без изменений.
func (e *APIError) ContentDetail() string {
	if strings.HasPrefix(strings.ToLower(e.ContentType), "application/json") {
		return prettyBody(e.Body)
	}
	return string(e.Body)
}

// ValidationError — определение не прошло удалённую проверку схемы
// или проверку не удалось выполнить.
type ValidationError struct {
	// Detail — ответ endpoint'а или описание ошибки транспорта.
	Detail string
	Err    error // ErrSchemaRejected или ErrTransport
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	return "validation failed: " + e.Detail
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ExitError сигнализирует ненулевой код выхода без повторного вывода
// ошибки: команда уже напечатала своё сообщение.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode возвращает код выхода.
func (e *ExitError) ExitCode() int {
	return e.Code
}

func prettyBody(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err == nil {
		return buf.String()
	}
	return string(body)
}

func compactBody(body map[string]any) string {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprint(body)
	}
	return string(data)
}
