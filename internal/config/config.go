// Package config собирает конфигурацию CLI из окружения.
//
// Окружение читается один раз в main и передаётся компонентам явно,
// глубже по стеку вызовов os.Getenv не используется.
package config

import (
	"log/slog"
	"net/url"
	"strings"
)

// DefaultBaseURL — production-origin Orchestra.
const DefaultBaseURL = "https://app.getorchestra.io"

// pipelinesPath — префикс публичного API pipelines.
const pipelinesPath = "/api/engine/public/pipelines"

// Переменные окружения.
const (
	EnvAPIKey      = "ORCHESTRA_API_KEY"
	EnvBaseURL     = "BASE_URL"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvMetricsFile = "ORCHESTRA_METRICS_FILE"
)

// Config — конфигурация одного запуска CLI.
type Config struct {
	// APIKey — bearer-токен. Пустая строка означает "не задан".
	APIKey string

	// BaseURL — origin Orchestra без завершающего "/".
	BaseURL string

	LogLevel  slog.Level
	LogFormat string // "json", "text" или "" (автовыбор)

	// MetricsFile — куда записать метрики Prometheus при выходе.
	MetricsFile string
}

// FromEnv собирает Config через getenv (обычно os.Getenv).
func FromEnv(getenv func(string) string) Config {
	return Config{
		APIKey:      strings.TrimSpace(getenv(EnvAPIKey)),
		BaseURL:     NormalizeBaseURL(getenv(EnvBaseURL)),
		LogLevel:    ParseLogLevel(getenv(EnvLogLevel)),
		LogFormat:   strings.ToLower(strings.TrimSpace(getenv(EnvLogFormat))),
		MetricsFile: strings.TrimSpace(getenv(EnvMetricsFile)),
	}
}

// NormalizeBaseURL убирает завершающий "/" и подставляет
// DefaultBaseURL для пустого значения.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return DefaultBaseURL
	}
	return raw
}

// ParseLogLevel определяет уровень логирования.
// Возможные значения: DEBUG, INFO, WARN, ERROR.
// По умолчанию: WARN — CLI не шумит без запроса.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// HasAPIKey возвращает true, если токен задан.
func (c Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// PipelinesURL строит URL endpoint'а pipelines.
// Элементы пути экранируются: PipelinesURL("my alias", "start").
func (c Config) PipelinesURL(elem ...string) string {
	u := NormalizeBaseURL(c.BaseURL) + pipelinesPath
	for _, e := range elem {
		u += "/" + url.PathEscape(e)
	}
	return u
}

// EditURL — ссылка на редактор pipeline в веб-интерфейсе.
func (c Config) EditURL(pipelineID string) string {
	return NormalizeBaseURL(c.BaseURL) + "/pipelines/" + url.PathEscape(pipelineID) + "/edit"
}
