package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// LoggerOptions — параметры SetupLogger.
type LoggerOptions struct {
	Level slog.Level

	// Format — "json", "text" или "" (text для терминала, иначе json).
	Format string

	// Output — куда писать логи. По умолчанию os.Stderr.
	Output io.Writer
}

// SetupLogger инициализирует глобальный логгер.
//
// Формат вывода:
//   - "json" — для CI и скриптов
//   - "text" — человекочитаемый формат
//   - "" — text, если stderr является терминалом, иначе json
func SetupLogger(opts LoggerOptions) *slog.Logger {
	w := opts.Output
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.Level == slog.LevelDebug,
	}

	var handler slog.Handler
	if useText(opts.Format, w) {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func useText(format string, w io.Writer) bool {
	switch format {
	case "text":
		return true
	case "json":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Ключи контекста для передачи данных в логгер.
type ctxKey string

const (
	// CtxLogger — ключ для логгера в контексте.
	CtxLogger ctxKey = "logger"
)

// WithLogger добавляет логгер в контекст.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, CtxLogger, logger)
}

// FromContext извлекает логгер из контекста.
// Если логгер не найден, возвращает fallback, а при nil fallback — глобальный.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(CtxLogger).(*slog.Logger); ok {
		return logger
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}

// WithCommand возвращает логгер с добавленным command.
func WithCommand(logger *slog.Logger, command string) *slog.Logger {
	return logger.With("command", command)
}

// WithAlias возвращает логгер с добавленным alias pipeline.
func WithAlias(logger *slog.Logger, alias string) *slog.Logger {
	return logger.With("alias", alias)
}
