package pipeline

import "errors"

// Ошибки загрузки определения pipeline.
var (
	// ErrFileNotFound — файл не существует или является директорией.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidYAML — файл не разбирается как YAML-mapping.
	ErrInvalidYAML = errors.New("invalid YAML")
)

// LoadError — ошибка загрузки с путём к файлу.
type LoadError struct {
	Path string
	Err  error // ErrFileNotFound или ErrInvalidYAML
	// Reason — сообщение парсера или файловой системы без изменений.
	Reason string
}

// Error реализует интерфейс error.
func (e *LoadError) Error() string {
	if e.Reason == "" {
		return e.Err.Error() + ": " + e.Path
	}
	return e.Err.Error() + ": " + e.Reason
}

// Unwrap возвращает базовую ошибку.
func (e *LoadError) Unwrap() error {
	return e.Err
}
