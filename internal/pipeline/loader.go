// Package pipeline загружает локальные YAML-определения pipeline.
//
// Схема определения локально не проверяется: это делает удалённый
// endpoint валидации. Здесь гарантируется только то, что файл
// разбирается как YAML-mapping и может быть сериализован в JSON.
package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition — произвольный документ pipeline.
type Definition map[string]any

// Load читает и разбирает YAML-файл.
//
// Пустой документ даёт пустой Definition. Верхний уровень, отличный
// от mapping (список, скаляр), считается ошибкой ErrInvalidYAML.
func Load(path string) (Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Err: ErrFileNotFound}
		}
		return nil, &LoadError{Path: path, Err: ErrFileNotFound, Reason: err.Error()}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: path, Err: ErrFileNotFound, Reason: path + " is a directory"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: ErrFileNotFound, Reason: err.Error()}
	}

	return Parse(data)
}

// Parse разбирает YAML из памяти.
//
// Поток должен содержать ровно один документ: второй документ или
// ошибка синтаксиса после первого тоже дают ErrInvalidYAML.
func Parse(data []byte) (Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Definition{}, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Definition{}, nil
		}
		return nil, &LoadError{Err: ErrInvalidYAML, Reason: err.Error()}
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		reason := "expected a single document in the stream"
		if err != nil {
			reason = err.Error()
		}
		return nil, &LoadError{Err: ErrInvalidYAML, Reason: reason}
	}

	var def Definition
	switch v := normalize(doc).(type) {
	case nil:
		return Definition{}, nil
	case map[string]any:
		def = Definition(v)
	default:
		return nil, &LoadError{
			Err:    ErrInvalidYAML,
			Reason: fmt.Sprintf("top-level value must be a mapping, got %T", v),
		}
	}

	// .inf, .nan и т.п. допустимы в YAML, но не в JSON
	if _, err := json.Marshal(def); err != nil {
		return nil, &LoadError{Err: ErrInvalidYAML, Reason: err.Error()}
	}
	return def, nil
}

// normalize приводит вложенные map[any]any к map[string]any,
// иначе encoding/json не сможет их сериализовать.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
