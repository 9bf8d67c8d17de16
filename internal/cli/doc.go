// Package cli реализует команды CLI Orchestra.
//
// # Обзор
//
// CLI — клиентская утилита для публичного API pipelines Orchestra.
// Каждая команда выполняет не больше одного изменяющего запроса:
// собрать входные данные → проверить предусловия → (валидация схемы)
// → один запрос → код выхода.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для API pipelines. Инкапсулирует построение запросов,
// заголовки (Authorization, X-Request-ID), таймауты и классификацию
// ответов (ValidationError, APIError, ErrTransport).
//
//	client := cli.NewClient(cli.ClientConfig{Config: cfg})
//	id, err := client.CreatePipeline(ctx, payload)
//
// ## Output
//
// Идентификаторы выводятся в stdout, сообщения — в stderr с цветом
// (lipgloss). Это позволяет использовать pipe:
//
//	RUN_ID=$(orchestra run -a nightly)
//
// ## Commands
//
// Cobra-команды:
//   - create-pipeline, update-pipeline — YAML хранится в Orchestra
//   - import — YAML хранится в git, передаётся ссылка на файл
//   - run — запуск pipeline, с подтверждением при предупреждениях git
//   - validate — только проверка схемы
//
// Каждая команда создаётся фабрикой (NewRunCmd и т.д.), принимающей
// depsFn — замыкание для ленивого создания Deps после парсинга
// PersistentFlags. Ошибки печатаются самой командой, наружу
// возвращается ExitError.
package cli
