// Package telemetry обеспечивает наблюдаемость CLI.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики одного запуска
//
// Логи пишутся в stderr, чтобы stdout оставался чистым для
// идентификаторов pipeline и run. Метрики не экспортируются по HTTP:
// процесс живёт одну команду, поэтому они сохраняются в textfile
// для node_exporter (ORCHESTRA_METRICS_FILE).
package telemetry
