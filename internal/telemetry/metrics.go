package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics — метрики одного запуска CLI в собственном реестре.
type Metrics struct {
	registry *prometheus.Registry

	// HTTPRequests — запросы к Orchestra API по endpoint и статусу.
	HTTPRequests *prometheus.CounterVec

	// HTTPDuration — длительность запросов к API.
	HTTPDuration *prometheus.HistogramVec

	// GitCommands — вызовы git по подкоманде и коду выхода.
	GitCommands *prometheus.CounterVec

	// Commands — исход команд CLI.
	Commands *prometheus.CounterVec
}

// NewMetrics регистрирует метрики в новом реестре.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orchestra_cli_http_requests_total",
			Help: "HTTP requests sent to the Orchestra API",
		}, []string{"method", "endpoint", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orchestra_cli_http_request_duration_seconds",
			Help:    "Duration of HTTP requests sent to the Orchestra API",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "endpoint"}),
		GitCommands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orchestra_cli_git_commands_total",
			Help: "git invocations by subcommand and exit code",
		}, []string{"subcommand", "exit_code"}),
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orchestra_cli_commands_total",
			Help: "CLI commands by outcome",
		}, []string{"command", "result"}),
	}
}

// ObserveHTTP учитывает один HTTP-запрос. status=0 — ошибка транспорта.
func (m *Metrics) ObserveHTTP(method, endpoint string, status int, d time.Duration) {
	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.HTTPRequests.WithLabelValues(method, endpoint, statusLabel).Inc()
	m.HTTPDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// ObserveGit учитывает вызов git.
func (m *Metrics) ObserveGit(subcommand string, exitCode int) {
	m.GitCommands.WithLabelValues(subcommand, strconv.Itoa(exitCode)).Inc()
}

// ObserveCommand учитывает исход команды CLI.
func (m *Metrics) ObserveCommand(command string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.Commands.WithLabelValues(command, result).Inc()
}

// WriteFile сохраняет метрики в формате textfile collector.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
