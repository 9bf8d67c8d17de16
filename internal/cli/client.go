package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/orchestra-cli/internal/config"
	"github.com/shaiso/orchestra-cli/internal/domain"
	"github.com/shaiso/orchestra-cli/internal/pipeline"
	"github.com/shaiso/orchestra-cli/internal/telemetry"
)

// Таймауты запросов.
const (
	SchemaTimeout   = 15 * time.Second
	MutationTimeout = 30 * time.Second
)

// maxBodySize ограничивает размер читаемого ответа.
const maxBodySize = 4 << 20

// --- Response types ---

// Result — успешный ответ import или run.
type Result struct {
	// ID — идентификатор pipeline или run. Пустой, если API его не вернул.
	ID string

	// Body — разобранный JSON ответа (может быть пустым).
	Body map[string]any
}

// response — сырой ответ API.
type response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (r *response) apiError(op string, sentinel error, reason string) *APIError {
	return &APIError{
		Op:          op,
		StatusCode:  r.StatusCode,
		ContentType: r.ContentType,
		Body:        r.Body,
		Reason:      reason,
		Err:         sentinel,
	}
}

// decodeObject разбирает тело как JSON-объект.
func (r *response) decodeObject() (map[string]any, error) {
	var body map[string]any
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// --- Client ---

// ClientConfig — параметры Client.
type ClientConfig struct {
	Config  config.Config
	Version string
	Logger  *slog.Logger

	// Metrics может быть nil.
	Metrics *telemetry.Metrics

	// Transport — базовый RoundTripper. По умолчанию http.DefaultTransport.
	Transport http.RoundTripper
}

// Client — HTTP-клиент для публичного API pipelines Orchestra.
type Client struct {
	cfg        config.Config
	userAgent  string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(cc ClientConfig) *Client {
	logger := cc.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := cc.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	version := cc.Version
	if version == "" {
		version = "dev"
	}

	return &Client{
		cfg:       cc.Config,
		userAgent: "orchestra-cli/" + version,
		httpClient: &http.Client{
			Transport: &instrumentedTransport{next: base, logger: logger, metrics: cc.Metrics},
		},
	}
}

// --- Pipelines ---

// ValidateSchema отправляет определение на проверку схемы.
// Любой статус кроме 200 означает, что определение невалидно.
func (c *Client) ValidateSchema(ctx context.Context, def pipeline.Definition) error {
	if def == nil {
		def = pipeline.Definition{}
	}

	resp, err := c.do(ctx, http.MethodPost, "schema", c.cfg.PipelinesURL("schema"), def, SchemaTimeout)
	if err != nil {
		return &ValidationError{Detail: err.Error(), Err: err}
	}

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	return &ValidationError{Detail: prettyBody(resp.Body), Err: ErrSchemaRejected}
}

// CreatePipeline создаёт pipeline и возвращает его ID.
func (c *Client) CreatePipeline(ctx context.Context, payload domain.UpsertPayload) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "create", c.cfg.PipelinesURL(), payload, MutationTimeout)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		return "", resp.apiError("Create", ErrUnexpectedStatus, "")
	}
	return requirePipelineID(resp, "Create")
}

// UpdatePipeline обновляет pipeline по alias и возвращает его ID.
func (c *Client) UpdatePipeline(ctx context.Context, alias string, payload domain.UpsertPayload) (string, error) {
	payload.Alias = ""

	resp, err := c.do(ctx, http.MethodPut, "update", c.cfg.PipelinesURL(alias), payload, MutationTimeout)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", resp.apiError("Update", ErrUnexpectedStatus, "")
	}
	return requirePipelineID(resp, "Update")
}

// ImportPipeline создаёт pipeline по ссылке на YAML в git-репозитории.
func (c *Client) ImportPipeline(ctx context.Context, payload domain.ImportPayload) (*Result, error) {
	resp, err := c.do(ctx, http.MethodPost, "import", c.cfg.PipelinesURL("import"), payload, MutationTimeout)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, resp.apiError("Import", ErrUnexpectedStatus, "")
	}

	body, _ := resp.decodeObject()
	return &Result{ID: firstField(body, "pipeline_id", "id"), Body: body}, nil
}

// StartRun запускает pipeline. Пустой payload отправляется без тела.
func (c *Client) StartRun(ctx context.Context, alias string, payload domain.RunPayload) (*Result, error) {
	var body any
	if !payload.IsEmpty() {
		body = payload
	}

	resp, err := c.do(ctx, http.MethodPost, "start", c.cfg.PipelinesURL(alias, "start"), body, MutationTimeout)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.apiError("Run", ErrUnexpectedStatus, "")
	}

	obj, _ := resp.decodeObject()
	return &Result{ID: firstField(obj, "execution_id", "run_id", "id"), Body: obj}, nil
}

// requirePipelineID извлекает обязательное поле id из успешного ответа.
func requirePipelineID(resp *response, op string) (string, error) {
	body, err := resp.decodeObject()
	if err != nil {
		return "", resp.apiError(op, ErrMalformedResponse, "success response was not valid JSON")
	}

	id := firstField(body, "id")
	if id == "" {
		return "", resp.apiError(op, ErrMalformedResponse, "success response did not include pipeline id")
	}
	return id, nil
}

// firstField возвращает первое непустое поле из списка.
func firstField(body map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := body[k]
		if !ok || v == nil {
			continue
		}
		if s := fmt.Sprint(v); s != "" {
			return s
		}
	}
	return ""
}

// --- HTTP helpers ---

func (c *Client) do(ctx context.Context, method, endpoint, url string, body any, timeout time.Duration) (*response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(withEndpoint(ctx, endpoint), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.HasAPIKey() {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	return &response{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        data,
	}, nil
}
