// Package api wraps the scholarship REST API. Every exported method maps to
// one remote operation; protected operations take the bearer token as an
// argument and never read session state themselves.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/octabyte/becas-client/otel"
	"github.com/octabyte/becas-client/otel/metrics"
	"github.com/octabyte/becas-client/utils/logger"
	"go.uber.org/zap"
)

type Client struct {
	rest     *resty.Client
	baseURL  string
	validate *validator.Validate
}

type options struct {
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*options)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// New returns a client rooted at baseURL, which already includes the
// version prefix (e.g. "https://host/api/v1").
func New(baseURL string, opts ...Option) *Client {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	rc := resty.New()
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	}
	if o.timeout > 0 {
		rc.SetTimeout(o.timeout)
	}

	baseURL = strings.TrimRight(baseURL, "/")
	rc.SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Client{
		rest:     rc,
		baseURL:  baseURL,
		validate: newValidator(),
	}
}

// request describes one call; fallback is the message used when the server
// sends none and the status has no default.
type request struct {
	resource   string
	operation  string
	method     string
	path       string
	pathParams map[string]string
	query      url.Values
	token      string
	body       interface{}
	form       *multipartForm
	fallback   string
}

type multipartForm struct {
	fileField string
	fileName  string
	file      io.Reader
	fields    map[string]string
}

// send dispatches r and returns the body of a 2xx response. Non-2xx
// responses become *Error; transport errors are returned unchanged.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	ctx, finish := otel.StartHTTPSpan(ctx, r.resource, r.operation, r.method, c.baseURL+r.path)

	req := c.rest.R().SetContext(ctx)
	if r.token != "" {
		req.SetAuthToken(r.token)
	}
	if len(r.pathParams) > 0 {
		req.SetPathParams(r.pathParams)
	}
	if len(r.query) > 0 {
		req.SetQueryParamsFromValues(r.query)
	}
	switch {
	case r.form != nil:
		req.SetFileReader(r.form.fileField, r.form.fileName, r.form.file).
			SetFormData(r.form.fields)
	case r.body != nil:
		req.SetHeader("Content-Type", "application/json").SetBody(r.body)
	}

	start := time.Now()
	resp, err := req.Execute(r.method, r.path)
	elapsed := time.Since(start)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode()
	}

	if err != nil {
		finish(statusCode, err)
		metrics.RecordAPICall(ctx, r.resource, r.operation, statusCode, elapsed, err)
		logger.LogDebug("api call failed", logger.WithTrace(ctx,
			zap.String("operation", r.operation),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)...)
		return nil, err
	}

	if !resp.IsSuccess() {
		apiErr := newError(r.operation, statusCode, resp.Body(), r.fallback)
		finish(statusCode, apiErr)
		metrics.RecordAPICall(ctx, r.resource, r.operation, statusCode, elapsed, apiErr)
		logger.LogDebug("api call rejected", logger.WithTrace(ctx,
			zap.String("operation", r.operation),
			zap.Int("status", statusCode),
			zap.String("message", apiErr.Message),
		)...)
		return nil, apiErr
	}

	finish(statusCode, nil)
	metrics.RecordAPICall(ctx, r.resource, r.operation, statusCode, elapsed, nil)
	logger.LogDebug("api call", logger.WithTrace(ctx,
		zap.String("operation", r.operation),
		zap.Int("status", statusCode),
		zap.Duration("elapsed", elapsed),
	)...)

	return resp.Body(), nil
}

// decode parses a success body into T without reshaping it.
func decode[T any](operation string, body []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return &out, nil
}

// raw returns the body as-is, for endpoints whose shape is owned by the caller.
// An empty success body, as sent with 204, yields nil.
func raw(operation string, body []byte) (json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: decode response: invalid JSON", operation)
	}
	return json.RawMessage(body), nil
}
