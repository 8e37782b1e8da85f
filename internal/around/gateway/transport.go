// Package gateway implements the REST clients for the content service and the
// auth service.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	apperrors "github.com/5hraddha/around/internal/platform/errors"
	"github.com/5hraddha/around/internal/platform/logging"
	aroundotel "github.com/5hraddha/around/internal/platform/otel"
	"github.com/5hraddha/around/internal/platform/requestctx"
	"github.com/5hraddha/around/internal/platform/timeouts"
)

// TracerName is the instrumentation scope for gateway spans.
const TracerName = "around.gateway"

// RequestIDHeader carries a fresh id on every request.
const RequestIDHeader = "X-Request-ID"

// CorrelationIDHeader carries the invocation id from the request context.
const CorrelationIDHeader = "X-Correlation-ID"

const maxResponseBytes = 1 << 20

// Config holds the settings shared by both clients.
type Config struct {
	BaseURL string
	// Headers are added to every request, e.g. the content service
	// "authorization" credential.
	Headers    map[string]string
	HTTPClient *http.Client
	// RequestsPerSecond paces outgoing requests when positive.
	RequestsPerSecond float64
	Logger            *logrus.Entry
	Tracer            trace.Tracer
}

type transport struct {
	baseURL *url.URL
	headers http.Header
	http    *http.Client
	limiter *rate.Limiter
	tracer  trace.Tracer
	log     *logrus.Entry
}

func newTransport(cfg Config, component string) (*transport, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("%s: base URL is required", component)
	}
	base, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: parse base URL: %w", component, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%s: base URL must be http or https, got %q", component, raw)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.HTTPRequest}
	}
	headers := make(http.Header, len(cfg.Headers))
	for key, value := range cfg.Headers {
		if strings.TrimSpace(value) != "" {
			headers.Set(key, value)
		}
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = aroundotel.Tracer(TracerName)
	}

	return &transport{
		baseURL: base,
		headers: headers,
		http:    httpClient,
		limiter: limiter,
		tracer:  tracer,
		log:     logging.Component(cfg.Logger, component),
	}, nil
}

// do sends one JSON request and decodes a 2xx body into out when non-nil.
// Transport failures are KindNetwork, non-2xx responses KindUnexpectedStatus.
func (t *transport) do(ctx context.Context, op, method, path string, header http.Header, body, out any) (err error) {
	ctx, span := t.tracer.Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(apperrors.KindOf(err)))
		}
		span.End()
	}()

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return apperrors.Wrap(apperrors.KindNetwork, op, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.KindInvalidInput, op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL.String()+path, reader)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, op, err)
	}
	for key, values := range t.headers {
		req.Header[key] = values
	}
	for key, values := range header {
		req.Header[key] = values
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	log := t.log.WithFields(logrus.Fields{"op": op, "request_id": requestID})
	if correlationID := requestctx.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(CorrelationIDHeader, correlationID)
		span.SetAttributes(attribute.String("around.correlation_id", correlationID))
		log = log.WithField("correlation_id", correlationID)
	}
	log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("sending request")

	resp, err := t.http.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.KindNetwork, op, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperrors.Wrap(apperrors.KindNetwork, op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.StatusError(op, resp.StatusCode, string(data))
	}
	log.WithField("status", resp.StatusCode).Debug("received response")

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return apperrors.E(apperrors.KindMalformed, op, "empty response body")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(apperrors.KindMalformed, op, err)
	}
	return nil
}
