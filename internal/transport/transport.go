// Package transport executes BunnyCDN HTTP calls for every client family.
//
// A call is one request and one fully read response. Classification of the
// status code happens in Classify against the operation's result.Table.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/bunny-go/pkg/apperror"
	"github.com/khoahotran/bunny-go/pkg/bunny/result"
	"github.com/khoahotran/bunny-go/pkg/logger"
)

const tracerName = "github.com/khoahotran/bunny-go"

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	http   Doer
	log    logger.Logger
	tracer trace.Tracer
}

// New builds a Client. Nil arguments fall back to http.DefaultClient, a nop
// logger and the global tracer provider.
func New(h Doer, log logger.Logger, tp trace.TracerProvider) *Client {
	if h == nil {
		h = http.DefaultClient
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Client{http: h, log: log, tracer: tp.Tracer(tracerName)}
}

type Request struct {
	// Operation names the call in spans and logs, e.g. "stream.GetVideo".
	Operation string
	Method    string
	URL       string
	Header    http.Header
	Body      []byte
}

type Response struct {
	Code   int
	Header http.Header
	Body   []byte
}

// Do sends r and reads the whole response body. The returned error is
// always an *apperror.AppError.
func (c *Client) Do(ctx context.Context, r Request) (rsp *Response, err error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("%s: parsing url", r.Operation), err)
	}

	ctx, span := c.tracer.Start(ctx, r.Operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(r.Method),
			semconv.ServerAddress(u.Hostname()),
			semconv.URLPath(u.Path),
		),
	)
	defer span.End()

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("%s: preparing request", r.Operation), err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return nil, apperror.NewTransport(fmt.Sprintf("%s %s%s", r.Method, u.Host, u.Path), err)
	}

	defer func() {
		if e := res.Body.Close(); e != nil && err == nil {
			err = errors.Join(err, apperror.NewTransport(fmt.Sprintf("%s: closing response body", r.Operation), e))
		}
	}()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewTransport(fmt.Sprintf("%s: reading response body", r.Operation), err)
	}

	span.SetAttributes(semconv.HTTPResponseStatusCode(res.StatusCode))
	c.log.Debug("bunny request",
		zap.String("operation", r.Operation),
		zap.String("method", r.Method),
		zap.String("host", u.Host),
		zap.String("path", u.Path),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Response{Code: res.StatusCode, Header: res.Header, Body: data}, nil
}

// Classify maps rsp through table. Failure tags carry no data; the body is
// only decoded for success tags, and a decoding failure is returned as an
// error carrying the HTTP status.
func Classify[T any](op string, rsp *Response, table result.Table, decode func(body []byte) (T, error)) (result.Result[T], error) {
	status := table.Classify(rsp.Code)
	if !status.Success() {
		return result.Failure[T](status, rsp.Code, ErrorMessage(rsp.Body)), nil
	}

	if decode == nil {
		var zero T
		return result.Success(status, rsp.Code, zero), nil
	}

	data, err := decode(rsp.Body)
	if err != nil {
		return result.Result[T]{}, apperror.NewDecode(rsp.Code, op, err)
	}
	return result.Success(status, rsp.Code, data), nil
}

// JSON decodes body into a T. An empty body yields the zero value.
func JSON[T any](body []byte) (T, error) {
	var v T
	if len(bytes.TrimSpace(body)) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, err
	}
	return v, nil
}

// EncodeJSON marshals a request body.
func EncodeJSON(op string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, apperror.NewEncode(op, err)
	}
	return data, nil
}

// ErrorMessage extracts the "Message" field BunnyCDN puts on error bodies.
func ErrorMessage(body []byte) string {
	var payload struct {
		Message      string `json:"Message"`
		LowerMessage string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.LowerMessage
}
