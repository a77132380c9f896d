package downstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imroc/req/v3"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/logger"
	"github.com/smash-proyect/bff/internal/utils"
)

// Response is what a downstream service answered.
type Response struct {
	Status int
	Body   []byte
	// BodyRead is false when the status arrived but the body could not be read.
	BodyRead bool
}

// Options configures the shared outbound HTTP client.
type Options struct {
	UserAgent string
	Debug     bool // log request/response summaries through the gateway logger
}

// NewHTTPClient builds the req client injected into every component that
// talks to a downstream service. It never retries.
func NewHTTPClient(opts Options, log logger.Logger) *req.Client {
	c := req.C().
		SetLogger(log).
		SetCommonRetryCount(0)
	if opts.UserAgent != "" {
		c.SetUserAgent(opts.UserAgent)
	}
	if opts.Debug {
		c.EnableDebugLog()
	}
	return c
}

// Client issues single, bounded calls to downstream services.
type Client struct {
	http   *req.Client
	logger logger.Logger
}

// New wraps an HTTP client. A nil client gets a default one.
func New(httpClient *req.Client, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(Options{}, log)
	}
	return &Client{http: httpClient, logger: log}
}

// Call performs GET target.URL bounded by timeout.
//
// A deadline hit before any response yields a KindTimeout error. Other
// failures before a response yield KindTransport. Once a status is known the
// call succeeds, even if the body turns out to be unreadable.
func (c *Client) Call(ctx context.Context, target domain.ServiceTarget, timeout time.Duration) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		Get(target.URL)
	if resp == nil || resp.Response == nil {
		return nil, classify(ctx, target.Name, err)
	}

	out := &Response{Status: resp.StatusCode}
	if err != nil {
		c.logger.Debug("downstream body unreadable",
			logger.String("service", target.Name),
			logger.Int("status", resp.StatusCode),
			logger.Error(err))
		return out, nil
	}
	out.Body = resp.Bytes()
	out.BodyRead = true
	return out, nil
}

// Check runs Call and folds every outcome into a HealthCheckResult.
func (c *Client) Check(ctx context.Context, target domain.ServiceTarget, timeout time.Duration) domain.HealthCheckResult {
	start := time.Now()
	resp, err := c.Call(ctx, target, timeout)
	res := domain.HealthCheckResult{
		Name:   target.Name,
		TimeMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		res.Error = err.Error()
		return res
	}

	status := resp.Status
	res.Status = &status
	res.OK = domain.IsSuccess(status)
	if resp.BodyRead {
		body := string(resp.Body)
		res.Body = &body
	}
	return res
}

// Post sends a JSON body to url and expects a JSON answer. A response whose
// body is empty or not JSON is treated as a transport failure.
func (c *Client) Post(ctx context.Context, service, url string, body []byte, headers map[string]string, timeout time.Duration) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBodyBytes(body)
	if len(headers) > 0 {
		r.SetHeaders(headers)
	}

	resp, err := r.Post(url)
	if err != nil {
		return nil, classify(ctx, service, err)
	}

	payload := resp.Bytes()
	if !utils.ValidJSON(payload) {
		return nil, &domain.CallError{
			Kind:    domain.KindTransport,
			Service: service,
			Err:     fmt.Errorf("%w: status %d, %d bytes", domain.ErrMalformedResponse, resp.StatusCode, len(payload)),
		}
	}

	return &Response{
		Status:   resp.StatusCode,
		Body:     payload,
		BodyRead: true,
	}, nil
}

// classify turns a failure that produced no response into a CallError.
// Expiry of the call deadline is a timeout; anything else a transport error.
func classify(ctx context.Context, service string, err error) *domain.CallError {
	if err == nil {
		err = errors.New("no response received")
	}
	kind := domain.KindTransport
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		kind = domain.KindTimeout
	}
	return &domain.CallError{Kind: kind, Service: service, Err: err}
}

// Headers builds the extra request headers for a forwarded call: the
// inbound request id and, when present, the bearer token.
func Headers(requestID, token string) map[string]string {
	h := make(map[string]string, 2)
	if requestID != "" {
		h["X-Request-ID"] = requestID
	}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}
