package proxy

import (
	"context"
	"time"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/downstream"
	"github.com/smash-proyect/bff/internal/logger"
	"github.com/smash-proyect/bff/internal/utils"
)

const (
	// EventIDPath is the event lookup endpoint on the query service.
	EventIDPath = "/get-event-id/"
	// ReportsPath is the report creation endpoint on the reporting service.
	ReportsPath = "/reports"
)

// Forwarder relays a JSON request body to one backend endpoint.
//
// When Authenticated is set, the session token handed to Forward becomes an
// Authorization bearer header. Without a token the request goes out bare and
// the backend decides whether to reject it.
type Forwarder struct {
	Service       string
	URL           string
	Authenticated bool

	client  *downstream.Client
	timeout time.Duration
	logger  logger.Logger
}

// New builds a forwarder for baseURL + path.
func New(client *downstream.Client, service, baseURL, path string, authenticated bool, timeout time.Duration, log logger.Logger) *Forwarder {
	return &Forwarder{
		Service:       service,
		URL:           utils.JoinURL(baseURL, path),
		Authenticated: authenticated,
		client:        client,
		timeout:       timeout,
		logger:        log.With(logger.String("service", service)),
	}
}

// Forward posts body to the backend and returns its status and JSON body
// untouched. Errors are *domain.CallError values; callers must not leak
// their text to clients.
func (f *Forwarder) Forward(ctx context.Context, body []byte, token, requestID string) (*downstream.Response, error) {
	if !f.Authenticated {
		token = ""
	}

	resp, err := f.client.Post(ctx, f.Service, f.URL, body, downstream.Headers(requestID, token), f.timeout)
	if err != nil {
		return nil, err
	}

	if !domain.IsSuccess(resp.Status) {
		f.logger.Info("backend answered with an error, relaying",
			logger.String("kind", string(domain.KindUpstream)),
			logger.Int("status", resp.Status))
		return resp, nil
	}
	f.logger.Debug("proxied request",
		logger.Int("status", resp.Status),
		logger.Bool("bearer", token != ""))
	return resp, nil
}
