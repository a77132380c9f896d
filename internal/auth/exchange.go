package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/downstream"
	"github.com/smash-proyect/bff/internal/logger"
	"github.com/smash-proyect/bff/internal/utils"
)

const (
	// LoginPath is appended to the security service base URL.
	LoginPath = "/api/login"
	// TokenField is the field of the login payload holding the token.
	TokenField = "access_token"

	serviceName = "seguridad"
)

// Outcome is the result of a credential exchange that reached the backend.
// Token is set only on success; otherwise Status and Body must be relayed.
type Outcome struct {
	Token  string
	Status int
	Body   []byte
}

// Exchange trades client credentials for a backend token.
type Exchange struct {
	client   *downstream.Client
	loginURL string
	timeout  time.Duration
	logger   logger.Logger
}

// NewExchange targets securityURL + LoginPath.
func NewExchange(client *downstream.Client, securityURL string, timeout time.Duration, log logger.Logger) *Exchange {
	return &Exchange{
		client:   client,
		loginURL: utils.JoinURL(securityURL, LoginPath),
		timeout:  timeout,
		logger:   log.With(logger.String("service", serviceName)),
	}
}

// Login forwards credentials verbatim. A returned error is always a
// *domain.CallError (timeout, transport or malformed answer).
func (e *Exchange) Login(ctx context.Context, credentials []byte, requestID string) (Outcome, error) {
	resp, err := e.client.Post(ctx, serviceName, e.loginURL, credentials, downstream.Headers(requestID, ""), e.timeout)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Status: resp.Status, Body: resp.Body}
	if !domain.IsSuccess(resp.Status) {
		e.logger.Info("login rejected by security service",
			logger.String("kind", string(domain.KindUpstream)),
			logger.Int("status", resp.Status))
		return out, nil
	}

	out.Token = extractToken(resp.Body)
	if out.Token == "" {
		e.logger.Warn("security service answered without a token",
			logger.Int("status", resp.Status))
	}
	return out, nil
}

// extractToken reads TokenField. Any set scalar counts as a token and is
// used in its textual form: a non-empty string, a non-zero number or true.
// Null, false, zero, objects and arrays count as missing.
func extractToken(body []byte) string {
	var payload map[string]any
	dec := utils.JSON.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return ""
	}

	switch v := payload[TokenField].(type) {
	case string:
		return v
	case json.Number:
		if f, err := v.Float64(); err != nil || f == 0 {
			return ""
		}
		return v.String()
	case bool:
		if v {
			return fmt.Sprint(v)
		}
	}
	return ""
}
