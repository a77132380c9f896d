package deps

import (
	"context"
	"time"

	"github.com/smash-proyect/bff/internal/auth"
	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/health"
	"github.com/smash-proyect/bff/internal/httpserver/mw"
	"github.com/smash-proyect/bff/internal/logger"
	"github.com/smash-proyect/bff/internal/proxy"
	"github.com/smash-proyect/bff/internal/snapshot"
)

// Pinger reports whether an optional backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedCIDRS []string         // IPs allowed to reach the operational endpoints
	TrustProxy   bool             // true if running behind a trusted reverse proxy
	RateLimit    mw.RateLimitConfig
	MaxBodyBytes int64 // limit for inbound request bodies

	Targets     []domain.ServiceTarget // health targets, immutable
	Aggregator  *health.Aggregator
	Exchange    *auth.Exchange
	Cookie      auth.CookieOptions
	EventLookup *proxy.Forwarder // unauthenticated, query service
	Reports     *proxy.Forwarder // authenticated, reporting service

	Snapshots      *snapshot.Recorder
	Redis          Pinger        // nil when Redis is disabled
	RefreshTrigger chan struct{} // manual health poll trigger
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
