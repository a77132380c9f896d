package domain

import "time"

// ServiceTarget is a downstream service the gateway checks for health.
// Targets are built once from configuration and never modified.
type ServiceTarget struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// HealthCheckResult is the outcome of one health-check attempt.
//
// Status and Body are only set when the downstream answered; Error is only
// set when no response was obtained (timeout or transport failure).
type HealthCheckResult struct {
	Name   string  `json:"name"`
	OK     bool    `json:"ok"`
	Status *int    `json:"status,omitempty"`
	TimeMS int64   `json:"time_ms"`
	Body   *string `json:"body,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// AggregateHealthReport maps a service name to its check result.
type AggregateHealthReport map[string]HealthCheckResult

// Healthy returns how many services reported ok.
func (r AggregateHealthReport) Healthy() int {
	n := 0
	for _, res := range r {
		if res.OK {
			n++
		}
	}
	return n
}

// Snapshot is an aggregate report together with the time it was taken.
type Snapshot struct {
	Services  AggregateHealthReport `json:"services"`
	CheckedAt time.Time             `json:"checked_at"`
}

// IsSuccess reports whether status is in the 2xx range.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
