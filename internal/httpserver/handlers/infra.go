package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/smash-proyect/bff/internal/httpserver/deps"
)

type componentStatus struct {
	OK        bool   `json:"ok"`
	Count     *int   `json:"count,omitempty"`
	LastCheck string `json:"last_check,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Impact    string `json:"impact,omitempty"`
	Error     string `json:"error,omitempty"`
}

type infraResponse struct {
	Status        string                     `json:"status"`
	UptimeSeconds float64                    `json:"uptime_seconds"`
	Version       string                     `json:"version,omitempty"`
	Commit        string                     `json:"commit,omitempty"`
	BuildDate     string                     `json:"build_date,omitempty"`
	GoVersion     string                     `json:"go_version,omitempty"`
	Components    map[string]componentStatus `json:"components"`
}

// Infra describes the gateway's own components. It does not call the
// downstream services; /api/health-all does that.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := d.Now()
		targets := len(d.Targets)

		components := map[string]componentStatus{
			"targets": {
				OK:    targets > 0,
				Count: &targets,
			},
			"snapshot": snapshotStatus(d, now),
			"redis":    checkRedis(r.Context(), d),
		}

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, d, http.StatusOK, infraResponse{
			Status:        determineStatus(components),
			UptimeSeconds: now.Sub(d.StartTime).Seconds(),
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
			Components:    components,
		})
	}
}

func determineStatus(components map[string]componentStatus) string {
	if t, ok := components["targets"]; ok && !t.OK {
		return "critical"
	}
	if r, ok := components["redis"]; ok && !r.OK && r.Mode != "disabled" {
		return "degraded"
	}
	return "ok"
}

func snapshotStatus(d deps.Deps, now time.Time) componentStatus {
	if d.Snapshots == nil {
		return componentStatus{OK: false, Mode: "disabled"}
	}
	snap, ok := d.Snapshots.Last()
	if !ok {
		return componentStatus{OK: true, LastCheck: "never"}
	}
	healthy := snap.Services.Healthy()
	return componentStatus{
		OK:        true,
		Count:     &healthy,
		LastCheck: snap.CheckedAt.Format(time.RFC3339),
		Mode:      "age " + d.Snapshots.Age(now).Truncate(time.Second).String(),
	}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.Redis == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "snapshots-memory-only",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Redis.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshots-memory-only",
			Error:  "unreachable",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "snapshots-shared",
	}
}
