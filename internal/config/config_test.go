package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/smash-proyect/bff/internal/domain"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into the defaults under test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SECURITY_URL", "MS_CONSULTA_URL", "MS_REPORTES_URL",
		"MS_AUDITORIA_URL", "MS_NOTIFICACIONES_URL", "MAILHOG_URL",
		"BFF_TARGETS_FILE", "BFF_REQUEST_TIMEOUT", "BFF_UPSTREAM_TIMEOUT",
		"BFF_MAX_BODY_BYTES", "BFF_RATE_LIMIT_RPS", "BFF_HEALTH_POLL_INTERVAL",
		"BFF_REDIS_ADDR", "BFF_CORS_ORIGINS", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.SecurityURL != "http://ms_seguridad:8000" {
		t.Errorf("SecurityURL = %q", cfg.SecurityURL)
	}
	if cfg.ConsultaURL != "http://ms_consulta:8001" {
		t.Errorf("ConsultaURL = %q", cfg.ConsultaURL)
	}
	if cfg.ReportesURL != "http://ms_reportes:5002" {
		t.Errorf("ReportesURL = %q", cfg.ReportesURL)
	}
	if len(cfg.Targets) != 6 {
		t.Fatalf("expected 6 default targets, got %d", len(cfg.Targets))
	}
	if cfg.RedisEnabled() {
		t.Error("redis should be disabled without BFF_REDIS_ADDR")
	}
	if cfg.RateLimitRPS != 0 || cfg.HealthPollInterval != 0 {
		t.Errorf("rate limit and poller should default to disabled, got %v / %v",
			cfg.RateLimitRPS, cfg.HealthPollInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SECURITY_URL", "http://auth.local:7000")
	t.Setenv("BFF_CORS_ORIGINS", `"http://localhost:5173", http://app.local`)
	t.Setenv("BFF_REDIS_ADDR", "redis:6379")

	cfg := Load()

	if cfg.ListenPort != ":9090" {
		t.Errorf("ListenPort = %q, want :9090", cfg.ListenPort)
	}
	if cfg.Targets[0].URL != "http://auth.local:7000/health" {
		t.Errorf("seguridad target = %q", cfg.Targets[0].URL)
	}
	want := []string{"http://localhost:5173", "http://app.local"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
	if !cfg.RedisEnabled() {
		t.Error("redis should be enabled")
	}
}

func TestLoadPanicsOnShortRequestTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("BFF_REQUEST_TIMEOUT", "2s")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Load() should have panicked")
		}
		if !strings.Contains(r.(string), "BFF_REQUEST_TIMEOUT") {
			t.Errorf("unexpected panic message: %v", r)
		}
	}()
	Load()
}

func TestLoadPanicsOnBadTargetsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BFF_TARGETS_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	defer func() {
		if recover() == nil {
			t.Fatal("Load() should have panicked")
		}
	}()
	Load()
}

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8080", ":8080"},
		{" 8080 ", ":8080"},
		{":9000", ":9000"},
		{"127.0.0.1:9000", "127.0.0.1:9000"},
	}
	for _, tt := range tests {
		if got := listenAddr(tt.in); got != tt.want {
			t.Errorf("listenAddr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "30s", def: 10 * time.Second, expected: 30 * time.Second},
		{name: "invalid duration falls back", value: "soon", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "unset uses default", value: "", def: 5 * time.Minute, expected: 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := mustDuration("TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true", value: "true", def: false, expected: true},
		{name: "numeric false", value: "0", def: true, expected: false},
		{name: "invalid falls back", value: "maybe", def: true, expected: true},
		{name: "unset uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := mustBool("TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetenvNumbers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty-two")
	t.Setenv("TEST_FLOAT", "2.5")

	if got := getenvInt("TEST_INT", 1); got != 42 {
		t.Errorf("getenvInt() = %d, want 42", got)
	}
	if got := getenvInt("TEST_INT_BAD", 7); got != 7 {
		t.Errorf("getenvInt() = %d, want fallback 7", got)
	}
	if got := getenvFloat("TEST_FLOAT", 0); got != 2.5 {
		t.Errorf("getenvFloat() = %v, want 2.5", got)
	}
}

func TestParseAllowedIPs(t *testing.T) {
	if got := parseAllowedIPs(""); got != nil {
		t.Errorf("parseAllowedIPs(\"\") = %v, want nil", got)
	}
	got := parseAllowedIPs(" 10.0.0.0/8, ,'192.168.1.10' ")
	want := []string{"10.0.0.0/8", "192.168.1.10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseAllowedIPs() = %v, want %v", got, want)
	}
}

func TestDefaultTargets(t *testing.T) {
	cfg := &Config{
		SecurityURL:       "http://ms_seguridad:8000/",
		ConsultaURL:       "http://ms_consulta:8001",
		ReportesURL:       "http://ms_reportes:5002",
		AuditoriaURL:      "http://ms_auditoria:5003",
		NotificacionesURL: "http://ms_notificaciones:5003",
		MailhogURL:        "http://mailhog:8025",
	}

	want := []domain.ServiceTarget{
		{Name: "seguridad", URL: "http://ms_seguridad:8000/health"},
		{Name: "consulta", URL: "http://ms_consulta:8001/health/"},
		{Name: "reportes", URL: "http://ms_reportes:5002/health"},
		{Name: "auditoria", URL: "http://ms_auditoria:5003/health"},
		{Name: "notificaciones", URL: "http://ms_notificaciones:5003/health"},
		{Name: "mailhog", URL: "http://mailhog:8025/"},
	}
	if got := DefaultTargets(cfg); !reflect.DeepEqual(got, want) {
		t.Errorf("DefaultTargets() = %+v, want %+v", got, want)
	}
}

func TestLoadTargetsFile(t *testing.T) {
	t.Setenv("TEST_SECURITY", "http://auth.internal:8000")

	path := filepath.Join(t.TempDir(), "targets.yaml")
	content := `targets:
  - name: seguridad
    url: ${TEST_SECURITY}/health
  - name: billing
    url: http://billing:9000/healthz
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write targets file: %v", err)
	}

	targets, err := LoadTargetsFile(path)
	if err != nil {
		t.Fatalf("LoadTargetsFile() error = %v", err)
	}
	want := []domain.ServiceTarget{
		{Name: "seguridad", URL: "http://auth.internal:8000/health"},
		{Name: "billing", URL: "http://billing:9000/healthz"},
	}
	if !reflect.DeepEqual(targets, want) {
		t.Errorf("LoadTargetsFile() = %+v, want %+v", targets, want)
	}
}

func TestLoadTargetsFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	if err := os.WriteFile(path, []byte("targets: []\n"), 0o600); err != nil {
		t.Fatalf("failed to write targets file: %v", err)
	}
	if _, err := LoadTargetsFile(path); err == nil {
		t.Error("expected an error for an empty targets list")
	}
}

func TestValidateTargets(t *testing.T) {
	tests := []struct {
		name    string
		targets []domain.ServiceTarget
		wantErr bool
	}{
		{
			name:    "valid",
			targets: []domain.ServiceTarget{{Name: "a", URL: "http://a:1/health"}, {Name: "b", URL: "https://b/"}},
		},
		{
			name:    "empty name",
			targets: []domain.ServiceTarget{{Name: " ", URL: "http://a/"}},
			wantErr: true,
		},
		{
			name:    "duplicate name",
			targets: []domain.ServiceTarget{{Name: "a", URL: "http://a/"}, {Name: "a", URL: "http://b/"}},
			wantErr: true,
		},
		{
			name:    "relative url",
			targets: []domain.ServiceTarget{{Name: "a", URL: "/health"}},
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			targets: []domain.ServiceTarget{{Name: "a", URL: "ftp://a/health"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTargets(tt.targets)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTargets() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
