package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/utils"
)

// TargetsFile is the on-disk shape of BFF_TARGETS_FILE.
//
//	targets:
//	  - name: seguridad
//	    url: ${SECURITY_URL}/health
type TargetsFile struct {
	Targets []domain.ServiceTarget `yaml:"targets"`
}

// DefaultTargets derives the health targets from the service base URLs.
func DefaultTargets(c *Config) []domain.ServiceTarget {
	return []domain.ServiceTarget{
		{Name: "seguridad", URL: utils.JoinURL(c.SecurityURL, "/health")},
		{Name: "consulta", URL: utils.JoinURL(c.ConsultaURL, "/health/")},
		{Name: "reportes", URL: utils.JoinURL(c.ReportesURL, "/health")},
		{Name: "auditoria", URL: utils.JoinURL(c.AuditoriaURL, "/health")},
		{Name: "notificaciones", URL: utils.JoinURL(c.NotificacionesURL, "/health")},
		{Name: "mailhog", URL: utils.JoinURL(c.MailhogURL, "/")},
	}
}

// ResolveTargets returns the targets file content when one is configured,
// the defaults otherwise. The result is validated either way.
func ResolveTargets(c *Config) ([]domain.ServiceTarget, error) {
	targets := DefaultTargets(c)
	if c.TargetsFile != "" {
		var err error
		if targets, err = LoadTargetsFile(c.TargetsFile); err != nil {
			return nil, err
		}
	}
	if err := ValidateTargets(targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// LoadTargetsFile reads a YAML targets file. ${VAR} references are expanded
// from the environment before parsing.
func LoadTargetsFile(path string) ([]domain.ServiceTarget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}

	var file TargetsFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &file); err != nil {
		return nil, fmt.Errorf("failed to parse targets yaml: %w", err)
	}

	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

// ValidateTargets requires unique, non-empty names and absolute http(s) URLs.
func ValidateTargets(targets []domain.ServiceTarget) error {
	seen := make(map[string]bool, len(targets))
	for i, t := range targets {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("target #%d has no name", i)
		}
		if seen[name] {
			return fmt.Errorf("duplicate target name %q", name)
		}
		seen[name] = true

		u, err := url.Parse(t.URL)
		if err != nil {
			return fmt.Errorf("target %q: invalid url: %w", name, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("target %q: url must be absolute http(s), got %q", name, t.URL)
		}
	}
	return nil
}
