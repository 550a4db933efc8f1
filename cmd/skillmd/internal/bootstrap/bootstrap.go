package bootstrap

import (
	"fmt"
	"strings"
	"time"

	skillmd "github.com/goliatone/go-skillmd"
	"github.com/goliatone/go-skillmd/internal/logging"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

// Options captures configuration for skillmd CLI bootstraps.
type Options struct {
	ContentDir     string
	OutputDir      string
	RefData        string
	DocsHost       string
	PathPrefixes   []string
	ProbeTimeout   time.Duration
	CacheDSN       string
	TokenCeiling   int
	CommandTimeout time.Duration
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the skillmd service and the configured CLI logger.
type Module struct {
	Service *skillmd.Service
	Logger  interfaces.Logger
}

// BuildModule constructs a skillmd service configured for CLI operations.
// Supplying a docs host enables link checking; a cache DSN on top of that
// enables the persistent probe cache.
func BuildModule(opts Options) (*Module, error) {
	cfg := skillmd.DefaultConfig()

	cfg.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.ContentDir == "" {
		cfg.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.OutputDir = trimmed
	}
	cfg.Refdata.Path = strings.TrimSpace(opts.RefData)

	if host := strings.TrimSpace(opts.DocsHost); host != "" {
		cfg.Features.Links = true
		cfg.Docs.Host = host
		if len(opts.PathPrefixes) > 0 {
			cfg.Docs.PathPrefixes = cloneStrings(opts.PathPrefixes)
		}
		if dsn := strings.TrimSpace(opts.CacheDSN); dsn != "" {
			cfg.Features.ProbeCache = true
			cfg.Probe.CacheDSN = dsn
		}
	}
	if opts.ProbeTimeout > 0 {
		cfg.Probe.Timeout = opts.ProbeTimeout
	}
	if opts.TokenCeiling > 0 {
		cfg.Tokens.Ceiling = opts.TokenCeiling
	}
	if opts.CommandTimeout > 0 {
		cfg.Commands.Timeout = opts.CommandTimeout
	}

	serviceOpts := []skillmd.Option{}
	if opts.LoggerProvider != nil {
		serviceOpts = append(serviceOpts, skillmd.WithLoggerProvider(opts.LoggerProvider))
	} else {
		cfg.Features.Logger = true
		if level := strings.TrimSpace(opts.LogLevel); level != "" {
			cfg.Logging.Level = level
		}
	}

	service, err := skillmd.New(cfg, serviceOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise skillmd service: %w", err)
	}

	logger := logging.SkillLogger(service.LoggerProvider())

	return &Module{
		Service: service,
		Logger:  logger,
	}, nil
}

// SplitList parses a comma separated value list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
