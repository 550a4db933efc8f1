package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrContentDirRequired indicates the content root was left empty.
var ErrContentDirRequired = errors.New("skillmd config: content directory is required")

// ErrDocsHostRequired ensures link checking always has a host to match against.
var ErrDocsHostRequired = errors.New("skillmd config: docs host is required when link checking is enabled")

// ErrProbeCacheRequiresLinks keeps the probe cache behind the links feature flag.
var ErrProbeCacheRequiresLinks = errors.New("skillmd config: probe cache feature requires link checking to be enabled")

// ErrProbeCacheDSNRequired indicates the probe cache was enabled without a database.
var ErrProbeCacheDSNRequired = errors.New("skillmd config: probe cache DSN is required when the probe cache is enabled")

var ErrProbeTimeoutInvalid = errors.New("skillmd config: probe timeout must be zero or positive")
var ErrTokenCeilingInvalid = errors.New("skillmd config: token ceiling must be zero or positive")
var ErrLoggingProviderRequired = errors.New("skillmd config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("skillmd config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("skillmd config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("skillmd config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the skill
// normalization module. Fields intentionally use simple types so host
// applications can extend them later; nothing here reads the environment.
type Config struct {
	// ContentDir is the filesystem root dialect sources and manifests are
	// loaded from.
	ContentDir string
	// OutputDir receives assembled skill documents.
	OutputDir string
	Docs      DocsConfig
	Probe     ProbeConfig
	Tokens    TokenConfig
	Refdata   RefdataConfig
	Commands  CommandsConfig
	Logging   LoggingConfig
	Features  Features
}

// DocsConfig scopes link validation to the documentation site.
type DocsConfig struct {
	// Host is the documentation hostname links must match to be probed.
	Host string
	// PathPrefixes restricts probing to links under these path prefixes.
	// Empty falls back to the /docs/ and /developer/ defaults.
	PathPrefixes []string
}

// ProbeConfig captures reachability-probe behaviour.
type ProbeConfig struct {
	// Timeout bounds each probe; zero selects the built-in default.
	Timeout time.Duration
	// CacheDSN is the SQLite DSN backing the persistent probe cache.
	CacheDSN string
}

// TokenConfig captures the advisory token budget.
type TokenConfig struct {
	// Ceiling caps the assembled document; zero disables the gate.
	Ceiling int
	// Encoding names the tokenizer profile used for measurement.
	Encoding string
}

// RefdataConfig locates the companion file backing reference resolution.
type RefdataConfig struct {
	// Path is relative to the content root; empty leaves references unresolved.
	Path string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	// Timeout overrides the default per-command execution deadline.
	Timeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Links      bool
	ProbeCache bool
	Logger     bool
}

// DefaultConfig returns opinionated defaults for a local skill build.
func DefaultConfig() Config {
	return Config{
		ContentDir: "content",
		OutputDir:  ".",
		Docs: DocsConfig{
			PathPrefixes: []string{"/docs/", "/developer/"},
		},
		Probe: ProbeConfig{
			Timeout: 3 * time.Second,
		},
		Tokens: TokenConfig{
			Encoding: "cl100k_base",
		},
		Refdata:  RefdataConfig{},
		Commands: CommandsConfig{},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Features.Links && strings.TrimSpace(cfg.Docs.Host) == "" {
		return ErrDocsHostRequired
	}
	if cfg.Features.ProbeCache && !cfg.Features.Links {
		return ErrProbeCacheRequiresLinks
	}
	if cfg.Features.ProbeCache && strings.TrimSpace(cfg.Probe.CacheDSN) == "" {
		return ErrProbeCacheDSNRequired
	}
	if cfg.Probe.Timeout < 0 {
		return ErrProbeTimeoutInvalid
	}
	if cfg.Tokens.Ceiling < 0 {
		return ErrTokenCeilingInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
