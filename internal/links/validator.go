package links

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-skillmd/internal/identity"
	"github.com/goliatone/go-skillmd/internal/logging"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

var markdownLink = regexp.MustCompile(`\[([^\]]*)\]\(([^\)]*)\)`)

// Config controls which links are probed and how.
type Config struct {
	// DocsHost is the documentation hostname a link must match to be
	// checked. Empty disables the pass entirely.
	DocsHost string
	// PathPrefixes restricts checking to links under these path prefixes.
	PathPrefixes []string
	// Timeout bounds each reachability probe.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if len(c.PathPrefixes) == 0 {
		c.PathPrefixes = []string{"/docs/", "/developer/"}
	}
	if c.Timeout <= 0 {
		c.Timeout = 3 * time.Second
	}
	return c
}

// Validator finds documentation links, probes their canonical form, and
// rewrites or degrades them. Links are processed in document order, each
// probe awaited before the next, so diagnostics attribute cleanly to source
// lines.
type Validator struct {
	cfg    Config
	prober Prober
	store  Store
	logger interfaces.Logger
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithProber overrides the default HTTP prober.
func WithProber(prober Prober) ValidatorOption {
	return func(v *Validator) {
		if prober != nil {
			v.prober = prober
		}
	}
}

// WithStore wires a probe cache. The validator works without one; every
// check then hits the network.
func WithStore(store Store) ValidatorOption {
	return func(v *Validator) {
		if store != nil {
			v.store = store
		}
	}
}

// WithLogger overrides the no-op logger.
func WithLogger(logger interfaces.Logger) ValidatorOption {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewValidator constructs a link validator.
func NewValidator(cfg Config, opts ...ValidatorOption) *Validator {
	validator := &Validator{
		cfg:    cfg.withDefaults(),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(validator)
	}
	if validator.prober == nil {
		validator.prober = NewHTTPProber(validator.cfg.Timeout)
	}
	return validator
}

var _ interfaces.LinkChecker = (*Validator)(nil)

// Rewrite checks every documentation link in text. Reachable links are
// rewritten to their canonical form; unreachable ones are replaced with their
// plain link text and reported with the source label and 1-based line number.
// Links outside the configured host and prefixes are left untouched with no
// network call, as are fenced lines.
func (v *Validator) Rewrite(ctx context.Context, text, source string) (string, []interfaces.Diagnostic) {
	if v.cfg.DocsHost == "" {
		return text, nil
	}

	lines := strings.Split(text, "\n")
	var diags []interfaces.Diagnostic
	inFence := false

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence || !strings.Contains(line, "](") {
			continue
		}
		lineNo := i + 1
		lines[i] = markdownLink.ReplaceAllStringFunc(line, func(match string) string {
			parts := markdownLink.FindStringSubmatch(match)
			label, target := parts[1], parts[2]

			canonical, ok := v.canonicalize(target)
			if !ok {
				return match
			}
			if v.reachable(ctx, canonical) {
				return "[" + label + "](" + canonical + ")"
			}
			diags = append(diags, interfaces.Diagnostic{
				Source:  source,
				Line:    lineNo,
				Message: fmt.Sprintf("unreachable link %s degraded to text", canonical),
			})
			return label
		})
	}
	return strings.Join(lines, "\n"), diags
}

// canonicalize reports whether target is a checkable documentation link and
// derives its canonical form: trailing slash stripped, .md appended when not
// already present.
func (v *Validator) canonicalize(target string) (string, bool) {
	parsed, err := url.Parse(target)
	if err != nil {
		return "", false
	}
	if parsed.Host != v.cfg.DocsHost {
		return "", false
	}
	matched := false
	for _, prefix := range v.cfg.PathPrefixes {
		if strings.HasPrefix(parsed.Path, prefix) {
			matched = true
			break
		}
	}
	if !matched {
		return "", false
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	if !strings.HasSuffix(parsed.Path, ".md") {
		parsed.Path += ".md"
	}
	return parsed.String(), true
}

func (v *Validator) reachable(ctx context.Context, canonical string) bool {
	if v.store != nil {
		if record, err := v.store.Get(ctx, canonical); err == nil && record != nil {
			return record.Reachable
		}
	}

	status, err := v.prober.Probe(ctx, canonical)
	reachable := err == nil && status >= 200 && status < 300
	if err != nil {
		logging.WithFields(v.logger, map[string]any{
			"url":   canonical,
			"error": err,
		}).Debug("links.probe.failed")
	}

	if v.store != nil {
		record := &LinkProbe{
			ID:           identity.LinkProbeUUID(canonical),
			CanonicalURL: canonical,
			Reachable:    reachable,
			StatusCode:   status,
			CheckedAt:    time.Now(),
		}
		if _, err := v.store.Put(ctx, record); err != nil {
			logging.WithFields(v.logger, map[string]any{
				"url":   canonical,
				"error": err,
			}).Warn("links.store.put_failed")
		}
	}
	return reachable
}
