package skillmd

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	// SQLite backs the persistent probe cache when Config.Probe.CacheDSN is set.
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-skillmd/internal/links"
	"github.com/goliatone/go-skillmd/internal/logging"
	"github.com/goliatone/go-skillmd/internal/logging/console"
	"github.com/goliatone/go-skillmd/internal/logging/gologger"
	"github.com/goliatone/go-skillmd/internal/normalize"
	"github.com/goliatone/go-skillmd/internal/refdata"
	"github.com/goliatone/go-skillmd/internal/skill"
	"github.com/goliatone/go-skillmd/internal/tokens"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

// Diagnostic exports the advisory notice type produced by the pipeline.
type Diagnostic = interfaces.Diagnostic

// Reference exports the titled-link entry of the reference tables.
type Reference = interfaces.Reference

// ReferenceTables exports the lookup tables backing symbolic tag resolution.
type ReferenceTables = interfaces.ReferenceTables

// NormalizeOptions exports the per-run options for the normalization engine.
type NormalizeOptions = interfaces.NormalizeOptions

// SourceSpec exports the per-source build selector.
type SourceSpec = interfaces.SourceSpec

// BuildRequest exports the skill assembly request.
type BuildRequest = interfaces.BuildRequest

// SourceDocument exports the loaded dialect document DTO.
type SourceDocument = interfaces.SourceDocument

// SkillDocument exports the assembled skill document DTO.
type SkillDocument = interfaces.SkillDocument

// Normalizer exports the engine contract.
type Normalizer = interfaces.Normalizer

// LinkChecker exports the link validation contract.
type LinkChecker = interfaces.LinkChecker

// ContentLoader exports the source discovery contract.
type ContentLoader = interfaces.ContentLoader

// SkillBuilder exports the assembly contract.
type SkillBuilder = interfaces.SkillBuilder

// ProbeStore exports the probe cache contract so hosts can supply their own.
type ProbeStore = links.Store

// LinkProbe exports the probe cache record.
type LinkProbe = links.LinkProbe

// Service is the top-level runtime facade: it bundles the normalization
// engine, the reference-table loader, link validation, the token gate, and
// the skill assembler behind one configured entry point.
type Service struct {
	cfg      Config
	provider interfaces.LoggerProvider
	content  fs.FS

	engine      interfaces.Normalizer
	references  *refdata.Loader
	checker     interfaces.LinkChecker
	prober      links.Prober
	store       links.Store
	probeDB     *bun.DB
	ownsProbeDB bool
	counter     interfaces.TokenCounter

	loader  interfaces.ContentLoader
	builder interfaces.SkillBuilder
	writer  *skill.Writer
}

// Option mutates the service before it is finalised.
type Option func(*Service)

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Service) {
		if provider != nil {
			s.provider = provider
		}
	}
}

// WithContentFS overrides the content filesystem derived from Config.ContentDir.
func WithContentFS(fsys fs.FS) Option {
	return func(s *Service) {
		if fsys != nil {
			s.content = fsys
		}
	}
}

// WithNormalizer overrides the default normalization engine.
func WithNormalizer(normalizer interfaces.Normalizer) Option {
	return func(s *Service) {
		if normalizer != nil {
			s.engine = normalizer
		}
	}
}

// WithLinkChecker overrides the validator assembled from Config.Docs and
// Config.Probe.
func WithLinkChecker(checker interfaces.LinkChecker) Option {
	return func(s *Service) {
		if checker != nil {
			s.checker = checker
		}
	}
}

// WithProber overrides the HTTP prober used by the assembled link validator.
func WithProber(prober links.Prober) Option {
	return func(s *Service) {
		if prober != nil {
			s.prober = prober
		}
	}
}

// WithProbeStore supplies a probe cache, taking precedence over the SQLite
// store opened from Config.Probe.CacheDSN.
func WithProbeStore(store links.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithProbeDB supplies an existing Bun handle for the probe cache instead of
// opening Config.Probe.CacheDSN.
func WithProbeDB(db *bun.DB) Option {
	return func(s *Service) {
		if db != nil {
			s.probeDB = db
		}
	}
}

// WithTokenCounter overrides the tokenizer behind the budget gate.
func WithTokenCounter(counter interfaces.TokenCounter) Option {
	return func(s *Service) {
		if counter != nil {
			s.counter = counter
		}
	}
}

// New constructs the skill normalization service from the provided
// configuration and optional overrides.
func New(cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.provider == nil && cfg.Features.Logger {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		s.provider = provider
	}

	if s.content == nil {
		s.content = os.DirFS(cfg.ContentDir)
	}

	if s.engine == nil {
		s.engine = normalize.NewEngine(
			normalize.WithLogger(logging.NormalizeLogger(s.provider)),
		)
	}
	if s.references == nil {
		s.references = refdata.NewLoader(s.content,
			refdata.WithLogger(logging.RefdataLogger(s.provider)),
		)
	}
	if s.counter == nil {
		s.counter = tokens.NewCounter()
	}

	if s.checker == nil && cfg.Features.Links {
		checker, err := s.buildLinkChecker(context.Background())
		if err != nil {
			return nil, err
		}
		s.checker = checker
	}

	s.loader = skill.NewLoader(s.content,
		skill.WithLoaderLogger(logging.SkillLogger(s.provider)),
	)

	builderOpts := []skill.ServiceOption{
		skill.WithNormalizer(s.engine),
		skill.WithReferenceLoader(s.references),
		skill.WithTokenCounter(s.counter),
		skill.WithLogger(logging.SkillLogger(s.provider)),
	}
	if s.checker != nil {
		builderOpts = append(builderOpts, skill.WithLinkChecker(s.checker))
	}
	s.builder = skill.NewService(s.loader, builderOpts...)

	s.writer = skill.NewWriter(cfg.OutputDir,
		skill.WithWriterLogger(logging.SkillLogger(s.provider)),
	)

	return s, nil
}

// buildLinkChecker assembles the validator, opening the persistent probe
// cache when the feature is enabled and no store was supplied.
func (s *Service) buildLinkChecker(ctx context.Context) (interfaces.LinkChecker, error) {
	store := s.store
	if store == nil && s.cfg.Features.ProbeCache {
		db := s.probeDB
		if db == nil {
			opened, err := openProbeDB(s.cfg.Probe.CacheDSN)
			if err != nil {
				return nil, err
			}
			db = opened
			s.probeDB = opened
			s.ownsProbeDB = true
		}
		if _, err := db.NewCreateTable().Model((*links.LinkProbe)(nil)).IfNotExists().Exec(ctx); err != nil {
			return nil, fmt.Errorf("prepare probe cache: %w", err)
		}
		store = links.NewBunStore(db)
		s.store = store
	}

	validatorOpts := []links.ValidatorOption{
		links.WithLogger(logging.LinksLogger(s.provider)),
	}
	if s.prober != nil {
		validatorOpts = append(validatorOpts, links.WithProber(s.prober))
	}
	if store != nil {
		validatorOpts = append(validatorOpts, links.WithStore(store))
	}

	return links.NewValidator(links.Config{
		DocsHost:     s.cfg.Docs.Host,
		PathPrefixes: s.cfg.Docs.PathPrefixes,
		Timeout:      s.cfg.Probe.Timeout,
	}, validatorOpts...), nil
}

// openProbeDB opens the SQLite database backing the persistent probe cache.
func openProbeDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open probe cache %s: %w", dsn, err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}

// NormalizeText runs the engine over raw dialect text. When the run options
// carry no reference tables and the configuration names a companion file,
// the tables are loaded from it first.
func (s *Service) NormalizeText(text string, opts NormalizeOptions) (string, []Diagnostic) {
	var diags []Diagnostic
	if opts.References.Empty() {
		if path := strings.TrimSpace(s.cfg.Refdata.Path); path != "" {
			tables, refDiags := s.references.Load(path)
			opts.References = tables
			diags = append(diags, refDiags...)
		}
	}
	normalized, normDiags := s.engine.Normalize(text, opts)
	return normalized, append(diags, normDiags...)
}

// NormalizeDocument loads one dialect document from the content filesystem
// and normalizes it. The document path labels any diagnostics.
func (s *Service) NormalizeDocument(ctx context.Context, path string, excludeSections ...string) (string, []Diagnostic, error) {
	doc, err := s.loader.Load(ctx, path)
	if err != nil {
		return "", nil, err
	}
	normalized, diags := s.NormalizeText(doc.Raw, NormalizeOptions{
		Source:          doc.Path,
		ExcludeSections: excludeSections,
	})
	return normalized, diags, nil
}

// BuildSkill assembles a skill document. Empty request fields fall back to
// the configured defaults for the token ceiling and reference-data path.
func (s *Service) BuildSkill(ctx context.Context, req BuildRequest) (*SkillDocument, error) {
	if req.TokenCeiling == 0 {
		req.TokenCeiling = s.cfg.Tokens.Ceiling
	}
	if strings.TrimSpace(req.ReferenceData) == "" {
		req.ReferenceData = s.cfg.Refdata.Path
	}
	return s.builder.Build(ctx, req)
}

// WriteSkill persists an assembled document and returns the path written.
func (s *Service) WriteSkill(doc *SkillDocument, outputPath string) (string, error) {
	return s.writer.Write(doc, outputPath)
}

// Close releases the probe cache database when this service opened it.
// Injected handles stay open; their owner closes them.
func (s *Service) Close() error {
	if s.ownsProbeDB && s.probeDB != nil {
		return s.probeDB.Close()
	}
	return nil
}

// Config returns the validated configuration the service was built with.
func (s *Service) Config() Config {
	return s.cfg
}

// Content exposes the content filesystem manifests and sources load from.
func (s *Service) Content() fs.FS {
	return s.content
}

// Normalizer returns the configured normalization engine.
func (s *Service) Normalizer() interfaces.Normalizer {
	return s.engine
}

// Links returns the configured link checker, nil when the feature is off.
func (s *Service) Links() interfaces.LinkChecker {
	return s.checker
}

// References returns the companion-file loader.
func (s *Service) References() *refdata.Loader {
	return s.references
}

// Loader returns the configured content loader.
func (s *Service) Loader() interfaces.ContentLoader {
	return s.loader
}

// Builder returns the configured skill assembler.
func (s *Service) Builder() interfaces.SkillBuilder {
	return s.builder
}

// Writer returns the configured output writer.
func (s *Service) Writer() *skill.Writer {
	return s.writer
}

// TokenCounter returns the tokenizer behind the budget gate.
func (s *Service) TokenCounter() interfaces.TokenCounter {
	return s.counter
}

// LoggerProvider exposes the logging provider for host integrations.
func (s *Service) LoggerProvider() interfaces.LoggerProvider {
	return s.provider
}
