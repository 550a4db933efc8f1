package skill

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-skillmd/internal/identity"
	"github.com/goliatone/go-skillmd/internal/logging"
	"github.com/goliatone/go-skillmd/internal/normalize"
	"github.com/goliatone/go-skillmd/internal/refdata"
	"github.com/goliatone/go-skillmd/internal/tokens"
	"github.com/goliatone/go-skillmd/internal/validation"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

var (
	ErrNameRequired = errors.New("skill name is required")
	ErrNoSources    = errors.New("skill has no sources")
)

// Service assembles skill documents: per-source normalization, concatenation,
// link validation, and the advisory token check. Failures in individual
// transforms degrade to diagnostics; only I/O and configuration problems
// surface as errors.
type Service struct {
	loader     interfaces.ContentLoader
	references *refdata.Loader
	normalizer interfaces.Normalizer
	links      interfaces.LinkChecker
	gate       *tokens.Gate
	logger     interfaces.Logger
}

// ServiceOption configures the assembly service.
type ServiceOption func(*Service)

// WithNormalizer overrides the default normalization engine.
func WithNormalizer(normalizer interfaces.Normalizer) ServiceOption {
	return func(s *Service) {
		if normalizer != nil {
			s.normalizer = normalizer
		}
	}
}

// WithReferenceLoader supplies the companion-file loader for symbolic tags.
func WithReferenceLoader(loader *refdata.Loader) ServiceOption {
	return func(s *Service) {
		if loader != nil {
			s.references = loader
		}
	}
}

// WithLinkChecker enables link validation on the assembled document.
func WithLinkChecker(checker interfaces.LinkChecker) ServiceOption {
	return func(s *Service) {
		if checker != nil {
			s.links = checker
		}
	}
}

// WithTokenCounter overrides the tokenizer behind the budget gate.
func WithTokenCounter(counter interfaces.TokenCounter) ServiceOption {
	return func(s *Service) {
		if counter != nil {
			s.gate = tokens.NewGate(counter)
		}
	}
}

// WithLogger overrides the no-op default logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs an assembly service around the given content loader.
func NewService(loader interfaces.ContentLoader, opts ...ServiceOption) *Service {
	service := &Service{
		loader:     loader,
		normalizer: normalize.NewEngine(),
		gate:       tokens.NewGate(nil),
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(service)
		}
	}
	return service
}

var _ interfaces.SkillBuilder = (*Service)(nil)

// Build assembles the requested skill document.
func (s *Service) Build(ctx context.Context, req interfaces.BuildRequest) (*interfaces.SkillDocument, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(req.Sources) == 0 {
		return nil, ErrNoSources
	}

	schema, err := validation.Compile(req.MetadataSchema)
	if err != nil {
		return nil, fmt.Errorf("metadata schema: %w", err)
	}

	var diags []interfaces.Diagnostic

	tables := interfaces.ReferenceTables{}
	if ref := strings.TrimSpace(req.ReferenceData); ref != "" {
		if s.references == nil {
			diags = append(diags, interfaces.Diagnostic{
				Source:  ref,
				Message: "reference data unavailable: no loader configured",
			})
		} else {
			loaded, refDiags := s.references.Load(ref)
			tables = loaded
			diags = append(diags, refDiags...)
		}
	}

	slugged := slugify(name)
	outputName := slugged + ".md"

	parts := make([]string, 0, len(req.Sources)+1)
	parts = append(parts, documentHeader(name, req.Description))

	paths := make([]string, 0, len(req.Sources))
	for _, spec := range req.Sources {
		doc, err := s.loader.Load(ctx, spec.Path)
		if err != nil {
			return nil, fmt.Errorf("load source %s: %w", spec.Path, err)
		}
		paths = append(paths, doc.Path)

		diags = append(diags, metadataDiagnostics(schema, doc)...)

		normalized, normDiags := s.normalizer.Normalize(doc.Raw, interfaces.NormalizeOptions{
			Source:          doc.Path,
			ExcludeSections: spec.ExcludeSections,
			References:      tables,
		})
		diags = append(diags, normDiags...)

		if strings.TrimSpace(normalized) == "" {
			continue
		}
		parts = append(parts, normalized)
	}

	assembled := strings.Join(parts, "\n\n")

	if s.links != nil {
		rewritten, linkDiags := s.links.Rewrite(ctx, assembled, outputName)
		assembled = rewritten
		diags = append(diags, linkDiags...)
	}

	count, overage := s.gate.Check(name, assembled, req.TokenCeiling)
	if overage != "" {
		diags = append(diags, interfaces.Diagnostic{Source: outputName, Message: overage})
		logging.WithFields(s.logger, map[string]any{
			"skill":   name,
			"tokens":  count,
			"ceiling": req.TokenCeiling,
		}).Warn("skill.tokens.over_budget")
	}

	if assembled != "" && !strings.HasSuffix(assembled, "\n") {
		assembled += "\n"
	}

	skillID := identity.SkillUUID(slugged)

	logging.WithFields(s.logger, map[string]any{
		"skill":       name,
		"skill_id":    skillID.String(),
		"sources":     len(paths),
		"tokens":      count,
		"diagnostics": len(diags),
	}).Info("skill.build.success")

	return &interfaces.SkillDocument{
		ID:          skillID,
		Name:        name,
		Slug:        slugged,
		Markdown:    assembled,
		TokenCount:  count,
		Sources:     paths,
		Diagnostics: diags,
	}, nil
}

// metadataDiagnostics validates peeked frontmatter against the compiled
// schema. Violations are advisory; the source still joins the build.
func metadataDiagnostics(schema *validation.Schema, doc *interfaces.SourceDocument) []interfaces.Diagnostic {
	err := schema.Validate(doc.Metadata)
	if err == nil {
		return nil
	}
	issues := validation.Issues(err)
	diags := make([]interfaces.Diagnostic, 0, len(issues))
	for _, issue := range issues {
		detail := issue.Message
		if issue.Location != "" {
			detail = issue.Location + ": " + issue.Message
		}
		diags = append(diags, interfaces.Diagnostic{
			Source:  doc.Path,
			Message: "frontmatter: " + detail,
		})
	}
	return diags
}

func documentHeader(name, description string) string {
	header := "# " + name
	if desc := strings.TrimSpace(description); desc != "" {
		header += "\n\n" + desc
	}
	return header
}

func slugify(value string) string {
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" {
		return strings.ToLower(strings.Join(strings.Fields(value), "-"))
	}
	return normalized
}
