package normalize

import (
	"github.com/goliatone/go-skillmd/internal/logging"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

// Engine applies the ordered sequence of cleanup passes that turn the
// authoring dialect into plain Markdown. Pass order is a contract: heading
// levels are re-derived from the literal headings earlier passes emitted, so
// passes must run in sequence and are never merged.
type Engine struct {
	logger interfaces.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger overrides the no-op logger used to surface diagnostics.
func WithLogger(logger interfaces.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine constructs a normalization engine.
func NewEngine(opts ...EngineOption) *Engine {
	engine := &Engine{
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

var _ interfaces.Normalizer = (*Engine)(nil)

// Normalize runs the full pass sequence over text and returns cleaned
// Markdown plus any diagnostics. Diagnostics never abort the run; partially
// resolved output is still usable output.
func (e *Engine) Normalize(text string, opts interfaces.NormalizeOptions) (string, []interfaces.Diagnostic) {
	lines := splitLines(text)

	lines = StripFrontmatter(lines)
	lines = RemoveSubtrees(lines)
	lines = ConvertHeadings(lines)
	lines = ConvertExamples(lines)
	lines = ConvertTabs(lines)
	lines = ConvertSteps(lines)
	lines = ConvertExchanges(lines)
	lines = DedentContainers(lines)

	lines, diags := ResolveReferences(lines, opts.References, opts.Source)
	lines = ExcludeSections(lines, opts.ExcludeSections)
	lines = NormalizeWhitespace(lines)

	for _, diag := range diags {
		logging.WithFields(e.logger, map[string]any{
			"source": diag.Source,
			"line":   diag.Line,
			"detail": diag.Message,
		}).Warn("normalize.reference.unresolved")
	}
	return joinLines(lines), diags
}
