package interfaces

import (
	"context"
	"fmt"
)

// Diagnostic is an advisory notice produced while transforming a document.
// Diagnostics never alter control flow; callers surface them as warn-level
// logs and keep the transformed output.
type Diagnostic struct {
	// Source labels the originating document, typically a file path.
	Source string
	// Line is the 1-based line number the notice refers to, or 0 when the
	// notice is not attributable to a single line.
	Line int
	// Message describes the condition in plain text.
	Message string
}

func (d Diagnostic) String() string {
	switch {
	case d.Source != "" && d.Line > 0:
		return fmt.Sprintf("%s:%d: %s", d.Source, d.Line, d.Message)
	case d.Source != "":
		return fmt.Sprintf("%s: %s", d.Source, d.Message)
	default:
		return d.Message
	}
}

// Reference names a companion document exposed through the reference tables.
type Reference struct {
	Title string
	URL   string
}

// ReferenceTables holds the two flat lookup tables used to resolve symbolic
// tags: substitution key to literal text, and reference name to titled link.
// A zero value is valid and resolves nothing.
type ReferenceTables struct {
	Substitutions map[string]string
	References    map[string]Reference
}

// Empty reports whether both tables are unpopulated.
func (t ReferenceTables) Empty() bool {
	return len(t.Substitutions) == 0 && len(t.References) == 0
}

// NormalizeOptions customises a single normalization run.
type NormalizeOptions struct {
	// Source labels diagnostics emitted during the run.
	Source string
	// ExcludeSections lists exact heading titles to drop along with their
	// section bodies. Matching is case-sensitive.
	ExcludeSections []string
	// References supplies the lookup tables for symbolic tag resolution.
	References ReferenceTables
}

// Normalizer converts dialect markup into clean Markdown. Implementations are
// pure text transforms; imperfect input degrades best-effort and is reported
// through the returned diagnostics, never through an error.
type Normalizer interface {
	Normalize(text string, opts NormalizeOptions) (string, []Diagnostic)
}

// LinkChecker probes documentation links and rewrites them to their canonical
// form, degrading unreachable links to plain text. The source label is used
// only for diagnostics.
type LinkChecker interface {
	Rewrite(ctx context.Context, text string, source string) (string, []Diagnostic)
}

// TokenCounter measures text against a fixed tokenizer profile.
type TokenCounter interface {
	Count(text string) int
}
