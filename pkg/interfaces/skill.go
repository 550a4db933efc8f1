package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SourceSpec selects one dialect document for a skill build.
type SourceSpec struct {
	// Path locates the document relative to the content filesystem root.
	Path string
	// ExcludeSections lists exact heading titles removed from this source
	// before it joins the assembled skill.
	ExcludeSections []string
}

// BuildRequest describes a full skill assembly run.
type BuildRequest struct {
	Name         string
	Description  string
	Sources      []SourceSpec
	TokenCeiling int
	// ReferenceData locates the companion file holding the substitution and
	// reference tables, relative to the content filesystem root.
	ReferenceData string
	// MetadataSchema optionally constrains source frontmatter (JSON Schema).
	MetadataSchema map[string]any
	// OutputPath overrides the slug-derived output file when non-empty.
	OutputPath string
}

// SourceDocument is a loaded dialect file plus the metadata peeked from its
// front matter. Raw always carries the complete original text; the engine's
// own frontmatter pass decides what survives into the output.
type SourceDocument struct {
	Path         string
	Raw          string
	Title        string
	Description  string
	Metadata     map[string]any
	LastModified time.Time
}

// SkillDocument is the assembled, normalized output of a build.
type SkillDocument struct {
	// ID is derived deterministically from the slug, so rebuilding the same
	// skill yields the same identifier.
	ID          uuid.UUID
	Name        string
	Slug        string
	Markdown    string
	TokenCount  int
	Sources     []string
	Diagnostics []Diagnostic
}

// ContentLoader discovers and reads dialect sources from a content root.
type ContentLoader interface {
	Load(ctx context.Context, path string) (*SourceDocument, error)
	LoadDirectory(ctx context.Context, dir string, pattern string) ([]*SourceDocument, error)
}

// SkillBuilder assembles a skill document from its sources: per-source
// exclusion and normalization, concatenation, link validation, and the token
// budget check.
type SkillBuilder interface {
	Build(ctx context.Context, req BuildRequest) (*SkillDocument, error)
}
