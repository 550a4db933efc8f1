// Package manifest loads and validates skill.yaml build manifests.
package manifest

import (
	"fmt"
	"io/fs"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
	"gopkg.in/yaml.v3"
)

// Skill describes one skill build: the sources to normalize, how they are
// trimmed, and where the assembled document is written.
type Skill struct {
	// Name labels the skill and seeds the default output filename.
	Name string `yaml:"name" json:"name"`
	// Description is carried into the assembled document header.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// DocsHost overrides the configured documentation host for link checks.
	DocsHost string `yaml:"docs_host,omitempty" json:"docs_host,omitempty"`
	// TokenCeiling caps the advisory token budget; zero disables the gate.
	TokenCeiling int `yaml:"token_ceiling,omitempty" json:"token_ceiling,omitempty"`
	// ReferenceData points at the companion file holding substitutions and references.
	ReferenceData string `yaml:"reference_data,omitempty" json:"reference_data,omitempty"`
	// MetadataSchema optionally constrains source frontmatter (JSON Schema).
	MetadataSchema map[string]any `yaml:"metadata_schema,omitempty" json:"metadata_schema,omitempty"`
	// Sources lists the input documents in assembly order.
	Sources []Source `yaml:"sources" json:"sources"`
	// Output overrides the slug-derived output path.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

// Source names one input document and its per-source trimming.
type Source struct {
	// Path locates the document relative to the manifest root.
	Path string `yaml:"path" json:"path"`
	// ExcludeSections lists heading titles to drop from this source.
	ExcludeSections []string `yaml:"exclude_sections,omitempty" json:"exclude_sections,omitempty"`
}

// Load reads and validates a skill manifest from fsys.
func Load(fsys fs.FS, path string) (*Skill, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	skill, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return skill, nil
}

// Parse decodes manifest YAML and validates the result.
func Parse(raw []byte) (*Skill, error) {
	var skill Skill
	if err := yaml.Unmarshal(raw, &skill); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	skill.normalize()
	if err := skill.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &skill, nil
}

// BuildRequest maps the manifest onto an assembly request.
func (s *Skill) BuildRequest() interfaces.BuildRequest {
	sources := make([]interfaces.SourceSpec, 0, len(s.Sources))
	for _, src := range s.Sources {
		sources = append(sources, interfaces.SourceSpec{
			Path:            src.Path,
			ExcludeSections: append([]string(nil), src.ExcludeSections...),
		})
	}
	return interfaces.BuildRequest{
		Name:           s.Name,
		Description:    s.Description,
		Sources:        sources,
		TokenCeiling:   s.TokenCeiling,
		ReferenceData:  s.ReferenceData,
		MetadataSchema: s.MetadataSchema,
		OutputPath:     s.Output,
	}
}

func (s *Skill) normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.DocsHost = strings.TrimSpace(s.DocsHost)
	s.ReferenceData = strings.TrimSpace(s.ReferenceData)
	s.Output = strings.TrimSpace(s.Output)
	for i := range s.Sources {
		s.Sources[i].Path = strings.TrimSpace(s.Sources[i].Path)
	}
}

// Validate ensures the manifest carries everything a build needs.
func (s Skill) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.By(requireText("skillmd.manifest.name_required", "name is required"))),
		validation.Field(&s.TokenCeiling, validation.Min(0)),
		validation.Field(&s.Sources, validation.Required),
	)
}

// Validate ensures the source names a document.
func (s Source) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Path, validation.Required, validation.By(requireText("skillmd.manifest.source_path_required", "path is required"))),
	)
}

func requireText(code, message string) validation.RuleFunc {
	return func(value any) error {
		if text, _ := value.(string); strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
