package skillcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	normalizeFileMessageType = "skillmd.skill.normalize_file"
	buildSkillMessageType    = "skillmd.skill.build"
	checkLinksMessageType    = "skillmd.skill.check_links"
)

// NormalizeFileCommand runs the normalization pipeline over a single dialect
// document and emits the cleaned Markdown.
type NormalizeFileCommand struct {
	// Path selects the document relative to the content root.
	Path string `json:"path"`
	// ReferenceData optionally points at the companion file holding the
	// substitution and reference tables.
	ReferenceData string `json:"reference_data,omitempty"`
	// ExcludeSections lists exact heading titles dropped with their bodies.
	ExcludeSections []string `json:"exclude_sections,omitempty"`
}

// Type implements command.Message.
func (NormalizeFileCommand) Type() string { return normalizeFileMessageType }

// Validate ensures a document path is present before handlers execute.
func (cmd NormalizeFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("skillmd.skill.normalize_file.path_required", "path is required")
			}
			return nil
		})),
	)
}

// BuildSkillCommand assembles a skill document from its manifest.
type BuildSkillCommand struct {
	// Manifest selects the skill.yaml path relative to the content root.
	Manifest string `json:"manifest"`
	// Output overrides the manifest output path when non-empty.
	Output string `json:"output,omitempty"`
	// DryRun assembles the document without writing it.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildSkillCommand) Type() string { return buildSkillMessageType }

// Validate ensures a manifest path is present before handlers execute.
func (cmd BuildSkillCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Manifest, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("skillmd.skill.build.manifest_required", "manifest is required")
			}
			return nil
		})),
	)
}

// CheckLinksCommand probes documentation links in an assembled document and
// reports unreachable ones without touching the file.
type CheckLinksCommand struct {
	// Path selects the Markdown document relative to the content root.
	Path string `json:"path"`
}

// Type implements command.Message.
func (CheckLinksCommand) Type() string { return checkLinksMessageType }

// Validate ensures a document path is present before handlers execute.
func (cmd CheckLinksCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("skillmd.skill.check_links.path_required", "path is required")
			}
			return nil
		})),
	)
}
