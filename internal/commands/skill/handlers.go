package skillcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/goliatone/go-skillmd/internal/commands"
	"github.com/goliatone/go-skillmd/internal/logging"
	"github.com/goliatone/go-skillmd/internal/manifest"
	"github.com/goliatone/go-skillmd/internal/refdata"
	"github.com/goliatone/go-skillmd/internal/skill"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	normalizeOperation  = "skill.normalize_file"
	buildOperation      = "skill.build"
	checkLinksOperation = "skill.check_links"
)

var (
	// ErrLinksFeatureDisabled is returned when the link checking feature flag is disabled at runtime.
	ErrLinksFeatureDisabled = errors.New("check links command: feature disabled")
	// ErrLinkCheckerMissing is returned when no link checker was wired at construction.
	ErrLinkCheckerMissing = errors.New("check links command: link checker not configured")
)

var (
	_ command.Commander[NormalizeFileCommand] = (*NormalizeFileHandler)(nil)
	_ command.Commander[BuildSkillCommand]    = (*BuildSkillHandler)(nil)
	_ command.Commander[CheckLinksCommand]    = (*CheckLinksHandler)(nil)
)

// NormalizeFileHandler runs the pipeline over one document via the shared
// command handler foundation.
type NormalizeFileHandler struct {
	inner *commands.Handler[NormalizeFileCommand]
}

// NewNormalizeFileHandler creates a handler bound to the supplied loader and
// normalization engine. Normalized Markdown is written to sink when non-nil.
func NewNormalizeFileHandler(loader interfaces.ContentLoader, normalizer interfaces.Normalizer, references *refdata.Loader, sink io.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[NormalizeFileCommand]) *NormalizeFileHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg NormalizeFileCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		doc, err := loader.Load(ctx, msg.Path)
		if err != nil {
			return err
		}

		var diags []interfaces.Diagnostic
		tables := interfaces.ReferenceTables{}
		if ref := strings.TrimSpace(msg.ReferenceData); ref != "" && references != nil {
			loaded, refDiags := references.Load(ref)
			tables = loaded
			diags = append(diags, refDiags...)
		}

		text, normDiags := normalizer.Normalize(doc.Raw, interfaces.NormalizeOptions{
			Source:          doc.Path,
			ExcludeSections: msg.ExcludeSections,
			References:      tables,
		})
		diags = append(diags, normDiags...)
		logDiagnostics(baseLogger, diags)

		if sink != nil {
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			if _, err := io.WriteString(sink, text); err != nil {
				return fmt.Errorf("write normalized output: %w", err)
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"path":        doc.Path,
			"bytes":       len(text),
			"diagnostics": len(diags),
		}).Info("skill.command.normalize_file.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[NormalizeFileCommand]{
		commands.WithLogger[NormalizeFileCommand](baseLogger),
		commands.WithOperation[NormalizeFileCommand](normalizeOperation),
		commands.WithMessageFields(func(msg NormalizeFileCommand) map[string]any {
			fields := map[string]any{
				"path": msg.Path,
			}
			if msg.ReferenceData != "" {
				fields["reference_data"] = msg.ReferenceData
			}
			if len(msg.ExcludeSections) > 0 {
				fields["exclude_sections"] = len(msg.ExcludeSections)
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[NormalizeFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &NormalizeFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[NormalizeFileCommand].
func (h *NormalizeFileHandler) Execute(ctx context.Context, msg NormalizeFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BuildSkillHandler assembles manifest-described skills via the shared
// command handler foundation.
type BuildSkillHandler struct {
	inner *commands.Handler[BuildSkillCommand]
}

// NewBuildSkillHandler creates a handler that loads manifests from content,
// assembles them with builder, and persists results through writer.
func NewBuildSkillHandler(content fs.FS, builder interfaces.SkillBuilder, writer *skill.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSkillCommand]) *BuildSkillHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSkillCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		man, err := manifest.Load(content, msg.Manifest)
		if err != nil {
			return err
		}

		req := man.BuildRequest()
		if out := strings.TrimSpace(msg.Output); out != "" {
			req.OutputPath = out
		}

		doc, err := builder.Build(ctx, req)
		if err != nil {
			return err
		}
		logDiagnostics(baseLogger, doc.Diagnostics)

		written := ""
		if writer != nil && !msg.DryRun {
			written, err = writer.Write(doc, req.OutputPath)
			if err != nil {
				return err
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"skill":       doc.Name,
			"path":        written,
			"tokens":      doc.TokenCount,
			"sources":     len(doc.Sources),
			"diagnostics": len(doc.Diagnostics),
			"dry_run":     msg.DryRun,
		}).Info("skill.command.build.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildSkillCommand]{
		commands.WithLogger[BuildSkillCommand](baseLogger),
		commands.WithOperation[BuildSkillCommand](buildOperation),
		commands.WithMessageFields(func(msg BuildSkillCommand) map[string]any {
			fields := map[string]any{
				"manifest": msg.Manifest,
			}
			if msg.Output != "" {
				fields["output"] = msg.Output
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildSkillCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSkillHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSkillCommand].
func (h *BuildSkillHandler) Execute(ctx context.Context, msg BuildSkillCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CheckLinksHandler probes documentation links in an assembled document via
// the shared command handler foundation.
type CheckLinksHandler struct {
	inner *commands.Handler[CheckLinksCommand]
}

// NewCheckLinksHandler creates a handler bound to the supplied loader and
// link checker. The document is never modified; findings surface as logs.
func NewCheckLinksHandler(loader interfaces.ContentLoader, checker interfaces.LinkChecker, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[CheckLinksCommand]) *CheckLinksHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CheckLinksCommand) error {
		if !gates.linksEnabled() {
			return ErrLinksFeatureDisabled
		}
		if checker == nil {
			return ErrLinkCheckerMissing
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		doc, err := loader.Load(ctx, msg.Path)
		if err != nil {
			return err
		}

		_, diags := checker.Rewrite(ctx, doc.Raw, doc.Path)
		logDiagnostics(baseLogger, diags)

		logging.WithFields(baseLogger, map[string]any{
			"path":     doc.Path,
			"findings": len(diags),
		}).Info("skill.command.check_links.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckLinksCommand]{
		commands.WithLogger[CheckLinksCommand](baseLogger),
		commands.WithOperation[CheckLinksCommand](checkLinksOperation),
		commands.WithMessageFields(func(msg CheckLinksCommand) map[string]any {
			return map[string]any{
				"path": msg.Path,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CheckLinksCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckLinksHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CheckLinksCommand].
func (h *CheckLinksHandler) Execute(ctx context.Context, msg CheckLinksCommand) error {
	return h.inner.Execute(ctx, msg)
}

func logDiagnostics(logger interfaces.Logger, diags []interfaces.Diagnostic) {
	for _, diag := range diags {
		logging.WithFields(logger, map[string]any{
			"source": diag.Source,
			"line":   diag.Line,
			"detail": diag.Message,
		}).Warn("skill.command.diagnostic")
	}
}
