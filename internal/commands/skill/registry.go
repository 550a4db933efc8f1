package skillcmd

import (
	"context"
	"errors"
	"io"
	"io/fs"

	"github.com/goliatone/go-skillmd/internal/commands"
	"github.com/goliatone/go-skillmd/internal/refdata"
	"github.com/goliatone/go-skillmd/internal/skill"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// Dependencies carries the collaborators skill command handlers execute against.
type Dependencies struct {
	// Content is the filesystem manifests are loaded from.
	Content fs.FS
	// Loader reads dialect documents.
	Loader interfaces.ContentLoader
	// Normalizer converts dialect markup into clean Markdown.
	Normalizer interfaces.Normalizer
	// References loads companion lookup tables; optional.
	References *refdata.Loader
	// Builder assembles skill documents.
	Builder interfaces.SkillBuilder
	// Writer persists assembled documents; optional (dry runs only when nil).
	Writer *skill.Writer
	// Links probes documentation links; optional.
	Links interfaces.LinkChecker
	// Sink receives normalized Markdown from the normalize command; optional.
	Sink io.Writer
}

// HandlerSet groups the skill command handlers produced by RegisterSkillCommands.
type HandlerSet struct {
	Normalize  *NormalizeFileHandler
	Build      *BuildSkillHandler
	CheckLinks *CheckLinksHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	normalizeHandlerOpts  []commands.HandlerOption[NormalizeFileCommand]
	buildHandlerOpts      []commands.HandlerOption[BuildSkillCommand]
	checkLinksHandlerOpts []commands.HandlerOption[CheckLinksCommand]
}

// WithNormalizeHandlerOptions forwards options to the NormalizeFileHandler constructor.
func WithNormalizeHandlerOptions(opts ...commands.HandlerOption[NormalizeFileCommand]) Option {
	return func(cfg *options) {
		cfg.normalizeHandlerOpts = append(cfg.normalizeHandlerOpts, opts...)
	}
}

// WithBuildHandlerOptions forwards options to the BuildSkillHandler constructor.
func WithBuildHandlerOptions(opts ...commands.HandlerOption[BuildSkillCommand]) Option {
	return func(cfg *options) {
		cfg.buildHandlerOpts = append(cfg.buildHandlerOpts, opts...)
	}
}

// WithCheckLinksHandlerOptions forwards options to the CheckLinksHandler constructor.
func WithCheckLinksHandlerOptions(opts ...commands.HandlerOption[CheckLinksCommand]) Option {
	return func(cfg *options) {
		cfg.checkLinksHandlerOpts = append(cfg.checkLinksHandlerOpts, opts...)
	}
}

// RegisterSkillCommands builds skill command handlers and registers them with
// the provided registry. A HandlerSet containing the constructed handlers is
// returned so callers can wire additional integrations (dispatcher, cron).
func RegisterSkillCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if deps.Loader == nil {
		return nil, errors.New("skill command registration: loader is nil")
	}
	if deps.Normalizer == nil {
		return nil, errors.New("skill command registration: normalizer is nil")
	}
	if deps.Builder == nil {
		return nil, errors.New("skill command registration: builder is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "skill")

	normalizeHandler := NewNormalizeFileHandler(deps.Loader, deps.Normalizer, deps.References, deps.Sink, logger, cfg.normalizeHandlerOpts...)
	buildHandler := NewBuildSkillHandler(deps.Content, deps.Builder, deps.Writer, logger, cfg.buildHandlerOpts...)
	checkLinksHandler := NewCheckLinksHandler(deps.Loader, deps.Links, logger, gates, cfg.checkLinksHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(normalizeHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(buildHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(checkLinksHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Normalize:  normalizeHandler,
		Build:      buildHandler,
		CheckLinks: checkLinksHandler,
	}, nil
}

// RegisterLinkCheckCron wires the provided check handler into a cron
// registrar using the supplied command configuration and message payload so
// link health can be re-probed on a schedule. The handler is executed with a
// background context.
func RegisterLinkCheckCron(reg CronRegistrar, handler *CheckLinksHandler, cfg command.HandlerConfig, msg CheckLinksCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
