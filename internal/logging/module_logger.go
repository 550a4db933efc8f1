package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

const (
	rootModule      = "skillmd"
	normalizeModule = "skillmd.normalize"
	linksModule     = "skillmd.links"
	skillModule     = "skillmd.skill"
	refdataModule   = "skillmd.refdata"
)

const (
	fieldSourcePath = "source_path"
	fieldSkillName  = "skill"
	fieldRunAction  = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// NormalizeLogger returns the logger namespace reserved for the engine passes.
func NormalizeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, normalizeModule)
}

// LinksLogger returns the logger namespace reserved for link validation.
func LinksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, linksModule)
}

// SkillLogger returns the logger namespace reserved for skill assembly.
func SkillLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, skillModule)
}

// RefdataLogger returns the logger namespace reserved for reference-table loading.
func RefdataLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, refdataModule)
}

// WithSkillContext enriches the provided logger with common build fields such
// as source path, skill name, and run action. Empty values are ignored.
func WithSkillContext(logger interfaces.Logger, path, skill, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	if trimmed := strings.TrimSpace(skill); trimmed != "" {
		fields[fieldSkillName] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldRunAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
