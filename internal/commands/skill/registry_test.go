package skillcmd

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-skillmd/internal/commands"
	"github.com/goliatone/go-skillmd/internal/commands/fixtures"
	"github.com/goliatone/go-skillmd/internal/logging"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

func registryDeps() Dependencies {
	return Dependencies{
		Content: fstest.MapFS{},
		Loader: &stubLoader{docs: map[string]*interfaces.SourceDocument{
			"dist/deploy.md": {Path: "dist/deploy.md", Raw: "body"},
		}},
		Normalizer: &stubEngine{output: "body"},
		Builder:    &stubBuilder{doc: &interfaces.SkillDocument{Name: "Deploy Guide"}},
		Links:      &stubChecker{},
	}
}

func TestRegisterSkillCommandsRegistersHandlers(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()

	set, err := RegisterSkillCommands(reg, registryDeps(), nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register skill commands: %v", err)
	}
	if set == nil {
		t.Fatal("expected handler set returned")
	}
	if set.Normalize == nil || set.Build == nil || set.CheckLinks == nil {
		t.Fatalf("expected all handlers constructed, got %#v", set)
	}
	if len(reg.Handlers) != 3 {
		t.Fatalf("expected three handlers registered, got %d", len(reg.Handlers))
	}
	if reg.Handlers[0] != set.Normalize {
		t.Fatalf("expected normalize handler registered first, got %#v", reg.Handlers[0])
	}
	if reg.Handlers[1] != set.Build {
		t.Fatalf("expected build handler registered second, got %#v", reg.Handlers[1])
	}
	if reg.Handlers[2] != set.CheckLinks {
		t.Fatalf("expected check links handler registered third, got %#v", reg.Handlers[2])
	}
}

func TestRegisterSkillCommandsHandlerOptionsApplied(t *testing.T) {
	normalizeApplied := false
	buildApplied := false
	checkLinksApplied := false

	_, err := RegisterSkillCommands(nil, registryDeps(), nil, FeatureGates{},
		WithNormalizeHandlerOptions(func(h *commands.Handler[NormalizeFileCommand]) {
			normalizeApplied = true
		}),
		WithBuildHandlerOptions(func(h *commands.Handler[BuildSkillCommand]) {
			buildApplied = true
		}),
		WithCheckLinksHandlerOptions(func(h *commands.Handler[CheckLinksCommand]) {
			checkLinksApplied = true
		}),
	)
	if err != nil {
		t.Fatalf("register skill commands: %v", err)
	}
	if !normalizeApplied {
		t.Fatal("expected normalize handler options applied")
	}
	if !buildApplied {
		t.Fatal("expected build handler options applied")
	}
	if !checkLinksApplied {
		t.Fatal("expected check links handler options applied")
	}
}

func TestRegisterSkillCommandsNilRegistrySkipsRegistration(t *testing.T) {
	set, err := RegisterSkillCommands(nil, registryDeps(), nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register skill commands: %v", err)
	}
	if set == nil || set.Normalize == nil || set.Build == nil || set.CheckLinks == nil {
		t.Fatalf("expected handlers built when registry nil, got %#v", set)
	}
}

func TestRegisterSkillCommandsMissingDependencies(t *testing.T) {
	deps := registryDeps()
	deps.Loader = nil
	if _, err := RegisterSkillCommands(nil, deps, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error when loader nil")
	}

	deps = registryDeps()
	deps.Normalizer = nil
	if _, err := RegisterSkillCommands(nil, deps, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error when normalizer nil")
	}

	deps = registryDeps()
	deps.Builder = nil
	if _, err := RegisterSkillCommands(nil, deps, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error when builder nil")
	}
}

func TestRegisterLinkCheckCronRegistersHandler(t *testing.T) {
	loader := &stubLoader{docs: map[string]*interfaces.SourceDocument{
		"dist/deploy.md": {Path: "dist/deploy.md", Raw: "body"},
	}}
	checker := &stubChecker{}
	handler := NewCheckLinksHandler(loader, checker, logging.NoOp(), FeatureGates{})
	recorder := fixtures.NewCronRecorder()

	cfg := command.HandlerConfig{Expression: "@hourly"}
	msg := CheckLinksCommand{Path: "dist/deploy.md"}

	if err := RegisterLinkCheckCron(recorder.Registrar(), handler, cfg, msg); err != nil {
		t.Fatalf("register link check cron: %v", err)
	}

	if len(recorder.Registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(recorder.Registrations))
	}
	reg := recorder.Registrations[0]
	if reg.Config.Expression != cfg.Expression {
		t.Fatalf("expected cron expression %q, got %q", cfg.Expression, reg.Config.Expression)
	}
	run, ok := reg.Handler.(func() error)
	if !ok {
		t.Fatalf("expected cron handler function recorded, got %#v", reg.Handler)
	}
	if err := run(); err != nil {
		t.Fatalf("executing cron handler: %v", err)
	}
	if len(checker.sources) != 1 {
		t.Fatalf("expected one link check executed, got %d", len(checker.sources))
	}
}

func TestRegisterLinkCheckCronNoOpWhenRegistrarNil(t *testing.T) {
	checker := &stubChecker{}
	handler := NewCheckLinksHandler(&stubLoader{}, checker, logging.NoOp(), FeatureGates{})
	if err := RegisterLinkCheckCron(nil, handler, command.HandlerConfig{}, CheckLinksCommand{Path: "dist/deploy.md"}); err != nil {
		t.Fatalf("expected nil error when registrar nil, got %v", err)
	}
	if len(checker.sources) != 0 {
		t.Fatalf("expected no link checks when registrar nil, got %d", len(checker.sources))
	}
}

func TestRegisterLinkCheckCronNoOpWhenHandlerNil(t *testing.T) {
	recorder := fixtures.NewCronRecorder()
	if err := RegisterLinkCheckCron(recorder.Registrar(), nil, command.HandlerConfig{}, CheckLinksCommand{Path: "dist/deploy.md"}); err != nil {
		t.Fatalf("expected nil error when handler nil, got %v", err)
	}
	if len(recorder.Registrations) != 0 {
		t.Fatalf("expected no registrations when handler nil, got %d", len(recorder.Registrations))
	}
}

func TestRegisterLinkCheckCronPropagatesRegistrarError(t *testing.T) {
	recorder := fixtures.NewCronRecorder()
	failure := errors.New("cron backend down")
	recorder.Fail(failure)

	handler := NewCheckLinksHandler(&stubLoader{}, &stubChecker{}, logging.NoOp(), FeatureGates{})
	err := RegisterLinkCheckCron(recorder.Registrar(), handler, command.HandlerConfig{}, CheckLinksCommand{Path: "dist/deploy.md"})
	if !errors.Is(err, failure) {
		t.Fatalf("expected registrar failure propagated, got %v", err)
	}
}
