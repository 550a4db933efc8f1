package bootstrap

import (
	"testing"
	"time"
)

func TestBuildModuleDefaults(t *testing.T) {
	module, err := BuildModule(Options{})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if module.Service == nil {
		t.Fatal("expected service to be initialised")
	}
	if module.Logger == nil {
		t.Fatal("expected logger to be initialised")
	}

	cfg := module.Service.Config()
	if cfg.ContentDir != "content" {
		t.Fatalf("expected default content dir, got %q", cfg.ContentDir)
	}
	if cfg.Features.Links {
		t.Fatal("expected link checking disabled without a docs host")
	}
	if !cfg.Features.Logger {
		t.Fatal("expected CLI bootstrap to enable logging")
	}
	if module.Service.Links() != nil {
		t.Fatal("expected no link checker without a docs host")
	}
}

func TestBuildModuleEnablesLinksFromDocsHost(t *testing.T) {
	module, err := BuildModule(Options{
		DocsHost:       "docs.example.com",
		PathPrefixes:   []string{"/docs/"},
		ProbeTimeout:   5 * time.Second,
		TokenCeiling:   4000,
		CommandTimeout: 45 * time.Second,
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}

	cfg := module.Service.Config()
	if !cfg.Features.Links {
		t.Fatal("expected link checking enabled by docs host")
	}
	if cfg.Docs.Host != "docs.example.com" {
		t.Fatalf("expected docs host forwarded, got %q", cfg.Docs.Host)
	}
	if len(cfg.Docs.PathPrefixes) != 1 || cfg.Docs.PathPrefixes[0] != "/docs/" {
		t.Fatalf("expected path prefixes forwarded, got %v", cfg.Docs.PathPrefixes)
	}
	if cfg.Probe.Timeout != 5*time.Second {
		t.Fatalf("expected probe timeout forwarded, got %v", cfg.Probe.Timeout)
	}
	if cfg.Tokens.Ceiling != 4000 {
		t.Fatalf("expected token ceiling forwarded, got %d", cfg.Tokens.Ceiling)
	}
	if cfg.Commands.Timeout != 45*time.Second {
		t.Fatalf("expected command timeout forwarded, got %v", cfg.Commands.Timeout)
	}
	if module.Service.Links() == nil {
		t.Fatal("expected link checker configured")
	}
}

func TestBuildModuleCacheDSNRequiresDocsHost(t *testing.T) {
	module, err := BuildModule(Options{CacheDSN: "file:probe.db"})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if module.Service.Config().Features.ProbeCache {
		t.Fatal("expected probe cache to stay disabled without a docs host")
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" /docs/ , /developer/ ,, ")
	if len(got) != 2 || got[0] != "/docs/" || got[1] != "/developer/" {
		t.Fatalf("unexpected split result: %v", got)
	}
	if SplitList("   ") != nil {
		t.Fatal("expected nil for blank input")
	}
}
