package skillmd_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	skillmd "github.com/goliatone/go-skillmd"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

const deployDoc = `---
title: Deploying
audience: developer
---
<Heading>Deploying Acme</Heading>

<Note>
  Deploys run on <Ref key="productName" type="substitution"/>.
</Note>

See <Ref name="quickstart"/>.
`

const companionFile = `export const substitutions = {
  productName: "Acme Deploy",
};

export const references = {
  quickstart: { title: "Quickstart Guide", url: "https://docs.acme.dev/docs/quickstart" },
};
`

func testContentFS() fstest.MapFS {
	return fstest.MapFS{
		"guides/deploy.md": &fstest.MapFile{Data: []byte(deployDoc)},
		"guides/common.js": &fstest.MapFile{Data: []byte(companionFile)},
	}
}

func newTestService(t *testing.T, mutate func(*skillmd.Config), opts ...skillmd.Option) *skillmd.Service {
	t.Helper()

	cfg := skillmd.DefaultConfig()
	cfg.Refdata.Path = "guides/common.js"
	if mutate != nil {
		mutate(&cfg)
	}

	opts = append([]skillmd.Option{skillmd.WithContentFS(testContentFS())}, opts...)
	service, err := skillmd.New(cfg, opts...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	t.Cleanup(func() {
		_ = service.Close()
	})
	return service
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := skillmd.DefaultConfig()
	cfg.ContentDir = ""

	if _, err := skillmd.New(cfg); !errors.Is(err, skillmd.ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestServiceNormalizeTextLoadsConfiguredReferences(t *testing.T) {
	service := newTestService(t, nil)

	got, diags := service.NormalizeText(deployDoc, skillmd.NormalizeOptions{Source: "deploy.md"})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}

	want := strings.Join([]string{
		"## Deploying Acme",
		"",
		"Deploys run on Acme Deploy.",
		"",
		"See Quickstart Guide.",
	}, "\n")
	if got != want {
		t.Fatalf("normalized output mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestServiceNormalizeTextPrefersExplicitTables(t *testing.T) {
	service := newTestService(t, nil)

	tables := skillmd.ReferenceTables{
		Substitutions: map[string]string{"productName": "Override Deploy"},
		References: map[string]skillmd.Reference{
			"quickstart": {Title: "Other Guide", URL: "https://elsewhere.test/docs/x"},
		},
	}
	got, diags := service.NormalizeText(deployDoc, skillmd.NormalizeOptions{
		Source:     "deploy.md",
		References: tables,
	})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if !strings.Contains(got, "Override Deploy") {
		t.Fatalf("expected explicit substitution to win, got:\n%s", got)
	}
	if !strings.Contains(got, "Other Guide") {
		t.Fatalf("expected explicit reference to win, got:\n%s", got)
	}
}

func TestServiceNormalizeDocument(t *testing.T) {
	service := newTestService(t, nil)

	got, diags, err := service.NormalizeDocument(context.Background(), "guides/deploy.md")
	if err != nil {
		t.Fatalf("normalize document: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if strings.Contains(got, "title: Deploying") {
		t.Fatalf("expected frontmatter stripped, got:\n%s", got)
	}
	if !strings.HasPrefix(got, "## Deploying Acme") {
		t.Fatalf("expected converted heading first, got:\n%s", got)
	}
}

func TestServiceNormalizeDocumentMissingSource(t *testing.T) {
	service := newTestService(t, nil)

	if _, _, err := service.NormalizeDocument(context.Background(), "guides/missing.md"); err == nil {
		t.Fatal("expected error for missing document")
	}
}

func TestServiceBuildSkillUsesConfigDefaults(t *testing.T) {
	service := newTestService(t, func(cfg *skillmd.Config) {
		cfg.Tokens.Ceiling = 5
	})

	doc, err := service.BuildSkill(context.Background(), skillmd.BuildRequest{
		Name:        "Deploy Guide",
		Description: "How deploys work.",
		Sources:     []skillmd.SourceSpec{{Path: "guides/deploy.md"}},
	})
	if err != nil {
		t.Fatalf("build skill: %v", err)
	}

	if doc.Slug != "deploy-guide" {
		t.Fatalf("expected slug deploy-guide, got %q", doc.Slug)
	}
	if !strings.HasPrefix(doc.Markdown, "# Deploy Guide\n\nHow deploys work.\n\n## Deploying Acme") {
		t.Fatalf("unexpected assembly:\n%s", doc.Markdown)
	}
	if !strings.HasSuffix(doc.Markdown, "\n") {
		t.Fatal("expected trailing newline on assembled markdown")
	}
	if doc.TokenCount <= 5 {
		t.Fatalf("expected token count above ceiling, got %d", doc.TokenCount)
	}

	var overBudget bool
	for _, diag := range doc.Diagnostics {
		if strings.Contains(diag.Message, "over the 5-token budget") {
			overBudget = true
		}
	}
	if !overBudget {
		t.Fatalf("expected over-budget diagnostic from configured ceiling, got %+v", doc.Diagnostics)
	}
}

func TestServiceWriteSkill(t *testing.T) {
	dir := t.TempDir()
	service := newTestService(t, func(cfg *skillmd.Config) {
		cfg.OutputDir = dir
	})

	doc, err := service.BuildSkill(context.Background(), skillmd.BuildRequest{
		Name:    "Deploy Guide",
		Sources: []skillmd.SourceSpec{{Path: "guides/deploy.md"}},
	})
	if err != nil {
		t.Fatalf("build skill: %v", err)
	}

	path, err := service.WriteSkill(doc, "")
	if err != nil {
		t.Fatalf("write skill: %v", err)
	}
	if !strings.HasSuffix(path, "deploy-guide.md") {
		t.Fatalf("expected slug-derived filename, got %s", path)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written skill: %v", err)
	}
	if string(written) != doc.Markdown {
		t.Fatal("written file does not match assembled markdown")
	}
}

func TestServiceBuildSkillRequiresName(t *testing.T) {
	service := newTestService(t, nil)

	_, err := service.BuildSkill(context.Background(), skillmd.BuildRequest{
		Sources: []skillmd.SourceSpec{{Path: "guides/deploy.md"}},
	})
	if err == nil {
		t.Fatal("expected error for missing skill name")
	}
}

func TestWithNormalizerOverride(t *testing.T) {
	stub := &stubNormalizer{output: "stubbed"}
	service := newTestService(t, nil, skillmd.WithNormalizer(stub))

	got, _ := service.NormalizeText("anything", skillmd.NormalizeOptions{
		References: skillmd.ReferenceTables{Substitutions: map[string]string{"x": "y"}},
	})
	if got != "stubbed" {
		t.Fatalf("expected stub normalizer output, got %q", got)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one normalizer call, got %d", stub.calls)
	}
}

type stubNormalizer struct {
	output string
	calls  int
}

func (s *stubNormalizer) Normalize(text string, opts interfaces.NormalizeOptions) (string, []interfaces.Diagnostic) {
	s.calls++
	return s.output, nil
}
