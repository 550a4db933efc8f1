package skillmd_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	skillmd "github.com/goliatone/go-skillmd"
	"github.com/goliatone/go-skillmd/pkg/testsupport"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestServiceBuildSkillValidatesLinksThroughProbeCache(t *testing.T) {
	ctx := context.Background()

	var probes int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&probes, 1)
		if r.URL.Path == "/docs/quickstart.md" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	parsed, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}

	content := fstest.MapFS{
		"guides/links.md": &fstest.MapFile{Data: []byte(
			"<Heading>Further Reading</Heading>\n\n" +
				"Read the [quickstart](" + server.URL + "/docs/quickstart/) first.\n" +
				"The [old guide](" + server.URL + "/docs/retired) moved away.\n",
		)},
	}

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	cfg := skillmd.DefaultConfig()
	cfg.Features.Links = true
	cfg.Features.ProbeCache = true
	cfg.Docs.Host = parsed.Host
	cfg.Probe.CacheDSN = "file::memory:?cache=shared"

	service, err := skillmd.New(cfg,
		skillmd.WithContentFS(content),
		skillmd.WithProbeDB(bunDB),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	req := skillmd.BuildRequest{
		Name:    "Link Check",
		Sources: []skillmd.SourceSpec{{Path: "guides/links.md"}},
	}
	doc, err := service.BuildSkill(ctx, req)
	if err != nil {
		t.Fatalf("build skill: %v", err)
	}

	if !strings.Contains(doc.Markdown, "[quickstart]("+server.URL+"/docs/quickstart.md)") {
		t.Fatalf("expected reachable link canonicalized, got:\n%s", doc.Markdown)
	}
	if strings.Contains(doc.Markdown, "/docs/retired") {
		t.Fatalf("expected unreachable link removed, got:\n%s", doc.Markdown)
	}
	if !strings.Contains(doc.Markdown, "The old guide moved away.") {
		t.Fatalf("expected unreachable link degraded to text, got:\n%s", doc.Markdown)
	}

	var degraded *skillmd.Diagnostic
	for i := range doc.Diagnostics {
		if strings.Contains(doc.Diagnostics[i].Message, "degraded to text") {
			degraded = &doc.Diagnostics[i]
		}
	}
	if degraded == nil {
		t.Fatalf("expected degradation diagnostic, got %+v", doc.Diagnostics)
	}
	if degraded.Source != "link-check.md" {
		t.Fatalf("expected diagnostic attributed to output file, got %q", degraded.Source)
	}
	if degraded.Line != 6 {
		t.Fatalf("expected diagnostic on assembled line 6, got %d", degraded.Line)
	}

	first := atomic.LoadInt64(&probes)
	if first != 2 {
		t.Fatalf("expected one probe per distinct link, got %d", first)
	}

	// A fresh service over the same database must serve both verdicts from
	// the cache without touching the network again.
	second, err := skillmd.New(cfg,
		skillmd.WithContentFS(content),
		skillmd.WithProbeDB(bunDB),
	)
	if err != nil {
		t.Fatalf("new second service: %v", err)
	}
	if _, err := second.BuildSkill(ctx, req); err != nil {
		t.Fatalf("second build: %v", err)
	}
	if got := atomic.LoadInt64(&probes); got != first {
		t.Fatalf("expected cached probe verdicts, saw %d extra probes", got-first)
	}
}

func TestServiceBuildSkillLeavesForeignLinksAlone(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected probe for %s", r.URL.Path)
	}))
	defer server.Close()

	parsed, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}

	content := fstest.MapFS{
		"guides/external.md": &fstest.MapFile{Data: []byte(
			"See [upstream](https://example.com/docs/thing) and [blog](" + server.URL + "/blog/post).\n",
		)},
	}

	cfg := skillmd.DefaultConfig()
	cfg.Features.Links = true
	cfg.Docs.Host = parsed.Host

	service, err := skillmd.New(cfg, skillmd.WithContentFS(content))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	doc, err := service.BuildSkill(ctx, skillmd.BuildRequest{
		Name:    "External",
		Sources: []skillmd.SourceSpec{{Path: "guides/external.md"}},
	})
	if err != nil {
		t.Fatalf("build skill: %v", err)
	}

	if !strings.Contains(doc.Markdown, "[upstream](https://example.com/docs/thing)") {
		t.Fatalf("expected foreign-host link untouched, got:\n%s", doc.Markdown)
	}
	if !strings.Contains(doc.Markdown, "[blog]("+server.URL+"/blog/post)") {
		t.Fatalf("expected off-prefix link untouched, got:\n%s", doc.Markdown)
	}
}
