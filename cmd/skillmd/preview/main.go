package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-skillmd/cmd/skillmd/internal/bootstrap"
	"github.com/goliatone/go-skillmd/internal/render"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		contentDir = flag.String("content-dir", "content", "Path to the dialect content root")
		filePath   = flag.String("file", "", "Document to preview, relative to the content root")
		refData    = flag.String("ref-data", "", "Companion file holding substitution and reference tables")
		exclude    = flag.String("exclude", "", "Comma separated section titles to drop from the output")
		renderHTML = flag.Bool("render-html", true, "Render the normalized Markdown into HTML")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		RefData:    *refData,
		LogLevel:   "warn",
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}
	if module == nil || module.Service == nil {
		log.Fatalf("skill service not configured")
	}

	ctx := context.Background()

	normalized, diags, err := module.Service.NormalizeDocument(ctx, *filePath, bootstrap.SplitList(*exclude)...)
	if err != nil {
		log.Fatalf("normalize document: %v", err)
	}

	tokens := module.Service.TokenCounter().Count(normalized)
	fmt.Fprintf(os.Stdout, "Path: %s\nTokens: %d\nDiagnostics: %d\n\n", *filePath, tokens, len(diags))
	for _, diag := range diags {
		fmt.Fprintf(os.Stderr, "diagnostic: %s\n", diag.String())
	}

	if *renderHTML {
		renderer := render.NewGoldmarkRenderer(interfaces.RenderOptions{})
		html, err := renderer.Render([]byte(normalized))
		if err != nil {
			log.Fatalf("render markdown: %v", err)
		}
		fmt.Fprintf(os.Stdout, "Rendered HTML:\n%s\n", string(html))
	} else {
		fmt.Fprintf(os.Stdout, "Markdown:\n%s\n", normalized)
	}
}
