package skill

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-skillmd/internal/logging"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

// Loader turns filesystem paths into dialect source documents. The raw text
// is kept intact; front matter is only peeked for metadata, the pipeline's
// own stripper decides what survives into the output.
type Loader struct {
	fsys   fs.FS
	logger interfaces.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger overrides the no-op default logger.
func WithLoaderLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader constructs a Loader reading from the provided filesystem.
func NewLoader(fsys fs.FS, opts ...LoaderOption) *Loader {
	loader := &Loader{
		fsys:   fsys,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(loader)
		}
	}
	return loader
}

var _ interfaces.ContentLoader = (*Loader)(nil)

// Load reads and parses a single dialect document.
func (l *Loader) Load(ctx context.Context, filePath string) (*interfaces.SourceDocument, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel := path.Clean(strings.TrimPrefix(filePath, "./"))

	data, err := fs.ReadFile(l.fsys, rel)
	if err != nil {
		return nil, fmt.Errorf("skill loader read %s: %w", rel, err)
	}

	doc := &interfaces.SourceDocument{
		Path: rel,
		Raw:  string(data),
	}

	if info, err := fs.Stat(l.fsys, rel); err == nil {
		doc.LastModified = info.ModTime()
	}

	meta := map[string]any{}
	if _, err := frontmatter.Parse(strings.NewReader(doc.Raw), &meta); err != nil {
		// Malformed metadata is not fatal; the pipeline still strips the block.
		logging.WithFields(l.logger, map[string]any{
			"path":  rel,
			"error": err.Error(),
		}).Debug("skill.loader.frontmatter_skipped")
		meta = map[string]any{}
	}
	doc.Metadata = meta
	doc.Title = stringField(meta, "title")
	doc.Description = stringField(meta, "description")

	return doc, nil
}

// LoadDirectory discovers dialect files under dir, sorted by path. An empty
// pattern matches "*.md" and "*.mdx".
func (l *Loader) LoadDirectory(ctx context.Context, dir string, pattern string) ([]*interfaces.SourceDocument, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root := path.Clean(strings.TrimPrefix(dir, "./"))
	if root == "" {
		root = "."
	}

	var docs []*interfaces.SourceDocument

	walkErr := fs.WalkDir(l.fsys, root, func(entryPath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !matchesPattern(entryPath, pattern) {
			return nil
		}
		doc, err := l.Load(ctx, entryPath)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})

	return docs, nil
}

func matchesPattern(entryPath, pattern string) bool {
	base := path.Base(entryPath)
	if strings.TrimSpace(pattern) == "" {
		for _, fallback := range []string{"*.md", "*.mdx"} {
			if ok, _ := path.Match(fallback, base); ok {
				return true
			}
		}
		return false
	}
	ok, err := path.Match(pattern, base)
	return err == nil && ok
}

func stringField(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if value, ok := meta[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
