package skill

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-skillmd/internal/logging"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

// Writer persists assembled skill documents under a base directory.
type Writer struct {
	dir    string
	logger interfaces.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterLogger overrides the no-op default logger.
func WithWriterLogger(logger interfaces.Logger) WriterOption {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWriter builds a writer rooted at dir, defaulting to the working directory.
func NewWriter(dir string, opts ...WriterOption) *Writer {
	writer := &Writer{
		dir:    strings.TrimSpace(dir),
		logger: logging.NoOp(),
	}
	if writer.dir == "" {
		writer.dir = "."
	}
	for _, opt := range opts {
		if opt != nil {
			opt(writer)
		}
	}
	return writer
}

// Write stores the document and returns the path written. An explicit
// outputPath wins over the slug-derived "<slug>.md" default; relative paths
// resolve against the writer's base directory.
func (w *Writer) Write(doc *interfaces.SkillDocument, outputPath string) (string, error) {
	if doc == nil {
		return "", errors.New("skill document is nil")
	}

	target := strings.TrimSpace(outputPath)
	switch {
	case target == "":
		name := doc.Slug
		if name == "" {
			name = "skill"
		}
		target = filepath.Join(w.dir, name+".md")
	case !filepath.IsAbs(target):
		target = filepath.Join(w.dir, target)
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(target, []byte(doc.Markdown), 0o644); err != nil {
		return "", fmt.Errorf("write skill %s: %w", target, err)
	}

	logging.WithFields(w.logger, map[string]any{
		"path":  target,
		"bytes": len(doc.Markdown),
	}).Info("skill.write.success")

	return target, nil
}
