package refdata

import (
	"io/fs"
	"sync"

	"github.com/goliatone/go-skillmd/internal/logging"
	"github.com/goliatone/go-skillmd/pkg/interfaces"
)

// Loader reads the companion data file backing <Ref> resolution. Tables are
// parsed once per path and kept for the process lifetime; the parse is
// idempotent, so whichever caller populates the cache first wins and later
// callers see the same value.
type Loader struct {
	fsys   fs.FS
	logger interfaces.Logger

	mu    sync.Mutex
	cache map[string]interfaces.ReferenceTables
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger overrides the no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader constructs a loader reading companion files from fsys.
func NewLoader(fsys fs.FS, opts ...Option) *Loader {
	loader := &Loader{
		fsys:   fsys,
		logger: logging.NoOp(),
		cache:  map[string]interfaces.ReferenceTables{},
	}
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

// Load returns the tables declared in the companion file at path. A missing
// or unreadable file falls back to empty tables with a diagnostic; references
// then stay unresolved but the pipeline keeps going. The diagnostic is
// emitted only by the load that actually touched the filesystem.
func (l *Loader) Load(path string) (interfaces.ReferenceTables, []interfaces.Diagnostic) {
	l.mu.Lock()
	if tables, ok := l.cache[path]; ok {
		l.mu.Unlock()
		return tables, nil
	}
	l.mu.Unlock()

	tables := interfaces.ReferenceTables{
		Substitutions: map[string]string{},
		References:    map[string]interfaces.Reference{},
	}
	var diags []interfaces.Diagnostic

	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		diags = append(diags, interfaces.Diagnostic{
			Source:  path,
			Message: "reference data unavailable: " + err.Error(),
		})
		logging.WithFields(l.logger, map[string]any{
			"path":  path,
			"error": err,
		}).Warn("refdata.load.missing")
	} else {
		tables = Parse(string(data))
		logging.WithFields(l.logger, map[string]any{
			"path":          path,
			"substitutions": len(tables.Substitutions),
			"references":    len(tables.References),
		}).Debug("refdata.load.success")
	}

	l.mu.Lock()
	if cached, ok := l.cache[path]; ok {
		tables = cached
	} else {
		l.cache[path] = tables
	}
	l.mu.Unlock()

	return tables, diags
}
