package interfaces

// MarkdownRenderer converts normalized Markdown into HTML for preview
// purposes. Rendering is never part of the normalization path.
type MarkdownRenderer interface {
	// Render converts Markdown into HTML using the renderer's defaults.
	Render(markdown []byte) ([]byte, error)
	// RenderWithOptions converts Markdown into HTML using the supplied overrides.
	RenderWithOptions(markdown []byte, opts RenderOptions) ([]byte, error)
}

// RenderOptions customises preview rendering, keeping option names readable
// for configuration unmarshalling and CLI flags.
type RenderOptions struct {
	Extensions []string
	HardWraps  bool
	Unsafe     bool
}
