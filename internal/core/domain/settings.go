package domain

const unknownDescription = "Unknown"

// RendererBackend selects the document-rendering collaborator.
type RendererBackend string

// Available renderer backends.
const (
	// RendererPoppler shells out to the poppler utilities
	// (pdfinfo, pdftoppm, pdftotext).
	RendererPoppler RendererBackend = "poppler"

	// RendererNative extracts words in pure Go and uses poppler for rasters.
	RendererNative RendererBackend = "native"
)

// IsValid returns true if the backend is recognised.
func (b RendererBackend) IsValid() bool {
	switch b {
	case RendererPoppler, RendererNative:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b RendererBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b RendererBackend) Description() string {
	switch b {
	case RendererPoppler:
		return "Poppler utilities (pdftoppm + pdftotext)"
	case RendererNative:
		return "Native Go text layout (poppler for rasters)"
	default:
		return unknownDescription
	}
}

// AllRendererBackends returns all available backends.
func AllRendererBackends() []RendererBackend {
	return []RendererBackend{RendererPoppler, RendererNative}
}

// RendererSettings configures the rendering collaborator.
type RendererSettings struct {
	// Backend selects the implementation.
	Backend RendererBackend

	// PopplerPath is a directory holding the poppler binaries.
	// Empty means look them up in PATH.
	PopplerPath string

	// Oversample renders rasters this many times larger and
	// downsamples, which keeps small zoom factors legible.
	Oversample int
}

// ZoomSettings configures zoom behaviour.
type ZoomSettings struct {
	// Step is the multiplier applied by zoom in / zoom out.
	Step float64

	// Min and Max clamp the zoom factor.
	Min float64
	Max float64

	// Initial is the zoom factor used when a document is opened.
	Initial float64
}

// Clamp limits f to [Min, Max].
func (z ZoomSettings) Clamp(f float64) float64 {
	if f < z.Min {
		return z.Min
	}
	if f > z.Max {
		return z.Max
	}
	return f
}

// SelectionSettings configures selection side effects.
type SelectionSettings struct {
	// CopyOnRelease publishes committed text to the clipboard.
	CopyOnRelease bool
}

// WatchSettings configures reloading on file changes.
type WatchSettings struct {
	// Enabled turns the file watcher on.
	Enabled bool

	// IntervalMs is the minimum time between reloads.
	IntervalMs int
}

// ViewerSettings holds all application settings.
type ViewerSettings struct {
	Renderer  RendererSettings
	Zoom      ZoomSettings
	Selection SelectionSettings
	Watch     WatchSettings
}

// DefaultViewerSettings returns settings with sensible defaults.
func DefaultViewerSettings() ViewerSettings {
	return ViewerSettings{
		Renderer: RendererSettings{
			Backend:    RendererPoppler,
			Oversample: 2,
		},
		Zoom: ZoomSettings{
			Step:    1.2,
			Min:     0.05,
			Max:     8.0,
			Initial: 1.0,
		},
		Selection: SelectionSettings{
			CopyOnRelease: true,
		},
		Watch: WatchSettings{
			Enabled:    true,
			IntervalMs: 500,
		},
	}
}
