// Package host abstracts the optional messaging-platform container the
// feed runs inside. When present, the host wants lifecycle calls at
// startup and can supply a theme accent color; when absent every call is
// a no-op, so callers invoke the interface unconditionally.
package host

import "os"

// Host is the surface the application uses from its container.
type Host interface {
	// Ready signals that the widget has finished initializing.
	Ready()

	// Expand asks the container for the full viewport.
	Expand()

	// ThemeAccent returns the container's accent color as a hex string,
	// or "" when the host supplies none.
	ThemeAccent() string
}

// Detect returns the live host when the container environment is
// present, otherwise a no-op host.
func Detect() Host {
	if os.Getenv("NOTIFEED_HOST") != "" {
		return &envHost{accent: os.Getenv("NOTIFEED_HOST_ACCENT")}
	}
	return noopHost{}
}

// envHost is a host handshaked through environment variables, as set by
// the wrapper that launches the feed inside the platform container.
type envHost struct {
	accent string
}

func (h *envHost) Ready()  {}
func (h *envHost) Expand() {}

func (h *envHost) ThemeAccent() string {
	return h.accent
}

// noopHost is used when no container is detected.
type noopHost struct{}

func (noopHost) Ready()              {}
func (noopHost) Expand()             {}
func (noopHost) ThemeAccent() string { return "" }
