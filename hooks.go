package tryouts

import "sync"

// Hook function types for run events
type (
	// FileAcceptedHook is called when a file has been compiled
	FileAcceptedHook func(file string)

	// FileRejectedHook is called when a file is skipped as a whole
	FileRejectedHook func(file string, err error)

	// VersionResetHook is called when a file's newer version discards
	// everything compiled before it
	VersionResetHook func(file string, version int)
)

// hooks manages event callbacks for a run
type hooks struct {
	mu             sync.RWMutex
	onFileAccepted []FileAcceptedHook
	onFileRejected []FileRejectedHook
	onVersionReset []VersionResetHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnFileAccepted registers a callback for compiled files
func (h *hooks) OnFileAccepted(fn FileAcceptedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFileAccepted = append(h.onFileAccepted, fn)
}

// OnFileRejected registers a callback for skipped files
func (h *hooks) OnFileRejected(fn FileRejectedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFileRejected = append(h.onFileRejected, fn)
}

// OnVersionReset registers a callback for version resets
func (h *hooks) OnVersionReset(fn VersionResetHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onVersionReset = append(h.onVersionReset, fn)
}

func (h *hooks) fileAccepted(file string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onFileAccepted {
		hook(file)
	}
}

func (h *hooks) fileRejected(file string, err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onFileRejected {
		hook(file, err)
	}
}

func (h *hooks) versionReset(file string, version int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onVersionReset {
		hook(file, version)
	}
}
