// Package models defines core data structures for indexed documents, search
// results, and support tickets.
package models

// DocumentRecord represents one indexed PDF file from the documentation drive.
// Records are produced by the offline index builder and are immutable once loaded.
type DocumentRecord struct {
	// Name is the display filename, possibly containing spaces and Cyrillic.
	Name string `json:"name"`
	// Path is the drive path uniquely identifying the file location.
	Path string `json:"path"`
	// NormName is the normalized form of Name, precomputed at index-build time.
	// May be empty for indexes built by older tooling; scoring degrades gracefully.
	NormName string `json:"norm_name"`
	// Text is an optional plain-text snippet extracted from the PDF at build
	// time, used as extra context for the AI assistant.
	Text string `json:"text,omitempty"`
}

// SearchText returns the combined name+path surface used by marker-based
// matching. Callers lowercase it themselves.
func (d DocumentRecord) SearchText() string {
	return d.Name + " " + d.Path
}
