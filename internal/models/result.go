package models

// SearchResult represents a single search hit: either an indexed document with
// a relevance score, or a synthetic folder-link pointing at a curated drive
// folder. Callers must check IsFolderLink before treating Path as a file.
type SearchResult struct {
	Name string `json:"name"`
	Path string `json:"path"`
	// Relevance is the heuristic score; zero for folder links.
	Relevance float64 `json:"relevance,omitempty"`
	// IsFolderLink marks a synthetic "go look in this folder" result.
	IsFolderLink bool `json:"is_folder_link,omitempty"`
	// FolderLink is the browsable folder URL when IsFolderLink is set.
	FolderLink string `json:"folder_link,omitempty"`
}

// FolderResult builds a folder-link pseudo-result with the given label and URL.
func FolderResult(name, link string) SearchResult {
	return SearchResult{
		Name:         name,
		Path:         link,
		IsFolderLink: true,
		FolderLink:   link,
	}
}

// DocumentResult builds a scored result from an index record.
func DocumentResult(doc DocumentRecord, relevance float64) SearchResult {
	return SearchResult{
		Name:      doc.Name,
		Path:      doc.Path,
		Relevance: relevance,
	}
}
