package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/julienschmidt/httprouter"

	"cmsadmin/logger"
)

// DocsHandler serves the operator guide, rendered from markdown and cached
// after the first hit.
type DocsHandler struct {
	docsDir string

	mu    sync.RWMutex
	cache map[string]template.HTML
}

// NewDocsHandler creates a new instance of DocsHandler.
func NewDocsHandler() *DocsHandler {
	log := logger.Get()

	docsDir, err := findDocsDir()
	if err != nil {
		log.Error().Err(err).Msg("Failed to find documentation directory")
	} else {
		log.Info().Str("docs_dir", docsDir).Msg("Found documentation directory")
	}

	return &DocsHandler{
		docsDir: docsDir,
		cache:   make(map[string]template.HTML),
	}
}

// Routes lists the documentation route; the caller wraps it with the auth
// gate.
func (h *DocsHandler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/docs", h.Page},
	}
}

// Page renders the admin guide.
func (h *DocsHandler) Page(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := CreateHandlerLogger("DocsPage", r)

	if h.docsDir == "" {
		log.Error().Msg("Documentation directory not configured")
		http.Error(w, "Documentation not available", http.StatusServiceUnavailable)
		return
	}

	const doc = "admin"

	h.mu.RLock()
	rendered, found := h.cache[doc]
	h.mu.RUnlock()

	if !found {
		content, err := os.ReadFile(filepath.Join(h.docsDir, doc+".md"))
		if err != nil {
			log.Error().Err(err).Str("doc", doc).Msg("Failed to read documentation")
			http.NotFound(w, r)
			return
		}
		rendered = template.HTML(markdown.ToHTML(content, nil, nil))

		h.mu.Lock()
		h.cache[doc] = rendered
		h.mu.Unlock()
		log.Debug().Str("doc", doc).Msg("Documentation rendered and cached")
	}

	data := PageData("Guide", "docs")
	data["Doc"] = rendered
	renderTemplateInternal(w, r, "docs", data)
}

// findDocsDir searches the usual locations for the docs directory.
func findDocsDir() (string, error) {
	possibleDirs := []string{
		"./docs",
		"../docs",
		"/app/docs",
	}

	if execPath, err := os.Executable(); err == nil {
		possibleDirs = append(possibleDirs, filepath.Join(filepath.Dir(execPath), "docs"))
	}

	for _, dir := range possibleDirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
				return dir, nil
			}
		}
	}

	return "", fmt.Errorf("documentation directory not found in: %v", possibleDirs)
}
