package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"cmsadmin/api"
	"cmsadmin/constants"
	"cmsadmin/state"
)

// UploadHandler proxies editor image uploads to the backend. The browser
// never talks to the backend directly, so the upload goes through the
// console and carries the operator's token.
type UploadHandler struct {
	stateManager state.StateManager
}

// NewUploadHandler creates a new instance of UploadHandler.
func NewUploadHandler(sm state.StateManager) *UploadHandler {
	return &UploadHandler{stateManager: sm}
}

// Routes lists the upload route; the caller wraps it with the auth gate.
func (h *UploadHandler) Routes() []Route {
	return []Route{
		{http.MethodPost, "/upload", h.Upload},
	}
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// Upload streams the posted file to the backend and answers with the stored
// URL as JSON for the editor widget.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := CreateHandlerLogger("Upload", r).With().Str("upload_id", uuid.NewString()).Logger()

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		log.Warn().Err(err).Msg("Upload body rejected")
		writeJSONError(w, http.StatusRequestEntityTooLarge, "The file is too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "A file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		log.Warn().Str("filename", header.Filename).Msg("Rejected upload with unsupported extension")
		writeJSONError(w, http.StatusUnsupportedMediaType, "Only image files are accepted")
		return
	}

	client := h.stateManager.GetAPIClient()
	if client == nil {
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	result, err := client.Upload(r.Context(), filepath.Base(header.Filename), file)
	if err != nil {
		log.Warn().Err(err).Str("filename", header.Filename).Msg("Backend upload failed")
		status := http.StatusBadGateway
		detail := "The upload failed, please try again"
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) && reqErr.Status != 0 {
			status = reqErr.Status
			if reqErr.Detail != "" {
				detail = reqErr.Detail
			}
		}
		writeJSONError(w, status, detail)
		return
	}

	log.Info().Str("filename", header.Filename).Str("url", result.URL).Msg("Upload stored")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Error().Err(err).Msg("Failed to encode upload response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": message})
}
