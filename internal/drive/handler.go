package drive

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	source   Source
	importer *Importer
}

func NewHandler(source Source, importer *Importer) *Handler {
	return &Handler{
		source:   source,
		importer: importer,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/drive/files", h.ListFiles).Methods(http.MethodGet)
	router.HandleFunc("/api/drive/import", h.ImportFile).Methods(http.MethodPost)
	router.HandleFunc("/api/drive/import/folder", h.ImportFolder).Methods(http.MethodPost)
}

// resolveFolder prefers an explicit folderId and falls back to a slash separated path.
func (h *Handler) resolveFolder(r *http.Request) (string, error) {
	query := r.URL.Query()
	if folderPath := query.Get("path"); folderPath != "" {
		return h.source.FindFolderByPath(r.Context(), folderPath)
	}
	return query.Get("folderId"), nil
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	folderID, err := h.resolveFolder(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	files, err := h.source.ListFiles(r.Context(), folderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if files == nil {
		files = []*File{}
	}

	writeJSON(w, http.StatusOK, files)
}

func (h *Handler) ImportFile(w http.ResponseWriter, r *http.Request) {
	fileID := r.URL.Query().Get("fileId")
	if fileID == "" {
		writeError(w, http.StatusBadRequest, errors.New("fileId parameter is required"))
		return
	}

	result, err := h.importer.ImportFile(r.Context(), fileID)
	if err != nil {
		writeError(w, importStatus(err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "result": result})
}

func (h *Handler) ImportFolder(w http.ResponseWriter, r *http.Request) {
	folderID, err := h.resolveFolder(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if folderID == "" {
		writeError(w, http.StatusBadRequest, errors.New("folderId or path parameter is required"))
		return
	}

	result, err := h.importer.ImportFolder(r.Context(), folderID)
	if err != nil {
		writeError(w, importStatus(err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "result": result})
}

func importStatus(err error) int {
	if errors.Is(err, domain.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("drive request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
