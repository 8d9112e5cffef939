package handler

import (
	"errors"
	"log/slog"
	"net/http"

	docsysSvc "atrium/internal/domain/services/docsystem"
	"atrium/internal/httputil"
)

// multipartMemoryLimit is the in-memory threshold for multipart parsing;
// larger file parts spill to temp files.
const multipartMemoryLimit = 10 << 20 // 10MB

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService    docsysSvc.FileService
	maxUploadBytes int64 // request body cap for multipart uploads
	logger         *slog.Logger
}

// NewFileHandler creates a new file handler. maxUploadBytes should be the
// per-file size ceiling; the body cap adds headroom for multipart framing.
func NewFileHandler(fileService docsysSvc.FileService, maxUploadBytes int64, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService:    fileService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadFile uploads a file into a folder
// POST /api/folders/{id}/files (multipart/form-data: "file" part, optional "description" field)
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	folderID := r.PathValue("id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	// Cap the request body with 1MB of headroom for multipart framing.
	// Oversize files that slip under this cap are still rejected by the
	// capacity policy with a proper problem response.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1<<20)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "multipart request must include a \"file\" part")
		return
	}
	defer part.Close()

	req := &docsysSvc.UploadFileRequest{
		UserID:      userID,
		FolderID:    folderID,
		DisplayName: header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     part,
		Size:        header.Size,
	}
	if desc := r.FormValue("description"); desc != "" {
		req.Description = &desc
	}

	result, err := h.fileService.UploadFile(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// GetFile retrieves a file record with a fresh download URL
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	file, err := h.fileService.GetFile(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile deletes a file and returns the owning folder's updated snapshot
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	folder, err := h.fileService.DeleteFile(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// Download resolves a short-lived download URL for the file's binary
// GET /api/files/{id}/download
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	url, err := h.fileService.ResolveDownload(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"url": url})
}
