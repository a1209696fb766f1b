package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/emicklei/go-restful/v3"

	service "github.com/furnishlab/preview-server/internal/mask/service"
	model "github.com/furnishlab/preview-server/pkg/mask"
)

// MaskHandler serves materialized mask files from the temp directory.
type MaskHandler struct {
	service *service.MaskService
}

// NewMaskHandler creates a new MaskHandler
func NewMaskHandler(service *service.MaskService) *MaskHandler {
	return &MaskHandler{service: service}
}

// DownloadMask handles GET requests for a mask file by name
func (h *MaskHandler) DownloadMask(req *restful.Request, resp *restful.Response) {
	filename := req.PathParameter("filename")
	if filename == "" {
		writeFileError(resp, http.StatusBadRequest, "INVALID_REQUEST", "Filename is required")
		return
	}

	content, err := h.service.GetFile(req.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			writeFileError(resp, http.StatusNotFound, "NOT_FOUND", "Mask file not found")
			return
		}
		writeFileError(resp, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("Error getting file: %v", err))
		return
	}
	defer content.Reader.Close()

	resp.Header().Set("Content-Type", content.MimeType)
	resp.Header().Set("Content-Length", fmt.Sprintf("%d", content.Size))
	resp.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := io.Copy(resp, content.Reader); err != nil {
		writeFileError(resp, http.StatusInternalServerError, "INTERNAL_ERROR", fmt.Sprintf("Error copying file content: %v", err))
		return
	}
}

// HeadMask handles HEAD requests for mask file metadata
func (h *MaskHandler) HeadMask(req *restful.Request, resp *restful.Response) {
	filename := req.PathParameter("filename")
	if filename == "" {
		writeFileError(resp, http.StatusBadRequest, "INVALID_REQUEST", "Filename is required")
		return
	}

	stat, err := h.service.HeadFile(req.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			writeFileError(resp, http.StatusNotFound, "NOT_FOUND", "Mask file not found")
			return
		}
		writeFileError(resp, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("Error getting file metadata: %v", err))
		return
	}

	resp.Header().Set("Content-Type", stat.Mime)
	resp.Header().Set("Content-Length", fmt.Sprintf("%d", stat.Size))
	resp.Header().Set("Last-Modified", stat.ModTime)
	resp.WriteHeader(http.StatusOK)
}

// HandleMaskOperation handles mask file operations like reclaim
func (h *MaskHandler) HandleMaskOperation(req *restful.Request, resp *restful.Response) {
	operation := req.QueryParameter("operation")

	switch operation {
	case "reclaim":
		h.ReclaimMasks(req, resp)
	default:
		writeFileError(resp, http.StatusBadRequest, "INVALID_REQUEST", "Invalid operation")
	}
}

// ReclaimMasks triggers a retention sweep outside the cron schedule
func (h *MaskHandler) ReclaimMasks(req *restful.Request, resp *restful.Response) {
	result, err := h.service.Reclaim(req.Request.Context())
	if err != nil {
		writeFileError(resp, http.StatusInternalServerError, "INTERNAL_ERROR", fmt.Sprintf("Error reclaiming files: %v", err))
		return
	}

	resp.WriteAsJson(result)
}

// writeFileError writes a structured error response
func writeFileError(resp *restful.Response, statusCode int, code, message string) {
	resp.WriteHeader(statusCode)
	resp.WriteAsJson(model.FileError{
		Code:    code,
		Message: message,
	})
}
