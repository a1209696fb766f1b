package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/emicklei/go-restful/v3"
	"github.com/gabriel-vasile/mimetype"

	"github.com/furnishlab/preview-server/internal/imaging"
	maskservice "github.com/furnishlab/preview-server/internal/mask/service"
	service "github.com/furnishlab/preview-server/internal/segment/service"
	"github.com/furnishlab/preview-server/pkg/id"
	"github.com/furnishlab/preview-server/pkg/logger"
	model "github.com/furnishlab/preview-server/pkg/segment"
)

var log = logger.New()

// allowedExtensions mirrors the upload contract: PNG and JPEG only.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// downloadURLPrefix is where the mask routes serve materialized files.
const downloadURLPrefix = "/api/v1/masks/"

// SegmentHandler accepts image uploads and turns them into mask files.
type SegmentHandler struct {
	segmenter *service.Service
	masks     *maskservice.MaskService
}

// NewSegmentHandler creates a new SegmentHandler
func NewSegmentHandler(segmenter *service.Service, masks *maskservice.MaskService) *SegmentHandler {
	return &SegmentHandler{
		segmenter: segmenter,
		masks:     masks,
	}
}

// Segment handles POST /segment: run the fallback chain, or the strategy
// named in the optional "strategy" form field.
func (h *SegmentHandler) Segment(req *restful.Request, resp *restful.Response) {
	segReq, ok := h.readUpload(req, resp)
	if !ok {
		return
	}

	strategy := req.Request.FormValue("strategy")
	h.segment(req, resp, strategy, segReq)
}

// SegmentPrompt handles POST /segment/prompt: prompt-guided segmentation
// with points/boxes from the "prompts" form field.
func (h *SegmentHandler) SegmentPrompt(req *restful.Request, resp *restful.Response) {
	segReq, ok := h.readUpload(req, resp)
	if !ok {
		return
	}

	promptsJSON := req.Request.FormValue("prompts")
	if promptsJSON == "" {
		writeSegmentError(resp, http.StatusBadRequest, "INVALID_REQUEST", "Form field 'prompts' is required")
		return
	}

	var prompts model.Prompts
	if err := json.Unmarshal([]byte(promptsJSON), &prompts); err != nil {
		writeSegmentError(resp, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("Invalid prompts JSON: %v", err))
		return
	}
	if prompts.Empty() {
		writeSegmentError(resp, http.StatusBadRequest, "INVALID_REQUEST", "Prompts must contain at least one point or box")
		return
	}
	if len(prompts.Labels) > 0 && len(prompts.Labels) != len(prompts.Points) {
		writeSegmentError(resp, http.StatusBadRequest, "INVALID_REQUEST", "Labels must match points one to one")
		return
	}

	segReq.Prompts = &prompts
	h.segment(req, resp, "sam2-prompt", segReq)
}

// SegmentColor handles POST /segment/color: color clustering only.
func (h *SegmentHandler) SegmentColor(req *restful.Request, resp *restful.Response) {
	segReq, ok := h.readUpload(req, resp)
	if !ok {
		return
	}

	h.segment(req, resp, "color-cluster", segReq)
}

// readUpload validates and decodes the multipart upload. On failure it has
// already written the error response and returns ok=false. No file is
// written to disk before validation passes.
func (h *SegmentHandler) readUpload(req *restful.Request, resp *restful.Response) (*model.Request, bool) {
	file, header, err := req.Request.FormFile("file")
	if err != nil {
		writeSegmentError(resp, http.StatusBadRequest, "INVALID_REQUEST", "Multipart field 'file' is required")
		return nil, false
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		writeSegmentError(resp, http.StatusBadRequest, "INVALID_FILE_TYPE", "Invalid file type. Only PNG, JPG, JPEG allowed.")
		return nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeSegmentError(resp, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("Error reading upload: %v", err))
		return nil, false
	}

	// The extension check catches honest mistakes; sniffing catches renamed
	// non-images before they reach a strategy.
	if mime := mimetype.Detect(data); !strings.HasPrefix(mime.String(), "image/") {
		writeSegmentError(resp, http.StatusBadRequest, "INVALID_FILE_TYPE", fmt.Sprintf("Upload is %s, not an image", mime.String()))
		return nil, false
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		writeSegmentError(resp, http.StatusBadRequest, "INVALID_IMAGE", fmt.Sprintf("Corrupt image: %v", err))
		return nil, false
	}

	return &model.Request{
		Image:    img,
		BaseName: id.SanitizeBaseName(header.Filename),
	}, true
}

// segment dispatches, materializes the masks and writes the response.
func (h *SegmentHandler) segment(req *restful.Request, resp *restful.Response, strategy string, segReq *model.Request) {
	ctx := req.Request.Context()

	segmentation, err := h.segmenter.Segment(ctx, strategy, segReq)
	if err != nil {
		if errors.Is(err, service.ErrUnknownStrategy) {
			writeSegmentError(resp, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
		log.Error("Segmentation failed for %s: %v", segReq.BaseName, err)
		writeSegmentError(resp, http.StatusInternalServerError, "SEGMENTATION_FAILED", fmt.Sprintf("Segmentation failed: %v", err))
		return
	}

	saved, err := h.masks.SaveMasks(ctx, segReq.BaseName, segmentation.Masks)
	if err != nil {
		writeSegmentError(resp, http.StatusInternalServerError, "INTERNAL_ERROR", fmt.Sprintf("Error writing mask files: %v", err))
		return
	}

	masks := make([]model.MaskInfo, 0, len(saved))
	for _, m := range saved {
		masks = append(masks, model.MaskInfo{
			ID:          m.ID,
			Filename:    m.Filename,
			DownloadURL: downloadURLPrefix + m.Filename,
		})
	}

	resp.WriteHeaderAndJson(http.StatusOK, model.Result{
		Success:     true,
		Message:     fmt.Sprintf("Generated %d furniture part masks", len(masks)),
		Strategy:    segmentation.Strategy,
		Description: segmentation.Description,
		Masks:       masks,
	}, restful.MIME_JSON)
}

// writeSegmentError writes a structured error response
func writeSegmentError(resp *restful.Response, statusCode int, code, message string) {
	resp.WriteHeader(statusCode)
	resp.WriteAsJson(model.Error{
		Code:    code,
		Message: message,
	})
}
