package api

import (
	"github.com/emicklei/go-restful/v3"

	model "github.com/furnishlab/preview-server/pkg/segment"
)

// RegisterRoutes registers the segmentation routes
func RegisterRoutes(ws *restful.WebService, handler *SegmentHandler) {
	ws.Route(ws.POST("/segment").To(handler.Segment).
		Doc("segment an uploaded image, falling back across strategies").
		Param(ws.FormParameter("file", "image file (png, jpg, jpeg)").DataType("file").Required(true)).
		Param(ws.FormParameter("strategy", "optional strategy name to run exclusively").DataType("string")).
		Consumes("multipart/form-data").
		Returns(200, "OK", model.Result{}).
		Returns(400, "Bad Request", model.Error{}).
		Returns(500, "Internal Server Error", model.Error{}))

	ws.Route(ws.POST("/segment/prompt").To(handler.SegmentPrompt).
		Doc("segment regions selected by point/box prompts").
		Param(ws.FormParameter("file", "image file (png, jpg, jpeg)").DataType("file").Required(true)).
		Param(ws.FormParameter("prompts", "JSON with points, labels and boxes").DataType("string").Required(true)).
		Consumes("multipart/form-data").
		Returns(200, "OK", model.Result{}).
		Returns(400, "Bad Request", model.Error{}).
		Returns(500, "Internal Server Error", model.Error{}))

	ws.Route(ws.POST("/segment/color").To(handler.SegmentColor).
		Doc("segment by color clustering only").
		Param(ws.FormParameter("file", "image file (png, jpg, jpeg)").DataType("file").Required(true)).
		Consumes("multipart/form-data").
		Returns(200, "OK", model.Result{}).
		Returns(400, "Bad Request", model.Error{}).
		Returns(500, "Internal Server Error", model.Error{}))
}
