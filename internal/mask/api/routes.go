package api

import (
	"github.com/emicklei/go-restful/v3"

	model "github.com/furnishlab/preview-server/pkg/mask"
)

// RegisterRoutes registers the mask file routes
func RegisterRoutes(ws *restful.WebService, handler *MaskHandler) {
	ws.Route(ws.GET("/masks/{filename}").To(handler.DownloadMask).
		Doc("download a mask file by name").
		Param(ws.PathParameter("filename", "name of the mask file").DataType("string")).
		Produces("image/png").
		Returns(200, "OK", nil).
		Returns(400, "Bad Request", model.FileError{}).
		Returns(404, "Not Found", model.FileError{}))

	ws.Route(ws.HEAD("/masks/{filename}").To(handler.HeadMask).
		Doc("get mask file metadata").
		Param(ws.PathParameter("filename", "name of the mask file").DataType("string")).
		Returns(200, "OK", nil).
		Returns(400, "Bad Request", model.FileError{}).
		Returns(404, "Not Found", model.FileError{}))

	ws.Route(ws.POST("/masks").To(handler.HandleMaskOperation).
		Doc("handle mask file operations like reclaim").
		Param(ws.QueryParameter("operation", "operation to perform (reclaim)").DataType("string").Required(true)).
		Returns(200, "OK", model.ReclaimResult{}).
		Returns(400, "Bad Request", model.FileError{}).
		Returns(500, "Internal Server Error", model.FileError{}))
}
