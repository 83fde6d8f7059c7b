package handler

import (
	"mime"
	"net/http"

	printapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/printing"
	"github.com/gin-gonic/gin"
)

// printOptions reads the format and archive flag of a print request
func (h *BaseHandler) printOptions(c *gin.Context) (printapp.Format, bool, bool) {
	var req printapp.PrintRequest
	if !h.bindQuery(c, &req) {
		return "", false, false
	}
	format, err := printapp.ParseFormat(req.Format)
	if err != nil {
		h.HandleError(c, err)
		return "", false, false
	}
	return format, req.Archive, true
}

// writeReport sends a rendered report inline, or its archive link as JSON
// when the report was stored
func (h *BaseHandler) writeReport(c *gin.Context, result *printapp.PrintResult) {
	if result.URL != "" {
		result.Data = nil
		h.Success(c, result)
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": result.Filename}))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
