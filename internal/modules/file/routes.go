package file

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/likecompany/file/internal/pkg/response"
)

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.POST("/", h.Healthcheck)
	r.POST("/addFile", h.AddFile)
	r.POST("/getFile", h.GetFile)
	r.GET("/file/:file_id", h.DownloadFile)
}

// RegisterFallbacks installs the envelope responses for unmatched
// routes and disallowed methods.
func RegisterFallbacks(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "NOT_FOUND")
	})
	r.NoMethod(func(c *gin.Context) {
		response.Fail(c, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
	})
}
