// Package admin exposes a read-only view of stored files. It is wired
// only when the service runs with DEBUG enabled.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/likecompany/file/internal/modules/file"
	"github.com/likecompany/file/internal/pkg/response"
)

type Handler struct {
	files file.Repository
}

func NewHandler(files file.Repository) *Handler {
	return &Handler{files: files}
}

// ListFiles returns the metadata of every stored record.
func (h *Handler) ListFiles(c *gin.Context) {
	recs, err := h.files.ListMetadata(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, file.ReasonInternalError)
		return
	}

	items := make([]file.Metadata, 0, len(recs))
	for _, rec := range recs {
		items = append(items, file.NewMetadata(rec))
	}
	response.Ok(c, items)
}

func RegisterRoutes(r *gin.Engine, h *Handler, auth gin.HandlerFunc) {
	g := r.Group("/admin")
	g.Use(auth)
	{
		g.GET("/files", h.ListFiles)
	}
}
