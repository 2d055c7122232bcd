package file

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/likecompany/file/internal/pkg/response"
)

// Reason strings of the error envelope.
const (
	ReasonFileTooBig       = "FILE_IS_TOO_BIG"
	ReasonFileNotExists    = "FILE_NOT_EXISTS"
	ReasonAccessDenied     = "ACCESS_DENIED"
	ReasonValidationFailed = "REQUEST_VALIDATION_FAILED"
	ReasonInternalError    = "INTERNAL_ERROR"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AddFile accepts a multipart upload and answers with the metadata of
// the stored record.
func (h *Handler) AddFile(c *gin.Context) {
	var form AddFileForm
	if err := c.ShouldBind(&form); err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, ReasonValidationFailed)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, ReasonValidationFailed)
		return
	}

	rec, err := h.service.Add(c.Request.Context(), fh, form)
	if err != nil {
		status, reason := translateError(err)
		response.Fail(c, status, reason)
		return
	}

	response.Ok(c, NewMetadata(rec))
}

// GetFile answers a metadata lookup by file_id.
func (h *Handler) GetFile(c *gin.Context) {
	var req GetFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, ReasonValidationFailed)
		return
	}

	rec, err := h.service.GetInfo(c.Request.Context(), req.FileID)
	if err != nil {
		status, reason := translateError(err)
		response.Fail(c, status, reason)
		return
	}

	response.Ok(c, NewMetadata(rec))
}

// DownloadFile streams the raw payload with the stored content type.
func (h *Handler) DownloadFile(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("file_id"))
	if err != nil {
		status, reason := translateError(err)
		response.Fail(c, status, reason)
		return
	}

	c.Data(http.StatusOK, rec.MimeType, rec.File)
}

func (h *Handler) Healthcheck(c *gin.Context) {
	response.Ok(c, true)
}

// translateError is the single point where the domain taxonomy becomes
// an HTTP status plus a reason string.
func translateError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrFileTooBig):
		return http.StatusRequestEntityTooLarge, ReasonFileTooBig
	case errors.Is(err, ErrFileNotFound):
		return http.StatusNotFound, ReasonFileNotExists
	case errors.Is(err, ErrAccessDenied):
		return http.StatusBadRequest, ReasonAccessDenied
	default:
		return http.StatusInternalServerError, ReasonInternalError
	}
}
