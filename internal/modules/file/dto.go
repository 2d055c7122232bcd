package file

// AddFileForm carries the optional multipart fields that accompany the
// binary part. Length limits live here, at the request schema, not in
// the store.
type AddFileForm struct {
	FileName    string `form:"file_name" binding:"omitempty,max=256"`
	MimeType    string `form:"mime_type" binding:"omitempty,max=128"`
	AccessToken string `form:"access_token"`
}

type GetFileRequest struct {
	FileID string `json:"file_id" binding:"required"`
}

// Metadata is the projection returned by every JSON endpoint; the
// binary payload is never included.
type Metadata struct {
	FileID   string  `json:"file_id"`
	FileName *string `json:"file_name,omitempty"`
	FileSize int64   `json:"file_size"`
	MimeType string  `json:"mime_type"`
}

func NewMetadata(r *Record) Metadata {
	return Metadata{
		FileID:   r.FileID,
		FileName: r.FileName,
		FileSize: r.FileSize,
		MimeType: r.MimeType,
	}
}
