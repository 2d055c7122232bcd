package file

// Record is the sole persisted entity: one row per upload, binary
// payload included. Rows are created once and never mutated.
type Record struct {
	FileID   string  `gorm:"column:file_id;primaryKey" json:"file_id"`
	File     []byte  `gorm:"column:file" json:"-"`
	FileName *string `gorm:"column:file_name;size:256" json:"file_name,omitempty"`
	FileSize int64   `gorm:"column:file_size" json:"file_size"`
	MimeType string  `gorm:"column:mime_type" json:"mime_type"`
}

func (Record) TableName() string { return "files" }
