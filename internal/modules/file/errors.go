package file

import "errors"

var (
	ErrFileNotFound = errors.New("file not found")
	ErrFileTooBig   = errors.New("file exceeds maximum allowed size")
	ErrAccessDenied = errors.New("access denied")
)
