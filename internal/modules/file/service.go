package file

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// readChunkSize is the step of the upload read loop.
	readChunkSize = 1024

	// DefaultMimeType is stored when the caller declared nothing and
	// sniffing produced nothing usable.
	DefaultMimeType = "application/octet-stream"
)

// Authorizer checks an access token against the external account
// service. Any returned error means the upload must be denied.
type Authorizer interface {
	Verify(ctx context.Context, accessToken string) error
}

// Service implements ingestion and retrieval: validate the upload,
// consult the gate when one is configured, persist, look up by id.
type Service struct {
	repo        Repository
	gate        Authorizer // nil when AUTH_BASE is not configured
	maxFileSize int64
}

func NewService(repo Repository, gate Authorizer, maxFileSize int64) *Service {
	return &Service{repo: repo, gate: gate, maxFileSize: maxFileSize}
}

// ReadUpload drains the multipart file into memory and returns the
// buffer, its size and the transport-reported content type and name.
// The declared size is checked before any read; the loop re-checks the
// ceiling against bytes actually received, so a client lying about its
// size cannot stream past the limit.
func (s *Service) ReadUpload(fh *multipart.FileHeader) ([]byte, int64, string, string, error) {
	if fh.Size > s.maxFileSize {
		return nil, 0, "", "", ErrFileTooBig
	}

	src, err := fh.Open()
	if err != nil {
		return nil, 0, "", "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)
	for {
		n, err := src.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if int64(buf.Len()) > s.maxFileSize {
				return nil, 0, "", "", ErrFileTooBig
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, "", "", fmt.Errorf("failed to read upload: %w", err)
		}
	}

	return buf.Bytes(), int64(buf.Len()), fh.Header.Get("Content-Type"), fh.Filename, nil
}

// Add runs the full ingestion path: validate and buffer the upload,
// verify the access token when a gate is configured, then persist.
// Form-level file_name/mime_type take priority over what the transport
// reported.
func (s *Service) Add(ctx context.Context, fh *multipart.FileHeader, form AddFileForm) (*Record, error) {
	buf, size, transportMime, transportName, err := s.ReadUpload(fh)
	if err != nil {
		return nil, err
	}

	if s.gate != nil {
		if err := s.gate.Verify(ctx, form.AccessToken); err != nil {
			return nil, ErrAccessDenied
		}
	}

	name := form.FileName
	if name == "" {
		name = transportName
	}
	declaredMime := form.MimeType
	if declaredMime == "" {
		declaredMime = transportMime
		// Multipart clients stamp file parts they know nothing about
		// with the generic binary type; treat that as undeclared so
		// the content gets sniffed.
		if normalizeMime(declaredMime) == DefaultMimeType {
			declaredMime = ""
		}
	}

	rec := &Record{
		FileID:   newFileID(),
		File:     buf,
		FileSize: size,
		MimeType: resolveMimeType(declaredMime, buf),
	}
	if name != "" {
		rec.FileName = &name
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	return rec, nil
}

// Get returns the full record, binary payload included.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

// GetInfo returns the metadata-only projection of a record.
func (s *Service) GetInfo(ctx context.Context, id string) (*Record, error) {
	return s.repo.GetMetadataByID(ctx, id)
}

// newFileID returns a random 128-bit identifier as 32 lowercase hex
// characters. Collisions are negligible at this scale; no retry loop.
func newFileID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// resolveMimeType picks the stored content type: caller-declared value
// first, then content sniffing, then the generic binary default.
func resolveMimeType(declared string, buf []byte) string {
	if d := normalizeMime(declared); d != "" {
		return d
	}
	if len(buf) == 0 {
		return DefaultMimeType
	}
	return normalizeMime(mimetype.Detect(buf).String())
}

// normalizeMime strips charset and other media-type parameters.
func normalizeMime(mime string) string {
	return strings.TrimSpace(strings.Split(mime, ";")[0])
}
