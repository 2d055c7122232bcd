package e2e

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/likecompany/file/internal/admin"
	"github.com/likecompany/file/internal/authgate"
	"github.com/likecompany/file/internal/database"
	"github.com/likecompany/file/internal/middleware"
	"github.com/likecompany/file/internal/modules/file"
	jwtsvc "github.com/likecompany/file/internal/pkg/jwt"
)

const testMaxFileSize = 64 * 1024

type TestSuite struct {
	router     *gin.Engine
	repo       file.Repository
	jwtService *jwtsvc.Service
}

type Envelope struct {
	Ok     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
}

type suiteOptions struct {
	authBase string
}

// setupSuite wires the full service against in-memory SQLite, the same
// way cmd/api/main.go does it.
func setupSuite(t *testing.T, opts suiteOptions) *TestSuite {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.AutoMigrate(&file.Record{}))

	repo := file.NewRepository(db)

	var gate file.Authorizer
	if opts.authBase != "" {
		gate = authgate.NewClient(opts.authBase)
	}

	svc := file.NewService(repo, gate, testMaxFileSize)
	h := file.NewHandler(svc)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	file.RegisterFallbacks(r)
	file.RegisterRoutes(r, h)

	adminHandler := admin.NewHandler(repo)
	admin.RegisterRoutes(r, adminHandler, middleware.AdminAuth(jwtService))

	return &TestSuite{router: r, repo: repo, jwtService: jwtService}
}

func (s *TestSuite) upload(t *testing.T, fields map[string]string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if content != nil {
		// A fixed part filename: an empty one would make the part parse
		// as a plain form value instead of a file.
		part, err := w.CreateFormFile("file", "upload.bin")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/addFile", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *TestSuite) postJSON(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "raw body: %s", w.Body.String())
	return env
}

func parseMetadata(t *testing.T, env Envelope) file.Metadata {
	t.Helper()
	var meta file.Metadata
	require.NoError(t, json.Unmarshal(env.Result, &meta))
	return meta
}

func reasonOf(t *testing.T, env Envelope) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(env.Result, &s))
	return s
}

func (s *TestSuite) storedCount(t *testing.T) int64 {
	t.Helper()
	n, err := s.repo.Count(t.Context())
	require.NoError(t, err)
	return n
}

func TestUploadAndRetrieve(t *testing.T) {
	suite := setupSuite(t, suiteOptions{})

	t.Run("upload 10-byte file with name and no mime type", func(t *testing.T) {
		w := suite.upload(t, map[string]string{"file_name": "a.txt"}, []byte("0123456789"))
		require.Equal(t, http.StatusOK, w.Code)

		env := parseEnvelope(t, w)
		assert.True(t, env.Ok)

		meta := parseMetadata(t, env)
		assert.Equal(t, int64(10), meta.FileSize)
		require.NotNil(t, meta.FileName)
		assert.Equal(t, "a.txt", *meta.FileName)
		assert.Len(t, meta.FileID, 32)
	})

	t.Run("metadata lookup returns what was stored", func(t *testing.T) {
		w := suite.upload(t, map[string]string{"file_name": "b.txt", "mime_type": "text/plain"}, []byte("hello"))
		require.Equal(t, http.StatusOK, w.Code)
		uploaded := parseMetadata(t, parseEnvelope(t, w))

		got := suite.postJSON(t, "/getFile", file.GetFileRequest{FileID: uploaded.FileID})
		require.Equal(t, http.StatusOK, got.Code)

		meta := parseMetadata(t, parseEnvelope(t, got))
		assert.Equal(t, uploaded.FileID, meta.FileID)
		assert.Equal(t, int64(5), meta.FileSize)
		assert.Equal(t, "text/plain", meta.MimeType)
	})

	t.Run("content download round trip", func(t *testing.T) {
		content := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
		w := suite.upload(t, nil, content)
		require.Equal(t, http.StatusOK, w.Code)
		meta := parseMetadata(t, parseEnvelope(t, w))
		assert.Equal(t, "image/png", meta.MimeType)

		req := httptest.NewRequest(http.MethodGet, "/file/"+meta.FileID, nil)
		rec := httptest.NewRecorder()
		suite.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, content, rec.Body.Bytes())
	})

	t.Run("empty upload falls back to octet-stream", func(t *testing.T) {
		w := suite.upload(t, map[string]string{"file_name": "empty.bin"}, []byte{})
		require.Equal(t, http.StatusOK, w.Code)

		meta := parseMetadata(t, parseEnvelope(t, w))
		assert.Equal(t, int64(0), meta.FileSize)
		assert.Equal(t, file.DefaultMimeType, meta.MimeType)
	})
}

func TestGetFile_NotFound(t *testing.T) {
	suite := setupSuite(t, suiteOptions{})

	w := suite.postJSON(t, "/getFile", file.GetFileRequest{FileID: "deadbeefdeadbeefdeadbeefdeadbeef"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := parseEnvelope(t, w)
	assert.False(t, env.Ok)
	assert.Equal(t, "FILE_NOT_EXISTS", reasonOf(t, env))
}

func TestUpload_OverCeiling(t *testing.T) {
	suite := setupSuite(t, suiteOptions{})

	w := suite.upload(t, nil, bytes.Repeat([]byte{0x42}, testMaxFileSize+1))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	env := parseEnvelope(t, w)
	assert.False(t, env.Ok)
	assert.Equal(t, "FILE_IS_TOO_BIG", reasonOf(t, env))
	assert.Equal(t, int64(0), suite.storedCount(t))
}

func TestUpload_TokenGated(t *testing.T) {
	authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AccessToken string `json:"access_token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(map[string]bool{"ok": req.AccessToken == "valid-token"})
	}))
	defer authSrv.Close()

	suite := setupSuite(t, suiteOptions{authBase: authSrv.URL})

	t.Run("rejected token stores nothing", func(t *testing.T) {
		w := suite.upload(t, map[string]string{"access_token": "expired-token"}, []byte("data"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := parseEnvelope(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, "ACCESS_DENIED", reasonOf(t, env))
		assert.Equal(t, int64(0), suite.storedCount(t))
	})

	t.Run("accepted token proceeds", func(t *testing.T) {
		w := suite.upload(t, map[string]string{"access_token": "valid-token"}, []byte("data"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, parseEnvelope(t, w).Ok)
		assert.Equal(t, int64(1), suite.storedCount(t))
	})

	t.Run("unreachable auth service is a denial", func(t *testing.T) {
		down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		base := down.URL
		down.Close()

		s := setupSuite(t, suiteOptions{authBase: base})
		w := s.upload(t, map[string]string{"access_token": "valid-token"}, []byte("data"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ACCESS_DENIED", reasonOf(t, parseEnvelope(t, w)))
	})
}

func TestHealthcheck(t *testing.T) {
	suite := setupSuite(t, suiteOptions{})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"result":true}`, w.Body.String())
}

func TestAdminSurface(t *testing.T) {
	suite := setupSuite(t, suiteOptions{})

	w := suite.upload(t, map[string]string{"file_name": "a.txt"}, []byte("x"))
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("denied without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/files", nil)
		rec := httptest.NewRecorder()
		suite.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("lists metadata with admin token", func(t *testing.T) {
		token, err := suite.jwtService.GenerateToken("admin")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin/files", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		suite.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		env := parseEnvelope(t, rec)
		assert.True(t, env.Ok)

		var items []file.Metadata
		require.NoError(t, json.Unmarshal(env.Result, &items))
		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].FileSize)
	})
}
