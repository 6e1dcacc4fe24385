package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManishKhulbe/tacticaledge-assignment/internal/auth"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/catalog"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/config"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/models"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/shared"
)

/* ---------- fakes ---------- */

type memUserRepo struct {
	byEmail map[string]*models.User
	nextID  uint
}

func (f *memUserRepo) Create(ctx context.Context, u *models.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return shared.ErrEmailTaken
	}
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *memUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *memUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

type memMovieRepo struct {
	rows   map[uint]*models.Movie
	nextID uint
	now    time.Time
}

func (f *memMovieRepo) FindOne(ctx context.Context, id, userID uint) (*models.Movie, error) {
	m, ok := f.rows[id]
	if !ok || m.UserID != userID {
		return nil, shared.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *memMovieRepo) FindAndCount(ctx context.Context, userID uint, offset, limit int) ([]models.Movie, int64, error) {
	var all []models.Movie
	for _, m := range f.rows {
		if m.UserID == userID {
			all = append(all, *m)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *memMovieRepo) Save(ctx context.Context, m *models.Movie) error {
	if m.ID == 0 {
		m.ID = f.nextID
		f.nextID++
		m.CreatedAt = f.now
		f.now = f.now.Add(time.Minute)
	}
	m.UpdatedAt = f.now
	cp := *m
	f.rows[m.ID] = &cp
	return nil
}

func (f *memMovieRepo) Delete(ctx context.Context, m *models.Movie) error {
	delete(f.rows, m.ID)
	return nil
}

type memGateway struct {
	lastKey         string
	lastContentType string
	lastSize        int64
	err             error
}

func (g *memGateway) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.lastKey = key
	g.lastContentType = contentType
	g.lastSize = size
	return "https://cdn.example/" + key, nil
}

/* ---------- harness ---------- */

func newTestServer(t *testing.T) (*Server, *memGateway) {
	t.Helper()
	users := &memUserRepo{byEmail: map[string]*models.User{}, nextID: 1}
	movies := &memMovieRepo{rows: map[uint]*models.Movie{}, nextID: 1, now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	gw := &memGateway{}

	cfg := config.Config{Port: "0", CORSOrigin: "http://localhost:3000", JWTSecret: "test-secret"}
	authSvc := auth.NewService(users, cfg.JWTSecret, time.Hour)
	catalogSvc := catalog.NewService(movies)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(cfg, logger, authSvc, catalogSvc, gw), gw
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func registerUser(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(t, rec, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

/* ---------- auth endpoints ---------- */

func TestRegisterAndLoginFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "a@b.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter22")
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "a@b.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@b.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@b.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "not-an-email", "password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "valid email")

	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "a@b.com", "password": "shrt",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 6 characters")
}

/* ---------- bearer gate ---------- */

func TestMoviesRequireAuth(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/movies"},
		{http.MethodPost, "/api/movies"},
		{http.MethodGet, "/api/movies/1"},
		{http.MethodPatch, "/api/movies/1"},
		{http.MethodDelete, "/api/movies/1"},
		{http.MethodPost, "/api/upload/poster"},
	} {
		rec := doJSON(t, h, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/movies", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

/* ---------- movie endpoints ---------- */

func TestMovieCRUDScenario(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	tok1 := registerUser(t, h, "one@b.com")
	tok2 := registerUser(t, h, "two@b.com")

	rec := doJSON(t, h, http.MethodPost, "/api/movies", tok1, map[string]any{
		"title": "The Matrix", "publishingYear": 1999,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Movie
	decode(t, rec, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, uint(1), created.UserID)
	assert.Nil(t, created.Poster)

	rec = doJSON(t, h, http.MethodGet, "/api/movies?page=1&limit=8", tok1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page catalog.Page
	decode(t, rec, &page)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Movies, 1)
	assert.Equal(t, created.ID, page.Movies[0].ID)

	// another user's token hits the same id and gets a 404
	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/movies/%d", created.ID), tok2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/api/movies/%d", created.ID), tok1, map[string]any{
		"title": "The Matrix Reloaded",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Movie
	decode(t, rec, &updated)
	assert.Equal(t, "The Matrix Reloaded", updated.Title)
	assert.Equal(t, 1999, updated.PublishingYear)

	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/movies/%d", created.ID), tok1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Movie deleted successfully")

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/movies/%d", created.ID), tok1, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateMovieIgnoresClientOwner(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	tok1 := registerUser(t, h, "one@b.com")

	rec := doJSON(t, h, http.MethodPost, "/api/movies", tok1, map[string]any{
		"title": "Spoofed", "publishingYear": 2020, "userId": 999,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Movie
	decode(t, rec, &created)
	assert.Equal(t, uint(1), created.UserID)
}

func TestCreateMovieValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()
	tok := registerUser(t, h, "one@b.com")

	rec := doJSON(t, h, http.MethodPost, "/api/movies", tok, map[string]any{
		"publishingYear": 1999,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/movies", tok, map[string]any{
		"title": "Too Old", "publishingYear": 1750,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "publishingYear")
}

func TestListMoviesEmptyPastEnd(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()
	tok := registerUser(t, h, "one@b.com")

	for i := 0; i < 3; i++ {
		rec := doJSON(t, h, http.MethodPost, "/api/movies", tok, map[string]any{
			"title": fmt.Sprintf("Movie %d", i), "publishingYear": 2000 + i,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/movies?page=5&limit=8", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page catalog.Page
	decode(t, rec, &page)
	assert.Empty(t, page.Movies)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Contains(t, rec.Body.String(), `"movies":[]`)
}

func TestGetMovieBadID(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()
	tok := registerUser(t, h, "one@b.com")

	rec := doJSON(t, h, http.MethodGet, "/api/movies/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

/* ---------- upload endpoint ---------- */

func multipartPoster(t *testing.T, field, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadPoster(t *testing.T) {
	srv, gw := newTestServer(t)
	h := srv.Router()
	tok := registerUser(t, h, "one@b.com")

	body, ctype := multipartPoster(t, "file", "poster.png", "image/png", []byte("pngbytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload/poster", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		URL          string `json:"url"`
		OriginalName string `json:"originalName"`
		Size         int64  `json:"size"`
		Filename     string `json:"filename"`
	}
	decode(t, rec, &out)
	assert.Equal(t, "poster.png", out.OriginalName)
	assert.Equal(t, int64(len("pngbytes")), out.Size)
	assert.True(t, strings.HasPrefix(out.URL, "https://cdn.example/posters/"))
	assert.True(t, strings.HasSuffix(out.Filename, ".png"))
	assert.Equal(t, "image/png", gw.lastContentType)
}

func TestUploadPosterRejectsWrongType(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()
	tok := registerUser(t, h, "one@b.com")

	body, ctype := multipartPoster(t, "file", "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload/poster", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "images are allowed")
}

func TestUploadPosterRejectsMissingFile(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()
	tok := registerUser(t, h, "one@b.com")

	body, ctype := multipartPoster(t, "wrongfield", "poster.png", "image/png", []byte("pngbytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload/poster", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no file uploaded")
}

func TestUploadPosterRejectsOversize(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()
	tok := registerUser(t, h, "one@b.com")

	big := bytes.Repeat([]byte("x"), maxPosterSize+1)
	body, ctype := multipartPoster(t, "file", "huge.png", "image/png", big)
	req := httptest.NewRequest(http.MethodPost, "/api/upload/poster", body)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

/* ---------- health ---------- */

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
