package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/roster/pkg/member"
)

// memoryRepo mirrors the postgres adapter contract for handler tests.
type memoryRepo struct {
	members []member.Member
	emails  map[string]bool
	clock   time.Time

	failList error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{emails: map[string]bool{}, clock: time.Now().UTC()}
}

func (r *memoryRepo) Create(ctx context.Context, m member.Member) (member.Member, error) {
	if msgs := m.Validate(); len(msgs) > 0 {
		return member.Member{}, &member.ValidationError{Messages: msgs}
	}
	if r.emails[m.Email] {
		return member.Member{}, member.ErrDuplicateEmail
	}
	r.clock = r.clock.Add(time.Second)
	m.CreatedAt = r.clock
	r.emails[m.Email] = true
	r.members = append(r.members, m)
	return m, nil
}

func (r *memoryRepo) List(ctx context.Context) ([]member.Member, error) {
	if r.failList != nil {
		return nil, r.failList
	}
	res := append([]member.Member(nil), r.members...)
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (member.Member, error) {
	for _, m := range r.members {
		if m.ID == id {
			return m, nil
		}
	}
	return member.Member{}, member.ErrNotFound
}

type memoryBlobs struct{ n int }

func (b *memoryBlobs) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	b.n++
	return fmt.Sprintf("/uploads/%d.png", b.n), nil
}

type memoryProbe struct{ down bool }

func (p *memoryProbe) Ready(ctx context.Context) error {
	if p.down {
		return errors.New("store down")
	}
	return nil
}

func newTestApp() (*fiber.App, *memoryRepo, *memoryProbe) {
	repo := newMemoryRepo()
	probe := &memoryProbe{}
	uc := member.NewService(repo, &memoryBlobs{}, probe)
	h := NewMemberHandler(uc, 5<<20)

	app := fiber.New()
	api := app.Group("/api")
	m := api.Group("/members")
	m.Get("/", h.List)
	m.Get("/:id", h.GetByID)
	m.Post("/", h.Create)
	return app, repo, probe
}

// multipartBody builds a member creation form; a nil fields entry is skipped.
func multipartBody(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withImage {
		fw, err := w.CreateFormFile("image", "avatar.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postMember(t *testing.T, app *fiber.App, fields map[string]string, withImage bool) *http.Response {
	t.Helper()
	body, ctype := multipartBody(t, fields, withImage)
	req := httptest.NewRequest(http.MethodPost, "/api/members", body)
	req.Header.Set("Content-Type", ctype)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func validForm() map[string]string {
	return map[string]string{
		"name":    "Ann",
		"role":    "Engineer",
		"email":   "ann@example.com",
		"contact": "+1 555 0100",
	}
}

func TestCreateMember_Created(t *testing.T) {
	app, _, _ := newTestApp()

	resp := postMember(t, app, validForm(), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	got := decode[map[string]any](t, resp)
	assert.NotEmpty(t, got["_id"])
	assert.Equal(t, "Ann", got["name"])
	assert.Equal(t, "Engineer", got["role"])
	assert.Equal(t, "ann@example.com", got["email"])
	assert.Equal(t, "+1 555 0100", got["contact"])
	assert.Contains(t, got["imageUrl"], "/uploads/")

	// createdAt приходит строкой ISO-8601
	createdAt, ok := got["createdAt"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, createdAt)
	assert.NoError(t, err)
}

func TestCreateMember_MissingImage(t *testing.T) {
	app, repo, _ := newTestApp()

	resp := postMember(t, app, validForm(), false)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	got := decode[map[string]string](t, resp)
	assert.Equal(t, "Profile image is required", got["message"])
	assert.Empty(t, repo.members)
}

func TestCreateMember_MissingFieldsListed(t *testing.T) {
	app, _, _ := newTestApp()

	resp := postMember(t, app, map[string]string{"name": "Ann"}, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	got := decode[map[string]string](t, resp)
	assert.Equal(t, "Missing required fields: role, email, contact", got["message"])
}

func TestCreateMember_ValidationErrorEnvelope(t *testing.T) {
	app, _, _ := newTestApp()

	form := validForm()
	form["email"] = "not-an-email"
	resp := postMember(t, app, form, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	got := decode[struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}](t, resp)
	assert.Equal(t, "Validation Error", got.Message)
	assert.Contains(t, got.Errors, "Please enter a valid email")
}

func TestCreateMember_DuplicateEmail(t *testing.T) {
	app, _, _ := newTestApp()

	resp := postMember(t, app, validForm(), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	form := validForm()
	form["email"] = "ANN@example.com"
	resp = postMember(t, app, form, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	got := decode[map[string]string](t, resp)
	assert.Equal(t, "A member with this email already exists", got["message"])
}

func TestCreateMember_StoreUnavailable(t *testing.T) {
	app, repo, probe := newTestApp()
	probe.down = true

	resp := postMember(t, app, validForm(), true)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	got := decode[map[string]string](t, resp)
	assert.Equal(t, "Database connection error", got["message"])
	assert.Empty(t, repo.members)
}

func TestListMembers_NewestFirst(t *testing.T) {
	app, _, _ := newTestApp()

	for i, name := range []string{"A", "B", "C"} {
		form := validForm()
		form["name"] = name
		form["email"] = fmt.Sprintf("u%d@example.com", i)
		resp := postMember(t, app, form, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[[]map[string]any](t, resp)
	require.Len(t, got, 3)
	assert.Equal(t, "C", got[0]["name"])
	assert.Equal(t, "B", got[1]["name"])
	assert.Equal(t, "A", got[2]["name"])
}

func TestListMembers_StoreFault(t *testing.T) {
	app, repo, _ := newTestApp()
	repo.failList = &member.StoreError{Err: errors.New("boom")}

	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	got := decode[map[string]string](t, resp)
	assert.Equal(t, "Database error occurred", got["message"])
}

func TestGetMember_Found(t *testing.T) {
	app, _, _ := newTestApp()

	resp := postMember(t, app, validForm(), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[map[string]any](t, resp)
	id := created["_id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/members/"+id, nil)
	getResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	got := decode[map[string]any](t, getResp)
	assert.Equal(t, id, got["_id"])
	assert.Equal(t, "Ann", got["name"])
}

func TestGetMember_NotFound(t *testing.T) {
	app, _, _ := newTestApp()

	for _, id := range []string{uuid.NewString(), "nonexistent-id"} {
		req := httptest.NewRequest(http.MethodGet, "/api/members/"+id, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, "id %q", id)

		got := decode[map[string]string](t, resp)
		assert.Equal(t, "Member not found", got["message"])
	}
}
