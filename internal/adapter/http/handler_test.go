package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AmrMohamed17/smart-cv-builder/internal/adapter/repository"
	"github.com/AmrMohamed17/smart-cv-builder/internal/usecase"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/ai"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/textextract"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGitHub struct{}

func (stubGitHub) FetchDigest(context.Context, string, bool) (string, error) { return "Repo: api\n---", nil }

type stubGenerator struct {
	out   string
	calls int
}

func (s *stubGenerator) GenerateResume(context.Context, ai.PromptInput) (string, error) {
	s.calls++
	return s.out, nil
}

type stubRenderer struct{}

func (stubRenderer) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	return []byte("%PDF-1.7\n%stub\n"), nil
}

type testApp struct {
	app   *fiber.App
	store *repository.FilesRepo
	gen   *stubGenerator
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store := repository.NewFilesRepo(t.TempDir(), nil)
	gen := &stubGenerator{out: "```json\n{\"name\":\"Jane Doe\",\"summary\":\"Go engineer\",\"skills\":[{\"category\":\"Languages\",\"technologies\":\"Go, Python, SQL, Bash\"}]}\n```"}
	h := NewHandler(
		usecase.NewProcessor(store, textextract.New(), stubGitHub{}, gen, nil),
		usecase.NewEditor(store),
		usecase.NewExporter(stubRenderer{}, store, nil),
		nil,
	)
	return &testApp{app: NewApp(h, 15<<20, nil), store: store, gen: gen}
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, name := range files {
		fw, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("Jane Doe\nBackend engineer"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func readBody(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestUploadForm(t *testing.T) {
	ta := newTestApp(t)
	resp, err := ta.app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, readBody(t, resp.Body), `enctype="multipart/form-data"`)
}

func TestUploadMissingResume(t *testing.T) {
	ta := newTestApp(t)
	body, ctype := multipartBody(t, map[string]string{"job_title": "Backend Engineer", "experience_level": "Mid"}, nil)
	req := httptest.NewRequest(fiber.MethodPost, "/", body)
	req.Header.Set(fiber.HeaderContentType, ctype)

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := readBody(t, resp.Body)
	assert.Contains(t, out, "resume file is required")
	assert.Contains(t, out, `value="Backend Engineer"`)
	assert.Zero(t, ta.gen.calls)
}

func TestUploadAndEdit(t *testing.T) {
	ta := newTestApp(t)
	body, ctype := multipartBody(t,
		map[string]string{"job_title": "Backend Engineer", "experience_level": "Mid"},
		map[string]string{"cv": "resume.txt"},
	)
	req := httptest.NewRequest(fiber.MethodPost, "/", body)
	req.Header.Set(fiber.HeaderContentType, ctype)

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	loc := resp.Header.Get(fiber.HeaderLocation)
	require.True(t, strings.HasPrefix(loc, "/editor/"))
	id := strings.TrimPrefix(loc, "/editor/")
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			cookie = c.Value
		}
	}
	assert.Equal(t, id, cookie)

	resp, err = ta.app.Test(httptest.NewRequest(fiber.MethodGet, loc, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := readBody(t, resp.Body)
	assert.Contains(t, out, `value="Jane Doe"`)
	assert.Less(t, strings.Index(out, `data-section-type="summary"`), strings.Index(out, `data-section-type="skills"`))

	req = httptest.NewRequest(fiber.MethodGet, "/editor", nil)
	req.Header.Set("Cookie", SessionCookie+"="+id)
	resp, err = ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, loc, resp.Header.Get(fiber.HeaderLocation))
}

func TestEditorRedirectWithoutSession(t *testing.T) {
	ta := newTestApp(t)
	resp, err := ta.app.Test(httptest.NewRequest(fiber.MethodGet, "/editor", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
}

func TestEditorBadID(t *testing.T) {
	ta := newTestApp(t)
	resp, err := ta.app.Test(httptest.NewRequest(fiber.MethodGet, "/editor/not-a-uuid", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEditorUnknownSessionIsEmpty(t *testing.T) {
	ta := newTestApp(t)
	resp, err := ta.app.Test(httptest.NewRequest(fiber.MethodGet, "/editor/"+uuid.NewString(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, readBody(t, resp.Body), `class="form-section"`)
}

func TestExport(t *testing.T) {
	ta := newTestApp(t)
	req := httptest.NewRequest(fiber.MethodPost, "/cv_export", strings.NewReader(`{"name": "A"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "attachment; filename=CV.pdf", resp.Header.Get(fiber.HeaderContentDisposition))
	assert.True(t, strings.HasPrefix(readBody(t, resp.Body), "%PDF"))
}

func TestExportWithSessionPersists(t *testing.T) {
	ta := newTestApp(t)
	id := uuid.New()
	req := httptest.NewRequest(fiber.MethodPost, "/cv_export?session="+id.String(), strings.NewReader(`{"name":"Edited","sections":[{"type":"summary","content":"New"}]}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	doc, err := ta.store.LoadDocument(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Edited", doc["name"])
}

func TestExportBadInput(t *testing.T) {
	ta := newTestApp(t)
	for _, tc := range []struct {
		name, url, body string
	}{
		{"invalid json", "/cv_export", `{"name":`},
		{"not an object", "/cv_export", `["A"]`},
		{"bad session", "/cv_export?session=../../etc", `{"name":"A"}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, tc.url, strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := ta.app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, readBody(t, resp.Body), `"error"`)
		})
	}
}

func TestPreviewWrongTypesRenders(t *testing.T) {
	ta := newTestApp(t)
	for _, body := range []string{`{"name":42}`, `{"skills":["Go"]}`, `{"sections":[{"type":"hobbies"}]}`} {
		req := httptest.NewRequest(fiber.MethodPost, "/cv_preview", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := ta.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/cv_preview", strings.NewReader(`{"name":42}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp.Body), "42")
}

func TestPreview(t *testing.T) {
	ta := newTestApp(t)
	id := uuid.New()
	req := httptest.NewRequest(fiber.MethodPost, "/cv_preview?session="+id.String(), strings.NewReader(`{"name":"A","sections":[{"type":"custom","title":"Talks","content":"GopherCon"}]}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	out := readBody(t, resp.Body)
	assert.Contains(t, out, "<h2>Talks</h2>")
	assert.Contains(t, out, "GopherCon")

	doc, err := ta.store.LoadDocument(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, doc, "preview does not store")
}

func TestHealth(t *testing.T) {
	ta := newTestApp(t)
	resp, err := ta.app.Test(httptest.NewRequest(fiber.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, readBody(t, resp.Body))
}
