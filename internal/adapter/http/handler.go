package http

import (
	"bytes"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/AmrMohamed17/smart-cv-builder/internal/usecase"
	"github.com/AmrMohamed17/smart-cv-builder/internal/view"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/apperr"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionCookie holds the id of the caller's last upload.
const SessionCookie = "resume_session"

type Handler struct {
	processor *usecase.Processor
	editor    *usecase.Editor
	exporter  *usecase.Exporter
	log       *slog.Logger
}

func NewHandler(p *usecase.Processor, e *usecase.Editor, x *usecase.Exporter, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{processor: p, editor: e, exporter: x, log: log}
}

func html(c *fiber.Ctx, status int, body []byte) error {
	c.Type("html", "utf-8")
	return c.Status(status).Send(body)
}

func (h *Handler) jsonError(c *fiber.Ctx, err error) error {
	status := apperr.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error("request failed", slog.String("path", c.Path()), slog.Any("err", err))
	}
	return c.Status(status).JSON(fiber.Map{"error": apperr.UserMessage(err)})
}

func (h *Handler) uploadForm(c *fiber.Ctx, status int, page view.UploadPage) error {
	var buf bytes.Buffer
	if err := view.Upload(&buf, page); err != nil {
		return err
	}
	return html(c, status, buf.Bytes())
}

// UploadForm serves the upload page.
func (h *Handler) UploadForm(c *fiber.Ctx) error {
	return h.uploadForm(c, fiber.StatusOK, view.UploadPage{})
}

// Upload runs the upload pipeline and redirects to the session's editor.
// Failures show the form again with the submitted values.
func (h *Handler) Upload(c *fiber.Ctx) error {
	page := view.UploadPage{
		GitHub:          c.FormValue("github"),
		JobTitle:        c.FormValue("job_title"),
		ExperienceLevel: c.FormValue("experience_level"),
	}
	req := usecase.UploadRequest{
		GitHubUsername:  page.GitHub,
		JobTitle:        page.JobTitle,
		ExperienceLevel: page.ExperienceLevel,
	}

	var closers []multipart.File
	defer func() {
		for _, f := range closers {
			f.Close()
		}
	}()
	for _, field := range []struct {
		name string
		dst  **usecase.UploadFile
	}{{"cv", &req.Resume}, {"linkedin", &req.LinkedIn}} {
		fh, err := c.FormFile(field.name)
		if err != nil || fh == nil || fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return h.uploadFailed(c, page, err)
		}
		closers = append(closers, f)
		*field.dst = &usecase.UploadFile{Name: fh.Filename, Content: f}
	}

	u, err := h.processor.Process(c.UserContext(), req)
	if err != nil {
		return h.uploadFailed(c, page, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    u.ID.String(),
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/editor/"+u.ID.String(), fiber.StatusSeeOther)
}

func (h *Handler) uploadFailed(c *fiber.Ctx, page view.UploadPage, err error) error {
	status := apperr.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error("upload failed", slog.Any("err", err))
	}
	page.Error = apperr.UserMessage(err)
	return h.uploadForm(c, status, page)
}

// EditorRedirect sends the caller to the editor of their last session.
func (h *Handler) EditorRedirect(c *fiber.Ctx) error {
	if id, err := uuid.Parse(c.Cookies(SessionCookie)); err == nil {
		return c.Redirect("/editor/"+id.String(), fiber.StatusSeeOther)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Editor renders the edit form for a session.
func (h *Handler) Editor(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	d, err := h.editor.Load(c.UserContext(), id)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := view.Editor(&buf, view.NewEditorPage(id.String(), d)); err != nil {
		return err
	}
	return html(c, fiber.StatusOK, buf.Bytes())
}

// Preview renders the posted document to HTML without storing it.
func (h *Handler) Preview(c *fiber.Ctx) error {
	doc, err := usecase.DecodeSubmitted(c.Body())
	if err != nil {
		return h.jsonError(c, err)
	}
	out, err := h.exporter.Preview(c.UserContext(), doc)
	if err != nil {
		return h.jsonError(c, err)
	}
	return html(c, fiber.StatusOK, []byte(out))
}

// Export renders the posted document to PDF. With ?session=<id> the
// document also replaces the stored one.
func (h *Handler) Export(c *fiber.Ctx) error {
	doc, err := usecase.DecodeSubmitted(c.Body())
	if err != nil {
		return h.jsonError(c, err)
	}
	var session *uuid.UUID
	if raw := strings.TrimSpace(c.Query("session")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return h.jsonError(c, apperr.NewValidationError("session", "invalid session id"))
		}
		session = &id
	}

	pdf, err := h.exporter.Export(c.UserContext(), doc, session)
	if err != nil {
		return h.jsonError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+usecase.ExportFilename)
	return c.Status(fiber.StatusOK).Send(pdf)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
