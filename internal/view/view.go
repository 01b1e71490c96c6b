// Package view renders the upload form, the editor and the resume document
// from the embedded templates.
package view

import (
	"bytes"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/AmrMohamed17/smart-cv-builder/internal/model"
	"github.com/AmrMohamed17/smart-cv-builder/templates"
	"github.com/pkg/errors"
)

// Levels lists the experience levels offered by the upload form.
var Levels = []string{"Intern", "Junior", "Mid", "Senior", "Lead"}

var parsed = sync.OnceValues(func() (*template.Template, error) {
	tpl, err := template.New("pages").Funcs(funcs).ParseFS(templates.FS, "*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return tpl, nil
})

var stylesheet = sync.OnceValues(func() (string, error) {
	b, err := templates.FS.ReadFile("style.css")
	if err != nil {
		return "", errors.Wrap(err, "read style.css")
	}
	return string(b), nil
})

func execute(w io.Writer, name string, data any) error {
	tpl, err := parsed()
	if err != nil {
		return err
	}
	if err := tpl.ExecuteTemplate(w, name, data); err != nil {
		return errors.Wrapf(err, "execute %s", name)
	}
	return nil
}

// UploadPage is the data of the upload form. Fields echo the last
// submission when the form is shown again with an error.
type UploadPage struct {
	Error           string
	GitHub          string
	JobTitle        string
	ExperienceLevel string
	Levels          []string
}

// Upload writes the upload form.
func Upload(w io.Writer, p UploadPage) error {
	if p.Levels == nil {
		p.Levels = Levels
	}
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = "Mid"
	}
	return execute(w, "upload.html", p)
}

// Resume renders d into a standalone HTML document with the stylesheet
// inlined, ready for preview or PDF conversion.
func Resume(d model.Dynamic) (string, error) {
	var buf bytes.Buffer
	if err := execute(&buf, "resume.html", newResumeView(d)); err != nil {
		return "", err
	}
	css, err := stylesheet()
	if err != nil {
		return "", err
	}
	return inlineCSS(buf.String(), css), nil
}

func inlineCSS(html, css string) string {
	if css == "" {
		return html
	}
	block := "<style>" + css + "</style>"
	if i := strings.Index(strings.ToLower(html), "<head>"); i >= 0 {
		return html[:i+len("<head>")] + block + html[i+len("<head>"):]
	}
	return block + html
}

type link struct {
	URL   string
	Label string
}

type sectionView struct {
	Type    string
	Heading string
	Content string
	Entries []model.Entry
}

type resumeView struct {
	Name     string
	Email    string
	Phone    string
	Location string
	Links    []link
	Sections []sectionView
}

func newResumeView(d model.Dynamic) resumeView {
	v := resumeView{
		Name:     strings.TrimSpace(d.Name),
		Email:    strings.TrimSpace(d.Email),
		Phone:    strings.TrimSpace(d.Phone),
		Location: strings.TrimSpace(d.Location),
	}
	for _, c := range []struct{ raw, host string }{
		{d.LinkedIn, "linkedin.com/in"},
		{d.GitHub, "github.com"},
		{d.Website, ""},
	} {
		if u := linkURL(c.raw, c.host); u != "" {
			v.Links = append(v.Links, link{URL: u, Label: linkLabel(u)})
		}
	}
	for _, s := range d.Sections {
		sv := sectionView{Type: string(s.Kind()), Heading: s.Kind().Label()}
		switch t := s.(type) {
		case model.SummarySection:
			sv.Content = t.Content
		case model.ListSection:
			sv.Entries = t.Entries
		case model.CustomSection:
			if strings.TrimSpace(t.Title) != "" {
				sv.Heading = t.Title
			}
			sv.Content = t.Content
			sv.Entries = t.Entries
		}
		v.Sections = append(v.Sections, sv)
	}
	return v
}
