package model

import (
	"encoding/json"
	"fmt"
)

// Document is an untyped resume JSON object as stored on disk or submitted
// by the editor.
type Document map[string]any

type SectionType string

const (
	SectionSummary      SectionType = "summary"
	SectionExperience   SectionType = "experience"
	SectionProjects     SectionType = "projects"
	SectionSkills       SectionType = "skills"
	SectionCertificates SectionType = "certificates"
	SectionEducation    SectionType = "education"
	SectionCustom       SectionType = "custom"
)

// StaticOrder is the section order used when a legacy flat record is
// converted to the section list.
var StaticOrder = []SectionType{
	SectionSummary,
	SectionExperience,
	SectionProjects,
	SectionSkills,
	SectionCertificates,
	SectionEducation,
}

type SectionOption struct {
	Type  SectionType
	Label string
}

// Catalog lists the section types the editor can add, in display order.
var Catalog = []SectionOption{
	{SectionSummary, "Summary"},
	{SectionExperience, "Experience"},
	{SectionProjects, "Projects"},
	{SectionSkills, "Skills"},
	{SectionCertificates, "Certificates"},
	{SectionEducation, "Education"},
	{SectionCustom, "Custom Section"},
}

// ParseSectionType reports whether s names a known section type.
func ParseSectionType(s string) (SectionType, bool) {
	for _, opt := range Catalog {
		if string(opt.Type) == s {
			return opt.Type, true
		}
	}
	return "", false
}

// Label returns the display label of t.
func (t SectionType) Label() string {
	for _, opt := range Catalog {
		if opt.Type == t {
			return opt.Label
		}
	}
	return string(t)
}

// Entry is one free-form item of a list section (a role, a project, a
// skills category...).
type Entry map[string]any

// Contact holds the scalar fields shared by both shapes.
type Contact struct {
	Name     string
	Email    string
	Phone    string
	Location string
	LinkedIn string
	GitHub   string
	Website  string
}

var contactKeys = []string{"name", "email", "phone", "location", "linkedin", "github", "website"}

func (c *Contact) fields() []*string {
	return []*string{&c.Name, &c.Email, &c.Phone, &c.Location, &c.LinkedIn, &c.GitHub, &c.Website}
}

func contactFrom(doc Document) Contact {
	var c Contact
	for i, p := range c.fields() {
		*p = stringOf(doc[contactKeys[i]])
	}
	return c
}

func (c Contact) writeTo(doc Document) {
	for i, p := range c.fields() {
		doc[contactKeys[i]] = *p
	}
}

// Section is one element of the ordered section list. It is implemented by
// SummarySection, ListSection and CustomSection only.
type Section interface {
	Kind() SectionType
	document() map[string]any
}

type SummarySection struct {
	Content string
}

func (SummarySection) Kind() SectionType { return SectionSummary }

func (s SummarySection) document() map[string]any {
	return map[string]any{"type": string(SectionSummary), "content": s.Content}
}

// ListSection is any of experience, projects, skills, certificates or
// education.
type ListSection struct {
	Type    SectionType
	Entries []Entry
}

func (s ListSection) Kind() SectionType { return s.Type }

func (s ListSection) document() map[string]any {
	return map[string]any{"type": string(s.Type), "entries": entriesDocument(s.Entries)}
}

// CustomSection is a user-titled section with free text and optional
// entries.
type CustomSection struct {
	Title   string
	Content string
	Entries []Entry
}

func (CustomSection) Kind() SectionType { return SectionCustom }

func (s CustomSection) document() map[string]any {
	m := map[string]any{"type": string(SectionCustom), "title": s.Title, "content": s.Content}
	if len(s.Entries) > 0 {
		m["entries"] = entriesDocument(s.Entries)
	}
	return m
}

// Static is the legacy flat resume record produced by the LLM.
type Static struct {
	Contact
	Summary      string
	Experience   []Entry
	Projects     []Entry
	Skills       []Entry
	Certificates []Entry
	Education    []Entry
}

// StaticFromDocument reads the flat shape out of doc. Missing scalar fields
// become empty strings; non-object list items are dropped.
func StaticFromDocument(doc Document) Static {
	return Static{
		Contact:      contactFrom(doc),
		Summary:      stringOf(doc["summary"]),
		Experience:   entriesOf(doc["experience"]),
		Projects:     entriesOf(doc["projects"]),
		Skills:       entriesOf(doc["skills"]),
		Certificates: entriesOf(doc["certificates"]),
		Education:    entriesOf(doc["education"]),
	}
}

func (s Static) list(t SectionType) []Entry {
	switch t {
	case SectionExperience:
		return s.Experience
	case SectionProjects:
		return s.Projects
	case SectionSkills:
		return s.Skills
	case SectionCertificates:
		return s.Certificates
	case SectionEducation:
		return s.Education
	}
	return nil
}

// ToDynamic converts the flat record into the section list, following
// StaticOrder and omitting empty sections.
func (s Static) ToDynamic() Dynamic {
	d := Dynamic{Contact: s.Contact, Sections: []Section{}}
	for _, t := range StaticOrder {
		if t == SectionSummary {
			if s.Summary != "" {
				d.Sections = append(d.Sections, SummarySection{Content: s.Summary})
			}
			continue
		}
		if entries := s.list(t); len(entries) > 0 {
			d.Sections = append(d.Sections, ListSection{Type: t, Entries: entries})
		}
	}
	return d
}

// Dynamic is the section-list resume used by the editor and the renderer.
type Dynamic struct {
	Contact
	Sections []Section
}

// Document returns d as an untyped JSON object.
func (d Dynamic) Document() Document {
	doc := Document{}
	d.Contact.writeTo(doc)
	sections := make([]any, 0, len(d.Sections))
	for _, s := range d.Sections {
		sections = append(sections, s.document())
	}
	doc["sections"] = sections
	return doc
}

// DecodeDynamic builds the typed form of a document already in section-list
// shape. Sections with an unknown type are skipped.
func DecodeDynamic(doc Document) Dynamic {
	d := Dynamic{Contact: contactFrom(doc), Sections: []Section{}}
	raw, _ := doc["sections"].([]any)
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		t, ok := ParseSectionType(stringOf(m["type"]))
		if !ok {
			continue
		}
		entries := m["entries"]
		if entries == nil {
			entries = m["items"]
		}
		switch t {
		case SectionSummary:
			d.Sections = append(d.Sections, SummarySection{Content: stringOf(m["content"])})
		case SectionCustom:
			d.Sections = append(d.Sections, CustomSection{
				Title:   stringOf(m["title"]),
				Content: stringOf(m["content"]),
				Entries: entriesOf(entries),
			})
		default:
			d.Sections = append(d.Sections, ListSection{Type: t, Entries: entriesOf(entries)})
		}
	}
	return d
}

func (d Dynamic) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Document())
}

// UnmarshalJSON accepts either shape.
func (d *Dynamic) UnmarshalJSON(b []byte) error {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	*d = DecodeDynamic(ToDynamic(doc))
	return nil
}

func stringOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func entriesOf(v any) []Entry {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Entry, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Entry(m))
		}
	}
	return out
}

func entriesDocument(entries []Entry) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any(e))
	}
	return out
}
