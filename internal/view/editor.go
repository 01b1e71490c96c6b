package view

import (
	"io"
	"sort"

	"github.com/AmrMohamed17/smart-cv-builder/internal/model"
)

// FieldSpec describes one input of a list-section entry in the editor.
type FieldSpec struct {
	Key       string
	Label     string
	Multiline bool
}

// EntryFields lists the editor inputs of each list section type, following
// the fields the generator is asked to produce.
var EntryFields = map[model.SectionType][]FieldSpec{
	model.SectionExperience: {
		{Key: "title", Label: "Title"},
		{Key: "company", Label: "Company"},
		{Key: "duration", Label: "Duration"},
		{Key: "responsibilities", Label: "Responsibilities (one per line)", Multiline: true},
	},
	model.SectionProjects: {
		{Key: "name", Label: "Name"},
		{Key: "technologies", Label: "Technologies"},
		{Key: "duration", Label: "Duration"},
		{Key: "description", Label: "Description (one point per line)", Multiline: true},
	},
	model.SectionSkills: {
		{Key: "category", Label: "Category"},
		{Key: "technologies", Label: "Technologies (comma separated)"},
	},
	model.SectionCertificates: {
		{Key: "name", Label: "Name"},
		{Key: "issuer", Label: "Issuer"},
		{Key: "year", Label: "Year"},
		{Key: "description", Label: "Description", Multiline: true},
	},
	model.SectionEducation: {
		{Key: "degree", Label: "Degree"},
		{Key: "school", Label: "School"},
		{Key: "year", Label: "Year"},
		{Key: "achievements", Label: "Achievements (one per line)", Multiline: true},
	},
}

type FieldValue struct {
	FieldSpec
	Value string
}

type EditorSection struct {
	Type    model.SectionType
	Label   string
	Title   string
	Content string
	Entries [][]FieldValue
}

// EditorPage is the data of the editor form.
type EditorPage struct {
	SessionID string
	Contact   []FieldValue
	Sections  []EditorSection
	Catalog   []model.SectionOption
	Fields    map[model.SectionType][]FieldSpec
	Labels    map[model.SectionType]string
}

// NewEditorPage lays d out for the editor. Entry keys outside the known
// fields of a section are kept as extra inputs so they survive a save.
func NewEditorPage(sessionID string, d model.Dynamic) EditorPage {
	p := EditorPage{
		SessionID: sessionID,
		Contact: []FieldValue{
			{FieldSpec{Key: "name", Label: "Name"}, d.Name},
			{FieldSpec{Key: "email", Label: "Email"}, d.Email},
			{FieldSpec{Key: "phone", Label: "Phone"}, d.Phone},
			{FieldSpec{Key: "location", Label: "Location"}, d.Location},
			{FieldSpec{Key: "linkedin", Label: "LinkedIn"}, d.LinkedIn},
			{FieldSpec{Key: "github", Label: "GitHub"}, d.GitHub},
			{FieldSpec{Key: "website", Label: "Website"}, d.Website},
		},
		Sections: []EditorSection{},
		Catalog:  model.Catalog,
		Fields:   EntryFields,
		Labels:   map[model.SectionType]string{},
	}
	for _, opt := range model.Catalog {
		p.Labels[opt.Type] = opt.Label
	}
	for _, s := range d.Sections {
		es := EditorSection{Type: s.Kind(), Label: s.Kind().Label()}
		switch t := s.(type) {
		case model.SummarySection:
			es.Content = t.Content
		case model.CustomSection:
			es.Title = t.Title
			es.Content = t.Content
		case model.ListSection:
			for _, e := range t.Entries {
				es.Entries = append(es.Entries, entryFields(t.Type, e))
			}
		}
		p.Sections = append(p.Sections, es)
	}
	return p
}

func entryFields(t model.SectionType, e model.Entry) []FieldValue {
	specs := EntryFields[t]
	known := make(map[string]bool, len(specs))
	out := make([]FieldValue, 0, len(specs))
	for _, spec := range specs {
		known[spec.Key] = true
		out = append(out, FieldValue{FieldSpec: spec, Value: text(e[spec.Key])})
	}
	var extra []string
	for k := range e {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		out = append(out, FieldValue{FieldSpec: FieldSpec{Key: k, Label: k}, Value: text(e[k])})
	}
	return out
}

// Editor writes the editor form for p.
func Editor(w io.Writer, p EditorPage) error {
	return execute(w, "editor.html", p)
}
