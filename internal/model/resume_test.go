package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDynamic(t *testing.T) {
	doc := decode(t, `{
		"name": "A", "github": "jane",
		"sections": [
			{"type": "custom", "title": "Awards", "content": "Best paper"},
			{"type": "hobbies", "entries": []},
			"not an object",
			{"type": "projects", "items": [{"name": "cv"}, 3]},
			{"type": "summary", "content": "S"}
		]
	}`)

	d := DecodeDynamic(doc)

	assert.Equal(t, "A", d.Name)
	assert.Equal(t, "jane", d.GitHub)
	require.Len(t, d.Sections, 3)
	assert.Equal(t, CustomSection{Title: "Awards", Content: "Best paper"}, d.Sections[0])
	assert.Equal(t, ListSection{Type: SectionProjects, Entries: []Entry{{"name": "cv"}}}, d.Sections[1])
	assert.Equal(t, SummarySection{Content: "S"}, d.Sections[2])
}

func TestStaticToDynamicOrder(t *testing.T) {
	s := Static{
		Summary:      "S",
		Education:    []Entry{{"degree": "BSc"}},
		Certificates: []Entry{{"name": "CKA"}},
		Skills:       []Entry{{"category": "Go"}},
		Projects:     []Entry{{"name": "cv"}},
		Experience:   []Entry{{"title": "Dev"}},
	}
	var kinds []SectionType
	for _, sec := range s.ToDynamic().Sections {
		kinds = append(kinds, sec.Kind())
	}
	assert.Equal(t, StaticOrder, kinds)
}

func TestDynamicJSON(t *testing.T) {
	var d Dynamic
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","summary":"S","skills":[{"category":"Go"}]}`), &d))
	require.Len(t, d.Sections, 2)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name":"A","email":"","phone":"","location":"","linkedin":"","github":"","website":"",
		"sections":[{"type":"summary","content":"S"},{"type":"skills","entries":[{"category":"Go"}]}]
	}`, string(b))
}

func TestSectionTypes(t *testing.T) {
	typ, ok := ParseSectionType("custom")
	assert.True(t, ok)
	assert.Equal(t, "Custom Section", typ.Label())

	_, ok = ParseSectionType("hobbies")
	assert.False(t, ok)
	assert.Len(t, Catalog, 7)
}

func TestStringOf(t *testing.T) {
	assert.Equal(t, "", stringOf(nil))
	assert.Equal(t, "2019", stringOf(float64(2019)))
}
