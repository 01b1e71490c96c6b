package textextract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.TXT")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\nGo developer"), 0o644))

	text, err := New().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", text)
}

func TestExtractUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.odt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := New().Extract(path)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestExtractMissingFile(t *testing.T) {
	_, err := New().Extract(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("cv.PDF"))
	assert.True(t, Supported("cv.docx"))
	assert.True(t, Supported("notes.txt"))
	assert.False(t, Supported("cv.doc"))
	assert.False(t, Supported("cv"))
}

func TestDocxText(t *testing.T) {
	content := `<w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Go &amp; Python</w:t></w:r><w:r><w:tab/><w:t>2024</w:t></w:r></w:p></w:body>`
	assert.Equal(t, "Jane Doe\nGo & Python\t2024", docxText(content))
}

func TestValidUTF8(t *testing.T) {
	assert.Equal(t, "a�b", validUTF8("a\xffb"))
}
