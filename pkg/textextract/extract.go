// Package textextract reads plain text out of uploaded resume and LinkedIn
// files.
package textextract

import (
	"bytes"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/pkg/errors"
)

// Extensions lists the accepted file extensions, lower case.
var Extensions = []string{".pdf", ".docx", ".txt"}

// ErrUnsupported is returned for a file whose extension is not accepted.
var ErrUnsupported = errors.New("unsupported file type")

// Supported reports whether name has an accepted extension.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Extractor implements text extraction by file extension.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

// Extract returns the text of the file at path. A document without
// extractable text yields an empty string, not an error.
func (*Extractor) Extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDocx(path)
	case ".txt":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrap(err, "read text file")
		}
		return validUTF8(string(b)), nil
	default:
		return "", errors.Wrapf(ErrUnsupported, "%s", filepath.Base(path))
	}
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "open PDF")
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", errors.Wrap(err, "extract PDF text")
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", errors.Wrap(err, "read PDF text")
	}
	return validUTF8(buf.String()), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
	blankLines   = regexp.MustCompile(`\n{3,}`)
)

func extractDocx(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", errors.Wrap(err, "open DOCX")
	}
	defer r.Close()
	return docxText(r.Editable().GetContent()), nil
}

// docxText turns the document.xml body into plain text with one line per
// paragraph.
func docxText(content string) string {
	s := paragraphEnd.ReplaceAllStringFunc(content, func(m string) string {
		if strings.HasPrefix(m, "<w:tab") {
			return "\t"
		}
		return "\n"
	})
	s = xmlTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "�")
}
