package util

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocumentTextPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("  SKILLS\n- Go\n"), 0o644))

	text, err := ExtractDocumentText(path)
	require.NoError(t, err)
	assert.Equal(t, "SKILLS\n- Go", text)
}

func TestExtractDocumentTextDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>Jane   Doe</w:t></w:r></w:p><w:p><w:r><w:t>Backend</w:t><w:tab/><w:t>Engineer</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	text, err := ExtractDocumentText(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend Engineer", text)
}

func TestExtractDocumentTextUnsupported(t *testing.T) {
	_, err := ExtractDocumentText(filepath.Join(t.TempDir(), "photo.png"))
	require.Error(t, err)
}

func TestExtractDocxTextTooLarge(t *testing.T) {
	prev := maxDocxXMLSize
	maxDocxXMLSize = 64
	t.Cleanup(func() { maxDocxXMLSize = prev })

	path := filepath.Join(t.TempDir(), "bomb.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<w:p>" + strings.Repeat("a", 200) + "</w:p>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = ExtractDocxText(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}
