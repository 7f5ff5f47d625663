package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a single-page PDF whose content stream is content, with
// an xref table pointing at the real object offsets.
func buildPDF(content string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func TestPDFParser_ExtractTextFromBytes(t *testing.T) {
	p := NewPDFParserService()

	text, err := p.ExtractTextFromBytes(buildPDF("BT /F1 12 Tf 72 720 Td (Senior Go Developer) Tj ET"))
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Go Developer")
}

func TestPDFParser_ExtractTextFromBytes_Errors(t *testing.T) {
	p := NewPDFParserService()

	t.Run("not a pdf", func(t *testing.T) {
		_, err := p.ExtractTextFromBytes([]byte("this is plainly not a PDF document"))
		assert.ErrorContains(t, err, "failed to open PDF")
	})

	t.Run("no text", func(t *testing.T) {
		_, err := p.ExtractTextFromBytes(buildPDF("q Q"))
		assert.ErrorIs(t, err, ErrNoTextExtracted)
	})
}

func TestPDFParser_ExtractTextWithMetaData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, buildPDF("BT /F1 12 Tf 72 720 Td (Data Analyst) Tj ET"), 0o644))

	content, err := NewPDFParserService().ExtractTextWithMetaData(path)
	require.NoError(t, err)
	assert.Equal(t, 1, content.PageCount)
	assert.Equal(t, path, content.FilePath)
	assert.Contains(t, content.Text, "Data Analyst")
}
