// Package resume extracts plain text from uploaded resume files.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrNoText means the file yielded no extractable text: corrupt input, an
// unsupported type, or a scanned-image PDF. Callers treat it as "nothing to
// work with" rather than a hard failure.
var ErrNoText = errors.New("no extractable text in file")

// Extract pulls plain text out of an uploaded resume. PDF, DOCX and plain
// text are accepted; the mime type decides the parser.
func Extract(mime string, data []byte) (string, error) {
	var text string
	switch mime {
	case "text/plain":
		text = string(data)

	case "application/pdf":
		text = extractPDFText(data)

	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		text = extractDocxText(data)

	default:
		return "", fmt.Errorf("%w: unsupported file type %s", ErrNoText, mime)
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// extractPDFText concatenates per-page text in page order. Pages without
// extractable text (scanned images) contribute nothing; a corrupt file
// degrades to empty output instead of failing the upload.
func extractPDFText(data []byte) string {
	defer func() {
		// The pdf package panics on some malformed files.
		_ = recover()
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
	}
	return textBuilder.String()
}

func extractDocxText(data []byte) string {
	r := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(r, int64(len(data)))
	if err != nil {
		return ""
	}
	defer doc.Close()

	return stripDocxTags(doc.Editable().GetContent())
}

// stripDocxTags flattens the raw document XML into readable text.
func stripDocxTags(content string) string {
	var b strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ReadAll is a small helper for multipart uploads.
func ReadAll(r io.Reader) ([]byte, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return buf.Bytes(), nil
}
