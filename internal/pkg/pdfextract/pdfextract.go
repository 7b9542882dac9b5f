package pdfextract

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrEmptyDocument = errors.New("pdf document is empty")

// Document is the text content of a PDF and how many pages it has.
type Document struct {
	Text      string
	PageCount int
}

// Extract reads the entire content of r and extracts plain text and the page
// count. Text is empty when the PDF has no extractable text.
func Extract(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, ErrEmptyDocument
	}
	pdfReader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, err
	}
	plainReader, err := pdfReader.GetPlainText()
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return nil, err
	}
	return &Document{
		Text:      strings.TrimSpace(string(out)),
		PageCount: pdfReader.NumPage(),
	}, nil
}
