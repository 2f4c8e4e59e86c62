// Package pdftext reads uploaded GPC PDFs: structural validation and page
// count through pdfcpu, row-ordered plain text through ledongthuc/pdf.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"gpcaffidavit/internal/domain"
)

// headerWindow is how far into the file the %PDF- marker may appear.
const headerWindow = 1024

// Info describes a validated PDF.
type Info struct {
	Pages     int
	Encrypted bool
}

// IsPDF reports whether b starts like a PDF document.
func IsPDF(b []byte) bool {
	window := b
	if len(window) > headerWindow {
		window = window[:headerWindow]
	}
	return bytes.Contains(window, []byte("%PDF-"))
}

// Inspect parses the document with relaxed validation and returns its page count.
func Inspect(b []byte) (*Info, error) {
	if !IsPDF(b) {
		return nil, fmt.Errorf("%w: missing %%PDF header", domain.ErrUnsupportedFileType)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(b), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: page count: %v", domain.ErrInvalidPDF, err)
	}
	if ctx.PageCount == 0 {
		return nil, fmt.Errorf("%w: document has no pages", domain.ErrInvalidPDF)
	}

	return &Info{
		Pages:     ctx.PageCount,
		Encrypted: ctx.Encrypt != nil,
	}, nil
}

// PlainText returns the document text one visual row per line. Scanned pages
// without a text layer contribute nothing.
func PlainText(b []byte) (text string, err error) {
	// malformed content streams panic inside the reader
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: reading text: %v", domain.ErrInvalidPDF, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("reading page %d: %w", i, err)
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			line := strings.TrimSpace(strings.Join(words, " "))
			if line != "" {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String(), nil
}
