package report

import (
	"fmt"
	"io"
	"time"

	domain "themis-backend/internal/domain/report"
)

// Document is a format-neutral report: a title and a list of tables.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Sections    []Section
}

type Section struct {
	Heading string
	Columns []string
	// Widths are relative column weights; nil means equal widths.
	Widths []float64
	Rows   [][]string
}

// Renderer writes a Document in one output format.
type Renderer interface {
	Extension() string
	ContentType() string
	Render(w io.Writer, doc *Document) error
}

var renderers = map[string]Renderer{
	"pdf":  pdfRenderer{},
	"txt":  textRenderer{},
	"xlsx": xlsxRenderer{},
}

func rendererFor(format string) (Renderer, error) {
	r, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	return r, nil
}

func stamp(t time.Time) string { return t.Format("2006-01-02 15:04:05") }
