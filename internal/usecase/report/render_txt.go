package report

import (
	"bufio"
	"io"
	"strings"
)

type textRenderer struct{}

func (textRenderer) Extension() string   { return "txt" }
func (textRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (textRenderer) Render(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(doc.Title + "\n")
	bw.WriteString("Generated on: " + stamp(doc.GeneratedAt) + "\n\n")

	for i, s := range doc.Sections {
		if i > 0 {
			bw.WriteString("\n")
		}
		if s.Heading != "" {
			bw.WriteString(s.Heading + "\n")
		}
		bw.WriteString(strings.Join(s.Columns, "\t") + "\n")
		for _, row := range s.Rows {
			cells := make([]string, len(row))
			for j, c := range row {
				cells[j] = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(c)
			}
			bw.WriteString(strings.Join(cells, "\t") + "\n")
		}
	}
	return bw.Flush()
}
