package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

type xlsxRenderer struct{}

func (xlsxRenderer) Extension() string { return "xlsx" }
func (xlsxRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render writes one sheet per section.
func (xlsxRenderer) Render(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("create title style: %w", err)
	}

	used := map[string]bool{}
	for i, s := range doc.Sections {
		name := sheetName(s.Heading, doc.Title, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}

		title := doc.Title
		if s.Heading != "" {
			title += " - " + s.Heading
		}
		if err := f.SetCellValue(name, "A1", title); err != nil {
			return err
		}
		if err := f.SetCellStyle(name, "A1", "A1", titleStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(name, "A2", "Generated on: "+stamp(doc.GeneratedAt)); err != nil {
			return err
		}

		const headerRow = 4
		for col, h := range s.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, h); err != nil {
				return err
			}
			if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
				return err
			}
			colName, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(name, colName, colName, sheetColumnWidth(s, col)); err != nil {
				return err
			}
		}

		for r, row := range s.Rows {
			cells := make([]interface{}, len(row))
			for j, c := range row {
				cells[j] = c
			}
			start, err := excelize.CoordinatesToCellName(1, headerRow+1+r)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, start, &cells); err != nil {
				return fmt.Errorf("write row %d: %w", r, err)
			}
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func sheetColumnWidth(s Section, col int) float64 {
	if len(s.Widths) == len(s.Columns) && s.Widths[col] > 0 {
		return 6 * s.Widths[col]
	}
	return 20
}

func sheetName(heading, title string, used map[string]bool) string {
	base := heading
	if base == "" {
		base = title
	}
	base = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")").Replace(base)
	if base == "" {
		base = "Report"
	}
	name := truncateRunes(base, maxSheetName)
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" %d", n)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	used[name] = true
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
