package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a dataset as a landscape A4 table. Column widths are
// proportional to the longest value in each column.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

const pageWidth = 277.0

func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	widths := columnWidths(data)

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		for i, h := range data.Headers {
			pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range data.Rows {
		if pdf.GetY()+7 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for i, h := range data.Headers {
			pdf.CellFormat(widths[i], 7, tr(truncate(row[h], widths[i])), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(data Dataset) []float64 {
	weights := make([]float64, len(data.Headers))
	var total float64
	for i, h := range data.Headers {
		longest := len(h)
		for _, row := range data.Rows {
			if n := len(row[h]); n > longest {
				longest = n
			}
		}
		if longest > 60 {
			longest = 60
		}
		weights[i] = float64(longest + 2)
		total += weights[i]
	}

	for i := range weights {
		weights[i] = weights[i] / total * pageWidth
	}
	return weights
}

// truncate keeps a value within roughly one line of its cell at 8pt.
func truncate(s string, width float64) string {
	max := int(width / 1.6)
	r := []rune(s)
	if max < 4 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
