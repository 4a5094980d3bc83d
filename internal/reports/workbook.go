package reports

import (
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// SheetName is the only sheet of the exported workbook.
	SheetName = "Fechamento"
	// Filename is the attachment name of the exported workbook.
	Filename = "fechamento_marmitas.xlsx"
	// ContentType is the OOXML spreadsheet MIME type.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type column struct {
	name   string
	header string
	width  float64
}

var columns = []column{
	{"A", "Detalhe / Funcionário", 40},
	{"B", "Tamanho", 15},
	{"C", "Extras/Obs", 30},
	{"D", "Valor (R$)", 15},
}

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount as "R$ 1.234,50".
func FormatBRL(v decimal.Decimal) string {
	return brl.Sprintf("R$ %.2f", v.InexactFloat64())
}

type sheetStyles struct {
	header, company, sector, day, price int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var (
		s   sheetStyles
		err error
	)
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.header, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&s.company, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
		}},
		{&s.sector, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 12},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"BDD7EE"}},
		}},
		{&s.day, &excelize.Style{
			Font: &excelize.Font{Bold: true, Italic: true},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"EDEDED"}},
		}},
		{&s.price, &excelize.Style{NumFmt: 2}},
	}
	for _, d := range defs {
		if *d.dst, err = f.NewStyle(d.style); err != nil {
			return s, err
		}
	}
	return s, nil
}

// sheetWriter appends rows and remembers the first error.
type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (w *sheetWriter) add(style int, values ...any) {
	if w.err != nil {
		return
	}
	w.row++
	if len(values) == 0 {
		return
	}
	first := "A" + strconv.Itoa(w.row)
	if w.err = w.f.SetSheetRow(SheetName, first, &values); w.err != nil {
		return
	}
	if style != 0 {
		w.err = w.f.SetCellStyle(SheetName, first, "D"+strconv.Itoa(w.row), style)
	}
}

func (w *sheetWriter) styleCell(col string, style int) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(SheetName, col+strconv.Itoa(w.row), col+strconv.Itoa(w.row), style)
}

// WriteWorkbook renders the tree depth first: one row per company, sector
// and day header with its total, one row per order line, and a blank row
// after each company.
func WriteWorkbook(w io.Writer, tree []*CompanyNode) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}
	for _, c := range columns {
		if err := f.SetColWidth(SheetName, c.name, c.name, c.width); err != nil {
			return err
		}
	}
	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	sw := &sheetWriter{f: f}
	headers := make([]any, len(columns))
	for i, c := range columns {
		headers[i] = c.header
	}
	sw.add(styles.header, headers...)

	for _, company := range tree {
		sw.add(styles.company, "EMPRESA: "+company.Name, "", "", FormatBRL(company.TotalValue))
		for _, sector := range company.Sectors {
			sw.add(styles.sector, "  SETOR: "+sector.Name, "", "", FormatBRL(sector.TotalValue))
			for _, day := range sector.Days {
				sw.add(styles.day, "    DATA: "+day.Label, "", "", "Total: "+FormatBRL(day.TotalValue))
				for _, line := range day.Orders {
					sw.add(0, "      "+line.Employee, line.Size, line.Extras, line.Price.InexactFloat64())
					sw.styleCell("D", styles.price)
				}
			}
		}
		sw.add(0)
	}
	if sw.err != nil {
		return sw.err
	}
	return f.Write(w)
}
