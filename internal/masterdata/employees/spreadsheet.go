package employees

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cida-marmitas/marmitas/internal/shared"
)

var importColumns = []string{"NOME", "RA", "EMPRESA", "SETOR"}

// ParseWorkbook reads the first sheet of an employee spreadsheet. The header
// row must name the columns NOME, RA, EMPRESA and SETOR in any order. Lines
// without name or RA are skipped and counted.
func ParseWorkbook(r io.Reader) ([]ImportRow, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, shared.Validation("Arquivo Excel inválido.")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, shared.Validation("Planilha vazia.")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("employees: read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, shared.Validation("Planilha vazia.")
	}

	index := make(map[string]int, len(importColumns))
	for i, header := range rows[0] {
		index[strings.ToUpper(strings.TrimSpace(header))] = i
	}
	for _, col := range importColumns {
		if _, ok := index[col]; !ok {
			return nil, 0, shared.Validation("Coluna %s ausente. Esperado: %s.", col, strings.Join(importColumns, ", "))
		}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		out     []ImportRow
		skipped int
	)
	for n, row := range rows[1:] {
		line := n + 2
		item := ImportRow{
			Line:    line,
			Name:    cell(row, "NOME"),
			RaCpf:   cell(row, "RA"),
			Company: cell(row, "EMPRESA"),
			Sector:  cell(row, "SETOR"),
		}
		if item.Name == "" || item.RaCpf == "" {
			skipped++
			continue
		}
		if item.Company == "" || item.Sector == "" {
			return nil, 0, shared.Validation("Linha %d: empresa e setor são obrigatórios.", line)
		}
		out = append(out, item)
	}
	return out, skipped, nil
}
