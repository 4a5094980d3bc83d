package reports

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbookLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, Build(twoCompanyRows())))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"Detalhe / Funcionário", "Tamanho", "Extras/Obs", "Valor (R$)"}, rows[0])
	assert.Equal(t, "EMPRESA: Alfa", rows[1][0])
	assert.Equal(t, "R$ 25,00", rows[1][3])
	assert.Equal(t, "  SETOR: Produção", rows[2][0])
	assert.Equal(t, "    DATA: 20/05/2025", rows[3][0])
	assert.Equal(t, "Total: R$ 25,00", rows[3][3])

	assert.Equal(t, "      Ana", rows[4][0])
	assert.Equal(t, "-", rows[4][2])
	value, err := strconv.ParseFloat(rows[4][3], 64)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, value, 0.001)
	assert.Equal(t, "Ovo, Salada", rows[5][2])

	assert.Empty(t, rows[6])
	assert.Equal(t, "EMPRESA: Beta", rows[7][0])

	width, err := f.GetColWidth(SheetName, "A")
	require.NoError(t, err)
	assert.InDelta(t, 40.0, width, 0.01)

	companyStyle, err := f.GetCellStyle(SheetName, "A2")
	require.NoError(t, err)
	sectorStyle, err := f.GetCellStyle(SheetName, "A3")
	require.NoError(t, err)
	assert.NotZero(t, companyStyle)
	assert.NotEqual(t, companyStyle, sectorStyle)
}

func TestWriteWorkbookEmptyTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil))
	assert.NotZero(t, buf.Len())
}

func TestWriteCSVOneRecordPerLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Build(twoCompanyRows())))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"Alfa", "Produção", "20/05/2025", "Bruno", "G", "Ovo, Salada", "15.00"}, records[2])
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 10,50", FormatBRL(price("10.5")))
}
