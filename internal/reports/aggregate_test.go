package reports

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cida-marmitas/marmitas/internal/civil"
)

var day1 = civil.Date{Year: 2025, Month: time.May, Day: 20}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func twoCompanyRows() []Row {
	return []Row{
		{OrderID: 1, CompanyID: 1, CompanyName: "Alfa", SectorID: 10, SectorName: "Produção", ServiceDate: day1, EmployeeName: "Ana", SizeName: "P", Price: price("10.00")},
		{OrderID: 2, CompanyID: 1, CompanyName: "Alfa", SectorID: 10, SectorName: "Produção", ServiceDate: day1, EmployeeName: "Bruno", SizeName: "G", Price: price("15.00"), Extras: "Ovo, Salada"},
		{OrderID: 3, CompanyID: 2, CompanyName: "Beta", SectorID: 20, SectorName: "Expedição", ServiceDate: day1, EmployeeName: "Carla", SizeName: "P", Price: price("10.00")},
		{OrderID: 4, CompanyID: 2, CompanyName: "Beta", SectorID: 20, SectorName: "Expedição", ServiceDate: day1, EmployeeName: "Davi", SizeName: "G", Price: price("15.00")},
	}
}

func TestBuildTwoCompanyScenario(t *testing.T) {
	tree := Build(twoCompanyRows())
	require.Len(t, tree, 2)

	for _, company := range tree {
		require.Len(t, company.Sectors, 1)
		sector := company.Sectors[0]
		require.Len(t, sector.Days, 1)
		day := sector.Days[0]

		for _, totals := range []Totals{company.Totals, sector.Totals, day.Totals} {
			assert.True(t, totals.TotalValue.Equal(price("25.00")), totals.TotalValue.String())
			assert.Equal(t, 2, totals.TotalCount)
		}
		assert.Equal(t, "20/05/2025", day.Label)
	}
	assert.Equal(t, "Alfa", tree[0].Name)
	assert.Equal(t, NoExtras, tree[0].Sectors[0].Days[0].Orders[0].Extras)
	assert.Equal(t, "Ovo, Salada", tree[0].Sectors[0].Days[0].Orders[1].Extras)
}

func TestBuildEmpty(t *testing.T) {
	tree := Build(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

// generatedRows produces a sorted input spanning several companies, sectors
// and days with varying prices.
func generatedRows() []Row {
	var rows []Row
	id := int64(0)
	for c := 1; c <= 3; c++ {
		for s := 1; s <= 3; s++ {
			for d := 0; d < 4; d++ {
				for e := 0; e < (c+s+d)%4+1; e++ {
					id++
					rows = append(rows, Row{
						OrderID:      id,
						CompanyID:    int64(c),
						CompanyName:  fmt.Sprintf("Empresa %d", c),
						SectorID:     int64(c*10 + s),
						SectorName:   fmt.Sprintf("Setor %d", s),
						ServiceDate:  day1.AddDays(d),
						EmployeeName: fmt.Sprintf("Funcionário %02d", e),
						Price:        decimal.New(int64(1000+id*37%900), -2),
					})
				}
			}
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.CompanyName != b.CompanyName {
			return a.CompanyName < b.CompanyName
		}
		if a.SectorName != b.SectorName {
			return a.SectorName < b.SectorName
		}
		if a.ServiceDate != b.ServiceDate {
			return a.ServiceDate.Before(b.ServiceDate)
		}
		return a.EmployeeName < b.EmployeeName
	})
	return rows
}

func TestBuildTotalsRollUp(t *testing.T) {
	rows := generatedRows()
	tree := Build(rows)

	grand := decimal.Zero
	lines := 0
	for _, company := range tree {
		companySum, companyCount := decimal.Zero, 0
		for _, sector := range company.Sectors {
			sectorSum, sectorCount := decimal.Zero, 0
			for _, day := range sector.Days {
				daySum := decimal.Zero
				for _, line := range day.Orders {
					daySum = daySum.Add(line.Price)
				}
				assert.True(t, daySum.Equal(day.TotalValue))
				assert.Equal(t, len(day.Orders), day.TotalCount)
				sectorSum = sectorSum.Add(day.TotalValue)
				sectorCount += day.TotalCount
			}
			assert.True(t, sectorSum.Equal(sector.TotalValue))
			assert.Equal(t, sectorCount, sector.TotalCount)
			companySum = companySum.Add(sector.TotalValue)
			companyCount += sector.TotalCount
		}
		assert.True(t, companySum.Equal(company.TotalValue))
		assert.Equal(t, companyCount, company.TotalCount)
		grand = grand.Add(company.TotalValue)
		lines += company.TotalCount
	}

	want := decimal.Zero
	for _, r := range rows {
		want = want.Add(r.Price)
	}
	assert.True(t, want.Equal(grand))
	assert.Equal(t, len(rows), lines)
}

func TestBuildPreservesInputOrder(t *testing.T) {
	tree := Build(generatedRows())
	require.Len(t, tree, 3)
	for i, company := range tree {
		assert.Equal(t, fmt.Sprintf("Empresa %d", i+1), company.Name)
		require.Len(t, company.Sectors, 3)
		for _, sector := range company.Sectors {
			require.Len(t, sector.Days, 4)
			for d := 1; d < len(sector.Days); d++ {
				assert.True(t, sector.Days[d-1].Date.Before(sector.Days[d].Date))
			}
		}
	}
}

func TestBuildKeepsSameNamedSectorsApart(t *testing.T) {
	rows := []Row{
		{CompanyID: 1, CompanyName: "Alfa", SectorID: 5, SectorName: "RH", ServiceDate: day1, Price: price("10")},
		{CompanyID: 2, CompanyName: "Beta", SectorID: 6, SectorName: "RH", ServiceDate: day1, Price: price("12")},
	}
	tree := Build(rows)
	require.Len(t, tree, 2)
	assert.True(t, tree[0].Sectors[0].TotalValue.Equal(price("10")))
	assert.True(t, tree[1].Sectors[0].TotalValue.Equal(price("12")))
}
