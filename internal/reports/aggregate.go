package reports

// NoExtras is shown for orders without extras.
const NoExtras = "-"

type sectorKey struct {
	company, sector int64
}

type dayKey struct {
	company, sector int64
	date            string
}

// Build groups rows into company, sector and day nodes in one pass. Nodes
// are found by key and appended in first-seen order, so sorted input yields
// sorted output. Every line's price is added to its day, sector and company.
func Build(rows []Row) []*CompanyNode {
	companies := make(map[int64]*CompanyNode)
	sectors := make(map[sectorKey]*SectorNode)
	days := make(map[dayKey]*DayNode)
	out := []*CompanyNode{}

	for _, row := range rows {
		company, ok := companies[row.CompanyID]
		if !ok {
			company = &CompanyNode{ID: row.CompanyID, Name: row.CompanyName, Sectors: []*SectorNode{}}
			companies[row.CompanyID] = company
			out = append(out, company)
		}

		sk := sectorKey{row.CompanyID, row.SectorID}
		sector, ok := sectors[sk]
		if !ok {
			sector = &SectorNode{ID: row.SectorID, Name: row.SectorName, Days: []*DayNode{}}
			sectors[sk] = sector
			company.Sectors = append(company.Sectors, sector)
		}

		dk := dayKey{row.CompanyID, row.SectorID, row.ServiceDate.String()}
		day, ok := days[dk]
		if !ok {
			day = &DayNode{Date: row.ServiceDate, Label: row.ServiceDate.Localized(), Orders: []Line{}}
			days[dk] = day
			sector.Days = append(sector.Days, day)
		}

		extras := row.Extras
		if extras == "" {
			extras = NoExtras
		}
		day.Orders = append(day.Orders, Line{
			OrderID:  row.OrderID,
			Employee: row.EmployeeName,
			Size:     row.SizeName,
			Extras:   extras,
			Price:    row.Price,
		})
		day.add(row.Price)
		sector.add(row.Price)
		company.add(row.Price)
	}
	return out
}
