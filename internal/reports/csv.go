package reports

import (
	"encoding/csv"
	"io"
)

// WriteCSV flattens the tree into one record per order line.
func WriteCSV(w io.Writer, tree []*CompanyNode) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Empresa", "Setor", "Data", "Funcionário", "Tamanho", "Extras", "Valor"}); err != nil {
		return err
	}
	for _, company := range tree {
		for _, sector := range company.Sectors {
			for _, day := range sector.Days {
				for _, line := range day.Orders {
					if err := writer.Write([]string{
						company.Name,
						sector.Name,
						day.Label,
						line.Employee,
						line.Size,
						line.Extras,
						line.Price.StringFixed(2),
					}); err != nil {
						return err
					}
				}
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
