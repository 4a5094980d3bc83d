package catalog

import (
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cida-marmitas/marmitas/internal/shared"
)

func expectOne(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
