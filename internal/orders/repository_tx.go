package orders

import (
	"context"

	"github.com/cida-marmitas/marmitas/internal/platform/db"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

const uniqueEmployeeMenu = "orders_employee_menu_key"

// FindOrder looks up the employee's order for a menu.
func (t *txRepository) FindOrder(ctx context.Context, employeeID, menuID int64) (int64, bool, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `SELECT id FROM orders WHERE employee_id = $1 AND menu_id = $2`,
		employeeID, menuID).Scan(&id)
	if db.IsNoRows(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// InsertOrder creates the order row.
func (t *txRepository) InsertOrder(ctx context.Context, o Order) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO orders (employee_id, menu_id, size_id, note)
VALUES ($1, $2, $3, $4) RETURNING id`, o.EmployeeID, o.MenuID, o.SizeID, o.Note).Scan(&id)
	if db.IsUniqueViolation(err, uniqueEmployeeMenu) {
		return 0, shared.ErrDuplicateOrder
	}
	return id, err
}

// InsertExtras attaches the chosen extras in one statement.
func (t *txRepository) InsertExtras(ctx context.Context, orderID int64, extraIDs []int64) error {
	if len(extraIDs) == 0 {
		return nil
	}
	_, err := t.tx.Exec(ctx, `INSERT INTO order_extras (order_id, extra_id)
SELECT $1, unnest($2::bigint[])`, orderID, extraIDs)
	if db.IsForeignKeyViolation(err) {
		return shared.Validation("Opção inválida.")
	}
	return err
}

// UpdateOrder replaces size and note.
func (t *txRepository) UpdateOrder(ctx context.Context, id, sizeID int64, note string) error {
	tag, err := t.tx.Exec(ctx, `UPDATE orders SET size_id = $1, note = $2 WHERE id = $3`, sizeID, note, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NewError(shared.ErrNotFound, "Pedido não encontrado.")
	}
	return nil
}

// DeleteExtras removes every extra of an order.
func (t *txRepository) DeleteExtras(ctx context.Context, orderID int64) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM order_extras WHERE order_id = $1`, orderID)
	return err
}

// DeleteOrder removes the order row. Extras must be deleted first.
func (t *txRepository) DeleteOrder(ctx context.Context, id int64) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NewError(shared.ErrNotFound, "Pedido não encontrado.")
	}
	return nil
}
