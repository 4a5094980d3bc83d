package orders

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/eligibility"
	"github.com/cida-marmitas/marmitas/internal/masterdata/catalog"
	"github.com/cida-marmitas/marmitas/internal/masterdata/menus"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

type storedOrder struct {
	Order
	date civil.Date
}

// memoryRepo keeps orders in memory. Transactions run one at a time and
// work on a copy that replaces the committed state only on success.
type memoryRepo struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	orders    map[int64]storedOrder
	nextID    int64
	sectors   map[int64]int64
	menuDates map[int64]civil.Date
	// failExtras makes InsertExtras fail after the order row was staged.
	failExtras bool
	Repository
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		orders:    map[int64]storedOrder{},
		sectors:   map[int64]int64{},
		menuDates: map[int64]civil.Date{},
	}
}

func (m *memoryRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *memoryRepo) FindOrderForDate(_ context.Context, employeeID int64, date civil.Date) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, o := range m.orders {
		if o.EmployeeID == employeeID && o.date == date {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (m *memoryRepo) EmployeeSector(_ context.Context, employeeID int64) (int64, error) {
	sectorID, ok := m.sectors[employeeID]
	if !ok {
		return 0, shared.ErrNotFound
	}
	return sectorID, nil
}

func (m *memoryRepo) GetOrder(_ context.Context, id int64) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return Order{}, shared.NewError(shared.ErrNotFound, "Pedido não encontrado.")
	}
	return o.Order, nil
}

func (m *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	staged := make(map[int64]storedOrder, len(m.orders))
	for k, v := range m.orders {
		staged[k] = v
	}
	next := m.nextID
	m.mu.Unlock()

	tx := &memoryTx{repo: m, orders: staged, nextID: next, failExtra: m.failExtras}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	m.mu.Lock()
	m.orders = tx.orders
	m.nextID = tx.nextID
	m.mu.Unlock()
	return nil
}

type memoryTx struct {
	repo      *memoryRepo
	orders    map[int64]storedOrder
	nextID    int64
	failExtra bool
}

func (t *memoryTx) FindOrder(_ context.Context, employeeID, menuID int64) (int64, bool, error) {
	for id, o := range t.orders {
		if o.EmployeeID == employeeID && o.MenuID == menuID {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (t *memoryTx) InsertOrder(_ context.Context, o Order) (int64, error) {
	for _, existing := range t.orders {
		if existing.EmployeeID == o.EmployeeID && existing.MenuID == o.MenuID {
			return 0, shared.ErrDuplicateOrder
		}
	}
	t.nextID++
	o.ID = t.nextID
	o.CreatedAt = time.Now()
	o.ExtraIDs = nil
	t.orders[o.ID] = storedOrder{Order: o, date: t.repo.menuDates[o.MenuID]}
	return o.ID, nil
}

func (t *memoryTx) InsertExtras(_ context.Context, orderID int64, extraIDs []int64) error {
	if t.failExtra && len(extraIDs) > 0 {
		return errors.New("extras insert failed")
	}
	o := t.orders[orderID]
	o.ExtraIDs = append(o.ExtraIDs, extraIDs...)
	t.orders[orderID] = o
	return nil
}

func (t *memoryTx) UpdateOrder(_ context.Context, id, sizeID int64, note string) error {
	o, ok := t.orders[id]
	if !ok {
		return shared.NewError(shared.ErrNotFound, "Pedido não encontrado.")
	}
	o.SizeID = sizeID
	o.Note = note
	t.orders[id] = o
	return nil
}

func (t *memoryTx) DeleteExtras(_ context.Context, orderID int64) error {
	if o, ok := t.orders[orderID]; ok {
		o.ExtraIDs = nil
		t.orders[orderID] = o
	}
	return nil
}

func (t *memoryTx) DeleteOrder(_ context.Context, id int64) error {
	if _, ok := t.orders[id]; !ok {
		return shared.NewError(shared.ErrNotFound, "Pedido não encontrado.")
	}
	delete(t.orders, id)
	return nil
}

type stubSectors struct {
	windows map[int64][]eligibility.Window
	cutoffs map[int64]civil.TimeOfDay
}

func (s stubSectors) Windows(_ context.Context, sectorID int64) ([]eligibility.Window, error) {
	return s.windows[sectorID], nil
}

func (s stubSectors) Cutoff(_ context.Context, sectorID int64) (civil.TimeOfDay, error) {
	return s.cutoffs[sectorID], nil
}

type stubMenus map[civil.Date]menus.Menu

func (s stubMenus) GetByDate(_ context.Context, date civil.Date) (menus.Menu, error) {
	m, ok := s[date]
	if !ok {
		return menus.Menu{}, shared.ErrNotFound
	}
	return m, nil
}

type stubCatalog struct{}

func (stubCatalog) ActiveSizes(context.Context) ([]catalog.Size, error) {
	return []catalog.Size{
		{ID: 1, Name: "Pequena", Price: decimal.RequireFromString("15.00"), Active: true},
		{ID: 2, Name: "Grande", Price: decimal.RequireFromString("20.00"), Active: true},
	}, nil
}

func (c stubCatalog) ListSizes(ctx context.Context) ([]catalog.Size, error) {
	sizes, _ := c.ActiveSizes(ctx)
	return append(sizes, catalog.Size{ID: 3, Name: "Família", Price: decimal.RequireFromString("35.00")}), nil
}

func (c stubCatalog) ListExtras(ctx context.Context) ([]catalog.Extra, error) {
	extras, _ := c.ActiveExtras(ctx)
	return append(extras, catalog.Extra{ID: 12, Name: "Farofa", Kind: "OPCIONAL"}), nil
}

func (stubCatalog) ActiveExtras(context.Context) ([]catalog.Extra, error) {
	return []catalog.Extra{
		{ID: 10, Name: "Ovo frito", Kind: "OPCIONAL", Active: true},
		{ID: 11, Name: "Sem feijão", Kind: "SUBSTITUICAO", Active: true},
	}, nil
}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (c *countingRecorder) ObserveOrderSubmission(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcomes == nil {
		c.outcomes = map[string]int{}
	}
	c.outcomes[outcome]++
}
