package employees

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cida-marmitas/marmitas/internal/masterdata/shared"
	errs "github.com/cida-marmitas/marmitas/internal/shared"
)

type employeeRecord struct {
	name     string
	sectorID int64
}

// fakeRepo commits the staged tx state only when fn succeeds.
type fakeRepo struct {
	companies map[string]int64
	sectors   map[string]int64
	employees map[string]employeeRecord
	failOnRA  string
	Repository
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		companies: map[string]int64{},
		sectors:   map[string]int64{},
		employees: map[string]employeeRecord{},
	}
}

type fakeTx struct {
	parent    *fakeRepo
	companies map[string]int64
	sectors   map[string]int64
	employees map[string]employeeRecord
}

func clone[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx := &fakeTx{parent: f, companies: clone(f.companies), sectors: clone(f.sectors), employees: clone(f.employees)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	f.companies, f.sectors, f.employees = tx.companies, tx.sectors, tx.employees
	return nil
}

func (t *fakeTx) FindOrCreateCompany(_ context.Context, name string) (int64, error) {
	if id, ok := t.companies[name]; ok {
		return id, nil
	}
	id := int64(len(t.companies) + 1)
	t.companies[name] = id
	return id, nil
}

func (t *fakeTx) FindOrCreateSector(_ context.Context, companyID int64, name string) (int64, error) {
	key := fmt.Sprintf("%d/%s", companyID, name)
	if id, ok := t.sectors[key]; ok {
		return id, nil
	}
	id := int64(len(t.sectors) + 1)
	t.sectors[key] = id
	return id, nil
}

func (t *fakeTx) UpsertByRA(_ context.Context, name, raCpf string, sectorID int64) error {
	if raCpf == t.parent.failOnRA {
		return errors.New("boom")
	}
	t.employees[raCpf] = employeeRecord{name: name, sectorID: sectorID}
	return nil
}

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportUpsertsAndCreatesHierarchy(t *testing.T) {
	repo := newFakeRepo()
	repo.employees["100"] = employeeRecord{name: "Antigo", sectorID: 99}
	svc := NewService(repo, nil)

	file := workbook(t, [][]any{
		{"NOME", "RA", "EMPRESA", "SETOR"},
		{"Ana", "100", "Agro", "Campo"},
		{"Bruno", 200, "Agro", "Campo"},
		{"", "300", "Agro", "Campo"},
		{"Carla", "400", "Metal", "Solda"},
	})

	res, err := svc.Import(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 1, res.Skipped)
	assert.NotEmpty(t, res.BatchID)
	assert.Contains(t, res.Message, "3 funcionários")

	assert.Len(t, repo.companies, 2)
	assert.Len(t, repo.sectors, 2)
	assert.Equal(t, "Ana", repo.employees["100"].name)
	assert.NotEqual(t, int64(99), repo.employees["100"].sectorID)
	assert.Equal(t, repo.employees["100"].sectorID, repo.employees["200"].sectorID)
}

func TestImportRollsBackWholeFile(t *testing.T) {
	repo := newFakeRepo()
	repo.failOnRA = "200"
	svc := NewService(repo, nil)

	file := workbook(t, [][]any{
		{"RA", "NOME", "SETOR", "EMPRESA"},
		{"100", "Ana", "Campo", "Agro"},
		{"200", "Bruno", "Campo", "Agro"},
	})

	_, err := svc.Import(context.Background(), file)
	require.Error(t, err)
	assert.Empty(t, repo.employees)
	assert.Empty(t, repo.companies)
}

func TestParseWorkbookRequiresColumns(t *testing.T) {
	_, _, err := ParseWorkbook(workbook(t, [][]any{{"NOME", "RA", "EMPRESA"}}))
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Contains(t, errs.UserMessage(err), "SETOR")

	_, _, err = ParseWorkbook(bytes.NewBufferString("not a zip"))
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, _, err = ParseWorkbook(workbook(t, [][]any{
		{"NOME", "RA", "EMPRESA", "SETOR"},
		{"Ana", "1", "", "Campo"},
	}))
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Contains(t, errs.UserMessage(err), "Linha 2")
}

func TestSaveValidatesRequiredFields(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	_, err := svc.Save(context.Background(), SaveInput{Name: "Ana", RaCpf: " "})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

type listRepo struct {
	got shared.ListFilters
	Repository
}

func (l *listRepo) List(_ context.Context, f shared.ListFilters) ([]Employee, error) {
	l.got = f
	return []Employee{}, nil
}

func TestHandlerListPassesFiltersAndImportNeedsFile(t *testing.T) {
	repo := &listRepo{}
	h := NewHandler(nil, NewService(repo, nil), 1<<20)
	r := chi.NewRouter()
	h.MountRoutes(r)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/?sectorId=4&search=ana", nil))
	require.Equal(t, http.StatusOK, res.Code)
	require.NotNil(t, repo.got.SectorID)
	assert.Equal(t, int64(4), *repo.got.SectorID)
	assert.Equal(t, "ana", repo.got.Search)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res = httptest.NewRecorder()
	r.ServeHTTP(res, req)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}
