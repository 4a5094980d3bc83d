package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cida-marmitas/marmitas/internal/platform/cache"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

type countingRepo struct {
	sizes     []Size
	extras    []Extra
	sizeReads int
	Repository
}

func (c *countingRepo) ListSizes(_ context.Context, onlyActive bool) ([]Size, error) {
	c.sizeReads++
	var out []Size
	for _, s := range c.sizes {
		if !onlyActive || s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *countingRepo) ListExtras(_ context.Context, onlyActive bool) ([]Extra, error) {
	return c.extras, nil
}

func (c *countingRepo) CreateSize(_ context.Context, in SizeInput) (int64, error) {
	id := int64(len(c.sizes) + 1)
	c.sizes = append(c.sizes, Size{ID: id, Name: in.Name, Price: in.Price, Active: true})
	return id, nil
}

func (c *countingRepo) SetSizeActive(_ context.Context, id int64, active bool) error {
	for i := range c.sizes {
		if c.sizes[i].ID == id {
			c.sizes[i].Active = active
			return nil
		}
	}
	return shared.ErrNotFound
}

func newCachedService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, cache.NewVersioned(client, "catalog", time.Minute), nil)
}

func TestActiveSizesAreCachedAndInvalidatedOnWrite(t *testing.T) {
	repo := &countingRepo{sizes: []Size{
		{ID: 1, Name: "Pequena", Price: decimal.RequireFromString("15.00"), Active: true},
		{ID: 2, Name: "Grande", Price: decimal.RequireFromString("22.50"), Active: true},
	}}
	svc := newCachedService(t, repo)
	ctx := context.Background()

	sizes, err := svc.ActiveSizes(ctx)
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.True(t, sizes[1].Price.Equal(decimal.RequireFromString("22.5")))

	_, err = svc.ActiveSizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.sizeReads)

	require.NoError(t, svc.SetSizeActive(ctx, 2, false))
	sizes, err = svc.ActiveSizes(ctx)
	require.NoError(t, err)
	assert.Len(t, sizes, 1)
	assert.Equal(t, 2, repo.sizeReads)
}

func TestActiveSizesSurviveRedisOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:        mr.Addr(),
		DialTimeout: 100 * time.Millisecond,
		ReadTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	repo := &countingRepo{sizes: []Size{
		{ID: 1, Name: "Pequena", Price: decimal.RequireFromString("15.00"), Active: true},
	}}
	svc := NewService(repo, cache.NewVersioned(client, "catalog", time.Minute), nil)
	mr.Close()

	sizes, err := svc.ActiveSizes(context.Background())
	require.NoError(t, err)
	assert.Len(t, sizes, 1)
	assert.Equal(t, 1, repo.sizeReads)
}

func TestSaveSizeValidatesAndRoundsPrice(t *testing.T) {
	repo := &countingRepo{}
	svc := NewService(repo, cache.NewVersioned(nil, "catalog", time.Minute), nil)
	ctx := context.Background()

	_, err := svc.SaveSize(ctx, SizeInput{Name: "Média", Price: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, shared.ErrValidation)
	_, err = svc.SaveSize(ctx, SizeInput{Name: " ", Price: decimal.RequireFromString("1")})
	assert.ErrorIs(t, err, shared.ErrValidation)

	id, err := svc.SaveSize(ctx, SizeInput{Name: "Média", Price: decimal.RequireFromString("18.499")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "18.5", repo.sizes[0].Price.String())
}

func TestSaveExtraRequiresKind(t *testing.T) {
	svc := NewService(&countingRepo{}, cache.NewVersioned(nil, "catalog", time.Minute), nil)
	_, err := svc.SaveExtra(context.Background(), ExtraInput{Name: "Ovo frito"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}
