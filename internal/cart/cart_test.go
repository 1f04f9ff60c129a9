package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu       sync.Mutex
	products map[uuid.UUID]ProductSnapshot
	err      error
	delay    time.Duration
	calls    int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{products: map[uuid.UUID]ProductSnapshot{}}
}

func (f *fakeFetcher) add(name, price string) uuid.UUID {
	id := uuid.New()
	f.mu.Lock()
	f.products[id] = ProductSnapshot{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	f.mu.Unlock()
	return id
}

func (f *fakeFetcher) setPrice(id uuid.UUID, price string) {
	f.mu.Lock()
	p := f.products[id]
	p.Price = decimal.RequireFromString(price)
	f.products[id] = p
	f.mu.Unlock()
}

func (f *fakeFetcher) remove(id uuid.UUID) {
	f.mu.Lock()
	delete(f.products, id)
	f.mu.Unlock()
}

func (f *fakeFetcher) FetchProduct(_ context.Context, id uuid.UUID) (*ProductSnapshot, error) {
	f.mu.Lock()
	f.calls++
	delay, err := f.delay, f.err
	p, ok := f.products[id]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestCart(t *testing.T, fetcher ProductFetcher) (*Cart, *MemStore) {
	t.Helper()
	store := &MemStore{}
	return New(store, fetcher, nil), store
}

func TestIncrease_CreatesLineFromFetchedSnapshot(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	id := f.add("linen scarf", "24.50")
	c, _ := newTestCart(t, f)

	c.Increase(context.Background(), id, 1)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Quantity(id))
	assert.Equal(t, "linen scarf", c.Items()[0].Name)
}

func TestIncrease_ExistingLineSkipsFetch(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	id := f.add("linen scarf", "24.50")
	c, _ := newTestCart(t, f)

	c.Increase(context.Background(), id, 1)
	require.Equal(t, 1, f.callCount())

	c.Increase(context.Background(), id, 3)
	assert.Equal(t, 1, f.callCount(), "quantity bump must not refetch")
	assert.Equal(t, 4, c.Quantity(id))
}

func TestIncrease_ConcurrentCallsUpsertOneLine(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	id := f.add("clay mug", "18")
	f.delay = 20 * time.Millisecond
	c, _ := newTestCart(t, f)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Increase(context.Background(), id, 1)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, c.Len(), "racing increases must never duplicate a line")
	assert.Equal(t, 2, c.Quantity(id))
}

func TestIncrease_FetchFailureLeavesCartUnchanged(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	id := f.add("clay mug", "18")
	f.err = errors.New("connection refused")
	c, _ := newTestCart(t, f)

	c.Increase(context.Background(), id, 1)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Quantity(id))
}

func TestIncrease_UnknownProductIsNoOp(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	c, _ := newTestCart(t, f)

	c.Increase(context.Background(), uuid.New(), 1)

	assert.Equal(t, 0, c.Len())
}

func TestIncrease_NonPositiveAmountRejected(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	id := f.add("clay mug", "18")
	c, _ := newTestCart(t, f)

	c.Increase(context.Background(), id, 0)
	c.Increase(context.Background(), id, -2)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, f.callCount(), "rejected amounts must not hit the network")
}

func TestDecrease_RemovesLineAtOne(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	id := f.add("clay mug", "18")
	c, _ := newTestCart(t, f)

	c.Increase(context.Background(), id, 1)
	require.Equal(t, 1, c.Quantity(id))

	c.Decrease(id)
	assert.Equal(t, 0, c.Len(), "quantity 1 line is deleted, not kept at 0")

	// absent line: must stay a silent no-op
	c.Decrease(id)
	assert.Equal(t, 0, c.Len())
}

func TestDecrease_DecrementsAboveOne(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	id := f.add("clay mug", "18")
	c, _ := newTestCart(t, f)

	c.Increase(context.Background(), id, 3)
	c.Decrease(id)

	assert.Equal(t, 2, c.Quantity(id))
}

func TestRemove_UnconditionalDelete(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	id := f.add("clay mug", "18")
	c, _ := newTestCart(t, f)

	c.Increase(context.Background(), id, 5)
	c.Remove(id)
	assert.Equal(t, 0, c.Len())

	c.Remove(id) // no-op
	assert.Equal(t, 0, c.Len())
}

func TestReset_ClearsEverything(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	a := f.add("mug", "18")
	b := f.add("bowl", "32")
	c, _ := newTestCart(t, f)

	c.Increase(context.Background(), a, 2)
	c.Increase(context.Background(), b, 1)
	require.Equal(t, 3, c.TotalQuantity())

	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.TotalQuantity())
}

func TestInsertionOrderSurvivesQuantityEdits(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	first := f.add("mug", "18")
	second := f.add("bowl", "32")
	c, _ := newTestCart(t, f)

	ctx := context.Background()
	c.Increase(ctx, first, 1)
	c.Increase(ctx, second, 1)
	c.Increase(ctx, first, 4)
	c.Decrease(second)
	c.Increase(ctx, second, 2)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, first, items[0].ID, "first-added line stays first")
	assert.Equal(t, second, items[1].ID)
}

func TestPersistenceRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	a := f.add("mug", "18")
	b := f.add("bowl", "32")

	store := &MemStore{}
	c := New(store, f, nil)
	ctx := context.Background()
	c.Increase(ctx, a, 2)
	c.Increase(ctx, b, 1)

	persisted := store.Bytes()

	// simulate a page reload: a fresh cart over the same storage
	reloaded := New(store, f, nil)
	assert.Equal(t, c.Items(), reloaded.Items())

	// re-committing the loaded state writes identical bytes
	reloaded.Increase(ctx, a, 1)
	reloaded.Decrease(a)
	assert.Equal(t, persisted, store.Bytes())
}

func TestLoad_CorruptPayloadFallsBackToEmpty(t *testing.T) {
	t.Parallel()

	store := &MemStore{}
	store.SetBytes([]byte(`{"version": not json`))

	c := New(store, newFakeFetcher(), nil)
	assert.Equal(t, 0, c.Len())
}

func TestLoad_LegacyBareArray(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	store := &MemStore{}
	store.SetBytes([]byte(`[{"id":"` + id.String() + `","name":"mug","price":"18","quantity":2}]`))

	c := New(store, newFakeFetcher(), nil)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Quantity(id))
}

func TestTotal_UsesLivePriceNotSnapshot(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	id := f.add("mug", "10")
	c, _ := newTestCart(t, f)
	ctx := context.Background()

	c.Increase(ctx, id, 2)
	f.setPrice(id, "12.50")

	total := c.Total(ctx)
	assert.True(t, total.Equal(decimal.RequireFromString("25")), "got %s", total)
	assert.Equal(t, "$25.00", c.FormattedTotal(ctx))
}

func TestTotal_DeletedProductContributesZero(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	kept := f.add("mug", "10")
	gone := f.add("bowl", "40")
	c, _ := newTestCart(t, f)
	ctx := context.Background()

	c.Increase(ctx, kept, 1)
	c.Increase(ctx, gone, 3)
	f.remove(gone)

	total := c.Total(ctx)
	assert.True(t, total.Equal(decimal.RequireFromString("10")), "got %s", total)
}

func TestOnChange_FiresAfterCommit(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	id := f.add("mug", "10")
	c, _ := newTestCart(t, f)

	var (
		mu        sync.Mutex
		snapshots [][]Line
	)
	c.OnChange(func(lines []Line) {
		mu.Lock()
		snapshots = append(snapshots, lines)
		mu.Unlock()
	})

	c.Increase(context.Background(), id, 1)
	c.Decrease(id)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[0], 1)
	assert.Len(t, snapshots[1], 0)
}

func TestOpenClose_DoesNotTouchContents(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	id := f.add("mug", "10")
	c, _ := newTestCart(t, f)

	c.Increase(context.Background(), id, 2)

	assert.False(t, c.IsOpen())
	c.Open()
	assert.True(t, c.IsOpen())
	c.Close()
	assert.False(t, c.IsOpen())

	assert.Equal(t, 2, c.Quantity(id))
}
