// Package cart is the client-held shopping cart: an insertion-ordered set
// of product lines persisted to durable local storage and reconciled
// against live product data fetched from the storefront API.
package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crafthub/storefront/internal/pricing"
)

// ErrNotFound is returned by ProductFetcher implementations when the
// product no longer exists server-side.
var ErrNotFound = errors.New("product not found")

// ProductSnapshot is the display copy of a product captured when a line is
// created. Totals never trust it; they refetch the live price.
type ProductSnapshot struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	ImageURL string          `json:"imageUrl,omitempty"`
	Price    decimal.Decimal `json:"price"`
}

// Line is one product's entry. At most one line exists per product id.
type Line struct {
	ProductSnapshot
	Quantity int `json:"quantity"`
}

type ProductFetcher interface {
	FetchProduct(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
}

// Cart owns the line collection. Every mutation commits a fresh slice and
// writes it through to storage before returning, so concurrent readers
// always observe a consistent snapshot and a reload sees the last commit.
//
// Public operations never fail: a fetch or storage error is logged and the
// previously committed lines are kept as they were.
type Cart struct {
	mu     sync.Mutex
	lines  []Line
	isOpen bool

	store    Storage
	fetcher  ProductFetcher
	log      *slog.Logger
	onChange []func([]Line)
}

// New seeds the in-memory state from storage. An unreadable or unparseable
// payload degrades to an empty cart rather than failing construction.
func New(store Storage, fetcher ProductFetcher, log *slog.Logger) *Cart {
	if log == nil {
		log = slog.Default()
	}
	c := &Cart{store: store, fetcher: fetcher, log: log}

	lines, err := store.Load()
	if err != nil {
		log.Warn("cart_load_failed", "error", err)
		lines = nil
	}
	c.lines = lines
	return c
}

// OnChange registers a callback fired with the new line snapshot after each
// committed mutation. Callbacks run outside the cart lock.
func (c *Cart) OnChange(fn func([]Line)) {
	c.mu.Lock()
	c.onChange = append(c.onChange, fn)
	c.mu.Unlock()
}

func (c *Cart) Open() {
	c.mu.Lock()
	c.isOpen = true
	c.mu.Unlock()
}

func (c *Cart) Close() {
	c.mu.Lock()
	c.isOpen = false
	c.mu.Unlock()
}

func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// Quantity returns the line quantity for a product, 0 when absent.
func (c *Cart) Quantity(productID uuid.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexOf(c.lines, productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyLines(c.lines)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// TotalQuantity is the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, ln := range c.lines {
		n += ln.Quantity
	}
	return n
}

// Increase adds amount to the product's line, fetching a snapshot first
// when no line exists yet. This is the only suspending operation: the
// fetch runs outside the lock, and the insert re-checks existence against
// the then-current state, so two racing increases for the same product
// collapse into a single line instead of duplicating it.
func (c *Cart) Increase(ctx context.Context, productID uuid.UUID, amount int) {
	if amount < 1 {
		return
	}

	c.mu.Lock()
	if i := indexOf(c.lines, productID); i >= 0 {
		next := copyLines(c.lines)
		next[i].Quantity += amount
		c.commitLocked(next)
		return
	}
	c.mu.Unlock()

	snap, err := c.fetcher.FetchProduct(ctx, productID)
	if err != nil || snap == nil {
		c.log.Warn("cart_increase_skipped", "product_id", productID, "error", err)
		return
	}

	c.mu.Lock()
	next := copyLines(c.lines)
	if i := indexOf(next, productID); i >= 0 {
		// another increase landed while the fetch was in flight
		next[i].Quantity += amount
	} else {
		next = append(next, Line{ProductSnapshot: *snap, Quantity: amount})
	}
	c.commitLocked(next)
}

// Decrease lowers the quantity by one and drops the line when it would
// reach zero. No-op for an absent product.
func (c *Cart) Decrease(productID uuid.UUID) {
	c.mu.Lock()
	i := indexOf(c.lines, productID)
	if i < 0 {
		c.mu.Unlock()
		return
	}

	var next []Line
	if c.lines[i].Quantity <= 1 {
		next = make([]Line, 0, len(c.lines)-1)
		next = append(next, c.lines[:i]...)
		next = append(next, c.lines[i+1:]...)
	} else {
		next = copyLines(c.lines)
		next[i].Quantity--
	}
	c.commitLocked(next)
}

// Remove deletes the line regardless of quantity. No-op when absent.
func (c *Cart) Remove(productID uuid.UUID) {
	c.mu.Lock()
	i := indexOf(c.lines, productID)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	next := make([]Line, 0, len(c.lines)-1)
	next = append(next, c.lines[:i]...)
	next = append(next, c.lines[i+1:]...)
	c.commitLocked(next)
}

// Reset clears every line.
func (c *Cart) Reset() {
	c.mu.Lock()
	c.commitLocked([]Line{})
}

// Total recomputes the cart value from live product data, not the stored
// snapshots, so price changes since add-to-cart are reflected. A product
// that fails to fetch or no longer exists contributes zero.
func (c *Cart) Total(ctx context.Context) decimal.Decimal {
	total := decimal.Zero
	for _, ln := range c.Items() {
		snap, err := c.fetcher.FetchProduct(ctx, ln.ID)
		if err != nil || snap == nil {
			c.log.Warn("cart_total_skipping_product", "product_id", ln.ID, "error", err)
			continue
		}
		total = total.Add(snap.Price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}
	return total
}

// FormattedTotal is Total rendered as a display price string.
func (c *Cart) FormattedTotal(ctx context.Context) string {
	return pricing.FormatCurrency(c.Total(ctx))
}

// commitLocked swaps in the new lines, writes them through to storage and
// releases the lock before notifying subscribers. A persist failure keeps
// the in-memory commit and is only logged; the cart must not lose lines
// over one bad write.
func (c *Cart) commitLocked(next []Line) {
	c.lines = next
	if err := c.store.Save(next); err != nil {
		c.log.Error("cart_persist_failed", "error", err)
	}
	subs := c.onChange
	c.mu.Unlock()

	if len(subs) == 0 {
		return
	}
	snapshot := copyLines(next)
	for _, fn := range subs {
		fn(snapshot)
	}
}

func indexOf(lines []Line, productID uuid.UUID) int {
	for i, ln := range lines {
		if ln.ID == productID {
			return i
		}
	}
	return -1
}

func copyLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
