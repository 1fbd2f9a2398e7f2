package book

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Book is a double-sided, price-time priority limit order book for a single
// symbol. It is safe for concurrent use: every public method takes the same
// exclusive lock, runs to completion without suspending, and releases it
// before returning. Callers that need parallelism across symbols should
// instantiate one Book per symbol rather than expect fine-grained locking
// inside a single Book.
type Book struct {
	mu   sync.Mutex
	bids *levelTree
	asks *levelTree
	idx  *orderIndex
	agg  *aggregates
}

// NewBook creates an empty order book.
func NewBook() *Book {
	return &Book{
		bids: newBidTree(),
		asks: newAskTree(),
		idx:  newOrderIndex(),
		agg:  newAggregates(),
	}
}

// sideTrees returns (own, contra) level trees for side: own is where an
// order on that side would insert, contra is the opposite side it crosses.
func (b *Book) sideTrees(side Side) (own, contra *levelTree) {
	if side == Buy {
		return b.bids, b.asks
	}
	return b.asks, b.bids
}

// insert appends o to its own-side level at o.Price, records it in the
// index with its queue position, and adds it to the level aggregates. It
// assumes admission has already run and o.Price/o.Kind are final.
func (b *Book) insert(o *Order) {
	own, _ := b.sideTrees(o.Side)
	lvl, ok := own.get(o.Price)
	if !ok {
		lvl = newLevel(o.Price)
		own.set(lvl)
	}
	node := lvl.pushBack(o)
	b.idx.put(o.ID, node)
	b.agg.add(lvl, o.RemainingQty)
}

// Add admits, inserts, and matches order, returning the trades produced (
// possibly none). A DuplicateOrderID error leaves the book exactly as it
// was before the call; a dropped Market/IOC/AllOrNone order returns an
// empty trade list with no error.
func (b *Book) Add(o *Order) ([]Trade, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	proceed, err := b.admit(o)
	if err != nil {
		return nil, err
	}
	if !proceed {
		return nil, nil
	}

	b.insert(o)
	return b.match(), nil
}

// Cancel removes id from the book. It fails with OrderNotFound if id is not
// resting; on any error the book is unchanged.
func (b *Book) Cancel(id OrderID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cancelLocked(id)
}

// cancelLocked performs the cancel with the book lock already held; shared
// by Cancel and the cancel phase of Modify.
func (b *Book) cancelLocked(id OrderID) error {
	n, ok := b.idx.get(id)
	if !ok {
		return newOrderNotFoundError(id)
	}
	own, _ := b.sideTrees(n.order.Side)
	lvl, ok := own.get(n.order.Price)
	if !ok {
		// Invariant I1 guarantees the level exists wherever the index
		// claims it does; reaching here means the index and level maps
		// have diverged, which is a programmer error, not a caller error.
		panic(newOrderNotFoundError(id))
	}
	q := n.order.RemainingQty
	lvl.remove(n)
	b.idx.delete(id)
	b.agg.remove(lvl, q)
	if lvl.isEmpty() {
		own.delete(lvl.price)
	}
	return nil
}

// Modify cancels id and re-adds it under a fresh order carrying the
// original kind, new side/price/quantity, and the same id. It is not an
// in-place update: the order loses its time priority. Both phases run under
// a single lock acquisition, so no other Add, Cancel or Modify on the same
// Book can land between the cancel and the re-add.
func (b *Book) Modify(id OrderID, side Side, price, qty decimal.Decimal) ([]Trade, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.idx.get(id)
	if !ok {
		return nil, newOrderNotFoundError(id)
	}
	kind := n.order.Kind

	if err := b.cancelLocked(id); err != nil {
		return nil, err
	}

	fresh := NewOrder(kind, id, side, price, qty)
	proceed, err := b.admit(fresh)
	if err != nil {
		return nil, err
	}
	if !proceed {
		return nil, nil
	}

	b.insert(fresh)
	return b.match(), nil
}

// Size returns the number of resting orders.
func (b *Book) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.idx.len()
}

// LevelView is one reported price level: its price and the aggregate
// remaining quantity resting there.
type LevelView struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// Snapshot returns every resting level on each side, bids best-first
// (highest price), asks best-first (lowest price).
func (b *Book) Snapshot() (bids []LevelView, asks []LevelView) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bids.scan(func(l *level) bool {
		bids = append(bids, LevelView{Price: l.price, Quantity: b.agg.qtyAt(l)})
		return true
	})
	b.asks.scan(func(l *level) bool {
		asks = append(asks, LevelView{Price: l.price, Quantity: b.agg.qtyAt(l)})
		return true
	})
	return bids, asks
}
