// Package book implements an in-memory, double-sided, price-time priority
// limit order book: the add/cancel/modify/match protocol, its invariants,
// and the concurrency discipline around a single exclusive lock.
package book

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderID uniquely identifies an order within a single Book.
type OrderID uint64

// Side is the side of the book an order rests on.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Kind is an order's time-in-force / matching lifetime.
type Kind string

const (
	KindLimit             Kind = "LIMIT"
	KindImmediateOrCancel Kind = "IOC"
	KindAllOrNone         Kind = "AON"
	KindMarket            Kind = "MARKET"
)

// Order is the book's unit of resting interest. Price and RemainingQty are
// mutated only by the matching engine (fill, promoteToLimit); callers treat
// an Order as a value they hand to Add. Snapshot reports per-level price and
// quantity only, not individual orders.
type Order struct {
	ID           OrderID
	Side         Side
	Kind         Kind
	Price        decimal.Decimal
	InitialQty   decimal.Decimal
	RemainingQty decimal.Decimal
}

// NewOrder builds a fully specified order, storing price as given. For a
// Market order the price is not used: admission re-anchors it before
// insertion (NewMarketOrder passes decimal.Zero).
func NewOrder(kind Kind, id OrderID, side Side, price, qty decimal.Decimal) *Order {
	return &Order{
		ID:           id,
		Side:         side,
		Kind:         kind,
		Price:        price,
		InitialQty:   qty,
		RemainingQty: qty,
	}
}

// NewMarketOrder is the market-shortcut constructor: no price is supplied by
// the caller, since a Market order's price is carried out-of-band by Kind
// and is only assigned during admission (see Book.admit).
func NewMarketOrder(id OrderID, side Side, qty decimal.Decimal) *Order {
	return NewOrder(KindMarket, id, side, decimal.Zero, qty)
}

// IsFilled reports whether the order has no remaining quantity.
func (o *Order) IsFilled() bool {
	return o.RemainingQty.Sign() == 0
}

// IsMarket reports whether the order is still in its pre-admission Market
// state. It depends only on Kind, never on Price.
func (o *Order) IsMarket() bool {
	return o.Kind == KindMarket
}

// fill subtracts q from the order's remaining quantity. It panics with an
// *BookError of kind overfill if q exceeds what remains: an engine-internal
// invariant violation that must never be reachable from correct admission
// or matching logic, so it is not reported as an ordinary error.
func (o *Order) fill(q decimal.Decimal) {
	if q.GreaterThan(o.RemainingQty) {
		panic(newOverfillError(o.ID))
	}
	o.RemainingQty = o.RemainingQty.Sub(q)
}

// promoteToLimit re-anchors a Market order to a concrete price and
// transitions its Kind to Limit. It panics with an *BookError of kind
// invalid-promotion if called on a non-Market order: admission is the only
// caller and only ever calls it once, on a freshly admitted Market order.
func (o *Order) promoteToLimit(price decimal.Decimal) {
	if o.Kind != KindMarket {
		panic(newInvalidPromotionError(o.ID))
	}
	o.Price = price
	o.Kind = KindLimit
}

func (o *Order) String() string {
	return fmt.Sprintf("Order(kind=%s, id=%d, side=%s, price=%s, initial=%s, remaining=%s)",
		o.Kind, o.ID, o.Side, o.Price, o.InitialQty, o.RemainingQty)
}
