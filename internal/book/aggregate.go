package book

import "github.com/shopspring/decimal"

// levelAggregate is the cached (count, total remaining quantity) for one
// level. Its sole purpose is AllOrNone feasibility: summing aggregates
// across contra levels in one pass instead of re-walking every queue.
type levelAggregate struct {
	count uint64
	qty   decimal.Decimal
}

// aggregates is keyed by the *level pointer itself, not by any formatted
// representation of its price. levelTree already owns the single notion of
// "same price" (numeric equality via its less function, level.go:82/87);
// keying aggregates by anything else risks a second, inconsistent
// equivalence relation — e.g. decimal.Decimal does not canonicalize its
// exponent, so "100" and "100.00" are Equal but format differently, which
// would fragment one level's aggregate across two map entries if keyed by
// price.String(). A *level pointer has exactly one identity for as long as
// the level exists, by construction.
type aggregates struct {
	m map[*level]*levelAggregate
}

func newAggregates() *aggregates {
	return &aggregates{m: make(map[*level]*levelAggregate)}
}

// add records a newly inserted order at lvl: count += 1, qty += q.
func (a *aggregates) add(lvl *level, q decimal.Decimal) {
	e, ok := a.m[lvl]
	if !ok {
		e = &levelAggregate{}
		a.m[lvl] = e
	}
	e.count++
	e.qty = e.qty.Add(q)
}

// remove records an order leaving lvl entirely (cancel or full fill):
// count -= 1, qty -= q; the entry is erased once count reaches zero.
func (a *aggregates) remove(lvl *level, q decimal.Decimal) {
	e, ok := a.m[lvl]
	if !ok {
		return
	}
	e.count--
	e.qty = e.qty.Sub(q)
	if e.count == 0 {
		delete(a.m, lvl)
	}
}

// match records a partial fill that leaves the order resting at lvl: qty -=
// q, count unchanged. Match must never touch count — an earlier variant of
// this bookkeeping decremented count on every partial fill, which miscounts
// orders as fills accumulate.
func (a *aggregates) match(lvl *level, q decimal.Decimal) {
	e, ok := a.m[lvl]
	if !ok {
		return
	}
	e.qty = e.qty.Sub(q)
}

// qtyAt returns the cached total remaining quantity at lvl, or zero if no
// aggregate is recorded for it.
func (a *aggregates) qtyAt(lvl *level) decimal.Decimal {
	e, ok := a.m[lvl]
	if !ok {
		return decimal.Zero
	}
	return e.qty
}
