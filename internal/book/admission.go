package book

import "github.com/shopspring/decimal"

// admit runs the per-kind pre-match checks in order and reports whether the
// order should proceed to insertion. A false, nil result means the order is
// dropped with no trades and no error (Market into an empty contra side,
// a non-viable IOC, an infeasible AON) — never the same as an error.
func (b *Book) admit(o *Order) (proceed bool, err error) {
	if b.idx.has(o.ID) {
		return false, newDuplicateOrderIDError(o.ID)
	}

	switch o.Kind {
	case KindMarket:
		_, contra := b.sideTrees(o.Side)
		worst, ok := contra.worst()
		if !ok {
			return false, nil
		}
		o.promoteToLimit(worst.price)

	case KindImmediateOrCancel:
		if !b.canMatch(o.Side, o.Price) {
			return false, nil
		}

	case KindAllOrNone:
		if !b.canFullyFill(o.Side, o.Price, o.InitialQty) {
			return false, nil
		}
	}

	return true, nil
}

// canMatch reports whether side/price would cross the opposite book at all:
// a pure read over the contra side's best level, used to drop IOC orders
// that cannot match anything immediately.
func (b *Book) canMatch(side Side, price decimal.Decimal) bool {
	_, contra := b.sideTrees(side)
	best, ok := contra.best()
	if !ok {
		return false
	}
	if side == Buy {
		return price.GreaterThanOrEqual(best.price)
	}
	return price.LessThanOrEqual(best.price)
}

// canFullyFill walks contra levels from best toward price, summing cached
// aggregate quantity, and reports whether the cumulative total reaches qty
// before price is exceeded. It is a pure read over the level aggregates
// (C4) and mutates nothing — the sole justification for keeping C4
// always-coherent rather than deriving it on demand.
func (b *Book) canFullyFill(side Side, price, qty decimal.Decimal) bool {
	if !b.canMatch(side, price) {
		return false
	}
	_, contra := b.sideTrees(side)
	available := decimal.Zero
	reached := false
	contra.scan(func(l *level) bool {
		admissible := l.price.LessThanOrEqual(price)
		if side == Sell {
			admissible = l.price.GreaterThanOrEqual(price)
		}
		if !admissible {
			return false
		}
		available = available.Add(b.agg.qtyAt(l))
		if available.GreaterThanOrEqual(qty) {
			reached = true
			return false
		}
		return true
	})
	return reached
}
