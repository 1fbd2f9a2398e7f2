package book

import "github.com/shopspring/decimal"

// match crosses the spread until the book is no longer crossed, emitting a
// Trade per fill. It is invoked once, after every successful insertion.
func (b *Book) match() []Trade {
	var trades []Trade

	for {
		bidLvl, okBid := b.bids.best()
		askLvl, okAsk := b.asks.best()
		if !okBid || !okAsk {
			break
		}
		if bidLvl.price.LessThan(askLvl.price) {
			break
		}

		bidNode := bidLvl.front()
		askNode := askLvl.front()
		bid := bidNode.order
		ask := askNode.order

		q := decimal.Min(bid.RemainingQty, ask.RemainingQty)
		bid.fill(q)
		ask.fill(q)

		trades = append(trades, Trade{
			BidLeg: TradeLeg{OrderID: bid.ID, Price: bid.Price, Quantity: q},
			AskLeg: TradeLeg{OrderID: ask.ID, Price: ask.Price, Quantity: q},
		})

		if bid.IsFilled() {
			b.consumeNode(bidNode, bidLvl, b.bids, q)
		} else {
			b.agg.match(bidLvl, q)
		}
		if ask.IsFilled() {
			b.consumeNode(askNode, askLvl, b.asks, q)
		} else {
			b.agg.match(askLvl, q)
		}
	}

	// An IOC aggressor that only partially matched never rests: whichever
	// side it landed on, if a residue of it is left at that side's best
	// head once the loop above can no longer cross, cancel it in place.
	// Both sides are checked independently, since admission guarantees an
	// IOC can only ever be the resting head it was just inserted as.
	b.cancelResidualIOC(b.bids)
	b.cancelResidualIOC(b.asks)

	return trades
}

// consumeNode removes a fully filled order from its level, the index, and
// the aggregates, erasing the level itself if it is now empty.
func (b *Book) consumeNode(n *orderNode, lvl *level, tree *levelTree, q decimal.Decimal) {
	lvl.remove(n)
	b.idx.delete(n.order.ID)
	b.agg.remove(lvl, q)
	if lvl.isEmpty() {
		tree.delete(lvl.price)
	}
}

func (b *Book) cancelResidualIOC(tree *levelTree) {
	lvl, ok := tree.best()
	if !ok {
		return
	}
	n := lvl.front()
	if n == nil || n.order.Kind != KindImmediateOrCancel {
		return
	}
	q := n.order.RemainingQty
	lvl.remove(n)
	b.idx.delete(n.order.ID)
	b.agg.remove(lvl, q)
	if lvl.isEmpty() {
		tree.delete(lvl.price)
	}
}
