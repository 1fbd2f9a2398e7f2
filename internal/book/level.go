package book

import (
	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"
)

// orderNode is a slot in a level's FIFO queue. It is the "position token"
// the order index holds: removal never scans, it just unlinks n from n.lvl.
type orderNode struct {
	order      *Order
	prev, next *orderNode
	lvl        *level
}

// level is the FIFO queue of resting orders at one price on one side.
// Insertion appends to the tail; matching consumes from the head.
type level struct {
	price decimal.Decimal
	head  *orderNode
	tail  *orderNode
	count int
}

func newLevel(price decimal.Decimal) *level {
	return &level{price: price}
}

func (l *level) isEmpty() bool { return l.count == 0 }

// pushBack appends order to the tail of the queue and returns its node,
// which the caller stores in the order index as the position token.
func (l *level) pushBack(o *Order) *orderNode {
	n := &orderNode{order: o, lvl: l}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.count++
	return n
}

// front returns the head node (time-priority winner at this level), or nil
// if the level is empty.
func (l *level) front() *orderNode {
	return l.head
}

// remove unlinks n from the queue in O(1); n must belong to this level.
func (l *level) remove(n *orderNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next, n.lvl = nil, nil, nil
	l.count--
}

// levelTree is a side-ordered map from price to level. Bid trees compare
// descending (best = highest price); ask trees compare ascending
// (best = lowest price). Min() is always "best", Max() is always "worst" —
// the Market admission re-anchor walks to Max() on the contra side.
//
// Keys are decimal.Decimal compared numerically via a custom less function,
// not formatted strings: a string-keyed ordered map sorts "10" before "9",
// which silently breaks price priority for levels with differing digit
// counts.
type levelTree struct {
	tree *btree.BTreeG[*level]
}

func newBidTree() *levelTree {
	less := func(a, b *level) bool { return a.price.GreaterThan(b.price) }
	return &levelTree{tree: btree.NewBTreeG[*level](less)}
}

func newAskTree() *levelTree {
	less := func(a, b *level) bool { return a.price.LessThan(b.price) }
	return &levelTree{tree: btree.NewBTreeG[*level](less)}
}

func (t *levelTree) get(price decimal.Decimal) (*level, bool) {
	return t.tree.Get(&level{price: price})
}

func (t *levelTree) set(l *level) {
	t.tree.Set(l)
}

func (t *levelTree) delete(price decimal.Decimal) {
	t.tree.Delete(&level{price: price})
}

// best returns the level with the best price for this side, or false if the
// side is empty.
func (t *levelTree) best() (*level, bool) {
	return t.tree.Min()
}

// worst returns the level with the worst price for this side, or false if
// the side is empty. Used only by the Market admission re-anchor.
func (t *levelTree) worst() (*level, bool) {
	return t.tree.Max()
}

// scan visits every level best-first.
func (t *levelTree) scan(fn func(*level) bool) {
	t.tree.Scan(fn)
}
