package book

import "github.com/shopspring/decimal"

// TradeLeg is one side of a Trade: the resting order that was matched, its
// posted price at match time, and the quantity exchanged.
type TradeLeg struct {
	OrderID  OrderID
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// Trade is a single match between a resting bid and a resting ask. Both
// legs always carry equal, positive quantities.
type Trade struct {
	BidLeg TradeLeg
	AskLeg TradeLeg
}
