package book

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func limit(id OrderID, side Side, price, qty string) *Order {
	return NewOrder(KindLimit, id, side, d(price), d(qty))
}

// Scenario 1: GTC aggressor-constrained.
func TestAdd_GTCAggressorConstrained(t *testing.T) {
	b := NewBook()

	_, err := b.Add(limit(1, Buy, "100", "10"))
	require.NoError(t, err)
	_, err = b.Add(limit(2, Buy, "101", "50"))
	require.NoError(t, err)
	trades, err := b.Add(limit(3, Sell, "100", "20"))
	require.NoError(t, err)

	require.Len(t, trades, 1)
	tr := trades[0]
	assert.True(t, tr.BidLeg.Quantity.Equal(d("20")))
	assert.True(t, tr.AskLeg.Quantity.Equal(d("20")))
	assert.Equal(t, OrderID(2), tr.BidLeg.OrderID)
	assert.Equal(t, OrderID(3), tr.AskLeg.OrderID)
	assert.True(t, tr.BidLeg.Price.Equal(d("101")))
	assert.True(t, tr.AskLeg.Price.Equal(d("100")))

	bids, asks := b.Snapshot()
	require.Len(t, asks, 0)
	require.Len(t, bids, 2)
	// best-first: 101 before 100
	assert.True(t, bids[0].Price.Equal(d("101")))
	assert.True(t, bids[0].Quantity.Equal(d("30")))
	assert.True(t, bids[1].Price.Equal(d("100")))
	assert.True(t, bids[1].Quantity.Equal(d("10")))
}

// Scenario 2: IOC taker-constrained.
func TestAdd_IOCTakerConstrained(t *testing.T) {
	b := NewBook()
	seed := []struct {
		id    OrderID
		price string
	}{
		{1, "99"}, {2, "101"}, {3, "103"}, {4, "102"}, {5, "98"},
	}
	for _, s := range seed {
		_, err := b.Add(limit(s.id, Buy, s.price, "10"))
		require.NoError(t, err)
	}

	ioc := NewOrder(KindImmediateOrCancel, 6, Sell, d("100"), d("50"))
	trades, err := b.Add(ioc)
	require.NoError(t, err)

	require.Len(t, trades, 3)
	assert.True(t, trades[0].BidLeg.Price.Equal(d("103")))
	assert.Equal(t, OrderID(3), trades[0].BidLeg.OrderID)
	assert.True(t, trades[1].BidLeg.Price.Equal(d("102")))
	assert.Equal(t, OrderID(4), trades[1].BidLeg.OrderID)
	assert.True(t, trades[2].BidLeg.Price.Equal(d("101")))
	assert.Equal(t, OrderID(2), trades[2].BidLeg.OrderID)

	total := decimal.Zero
	for _, tr := range trades {
		total = total.Add(tr.BidLeg.Quantity)
	}
	assert.True(t, total.Equal(d("30")))

	bids, asks := b.Snapshot()
	require.Len(t, asks, 0)
	require.Len(t, bids, 2)
	assert.True(t, bids[0].Price.Equal(d("99")))
	assert.True(t, bids[1].Price.Equal(d("98")))

	assert.ErrorIs(t, b.Cancel(6), ErrOrderNotFound)
}

// Scenario 3: AON miss.
func TestAdd_AONMiss(t *testing.T) {
	b := NewBook()
	_, err := b.Add(limit(1, Sell, "100", "10"))
	require.NoError(t, err)

	aon := NewOrder(KindAllOrNone, 42, Buy, d("100"), d("25"))
	trades, err := b.Add(aon)
	require.NoError(t, err)
	assert.Empty(t, trades)

	assert.ErrorIs(t, b.Cancel(42), ErrOrderNotFound)
	assert.Equal(t, 1, b.Size())
}

// AON at exactly the feasible amount fully matches.
func TestAdd_AONExactFeasible(t *testing.T) {
	b := NewBook()
	_, err := b.Add(limit(1, Sell, "100", "10"))
	require.NoError(t, err)
	_, err = b.Add(limit(2, Sell, "101", "15"))
	require.NoError(t, err)

	aon := NewOrder(KindAllOrNone, 42, Buy, d("101"), d("25"))
	trades, err := b.Add(aon)
	require.NoError(t, err)
	require.Len(t, trades, 2)

	total := decimal.Zero
	for _, tr := range trades {
		total = total.Add(tr.AskLeg.Quantity)
	}
	assert.True(t, total.Equal(d("25")))
	assert.Equal(t, 0, b.Size())
}

// Scenario 4: Market into empty contra.
func TestAdd_MarketIntoEmptyContra(t *testing.T) {
	b := NewBook()
	trades, err := b.Add(NewMarketOrder(7, Sell, d("50")))
	require.NoError(t, err)
	assert.Empty(t, trades)
	assert.Equal(t, 0, b.Size())
}

// Scenario 5: Market absorbs then rests.
func TestAdd_MarketAbsorbsThenRests(t *testing.T) {
	b := NewBook()
	_, err := b.Add(limit(1, Buy, "101", "10"))
	require.NoError(t, err)
	_, err = b.Add(limit(2, Buy, "100", "5"))
	require.NoError(t, err)

	trades, err := b.Add(NewMarketOrder(3, Sell, d("50")))
	require.NoError(t, err)

	require.Len(t, trades, 2)
	assert.True(t, trades[0].BidLeg.Price.Equal(d("101")))
	assert.True(t, trades[0].BidLeg.Quantity.Equal(d("10")))
	assert.True(t, trades[1].BidLeg.Price.Equal(d("100")))
	assert.True(t, trades[1].BidLeg.Quantity.Equal(d("5")))

	bids, asks := b.Snapshot()
	assert.Empty(t, bids)
	require.Len(t, asks, 1)
	assert.True(t, asks[0].Price.Equal(d("100")))
	assert.True(t, asks[0].Quantity.Equal(d("35")))
}

// Scenario 6: Duplicate id.
func TestAdd_DuplicateOrderID(t *testing.T) {
	b := NewBook()
	_, err := b.Add(limit(1, Sell, "100", "10"))
	require.NoError(t, err)

	_, err = b.Add(limit(1, Buy, "98", "20"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateOrderID)

	var be *BookError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, OrderID(1), be.OrderID)

	bids, asks := b.Snapshot()
	assert.Empty(t, bids)
	require.Len(t, asks, 1)
	assert.True(t, asks[0].Quantity.Equal(d("10")))
}

func TestCancel_UnknownID(t *testing.T) {
	b := NewBook()
	err := b.Cancel(999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAddCancel_RoundTrip(t *testing.T) {
	b := NewBook()
	_, err := b.Add(limit(1, Buy, "100", "10"))
	require.NoError(t, err)

	before, _ := b.Snapshot()
	require.NoError(t, b.Cancel(1))
	bids, asks := b.Snapshot()
	assert.Empty(t, bids)
	assert.Empty(t, asks)
	assert.NotEmpty(t, before)
	assert.Equal(t, 0, b.Size())
}

func TestModify_LosesTimePriority(t *testing.T) {
	b := NewBook()
	_, err := b.Add(limit(1, Buy, "100", "10"))
	require.NoError(t, err)
	_, err = b.Add(limit(2, Buy, "100", "5"))
	require.NoError(t, err)

	// Modify id 1 in place (same side/price/qty): it now trails id 2.
	_, err = b.Modify(1, Buy, d("100"), d("10"))
	require.NoError(t, err)

	// An incoming sell for 12 should now match id 2 first (it has priority),
	// then the remainder against the modified id 1.
	trades, err := b.Add(limit(3, Sell, "100", "12"))
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, OrderID(2), trades[0].BidLeg.OrderID)
	assert.True(t, trades[0].BidLeg.Quantity.Equal(d("5")))
	assert.Equal(t, OrderID(1), trades[1].BidLeg.OrderID)
	assert.True(t, trades[1].BidLeg.Quantity.Equal(d("7")))
}

func TestModify_UnknownID(t *testing.T) {
	b := NewBook()
	_, err := b.Modify(999, Buy, d("100"), d("10"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestIOC_NonCrossingDrops(t *testing.T) {
	b := NewBook()
	_, err := b.Add(limit(1, Buy, "99", "10"))
	require.NoError(t, err)

	ioc := NewOrder(KindImmediateOrCancel, 2, Sell, d("100"), d("5"))
	trades, err := b.Add(ioc)
	require.NoError(t, err)
	assert.Empty(t, trades)
	assert.Equal(t, 1, b.Size())
}

func TestSize(t *testing.T) {
	b := NewBook()
	assert.Equal(t, 0, b.Size())
	_, err := b.Add(limit(1, Buy, "100", "10"))
	require.NoError(t, err)
	assert.Equal(t, 1, b.Size())
}

// TestAggregates_SameNumericPriceDifferentScale ensures two orders whose
// prices are numerically equal but carry a different exponent ("100" vs
// "100.00") land in one level with one combined aggregate, not two
// fragmented entries — decimal.Decimal.Equal does not imply identical
// String() output.
func TestAggregates_SameNumericPriceDifferentScale(t *testing.T) {
	b := NewBook()
	_, err := b.Add(limit(1, Sell, "100", "10"))
	require.NoError(t, err)
	_, err = b.Add(limit(2, Sell, "100.00", "5"))
	require.NoError(t, err)

	require.True(t, d("100").Equal(d("100.00")))

	bids, asks := b.Snapshot()
	assert.Empty(t, bids)
	require.Len(t, asks, 1, "both orders must collapse onto one level")
	assert.True(t, asks[0].Quantity.Equal(d("15")), "aggregate must report the combined quantity")

	aon := NewOrder(KindAllOrNone, 3, Buy, d("100"), d("15"))
	trades, err := b.Add(aon)
	require.NoError(t, err)
	require.Len(t, trades, 2, "canFullyFill must see the full combined liquidity, not just the first order's share")
}
