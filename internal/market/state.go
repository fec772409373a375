// Package market implements the per-location trading ledger: inventory,
// supply/demand pressure, price quoting, and the consequences of moving
// goods the local authority would rather you didn't.
package market

const (
	// Supply and demand levels live in [0, 2] with 1.0 as baseline.
	levelMin      = 0.0
	levelMax      = 2.0
	levelBaseline = 1.0

	// priceHistoryCap bounds each commodity's price history.
	priceHistoryCap = 100
	// tradeHistoryCap bounds the ledger's trade record.
	tradeHistoryCap = 50
	// pressureCap bounds how far a single trade or event can push a level.
	pressureCap = 0.3
)

// CommodityState is the mutable per-commodity state owned by one Ledger.
type CommodityState struct {
	CommodityID  string  `json:"commodity_id"`
	Quantity     int     `json:"quantity"`
	CurrentPrice int64   `json:"current_price"`
	SupplyLevel  float64 `json:"supply_level"`
	DemandLevel  float64 `json:"demand_level"`
	PriceHistory []int64 `json:"price_history"`

	// Baseline marks commodities this location's profile normally stocks.
	// Decided once at ledger creation; a non-baseline entry is pruned when
	// its quantity hits zero, a baseline entry is kept at zero.
	Baseline bool `json:"baseline"`
}

// RecordPrice caches a freshly computed price and appends it to the bounded
// history, evicting the oldest entry when full.
func (s *CommodityState) RecordPrice(price int64) {
	s.CurrentPrice = price
	s.PriceHistory = append(s.PriceHistory, price)
	if len(s.PriceHistory) > priceHistoryCap {
		s.PriceHistory = s.PriceHistory[len(s.PriceHistory)-priceHistoryCap:]
	}
}

// shiftSupply moves the supply level by delta, re-clamping to [0, 2].
func (s *CommodityState) shiftSupply(delta float64) {
	s.SupplyLevel = clampLevel(s.SupplyLevel + delta)
}

// shiftDemand moves the demand level by delta, re-clamping to [0, 2].
func (s *CommodityState) shiftDemand(delta float64) {
	s.DemandLevel = clampLevel(s.DemandLevel + delta)
}

// decay moves both levels toward baseline by the given fraction. Linear
// interpolation: converges without overshoot for any rate in (0, 1).
func (s *CommodityState) decay(rate float64) {
	s.SupplyLevel = clampLevel(s.SupplyLevel + (levelBaseline-s.SupplyLevel)*rate)
	s.DemandLevel = clampLevel(s.DemandLevel + (levelBaseline-s.DemandLevel)*rate)
}

// TradeDirection tells which way goods moved.
type TradeDirection string

const (
	// DirectionSale is a location selling to the player.
	DirectionSale TradeDirection = "sale"
	// DirectionPurchase is a location buying from the player.
	DirectionPurchase TradeDirection = "purchase"
)

// TradeRecord is one committed trade in the ledger's bounded history.
type TradeRecord struct {
	Direction   TradeDirection `json:"direction"`
	CommodityID string         `json:"commodity_id"`
	Quantity    int            `json:"quantity"`
	UnitPrice   int64          `json:"unit_price"`
}

// pressure converts a traded or produced quantity into a supply/demand level
// shift, capped so no single event swings a market more than 0.3.
func pressure(quantity float64) float64 {
	p := quantity * 0.01
	if p < 0 {
		p = -p
	}
	if p > pressureCap {
		p = pressureCap
	}
	if quantity < 0 {
		return -p
	}
	return p
}

func clampLevel(v float64) float64 {
	if v < levelMin {
		return levelMin
	}
	if v > levelMax {
		return levelMax
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
