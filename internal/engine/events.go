package engine

import (
	"github.com/google/uuid"

	"github.com/talgya/starlanes/internal/market"
)

// Observer receives the engine's outbound notifications. The engine calls
// observers synchronously on its own goroutine; slow consumers should hand
// off to their own channels. Registered via Subscribe; there is no ambient
// event bus.
type Observer interface {
	HandleMarketEvent(Event)
}

// Event is one outbound market notification.
type Event interface {
	Kind() string
}

// Subscribe registers an observer for all subsequent notifications.
func (e *Engine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *Engine) emit(ev Event) {
	for _, o := range e.observers {
		o.HandleMarketEvent(ev)
	}
}

// TradeCompleted is emitted after any committed trade.
type TradeCompleted struct {
	TransactionID uuid.UUID
	LocationID    string
	CommodityID   string
	Quantity      int
	Buying        bool // true when the player bought from the location
	UnitPrice     int64
	TotalValue    int64
}

func (TradeCompleted) Kind() string { return "trade_completed" }

// IllegalTradeDetected is emitted when a contraband sale is caught.
type IllegalTradeDetected struct {
	LocationID  string
	CommodityID string
	Quantity    int
	Consequence market.Consequence
}

func (IllegalTradeDetected) Kind() string { return "illegal_trade_detected" }

// PriceChange is emitted for each commodity whose refreshed price moved by
// more than one credit.
type PriceChange struct {
	LocationID  string
	CommodityID string
	Before      int64
	After       int64
	Percent     float64
}

func (PriceChange) Kind() string { return "price_change" }

// Classification buckets a commodity's supply situation.
type Classification string

const (
	ClassNormal   Classification = "normal"
	ClassShortage Classification = "shortage"
	ClassSurplus  Classification = "surplus"
)

// Classify maps a supply level onto a classification. Below half baseline is
// a shortage, above one-and-a-half a surplus.
func Classify(supplyLevel float64) Classification {
	switch {
	case supplyLevel < 0.5:
		return ClassShortage
	case supplyLevel > 1.5:
		return ClassSurplus
	default:
		return ClassNormal
	}
}

// MarketAlert is emitted when a commodity's shortage/surplus classification
// changes at a location.
type MarketAlert struct {
	LocationID     string
	CommodityID    string
	Classification Classification
	Previous       Classification
}

func (MarketAlert) Kind() string { return "market_alert" }

// EconomicEvent is emitted when a random economic event fires somewhere.
type EconomicEvent struct {
	EventID    string
	LocationID string
	Message    string
}

func (EconomicEvent) Kind() string { return "economic_event" }
