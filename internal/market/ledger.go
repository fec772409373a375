package market

import (
	"errors"
	"math"
	"sort"

	"github.com/talgya/starlanes/internal/entropy"
	"github.com/talgya/starlanes/internal/registry"
)

// ErrInsufficientStock is returned when a sale asks for more units than the
// location holds. Expected gameplay outcome, not an engine fault.
var ErrInsufficientStock = errors.New("insufficient stock")

// Params describe a location at registration time.
type Params struct {
	LocationID string
	FactionID  string
	ProfileID  string
	Population float64 // population level, drives consumption and production
	TechLevel  int
}

// Ledger owns one location's market: inventory, supply/demand pressure, and
// trade history. One Ledger per tradeable location, created when the
// location is registered and destroyed only with the location itself.
//
// Not safe for concurrent use; the engine serializes all access.
type Ledger struct {
	LocationID string
	FactionID  string
	ProfileID  string
	Population float64
	TechLevel  int

	// Market is the owning faction's trading terms, copied at registration
	// so detection and pricing don't depend on registry lookups per trade.
	Market registry.FactionMarketProfile

	states map[string]*CommodityState
	order  []string // sorted commodity ids, kept in sync with states
	Trades []TradeRecord
}

// NewLedger creates a location's market and runs the stocking rules: which
// commodities this location carries and in what initial quantity.
func NewLedger(p Params, reg *registry.Registry, rng entropy.Source) *Ledger {
	prof, _ := reg.Profile(p.ProfileID)
	l := &Ledger{
		LocationID: p.LocationID,
		FactionID:  p.FactionID,
		ProfileID:  p.ProfileID,
		Population: p.Population,
		TechLevel:  p.TechLevel,
		Market:     reg.Faction(p.FactionID),
		states:     make(map[string]*CommodityState),
	}

	for _, id := range reg.Commodities() {
		c, _ := reg.Commodity(id)
		if !l.rollStocking(c, prof, rng) {
			continue
		}
		l.insertState(&CommodityState{
			CommodityID: c.ID,
			Quantity:    initialQuantity(c.Rarity, rng),
			SupplyLevel: clampLevel(levelBaseline + l.Market.SupplyBias),
			DemandLevel: clampLevel(levelBaseline + l.Market.DemandBias),
			Baseline:    true,
		})
	}
	return l
}

// rollStocking decides whether this location ever stocks a commodity.
// Contraband depends on faction tolerance; everything else is a
// rarity-weighted roll biased by the profile's category modifier (producers
// stock their own categories more often).
func (l *Ledger) rollStocking(c *registry.Commodity, prof *registry.EconomicProfile, rng entropy.Source) bool {
	tol := l.Market.IllegalTolerance
	switch c.Legality {
	case registry.LegalityIllegal:
		return tol > 0.5 || rng.Float64() < 0.05
	case registry.LegalityRestricted:
		if tol < 0.2 {
			return rng.Float64() < 0.30
		}
	}
	chance := c.Rarity.StockChance() * (2.0 - prof.Modifier(c.Category))
	return rng.Float64() < clamp(chance, 0, 1)
}

// initialQuantity rolls the starting stock for a rarity tier: median +/-30%,
// floored at 1 unit.
func initialQuantity(r registry.Rarity, rng entropy.Source) int {
	qty := int(float64(r.StockMedian()) * (0.7 + 0.6*rng.Float64()))
	if qty < 1 {
		qty = 1
	}
	return qty
}

// State returns the commodity state for an id, nil if not held.
func (l *Ledger) State(id string) *CommodityState {
	return l.states[id]
}

// Held returns the ids of all commodities currently held, in sorted order.
func (l *Ledger) Held() []string {
	return l.order
}

// SellToPlayer commits a sale of qty units to the player at unitPrice.
// Restricted and illegal goods roll detection first: a detected sale aborts
// with no inventory effect and the consequence payload is returned instead.
func (l *Ledger) SellToPlayer(c *registry.Commodity, qty int, unitPrice int64, rng entropy.Source) (*Consequence, error) {
	st := l.states[c.ID]
	if st == nil || st.Quantity < qty {
		return nil, ErrInsufficientStock
	}

	if c.Legality != registry.LegalityLegal {
		chance := DetectionChance(l.Market.IllegalTolerance, qty)
		if rng.Float64() < chance {
			cons := NewConsequence(c, qty, unitPrice)
			return &cons, nil
		}
	}

	st.Quantity -= qty
	st.shiftDemand(pressure(float64(qty)))
	st.shiftSupply(-pressure(float64(qty)))
	l.recordTrade(TradeRecord{
		Direction:   DirectionSale,
		CommodityID: c.ID,
		Quantity:    qty,
		UnitPrice:   unitPrice,
	})
	l.pruneIfEmpty(c.ID)
	return nil, nil
}

// BuyFromPlayer commits a purchase of qty units from the player. Locations
// accept any sell-in, creating a fresh entry for goods they never stocked.
func (l *Ledger) BuyFromPlayer(c *registry.Commodity, qty int, unitPrice int64) {
	st := l.states[c.ID]
	if st == nil {
		st = &CommodityState{
			CommodityID: c.ID,
			SupplyLevel: levelBaseline,
			DemandLevel: levelBaseline,
			Baseline:    false,
		}
		l.insertState(st)
	}
	st.Quantity += qty
	st.shiftSupply(pressure(float64(qty)))
	l.recordTrade(TradeRecord{
		Direction:   DirectionPurchase,
		CommodityID: c.ID,
		Quantity:    qty,
		UnitPrice:   unitPrice,
	})
}

// ApplySupply applies an externally-sourced supply event: production, a
// delivery, or (negative) a raid. Stock moves by round(amount), never below
// zero; supply pressure shifts in the same direction.
func (l *Ledger) ApplySupply(id string, amount float64) {
	st := l.states[id]
	if st == nil {
		if amount < 1 {
			return
		}
		// Production implies the profile stocks this good.
		st = &CommodityState{
			CommodityID: id,
			SupplyLevel: levelBaseline,
			DemandLevel: levelBaseline,
			Baseline:    true,
		}
		l.insertState(st)
	}
	st.Quantity += int(math.Round(amount))
	if st.Quantity < 0 {
		st.Quantity = 0
	}
	st.shiftSupply(pressure(amount))
	l.pruneIfEmpty(id)
}

// ApplyDemand applies a demand event: consumption or an external draw.
// Stock is consumed up to what's available; any shortfall becomes pure
// demand pressure rather than a failed transaction.
func (l *Ledger) ApplyDemand(id string, amount float64) {
	st := l.states[id]
	if st == nil {
		// Nothing held, so there is no level to pressure.
		return
	}
	st.shiftDemand(pressure(amount))
	if amount <= 0 {
		return
	}
	want := int(math.Round(amount))
	consumed := want
	if consumed > st.Quantity {
		consumed = st.Quantity
	}
	st.Quantity -= consumed
	if shortfall := want - consumed; shortfall > 0 {
		st.shiftDemand(pressure(float64(shortfall)))
	}
	l.pruneIfEmpty(id)
}

// Decay moves every commodity's supply and demand levels toward baseline by
// the given fraction.
func (l *Ledger) Decay(rate float64) {
	for _, id := range l.order {
		l.states[id].decay(rate)
	}
}

func (l *Ledger) recordTrade(t TradeRecord) {
	l.Trades = append(l.Trades, t)
	if len(l.Trades) > tradeHistoryCap {
		l.Trades = l.Trades[len(l.Trades)-tradeHistoryCap:]
	}
}

// pruneIfEmpty deletes a drained entry unless the location normally stocks
// the commodity, in which case it stays listed at zero.
func (l *Ledger) pruneIfEmpty(id string) {
	st := l.states[id]
	if st == nil || st.Quantity > 0 || st.Baseline {
		return
	}
	delete(l.states, id)
	for i, held := range l.order {
		if held == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *Ledger) insertState(st *CommodityState) {
	l.states[st.CommodityID] = st
	i := sort.SearchStrings(l.order, st.CommodityID)
	l.order = append(l.order, "")
	copy(l.order[i+1:], l.order[i:])
	l.order[i] = st.CommodityID
}
