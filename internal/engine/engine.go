// Package engine ties the economy together: it owns the registry, every
// location's market ledger, and the simulated clock's per-tick work
// (production, consumption, random events, decay).
package engine

import (
	"log/slog"
	"math"
	"sort"

	"github.com/talgya/starlanes/internal/config"
	"github.com/talgya/starlanes/internal/entropy"
	"github.com/talgya/starlanes/internal/market"
	"github.com/talgya/starlanes/internal/registry"
)

// Engine is the market simulation engine. One instance owns the whole
// galaxy's economy; collaborators get it by reference, never through
// package-level state.
//
// All methods must be called from a single goroutine: player trades and the
// clock's ticks are synchronous calls into the same state, never concurrent.
type Engine struct {
	reg *registry.Registry
	cfg *config.Simulation
	rng entropy.Source

	ledgers map[string]*market.Ledger
	order   []string // sorted location ids, for deterministic ticks

	observers []Observer

	// classes remembers the last shortage/surplus classification per
	// location+commodity so refreshes only notify on changes.
	classes map[string]Classification

	tick            uint64
	lastRefreshTick uint64
	lastDecayTick   uint64
}

// New creates an engine over a registry and simulation tuning. A nil cfg
// uses the built-in defaults.
func New(reg *registry.Registry, cfg *config.Simulation, rng entropy.Source) *Engine {
	if cfg == nil {
		cfg = config.DefaultSimulation()
	}
	return &Engine{
		reg:     reg,
		cfg:     cfg,
		rng:     rng,
		ledgers: make(map[string]*market.Ledger),
		classes: make(map[string]Classification),
	}
}

// Registry exposes the engine's reference data.
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Tick returns the current tick counter.
func (e *Engine) Tick() uint64 { return e.tick }

// RegisterLocation creates and registers the market ledger for a location,
// runs its stocking rules, and computes its opening prices. Called at
// galaxy/system generation time.
func (e *Engine) RegisterLocation(p market.Params) *market.Ledger {
	l := market.NewLedger(p, e.reg, e.rng)
	e.addLedger(l)
	e.refreshPrices(l)
	slog.Info("market registered",
		"location", l.LocationID,
		"faction", l.FactionID,
		"profile", l.ProfileID,
		"commodities", len(l.Held()),
	)
	return l
}

// Ledger looks up a location's market ledger, nil if unregistered.
func (e *Engine) Ledger(locationID string) *market.Ledger {
	return e.ledgers[locationID]
}

// Locations returns all registered location ids in sorted order.
func (e *Engine) Locations() []string { return e.order }

// RemoveLocation destroys a location's ledger. Only called when the location
// itself is removed from the galaxy.
func (e *Engine) RemoveLocation(locationID string) {
	if _, ok := e.ledgers[locationID]; !ok {
		return
	}
	delete(e.ledgers, locationID)
	for i, id := range e.order {
		if id == locationID {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Price computes what one unit-or-bulk trade would cost right now. Unknown
// locations degrade to the commodity's base price with a warning; unknown
// commodities are a caller bug and price at zero with an error log.
func (e *Engine) Price(commodityID, locationID string, buying bool, qty int) int64 {
	c, ok := e.reg.Commodity(commodityID)
	if !ok {
		slog.Error("price requested for unknown commodity", "commodity", commodityID)
		return 0
	}
	l := e.ledgers[locationID]
	if l == nil {
		slog.Warn("price requested for unregistered location, returning base price",
			"location", locationID, "commodity", commodityID)
		return int64(math.Floor(c.BasePrice))
	}
	prof, _ := e.reg.Profile(l.ProfileID)
	return market.Quote(c, prof, l.Market, l.State(commodityID), buying, qty, e.rng)
}

// ApplySupplyEvent lets other subsystems push supply at a location ("a
// delivery arrived", negative for "a raid destroyed cargo").
func (e *Engine) ApplySupplyEvent(locationID, commodityID string, amount float64) {
	l := e.ledgers[locationID]
	if l == nil {
		slog.Error("supply event for unregistered location", "location", locationID)
		return
	}
	l.ApplySupply(commodityID, amount)
}

// ApplyDemandEvent lets other subsystems push demand at a location.
func (e *Engine) ApplyDemandEvent(locationID, commodityID string, amount float64) {
	l := e.ledgers[locationID]
	if l == nil {
		slog.Error("demand event for unregistered location", "location", locationID)
		return
	}
	l.ApplyDemand(commodityID, amount)
}

// refreshPrices recomputes and caches the current price for every commodity
// a location holds, appends to price histories, and notifies observers of
// moves larger than one credit and of shortage/surplus flips. Idempotent on
// unchanged inputs when variance is pinned.
func (e *Engine) refreshPrices(l *market.Ledger) {
	prof, _ := e.reg.Profile(l.ProfileID)
	for _, id := range l.Held() {
		c, ok := e.reg.Commodity(id)
		if !ok {
			// Held good absent from the registry: stale save content.
			slog.Warn("held commodity missing from registry", "location", l.LocationID, "commodity", id)
			continue
		}
		st := l.State(id)
		before := st.CurrentPrice
		after := market.Quote(c, prof, l.Market, st, true, 1, e.rng)
		st.RecordPrice(after)

		if diff := after - before; before != 0 && (diff > 1 || diff < -1) {
			e.emit(PriceChange{
				LocationID:  l.LocationID,
				CommodityID: id,
				Before:      before,
				After:       after,
				Percent:     100 * float64(after-before) / float64(before),
			})
		}

		key := l.LocationID + "/" + id
		class := Classify(st.SupplyLevel)
		if prev, seen := e.classes[key]; !seen || prev != class {
			if seen {
				e.emit(MarketAlert{
					LocationID:     l.LocationID,
					CommodityID:    id,
					Classification: class,
					Previous:       prev,
				})
			}
			e.classes[key] = class
		}
	}
}

// refreshAll refreshes every registered location.
func (e *Engine) refreshAll() {
	for _, id := range e.order {
		e.refreshPrices(e.ledgers[id])
	}
	e.lastRefreshTick = e.tick
}

func (e *Engine) addLedger(l *market.Ledger) {
	e.ledgers[l.LocationID] = l
	i := sort.SearchStrings(e.order, l.LocationID)
	e.order = append(e.order, "")
	copy(e.order[i+1:], e.order[i:])
	e.order[i] = l.LocationID
}
