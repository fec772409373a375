package engine

import (
	"log/slog"
	"math"
	"sort"
)

// Advance runs n discrete simulation ticks.
func (e *Engine) Advance(n int) {
	for i := 0; i < n; i++ {
		e.TickOnce()
	}
}

// TickOnce advances the economy by one discrete time step: production, then
// consumption, then the random-event roll, then scheduled decay and price
// refreshes. Pure computation over registered ledgers; nothing blocks.
func (e *Engine) TickOnce() {
	e.tick++

	e.produce()
	e.consume()
	e.rollEvent()

	if e.cfg.DecayInterval > 0 && e.tick-e.lastDecayTick >= uint64(e.cfg.DecayInterval) {
		for _, id := range e.order {
			e.ledgers[id].Decay(e.cfg.DecayRate)
		}
		e.lastDecayTick = e.tick
	}
	if e.cfg.RefreshInterval > 0 && e.tick-e.lastRefreshTick >= uint64(e.cfg.RefreshInterval) {
		e.refreshAll()
	}
}

// produce applies each location's profile production table as supply events.
// Output scales with the square root of population and linearly with tech.
func (e *Engine) produce() {
	for _, id := range e.order {
		l := e.ledgers[id]
		rates, ok := e.cfg.Production[l.ProfileID]
		if !ok {
			continue
		}
		techMul := 1.0 + 0.1*float64(l.TechLevel)
		popMul := math.Sqrt(l.Population)
		for _, commodity := range sortedKeys(rates) {
			amount := rates[commodity] * popMul * techMul * e.cfg.GlobalProductionMult
			if amount <= 0 {
				continue
			}
			l.ApplySupply(commodity, amount)
		}
	}
}

// consume applies each location's profile consumption table as demand
// events. A profile with no table falls back to the flat per-capita need so
// populations never stop eating. Shortfalls become demand pressure, not
// failed transactions (the ledger handles that).
func (e *Engine) consume() {
	for _, id := range e.order {
		l := e.ledgers[id]
		rates, ok := e.cfg.Consumption[l.ProfileID]
		if !ok {
			rates = e.cfg.FallbackConsumption
		}
		for _, commodity := range sortedKeys(rates) {
			amount := rates[commodity] * l.Population * e.cfg.GlobalConsumptionMult
			if amount <= 0 {
				continue
			}
			l.ApplyDemand(commodity, amount)
		}
	}
}

// rollEvent fires at most one random economic event per tick. Selection is a
// cumulative-weight roll over the whole event list; the event lands on one
// uniformly-chosen location whose profile is eligible. No eligible location
// wastes the roll; it is not retried.
func (e *Engine) rollEvent() {
	if len(e.cfg.Events) == 0 || e.rng.Float64() >= e.cfg.EventChance {
		return
	}

	total := 0.0
	for _, def := range e.cfg.Events {
		total += def.Weight
	}
	if total <= 0 {
		return
	}

	roll := e.rng.Float64() * total
	idx := len(e.cfg.Events) - 1
	for i, def := range e.cfg.Events {
		roll -= def.Weight
		if roll < 0 {
			idx = i
			break
		}
	}
	def := e.cfg.Events[idx]

	var eligible []string
	for _, id := range e.order {
		l := e.ledgers[id]
		for _, prof := range def.Profiles {
			if l.ProfileID == prof {
				eligible = append(eligible, id)
				break
			}
		}
	}
	if len(eligible) == 0 {
		return
	}

	target := e.ledgers[eligible[e.rng.Intn(len(eligible))]]
	for _, eff := range def.Effects {
		switch eff.Dimension {
		case "demand":
			target.ApplyDemand(eff.Commodity, eff.Magnitude)
		default:
			target.ApplySupply(eff.Commodity, eff.Magnitude)
		}
	}

	slog.Info("economic event",
		"event", def.ID,
		"location", target.LocationID,
		"message", def.Message,
	)
	e.emit(EconomicEvent{
		EventID:    def.ID,
		LocationID: target.LocationID,
		Message:    def.Message,
	})
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
