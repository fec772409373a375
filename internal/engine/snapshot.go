package engine

import "github.com/talgya/starlanes/internal/market"

// Snapshot is the engine's persisted form: the clock counters plus every
// ledger's snapshot, in stable location order.
type Snapshot struct {
	Tick            uint64            `json:"tick"`
	LastRefreshTick uint64            `json:"last_refresh_tick"`
	LastDecayTick   uint64            `json:"last_decay_tick"`
	Ledgers         []market.Snapshot `json:"ledgers"`
}

// Snapshot captures the full engine state for persistence.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:            e.tick,
		LastRefreshTick: e.lastRefreshTick,
		LastDecayTick:   e.lastDecayTick,
		Ledgers:         make([]market.Snapshot, 0, len(e.order)),
	}
	for _, id := range e.order {
		snap.Ledgers = append(snap.Ledgers, e.ledgers[id].Snapshot())
	}
	return snap
}

// Restore replaces the engine's mutable state with a loaded snapshot. The
// registry and tuning stay as constructed; ledgers are rebuilt exactly,
// including empty price histories for commodities absent from older saves.
func (e *Engine) Restore(snap Snapshot) {
	e.tick = snap.Tick
	e.lastRefreshTick = snap.LastRefreshTick
	e.lastDecayTick = snap.LastDecayTick
	e.ledgers = make(map[string]*market.Ledger, len(snap.Ledgers))
	e.order = nil
	e.classes = make(map[string]Classification)
	for _, ls := range snap.Ledgers {
		e.addLedger(market.FromSnapshot(ls))
	}
}
