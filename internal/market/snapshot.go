package market

import "github.com/talgya/starlanes/internal/registry"

// Snapshot is a Ledger's persisted form. States are kept sorted by commodity
// id so the serialized bytes are deterministic: save -> load -> save produces
// identical output.
type Snapshot struct {
	LocationID string                        `json:"location_id"`
	FactionID  string                        `json:"faction_id"`
	ProfileID  string                        `json:"profile_id"`
	Population float64                       `json:"population"`
	TechLevel  int                           `json:"tech_level"`
	Market     registry.FactionMarketProfile `json:"market"`
	States     []CommodityState              `json:"states"`
}

// Snapshot captures the ledger's full commodity-state collection.
func (l *Ledger) Snapshot() Snapshot {
	snap := Snapshot{
		LocationID: l.LocationID,
		FactionID:  l.FactionID,
		ProfileID:  l.ProfileID,
		Population: l.Population,
		TechLevel:  l.TechLevel,
		Market:     l.Market,
		States:     make([]CommodityState, 0, len(l.order)),
	}
	for _, id := range l.order {
		snap.States = append(snap.States, *l.states[id])
	}
	return snap
}

// FromSnapshot reconstructs a Ledger exactly as captured. Commodities saved
// without a price history (older saves) come back with an empty one.
func FromSnapshot(snap Snapshot) *Ledger {
	l := &Ledger{
		LocationID: snap.LocationID,
		FactionID:  snap.FactionID,
		ProfileID:  snap.ProfileID,
		Population: snap.Population,
		TechLevel:  snap.TechLevel,
		Market:     snap.Market,
		states:     make(map[string]*CommodityState, len(snap.States)),
	}
	for i := range snap.States {
		st := snap.States[i]
		l.insertState(&st)
	}
	return l
}
