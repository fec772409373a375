package config

// DefaultSimulation returns the built-in tick-engine tuning: rate tables for
// every default profile and a small event list, so the simulation runs with
// no simulation.yaml present.
func DefaultSimulation() *Simulation {
	return &Simulation{
		GlobalProductionMult:  1.0,
		GlobalConsumptionMult: 1.0,
		EventChance:           0.05,
		DecayRate:             0.05,
		DecayInterval:         4,
		RefreshInterval:       1,
		Production: map[string]map[string]float64{
			"agricultural": {"grain": 6, "food_rations": 4, "water": 5},
			"mining":       {"iron_ore": 5, "copper_ore": 4, "titanium": 1},
			"industrial":   {"electronics": 2, "titanium": 0.5, "pulse_rifles": 0.2},
			"high_tech":    {"quantum_processors": 0.5, "electronics": 1.5, "medical_supplies": 1, "nanomed_serum": 0.05},
			"refining":     {"hydrogen_fuel": 5, "titanium": 0.8},
			"luxury":       {"fine_spirits": 2, "gem_crystals": 0.3},
			"frontier":     {"water": 1},
		},
		Consumption: map[string]map[string]float64{
			"agricultural": {"food_rations": 1, "water": 1, "electronics": 0.3, "hydrogen_fuel": 0.5},
			"mining":       {"food_rations": 3, "water": 2, "medical_supplies": 0.3, "hydrogen_fuel": 1.5},
			"industrial":   {"food_rations": 2, "water": 1.5, "iron_ore": 3, "copper_ore": 2, "hydrogen_fuel": 2},
			"high_tech":    {"food_rations": 2, "water": 1.5, "titanium": 0.5, "copper_ore": 1},
			"refining":     {"food_rations": 2, "water": 1.5, "iron_ore": 1},
			"luxury":       {"food_rations": 2, "water": 1.5, "fine_spirits": 1},
			"frontier":     {"food_rations": 2, "water": 2, "medical_supplies": 0.5, "hydrogen_fuel": 1},
		},
		// Flat per-capita need applied when a location's profile has no
		// consumption table at all.
		FallbackConsumption: map[string]float64{"food_rations": 2, "water": 1.5},
		Events:              DefaultEvents(),
	}
}

// DefaultEvents returns the built-in random economic event list.
func DefaultEvents() []EventDef {
	return []EventDef{
		{
			ID:       "pirate_raid",
			Weight:   3,
			Profiles: []string{"frontier", "mining", "refining"},
			Message:  "Pirate raiders hit supply convoys; stocks plundered",
			Effects: []EffectDef{
				{Commodity: "food_rations", Dimension: "supply", Magnitude: -25},
				{Commodity: "hydrogen_fuel", Dimension: "supply", Magnitude: -20},
			},
		},
		{
			ID:       "mining_strike",
			Weight:   2,
			Profiles: []string{"mining", "refining"},
			Message:  "Miners down tools over hazard pay; ore output collapses",
			Effects: []EffectDef{
				{Commodity: "iron_ore", Dimension: "supply", Magnitude: -60},
				{Commodity: "copper_ore", Dimension: "supply", Magnitude: -40},
			},
		},
		{
			ID:       "bumper_harvest",
			Weight:   3,
			Profiles: []string{"agricultural"},
			Message:  "Record hydroponic yields flood the food markets",
			Effects: []EffectDef{
				{Commodity: "grain", Dimension: "supply", Magnitude: 80},
				{Commodity: "food_rations", Dimension: "supply", Magnitude: 40},
			},
		},
		{
			ID:       "plague_outbreak",
			Weight:   1,
			Profiles: []string{"frontier", "agricultural", "industrial"},
			Message:  "Quarantine declared; medical supplies in desperate demand",
			Effects: []EffectDef{
				{Commodity: "medical_supplies", Dimension: "demand", Magnitude: 60},
				{Commodity: "nanomed_serum", Dimension: "demand", Magnitude: 20},
			},
		},
		{
			ID:       "tech_expo",
			Weight:   2,
			Profiles: []string{"high_tech", "luxury"},
			Message:  "Trade expo draws buyers from three sectors",
			Effects: []EffectDef{
				{Commodity: "electronics", Dimension: "demand", Magnitude: 40},
				{Commodity: "quantum_processors", Dimension: "demand", Magnitude: 10},
			},
		},
	}
}
