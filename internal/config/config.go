// Package config loads the economy's content files: commodities, economic
// profiles, faction market profiles, and the simulation tuning file. Every
// loader degrades to built-in defaults on a missing or unparseable file;
// the simulation must always be runnable with no content present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/talgya/starlanes/internal/registry"
)

// Content file names looked up under the content directory.
const (
	CommoditiesFile = "commodities.yaml"
	ProfilesFile    = "profiles.yaml"
	FactionsFile    = "factions.yaml"
	SimulationFile  = "simulation.yaml"
)

// Schema is the free-form schema tag expected at the top of each content
// file. A mismatch only warns; it is not hard validation.
const Schema = "starlanes/economy-v1"

type commoditiesFile struct {
	Schema      string         `yaml:"schema"`
	Commodities []CommodityDef `yaml:"commodities"`
}

// CommodityDef is the YAML form of a commodity.
type CommodityDef struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Category  string  `yaml:"category"`
	Rarity    string  `yaml:"rarity"`
	Legality  string  `yaml:"legality"`
	BasePrice float64 `yaml:"base_price"`
}

type profilesFile struct {
	Schema   string       `yaml:"schema"`
	Profiles []ProfileDef `yaml:"profiles"`
}

// ProfileDef is the YAML form of an economic profile.
type ProfileDef struct {
	ID                string             `yaml:"id"`
	CategoryModifiers map[string]float64 `yaml:"category_modifiers"`
}

type factionsFile struct {
	Schema   string                `yaml:"schema"`
	Factions map[string]FactionDef `yaml:"factions"`
}

// FactionDef is the YAML form of a faction market profile.
type FactionDef struct {
	BuyPriceFactor   float64 `yaml:"buy_price_factor"`
	SellPriceFactor  float64 `yaml:"sell_price_factor"`
	TaxRate          float64 `yaml:"tax_rate"`
	IllegalTolerance float64 `yaml:"illegal_tolerance"`
	SupplyBias       float64 `yaml:"supply_bias"`
	DemandBias       float64 `yaml:"demand_bias"`
}

// Simulation is the tick-engine tuning: global multipliers, per-profile
// production/consumption rate tables, and the random-event list.
type Simulation struct {
	Schema                string                        `yaml:"schema"`
	GlobalProductionMult  float64                       `yaml:"global_production_mult"`
	GlobalConsumptionMult float64                       `yaml:"global_consumption_mult"`
	EventChance           float64                       `yaml:"event_chance"`
	DecayRate             float64                       `yaml:"decay_rate"`
	DecayInterval         int                           `yaml:"decay_interval"`
	RefreshInterval       int                           `yaml:"refresh_interval"`
	Production            map[string]map[string]float64 `yaml:"production"`  // profile -> commodity -> rate
	Consumption           map[string]map[string]float64 `yaml:"consumption"` // profile -> commodity -> rate
	FallbackConsumption   map[string]float64            `yaml:"fallback_consumption"`
	Events                []EventDef                    `yaml:"events"`
}

// EventDef defines one random economic event.
type EventDef struct {
	ID       string      `yaml:"id"`
	Weight   float64     `yaml:"weight"`
	Profiles []string    `yaml:"profiles"` // eligible economic profile ids
	Message  string      `yaml:"message"`
	Effects  []EffectDef `yaml:"effects"`
}

// EffectDef is one signed supply or demand adjustment within an event.
type EffectDef struct {
	Commodity string  `yaml:"commodity"`
	Dimension string  `yaml:"dimension"` // "supply" or "demand"
	Magnitude float64 `yaml:"magnitude"`
}

// LoadRegistry builds the reference-data registry from the content directory,
// falling back per file to the built-in tables.
func LoadRegistry(dir string) *registry.Registry {
	reg := registry.NewRegistry()

	var cf commoditiesFile
	if ok := loadYAML(filepath.Join(dir, CommoditiesFile), &cf, func() string { return cf.Schema }); ok {
		for _, def := range cf.Commodities {
			c, ok := def.toCommodity()
			if !ok {
				continue
			}
			reg.AddCommodity(c)
		}
	}
	if len(reg.Commodities()) == 0 {
		for _, c := range registry.DefaultCommodities() {
			reg.AddCommodity(c)
		}
	}

	var pf profilesFile
	loaded := loadYAML(filepath.Join(dir, ProfilesFile), &pf, func() string { return pf.Schema })
	if !loaded || len(pf.Profiles) == 0 {
		for _, p := range registry.DefaultProfiles() {
			reg.AddProfile(p)
		}
	} else {
		for _, def := range pf.Profiles {
			reg.AddProfile(def.toProfile())
		}
	}

	var ff factionsFile
	loaded = loadYAML(filepath.Join(dir, FactionsFile), &ff, func() string { return ff.Schema })
	if !loaded || len(ff.Factions) == 0 {
		for id, f := range registry.DefaultFactions() {
			reg.AddFaction(id, f)
		}
	} else {
		for id, def := range ff.Factions {
			reg.AddFaction(id, def.toFaction())
		}
	}

	return reg
}

// LoadSimulation reads the optional simulation tuning file; its absence is
// not an error. Values left at zero fall back to the defaults field-wise.
func LoadSimulation(dir string) *Simulation {
	sim := DefaultSimulation()

	var loadedSim Simulation
	if ok := loadYAML(filepath.Join(dir, SimulationFile), &loadedSim, func() string { return loadedSim.Schema }); !ok {
		return sim
	}

	if loadedSim.GlobalProductionMult > 0 {
		sim.GlobalProductionMult = loadedSim.GlobalProductionMult
	}
	if loadedSim.GlobalConsumptionMult > 0 {
		sim.GlobalConsumptionMult = loadedSim.GlobalConsumptionMult
	}
	if loadedSim.EventChance > 0 {
		sim.EventChance = loadedSim.EventChance
	}
	if loadedSim.DecayRate > 0 {
		sim.DecayRate = loadedSim.DecayRate
	}
	if loadedSim.DecayInterval > 0 {
		sim.DecayInterval = loadedSim.DecayInterval
	}
	if loadedSim.RefreshInterval > 0 {
		sim.RefreshInterval = loadedSim.RefreshInterval
	}
	if len(loadedSim.Production) > 0 {
		sim.Production = loadedSim.Production
	}
	if len(loadedSim.Consumption) > 0 {
		sim.Consumption = loadedSim.Consumption
	}
	if len(loadedSim.FallbackConsumption) > 0 {
		sim.FallbackConsumption = loadedSim.FallbackConsumption
	}
	if len(loadedSim.Events) > 0 {
		sim.Events = loadedSim.Events
	}
	return sim
}

// loadYAML reads and decodes one content file. Returns false (caller uses
// defaults) when the file is missing or malformed; both are logged, neither
// is fatal.
func loadYAML(path string, out any, schema func() string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("content file missing, using built-in defaults", "path", path)
		} else {
			slog.Warn("content file unreadable, using built-in defaults", "path", path, "error", err)
		}
		return false
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		slog.Warn("content file unparseable, using built-in defaults", "path", path, "error", err)
		return false
	}
	if tag := schema(); tag != "" && tag != Schema {
		slog.Warn("content file schema mismatch", "path", path, "got", tag, "want", Schema)
	}
	return true
}

func (d CommodityDef) toCommodity() (registry.Commodity, bool) {
	if d.ID == "" || d.BasePrice <= 0 {
		slog.Warn("skipping invalid commodity definition", "id", d.ID, "base_price", d.BasePrice)
		return registry.Commodity{}, false
	}
	rarity, ok := registry.ParseRarity(d.Rarity)
	if !ok {
		slog.Warn("unknown rarity, defaulting to common", "commodity", d.ID, "rarity", d.Rarity)
	}
	legality, ok := registry.ParseLegality(d.Legality)
	if !ok {
		slog.Warn("unknown legality, defaulting to legal", "commodity", d.ID, "legality", d.Legality)
	}
	name := d.Name
	if name == "" {
		name = d.ID
	}
	return registry.Commodity{
		ID:        d.ID,
		Name:      name,
		Category:  registry.Category(d.Category),
		Rarity:    rarity,
		Legality:  legality,
		BasePrice: d.BasePrice,
	}, true
}

func (d ProfileDef) toProfile() registry.EconomicProfile {
	mods := make(map[registry.Category]float64, len(d.CategoryModifiers))
	for cat, m := range d.CategoryModifiers {
		mods[registry.Category(cat)] = m
	}
	return registry.EconomicProfile{ID: d.ID, CategoryModifiers: mods}
}

func (d FactionDef) toFaction() registry.FactionMarketProfile {
	f := registry.FactionMarketProfile{
		BuyPriceFactor:   d.BuyPriceFactor,
		SellPriceFactor:  d.SellPriceFactor,
		TaxRate:          d.TaxRate,
		IllegalTolerance: d.IllegalTolerance,
		SupplyBias:       d.SupplyBias,
		DemandBias:       d.DemandBias,
	}
	// Zero factors would make every price zero; treat absent as neutral.
	if f.BuyPriceFactor == 0 {
		f.BuyPriceFactor = 1.0
	}
	if f.SellPriceFactor == 0 {
		f.SellPriceFactor = 0.9
	}
	if f.IllegalTolerance < 0 || f.IllegalTolerance > 1 {
		slog.Warn("illegal_tolerance out of range, clamping", "value", f.IllegalTolerance)
		if f.IllegalTolerance < 0 {
			f.IllegalTolerance = 0
		} else {
			f.IllegalTolerance = 1
		}
	}
	return f
}

// Validate sanity-checks the simulation tuning, clamping what it can.
func (s *Simulation) Validate() error {
	if s.DecayRate <= 0 || s.DecayRate >= 1 {
		return fmt.Errorf("decay_rate must be in (0,1), got %v", s.DecayRate)
	}
	if s.EventChance < 0 || s.EventChance > 1 {
		return fmt.Errorf("event_chance must be in [0,1], got %v", s.EventChance)
	}
	return nil
}
