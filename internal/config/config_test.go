package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/starlanes/internal/registry"
)

func writeContent(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadRegistry_EmptyDirUsesDefaults(t *testing.T) {
	reg := LoadRegistry(t.TempDir())

	assert.Len(t, reg.Commodities(), len(registry.DefaultCommodities()))
	_, ok := reg.Profile("mining")
	assert.True(t, ok)
	assert.Equal(t, registry.DefaultFactions()["free_traders"], reg.Faction("free_traders"))
}

func TestLoadRegistry_CommoditiesFromYAML(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, CommoditiesFile, `
schema: starlanes/economy-v1
commodities:
  - id: void_opals
    name: Void Opals
    category: luxury
    rarity: very_rare
    legality: restricted
    base_price: 3200
  - id: broken_entry
    category: luxury
`)

	reg := LoadRegistry(dir)

	// The invalid entry (no base price) is skipped, not fatal.
	require.Len(t, reg.Commodities(), 1)
	c, ok := reg.Commodity("void_opals")
	require.True(t, ok)
	assert.Equal(t, "Void Opals", c.Name)
	assert.Equal(t, registry.CategoryLuxury, c.Category)
	assert.Equal(t, registry.RarityVeryRare, c.Rarity)
	assert.Equal(t, registry.LegalityRestricted, c.Legality)
	assert.Equal(t, 3200.0, c.BasePrice)
}

func TestLoadRegistry_UnknownTiersDegrade(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, CommoditiesFile, `
schema: starlanes/economy-v1
commodities:
  - id: mystery_box
    rarity: mythic
    legality: frowned_upon
    base_price: 10
`)

	reg := LoadRegistry(dir)

	c, ok := reg.Commodity("mystery_box")
	require.True(t, ok)
	assert.Equal(t, registry.RarityCommon, c.Rarity)
	assert.Equal(t, registry.LegalityLegal, c.Legality)
	assert.Equal(t, "mystery_box", c.Name)
}

func TestLoadRegistry_MalformedFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, CommoditiesFile, "{{{ not yaml")

	reg := LoadRegistry(dir)

	assert.Len(t, reg.Commodities(), len(registry.DefaultCommodities()))
}

func TestLoadRegistry_FactionZeroFactorsNeutralized(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, FactionsFile, `
schema: starlanes/economy-v1
factions:
  dust_barons:
    tax_rate: 0.2
    illegal_tolerance: 1.7
`)

	reg := LoadRegistry(dir)

	f := reg.Faction("dust_barons")
	assert.Equal(t, 1.0, f.BuyPriceFactor)
	assert.Equal(t, 0.9, f.SellPriceFactor)
	assert.Equal(t, 0.2, f.TaxRate)
	assert.Equal(t, 1.0, f.IllegalTolerance)
}

func TestLoadRegistry_ProfilesFromYAML(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, ProfilesFile, `
schema: starlanes/economy-v1
profiles:
  - id: scrapyard
    category_modifiers:
      metals: 0.7
      food: 1.5
`)

	reg := LoadRegistry(dir)

	p, ok := reg.Profile("scrapyard")
	require.True(t, ok)
	assert.Equal(t, 0.7, p.Modifier(registry.CategoryMetals))
	assert.Equal(t, 1.5, p.Modifier(registry.CategoryFood))
	assert.Equal(t, 1.0, p.Modifier(registry.CategoryFuel))
	_, ok = reg.Profile("mining")
	assert.False(t, ok, "custom profiles replace the built-in table")
}

func TestLoadSimulation_MissingFileUsesDefaults(t *testing.T) {
	sim := LoadSimulation(t.TempDir())

	assert.Equal(t, DefaultSimulation(), sim)
}

func TestLoadSimulation_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, SimulationFile, `
schema: starlanes/economy-v1
event_chance: 0.2
decay_interval: 8
`)

	sim := LoadSimulation(dir)

	assert.Equal(t, 0.2, sim.EventChance)
	assert.Equal(t, 8, sim.DecayInterval)
	// Everything left unset keeps its default.
	def := DefaultSimulation()
	assert.Equal(t, def.DecayRate, sim.DecayRate)
	assert.Equal(t, def.RefreshInterval, sim.RefreshInterval)
	assert.Equal(t, def.Production, sim.Production)
	assert.Equal(t, def.Events, sim.Events)
}

func TestLoadSimulation_EventOverride(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, SimulationFile, `
schema: starlanes/economy-v1
events:
  - id: solar_flare
    weight: 2
    profiles: [high_tech]
    message: "Solar flare fries local electronics."
    effects:
      - commodity: electronics
        dimension: supply
        magnitude: -40
`)

	sim := LoadSimulation(dir)

	require.Len(t, sim.Events, 1)
	ev := sim.Events[0]
	assert.Equal(t, "solar_flare", ev.ID)
	assert.Equal(t, 2.0, ev.Weight)
	assert.Equal(t, []string{"high_tech"}, ev.Profiles)
	require.Len(t, ev.Effects, 1)
	assert.Equal(t, "supply", ev.Effects[0].Dimension)
	assert.Equal(t, -40.0, ev.Effects[0].Magnitude)
}

func TestSimulation_Validate(t *testing.T) {
	assert.NoError(t, DefaultSimulation().Validate())

	bad := DefaultSimulation()
	bad.DecayRate = 0
	assert.Error(t, bad.Validate())

	bad = DefaultSimulation()
	bad.EventChance = 1.5
	assert.Error(t, bad.Validate())
}
