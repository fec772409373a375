// Built-in reference tables. These keep the simulation runnable with no
// content files present; the config loader overlays YAML content on top.
package registry

// Default builds a registry from the built-in commodity, profile, and
// faction tables.
func Default() *Registry {
	r := NewRegistry()
	for _, c := range DefaultCommodities() {
		r.AddCommodity(c)
	}
	for _, p := range DefaultProfiles() {
		r.AddProfile(p)
	}
	for id, f := range DefaultFactions() {
		r.AddFaction(id, f)
	}
	return r
}

// DefaultCommodities returns the built-in commodity table.
func DefaultCommodities() []Commodity {
	return []Commodity{
		{ID: "food_rations", Name: "Food Rations", Category: CategoryFood, Rarity: RarityCommon, Legality: LegalityLegal, BasePrice: 10},
		{ID: "grain", Name: "Hydroponic Grain", Category: CategoryFood, Rarity: RarityCommon, Legality: LegalityLegal, BasePrice: 8},
		{ID: "water", Name: "Purified Water", Category: CategoryWater, Rarity: RarityCommon, Legality: LegalityLegal, BasePrice: 5},
		{ID: "iron_ore", Name: "Iron Ore", Category: CategoryMinerals, Rarity: RarityCommon, Legality: LegalityLegal, BasePrice: 50},
		{ID: "copper_ore", Name: "Copper Ore", Category: CategoryMinerals, Rarity: RarityCommon, Legality: LegalityLegal, BasePrice: 40},
		{ID: "titanium", Name: "Titanium Ingots", Category: CategoryMetals, Rarity: RarityUncommon, Legality: LegalityLegal, BasePrice: 120},
		{ID: "hydrogen_fuel", Name: "Hydrogen Fuel", Category: CategoryFuel, Rarity: RarityCommon, Legality: LegalityLegal, BasePrice: 25},
		{ID: "antimatter_cells", Name: "Antimatter Cells", Category: CategoryFuel, Rarity: RarityLegendary, Legality: LegalityRestricted, BasePrice: 5000},
		{ID: "electronics", Name: "Consumer Electronics", Category: CategoryTech, Rarity: RarityUncommon, Legality: LegalityLegal, BasePrice: 150},
		{ID: "quantum_processors", Name: "Quantum Processors", Category: CategoryTech, Rarity: RarityRare, Legality: LegalityLegal, BasePrice: 600},
		{ID: "medical_supplies", Name: "Medical Supplies", Category: CategoryMedical, Rarity: RarityUncommon, Legality: LegalityLegal, BasePrice: 180},
		{ID: "nanomed_serum", Name: "Nanomed Serum", Category: CategoryMedical, Rarity: RarityVeryRare, Legality: LegalityRestricted, BasePrice: 1500},
		{ID: "fine_spirits", Name: "Fine Spirits", Category: CategoryLuxury, Rarity: RarityUncommon, Legality: LegalityLegal, BasePrice: 90},
		{ID: "gem_crystals", Name: "Gem Crystals", Category: CategoryLuxury, Rarity: RarityRare, Legality: LegalityLegal, BasePrice: 400},
		{ID: "relic_artifacts", Name: "Relic Artifacts", Category: CategoryLuxury, Rarity: RarityLegendary, Legality: LegalityLegal, BasePrice: 8000},
		{ID: "pulse_rifles", Name: "Pulse Rifles", Category: CategoryWeapons, Rarity: RarityRare, Legality: LegalityRestricted, BasePrice: 800},
		{ID: "military_ordnance", Name: "Military Ordnance", Category: CategoryWeapons, Rarity: RarityVeryRare, Legality: LegalityIllegal, BasePrice: 2500},
		{ID: "spice_dust", Name: "Spice Dust", Category: CategoryContraband, Rarity: RarityUncommon, Legality: LegalityIllegal, BasePrice: 450},
		{ID: "neurostims", Name: "Neurostims", Category: CategoryContraband, Rarity: RarityRare, Legality: LegalityIllegal, BasePrice: 950},
	}
}

// DefaultProfiles returns the built-in economic profile table. Modifiers
// below 1.0 mark categories the archetype produces; above 1.0, categories it
// has to import.
func DefaultProfiles() []EconomicProfile {
	return []EconomicProfile{
		{ID: "industrial", CategoryModifiers: map[Category]float64{
			CategoryMetals: 0.8, CategoryTech: 0.9, CategoryWeapons: 0.9,
			CategoryFood: 1.3, CategoryWater: 1.2, CategoryLuxury: 1.1,
		}},
		{ID: "mining", CategoryModifiers: map[Category]float64{
			CategoryMinerals: 0.6, CategoryMetals: 0.75, CategoryFuel: 0.9,
			CategoryFood: 1.4, CategoryMedical: 1.2, CategoryLuxury: 1.3,
		}},
		{ID: "agricultural", CategoryModifiers: map[Category]float64{
			CategoryFood: 0.6, CategoryWater: 0.7,
			CategoryTech: 1.3, CategoryMetals: 1.2, CategoryMedical: 1.1,
		}},
		{ID: "frontier", CategoryModifiers: map[Category]float64{
			CategoryFood: 1.2, CategoryFuel: 1.3, CategoryMedical: 1.4,
			CategoryWeapons: 1.1, CategoryContraband: 0.9,
		}},
		{ID: "luxury", CategoryModifiers: map[Category]float64{
			CategoryLuxury: 0.8, CategoryContraband: 1.2,
			CategoryFood: 1.1, CategoryTech: 1.1,
		}},
		{ID: "high_tech", CategoryModifiers: map[Category]float64{
			CategoryTech: 0.7, CategoryMedical: 0.8,
			CategoryMinerals: 1.2, CategoryMetals: 1.1, CategoryFood: 1.2,
		}},
		{ID: "refining", CategoryModifiers: map[Category]float64{
			CategoryFuel: 0.7, CategoryMetals: 0.85, CategoryMinerals: 0.9,
			CategoryFood: 1.2, CategoryLuxury: 1.2,
		}},
	}
}

// DefaultFactions returns the built-in faction market profiles.
func DefaultFactions() map[string]FactionMarketProfile {
	return map[string]FactionMarketProfile{
		"terran_federation": {
			BuyPriceFactor: 1.05, SellPriceFactor: 0.9, TaxRate: 0.12,
			IllegalTolerance: 0.05,
		},
		"free_traders": {
			BuyPriceFactor: 1.0, SellPriceFactor: 0.92, TaxRate: 0.05,
			IllegalTolerance: 0.4, DemandBias: 0.05,
		},
		"outer_syndicate": {
			BuyPriceFactor: 0.95, SellPriceFactor: 0.85, TaxRate: 0.02,
			IllegalTolerance: 0.9, SupplyBias: -0.05,
		},
		"helios_combine": {
			BuyPriceFactor: 1.1, SellPriceFactor: 0.88, TaxRate: 0.15,
			IllegalTolerance: 0.15, SupplyBias: 0.05,
		},
	}
}
