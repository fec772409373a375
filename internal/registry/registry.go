// Package registry holds the immutable economic reference data: commodities,
// economic profiles, and faction market profiles. Loaded once at startup and
// only read afterwards.
package registry

import "sort"

// Category groups commodities for profile price modifiers.
type Category string

const (
	CategoryFood       Category = "food"
	CategoryWater      Category = "water"
	CategoryMinerals   Category = "minerals"
	CategoryMetals     Category = "metals"
	CategoryFuel       Category = "fuel"
	CategoryTech       Category = "tech"
	CategoryMedical    Category = "medical"
	CategoryLuxury     Category = "luxury"
	CategoryWeapons    Category = "weapons"
	CategoryContraband Category = "contraband"
)

// Rarity tiers drive price multipliers and initial stocking quantities.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityVeryRare
	RarityLegendary
)

// PriceFactor returns the rarity price multiplier.
func (r Rarity) PriceFactor() float64 {
	switch r {
	case RarityUncommon:
		return 1.2
	case RarityRare:
		return 1.5
	case RarityVeryRare:
		return 2.0
	case RarityLegendary:
		return 3.0
	default:
		return 1.0
	}
}

// StockMedian returns the median initial quantity for a stocked commodity.
func (r Rarity) StockMedian() int {
	switch r {
	case RarityCommon:
		return 200
	case RarityUncommon:
		return 100
	case RarityRare:
		return 30
	case RarityVeryRare:
		return 10
	default: // legendary
		return 1
	}
}

// StockChance returns the baseline probability that a location stocks a
// commodity of this rarity, before profile weighting.
func (r Rarity) StockChance() float64 {
	switch r {
	case RarityCommon:
		return 0.9
	case RarityUncommon:
		return 0.6
	case RarityRare:
		return 0.3
	case RarityVeryRare:
		return 0.1
	default:
		return 0.02
	}
}

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityVeryRare:
		return "very_rare"
	case RarityLegendary:
		return "legendary"
	}
	return "unknown"
}

// ParseRarity maps a config string to a Rarity; unknown strings map to common.
func ParseRarity(s string) (Rarity, bool) {
	switch s {
	case "common":
		return RarityCommon, true
	case "uncommon":
		return RarityUncommon, true
	case "rare":
		return RarityRare, true
	case "very_rare":
		return RarityVeryRare, true
	case "legendary":
		return RarityLegendary, true
	}
	return RarityCommon, false
}

// Legality classifies trade risk.
type Legality uint8

const (
	LegalityLegal Legality = iota
	LegalityRestricted
	LegalityIllegal
)

// Premium returns the base price multiplier charged for risky goods, before
// the tolerance risk premium.
func (l Legality) Premium() float64 {
	switch l {
	case LegalityRestricted:
		return 1.5
	case LegalityIllegal:
		return 2.0
	default:
		return 1.0
	}
}

func (l Legality) String() string {
	switch l {
	case LegalityRestricted:
		return "restricted"
	case LegalityIllegal:
		return "illegal"
	}
	return "legal"
}

// ParseLegality maps a config string to a Legality; unknown strings map to
// legal.
func ParseLegality(s string) (Legality, bool) {
	switch s {
	case "legal":
		return LegalityLegal, true
	case "restricted":
		return LegalityRestricted, true
	case "illegal":
		return LegalityIllegal, true
	}
	return LegalityLegal, false
}

// Commodity is one tradeable good. Immutable after load.
type Commodity struct {
	ID        string
	Name      string
	Category  Category
	Rarity    Rarity
	Legality  Legality
	BasePrice float64
}

// EconomicProfile is a location archetype: per-category multiplicative price
// biases. A producer of a category carries a modifier below 1.0 for it.
type EconomicProfile struct {
	ID                string
	CategoryModifiers map[Category]float64
}

// Modifier returns the profile's price modifier for a category, 1.0 when the
// profile doesn't mention it.
func (p *EconomicProfile) Modifier(c Category) float64 {
	if p == nil {
		return 1.0
	}
	if m, ok := p.CategoryModifiers[c]; ok {
		return m
	}
	return 1.0
}

// FactionMarketProfile carries a faction's trading terms, applied at every
// location the faction owns.
type FactionMarketProfile struct {
	BuyPriceFactor   float64 `json:"buy_price_factor"`
	SellPriceFactor  float64 `json:"sell_price_factor"`
	TaxRate          float64 `json:"tax_rate"`
	IllegalTolerance float64 `json:"illegal_tolerance"` // [0,1]; higher tolerates contraband
	SupplyBias       float64 `json:"supply_bias"`       // optional shift on initial supply levels
	DemandBias       float64 `json:"demand_bias"`       // optional shift on initial demand levels
}

// Registry is the read-only lookup surface for all reference data.
type Registry struct {
	commodities map[string]*Commodity
	profiles    map[string]*EconomicProfile
	factions    map[string]FactionMarketProfile

	commodityOrder []string
}

// NewRegistry creates an empty registry. Callers populate it with the Add
// methods during construction and treat it as immutable afterwards.
func NewRegistry() *Registry {
	return &Registry{
		commodities: make(map[string]*Commodity),
		profiles:    make(map[string]*EconomicProfile),
		factions:    make(map[string]FactionMarketProfile),
	}
}

// AddCommodity registers a commodity, replacing any previous entry with the
// same id.
func (r *Registry) AddCommodity(c Commodity) {
	if _, exists := r.commodities[c.ID]; !exists {
		r.commodityOrder = append(r.commodityOrder, c.ID)
		sort.Strings(r.commodityOrder)
	}
	cc := c
	r.commodities[c.ID] = &cc
}

// AddProfile registers an economic profile.
func (r *Registry) AddProfile(p EconomicProfile) {
	pp := p
	r.profiles[p.ID] = &pp
}

// AddFaction registers a faction market profile under a faction id.
func (r *Registry) AddFaction(id string, f FactionMarketProfile) {
	r.factions[id] = f
}

// Commodity looks up a commodity by id.
func (r *Registry) Commodity(id string) (*Commodity, bool) {
	c, ok := r.commodities[id]
	return c, ok
}

// Profile looks up an economic profile by id.
func (r *Registry) Profile(id string) (*EconomicProfile, bool) {
	p, ok := r.profiles[id]
	return p, ok
}

// Faction returns the market profile for a faction, falling back to neutral
// terms for unknown factions so unowned locations still trade.
func (r *Registry) Faction(id string) FactionMarketProfile {
	if f, ok := r.factions[id]; ok {
		return f
	}
	return NeutralFaction()
}

// Commodities returns all commodity ids in stable (sorted) order. Iteration
// order matters: the simulation must replay identically from a seed.
func (r *Registry) Commodities() []string {
	return r.commodityOrder
}

// Profiles returns all profile ids in sorted order.
func (r *Registry) Profiles() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NeutralFaction is the default market profile: mild spread, 10% tax, low
// contraband tolerance.
func NeutralFaction() FactionMarketProfile {
	return FactionMarketProfile{
		BuyPriceFactor:   1.0,
		SellPriceFactor:  0.9,
		TaxRate:          0.1,
		IllegalTolerance: 0.1,
	}
}
