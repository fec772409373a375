package market

import (
	"math"

	"github.com/talgya/starlanes/internal/entropy"
	"github.com/talgya/starlanes/internal/registry"
)

// Supply/demand price pressure is clamped so scarcity can at most double a
// price and glut can at most halve it.
const (
	pressureFloor = 0.5
	pressureCeil  = 2.0
	supplyEps     = 0.1
)

// Quote computes a unit price through the eight-factor pipeline. The factors
// multiply a running price that starts at the commodity's base price, in a
// fixed order; the result is floored to whole credits and never negative.
//
// state may be nil (location doesn't hold the commodity); supply and demand
// are then taken at baseline.
func Quote(
	c *registry.Commodity,
	prof *registry.EconomicProfile,
	fac registry.FactionMarketProfile,
	state *CommodityState,
	buying bool,
	qty int,
	rng entropy.Source,
) int64 {
	price := c.BasePrice

	// 1. Economic profile bias for the commodity's category.
	price *= prof.Modifier(c.Category)

	// 2. Faction spread.
	if buying {
		price *= fac.BuyPriceFactor
	} else {
		price *= fac.SellPriceFactor
	}

	// 3. Supply/demand pressure.
	supply, demand := levelBaseline, levelBaseline
	if state != nil {
		supply, demand = state.SupplyLevel, state.DemandLevel
	}
	price *= clamp(demand/math.Max(supply, supplyEps), pressureFloor, pressureCeil)

	// 4. Rarity.
	price *= c.Rarity.PriceFactor()

	// 5. Legality premium plus a risk premium: the less tolerant the
	// authority, the more dangerous the sale, the higher the markup.
	if c.Legality != registry.LegalityLegal {
		price *= c.Legality.Premium() * (1.0 + (1.0 - fac.IllegalTolerance))
	}

	// 6. Quantity scaling, applied inverted on the buy side.
	price *= quantityFactor(qty, buying)

	// 7. Variance.
	price *= 0.95 + 0.1*rng.Float64()

	// 8. Tax, charged on purchases only.
	if buying {
		price *= 1.0 + fac.TaxRate
	}

	if price < 0 {
		return 0
	}
	return int64(math.Floor(price))
}

func quantityFactor(qty int, buying bool) float64 {
	if qty <= 5 {
		return 1.0
	}
	f := clamp(1.0+0.02*float64(qty/10), 0.85, 1.15)
	if buying {
		return 2.0 - f
	}
	return f
}
