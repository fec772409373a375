package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/starlanes/internal/entropy"
	"github.com/talgya/starlanes/internal/registry"
)

// testLedger builds a ledger with explicit commodity states, bypassing the
// stocking rolls.
func testLedger(fac registry.FactionMarketProfile, states ...CommodityState) *Ledger {
	return FromSnapshot(Snapshot{
		LocationID: "test_station",
		FactionID:  "test_faction",
		ProfileID:  "industrial",
		Population: 4,
		Market:     fac,
		States:     states,
	})
}

func legalState(id string, qty int) CommodityState {
	return CommodityState{
		CommodityID: id,
		Quantity:    qty,
		SupplyLevel: 1.0,
		DemandLevel: 1.0,
		Baseline:    true,
	}
}

func TestNewLedger_StocksEverythingOnLowRolls(t *testing.T) {
	reg := registry.Default()

	l := NewLedger(Params{
		LocationID: "a", FactionID: "free_traders", ProfileID: "industrial",
		Population: 4,
	}, reg, entropy.Fixed(0.0))

	// Every roll passes, so every registry commodity is stocked.
	assert.Len(t, l.Held(), len(reg.Commodities()))
	for _, id := range l.Held() {
		assert.GreaterOrEqual(t, l.State(id).Quantity, 1)
		assert.True(t, l.State(id).Baseline)
	}
}

func TestNewLedger_StocksNothingOnHighRolls(t *testing.T) {
	reg := registry.Default()

	l := NewLedger(Params{
		LocationID: "a", FactionID: "terran_federation", ProfileID: "industrial",
		Population: 4,
	}, reg, entropy.Fixed(0.999))

	assert.Empty(t, l.Held())
}

func TestNewLedger_TolerantFactionAlwaysStocksContraband(t *testing.T) {
	reg := registry.Default()

	// outer_syndicate tolerance 0.9 > 0.5: illegal goods stocked without a
	// roll even when every roll fails.
	l := NewLedger(Params{
		LocationID: "a", FactionID: "outer_syndicate", ProfileID: "frontier",
		Population: 1,
	}, reg, entropy.Fixed(0.999))

	held := l.Held()
	assert.Contains(t, held, "spice_dust")
	assert.Contains(t, held, "neurostims")
	assert.NotContains(t, held, "iron_ore")
}

func TestNewLedger_InitialQuantityByRarity(t *testing.T) {
	reg := registry.Default()

	// Fixed(0.0) stocks everything and rolls every quantity at the bottom of
	// the +/-30% band.
	l := NewLedger(Params{
		LocationID: "a", FactionID: "free_traders", ProfileID: "industrial",
		Population: 4,
	}, reg, entropy.Fixed(0.0))

	require.NotNil(t, l.State("iron_ore"))
	assert.Equal(t, int(float64(200)*0.7), l.State("iron_ore").Quantity) // 200 * 0.7
	require.NotNil(t, l.State("relic_artifacts"))
	assert.Equal(t, 1, l.State("relic_artifacts").Quantity) // floored at 1
}

func TestSellToPlayer_InsufficientStock(t *testing.T) {
	l := testLedger(registry.NeutralFaction(), legalState("iron_ore", 3))

	cons, err := l.SellToPlayer(ironOre(), 5, 55, entropy.Fixed(0.5))

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Nil(t, cons)
	assert.Equal(t, 3, l.State("iron_ore").Quantity)
}

func TestSellToPlayer_CommitsStockAndPressure(t *testing.T) {
	l := testLedger(registry.NeutralFaction(), legalState("iron_ore", 100))

	cons, err := l.SellToPlayer(ironOre(), 10, 55, entropy.Fixed(0.5))

	require.NoError(t, err)
	assert.Nil(t, cons)
	st := l.State("iron_ore")
	assert.Equal(t, 90, st.Quantity)
	assert.InDelta(t, 1.1, st.DemandLevel, 1e-9)
	assert.InDelta(t, 0.9, st.SupplyLevel, 1e-9)
	require.Len(t, l.Trades, 1)
	assert.Equal(t, DirectionSale, l.Trades[0].Direction)
}

func TestSellToPlayer_PressureCapped(t *testing.T) {
	l := testLedger(registry.NeutralFaction(), legalState("iron_ore", 500))

	_, err := l.SellToPlayer(ironOre(), 400, 55, entropy.Fixed(0.5))

	require.NoError(t, err)
	st := l.State("iron_ore")
	// 400 * 0.01 = 4.0 caps at 0.3 per side.
	assert.InDelta(t, 1.3, st.DemandLevel, 1e-9)
	assert.InDelta(t, 0.7, st.SupplyLevel, 1e-9)
}

func TestSellToPlayer_DetectionAbortsSale(t *testing.T) {
	c := ironOre()
	c.ID = "spice_dust"
	c.Legality = registry.LegalityIllegal
	fac := registry.NeutralFaction()
	fac.IllegalTolerance = 0.1
	l := testLedger(fac, legalState("spice_dust", 50))

	// Roll 0.0 is always below the detection chance.
	cons, err := l.SellToPlayer(c, 20, 600, entropy.Fixed(0.0))

	require.NoError(t, err)
	require.NotNil(t, cons)
	assert.True(t, cons.CargoSeized)
	assert.Equal(t, int64(60_000), cons.Fine) // 20 * 600 * 5.0
	assert.Equal(t, -25, cons.ReputationDelta)
	assert.True(t, cons.Bounty) // cargo value 12,000 clears the threshold
	assert.Equal(t, int64(6_000), cons.BountyAmount)
	// Aborted: no inventory or pressure effect.
	assert.Equal(t, 50, l.State("spice_dust").Quantity)
	assert.InDelta(t, 1.0, l.State("spice_dust").DemandLevel, 1e-9)
	assert.Empty(t, l.Trades)
}

func TestSellToPlayer_UndetectedIllegalSaleCommits(t *testing.T) {
	c := ironOre()
	c.ID = "spice_dust"
	c.Legality = registry.LegalityIllegal
	fac := registry.NeutralFaction()
	fac.IllegalTolerance = 0.9
	l := testLedger(fac, legalState("spice_dust", 50))

	// Chance for tolerance 0.9, qty 1: 0.1 * 1.02 ~ 0.102; roll 0.5 passes.
	cons, err := l.SellToPlayer(c, 1, 500, entropy.Fixed(0.5))

	require.NoError(t, err)
	assert.Nil(t, cons)
	assert.Equal(t, 49, l.State("spice_dust").Quantity)
}

func TestSellToPlayer_PrunesNonBaselineAtZero(t *testing.T) {
	l := testLedger(registry.NeutralFaction())
	c := ironOre()

	l.BuyFromPlayer(c, 5, 45) // creates a non-baseline entry
	require.NotNil(t, l.State("iron_ore"))
	assert.False(t, l.State("iron_ore").Baseline)

	_, err := l.SellToPlayer(c, 5, 55, entropy.Fixed(0.5))

	require.NoError(t, err)
	assert.Nil(t, l.State("iron_ore"), "drained non-baseline entry should be deleted")
	assert.NotContains(t, l.Held(), "iron_ore")
}

func TestSellToPlayer_KeepsBaselineAtZero(t *testing.T) {
	l := testLedger(registry.NeutralFaction(), legalState("iron_ore", 5))

	_, err := l.SellToPlayer(ironOre(), 5, 55, entropy.Fixed(0.5))

	require.NoError(t, err)
	require.NotNil(t, l.State("iron_ore"))
	assert.Equal(t, 0, l.State("iron_ore").Quantity)
}

func TestBuyFromPlayer_AlwaysAcceptsAndRaisesSupply(t *testing.T) {
	l := testLedger(registry.NeutralFaction(), legalState("iron_ore", 10))

	l.BuyFromPlayer(ironOre(), 20, 45)

	st := l.State("iron_ore")
	assert.Equal(t, 30, st.Quantity)
	assert.InDelta(t, 1.2, st.SupplyLevel, 1e-9)
}

func TestApplySupply_NegativeModelsRaid(t *testing.T) {
	l := testLedger(registry.NeutralFaction(), legalState("iron_ore", 50))

	l.ApplySupply("iron_ore", -30)

	st := l.State("iron_ore")
	assert.Equal(t, 20, st.Quantity)
	assert.InDelta(t, 0.7, st.SupplyLevel, 1e-9)
}

func TestApplySupply_StockNeverNegative(t *testing.T) {
	l := testLedger(registry.NeutralFaction(), legalState("iron_ore", 10))

	l.ApplySupply("iron_ore", -500)

	assert.Equal(t, 0, l.State("iron_ore").Quantity)
}

func TestApplyDemand_ShortfallBecomesPressure(t *testing.T) {
	l := testLedger(registry.NeutralFaction(), legalState("food_rations", 5))

	l.ApplyDemand("food_rations", 40)

	st := l.State("food_rations")
	assert.Equal(t, 0, st.Quantity)
	// Base pressure 0.3 (capped) plus shortfall pressure 0.3 (capped),
	// clamped to the level ceiling.
	assert.InDelta(t, 1.6, st.DemandLevel, 1e-9)
}

func TestApplyDemand_UnstockedIsNoop(t *testing.T) {
	l := testLedger(registry.NeutralFaction())

	l.ApplyDemand("iron_ore", 10)

	assert.Nil(t, l.State("iron_ore"))
}

func TestDecay_ContractsTowardBaseline(t *testing.T) {
	for _, level := range []float64{0.0, 0.3, 0.99, 1.0, 1.4, 2.0} {
		for _, rate := range []float64{0.05, 0.5, 0.9} {
			st := legalState("iron_ore", 10)
			st.SupplyLevel = level
			st.DemandLevel = level
			l := testLedger(registry.NeutralFaction(), st)

			before := math.Abs(level - 1.0)
			l.Decay(rate)
			after := math.Abs(l.State("iron_ore").SupplyLevel - 1.0)

			if before == 0 {
				assert.Equal(t, 0.0, after)
			} else {
				assert.Less(t, after, before, "level=%v rate=%v", level, rate)
			}
		}
	}
}

func TestDecay_DefaultRateStep(t *testing.T) {
	st := legalState("iron_ore", 10)
	st.SupplyLevel = 2.0
	l := testLedger(registry.NeutralFaction(), st)

	l.Decay(0.05)

	// 2.0 + (1.0 - 2.0) * 0.05 = 1.95.
	assert.InDelta(t, 1.95, l.State("iron_ore").SupplyLevel, 1e-9)
}

func TestDetectionChance_CappedForBigHauls(t *testing.T) {
	// tolerance 0.1, qty 20: 0.9 * 1.4 = 1.26, capped at 0.95.
	assert.InDelta(t, 0.95, DetectionChance(0.1, 20), 1e-9)
}

func TestDetectionChance_Monotonic(t *testing.T) {
	prev := 0.0
	for qty := 1; qty <= 200; qty++ {
		chance := DetectionChance(0.5, qty)
		assert.GreaterOrEqual(t, chance, prev)
		assert.LessOrEqual(t, chance, 0.95)
		prev = chance
	}

	prevTol := math.Inf(1)
	for tol := 0.0; tol <= 1.0; tol += 0.05 {
		chance := DetectionChance(tol, 10)
		assert.LessOrEqual(t, chance, prevTol)
		prevTol = chance
	}
}

func TestNewConsequence_RestrictedVsIllegal(t *testing.T) {
	restricted := ironOre()
	restricted.Legality = registry.LegalityRestricted
	illegal := ironOre()
	illegal.Legality = registry.LegalityIllegal

	r := NewConsequence(restricted, 2, 100) // value 200
	i := NewConsequence(illegal, 2, 100)

	assert.Equal(t, int64(400), r.Fine)
	assert.Equal(t, -10, r.ReputationDelta)
	assert.False(t, r.Bounty)
	assert.Equal(t, int64(1000), i.Fine)
	assert.Equal(t, -25, i.ReputationDelta)
}

func TestPriceHistory_Bounded(t *testing.T) {
	st := &CommodityState{CommodityID: "iron_ore"}
	for i := 0; i < 150; i++ {
		st.RecordPrice(int64(i))
	}

	assert.Len(t, st.PriceHistory, 100)
	assert.Equal(t, int64(50), st.PriceHistory[0])
	assert.Equal(t, int64(149), st.CurrentPrice)
}

func TestTradeHistory_Bounded(t *testing.T) {
	l := testLedger(registry.NeutralFaction(), legalState("iron_ore", 1000))
	for i := 0; i < 60; i++ {
		_, err := l.SellToPlayer(ironOre(), 1, 55, entropy.Fixed(0.5))
		require.NoError(t, err)
	}

	assert.Len(t, l.Trades, 50)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	st := legalState("iron_ore", 42)
	st.PriceHistory = []int64{50, 52, 55}
	st.CurrentPrice = 55
	empty := legalState("grain", 7) // no price history yet, as in older saves
	l := testLedger(registry.NeutralFaction(), st, empty)

	restored := FromSnapshot(l.Snapshot())

	assert.Equal(t, l.Snapshot(), restored.Snapshot())
	assert.Equal(t, []string{"grain", "iron_ore"}, restored.Held())
	assert.Empty(t, restored.State("grain").PriceHistory)
}
