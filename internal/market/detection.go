package market

import "github.com/talgya/starlanes/internal/registry"

// Detection tuning. The chance cap keeps contraband trade risky but never
// certain to fail.
const (
	detectionCap      = 0.95
	fineRestricted    = 2.0
	fineIllegal       = 5.0
	repLossRestricted = -10
	repLossIllegal    = -25
	bountyThreshold   = 10_000
	bountyFraction    = 0.5
)

// Consequence is the structured payload attached to a detected illegal
// trade: what it costs the trader beyond the aborted sale.
type Consequence struct {
	Fine            int64 `json:"fine"`
	ReputationDelta int   `json:"reputation_delta"`
	CargoSeized     bool  `json:"cargo_seized"`
	Bounty          bool  `json:"bounty"`
	BountyAmount    int64 `json:"bounty_amount"`
}

// DetectionChance returns the probability a restricted/illegal sale of qty
// units is detected under the given faction tolerance. Non-decreasing in
// quantity, non-increasing in tolerance, capped at 0.95.
func DetectionChance(tolerance float64, qty int) float64 {
	chance := (1.0 - tolerance) * (1.0 + 0.02*float64(qty))
	return clamp(chance, 0, detectionCap)
}

// NewConsequence builds the penalty for a detected sale of qty units at
// unitPrice. Fines scale with cargo value and legality tier; big hauls
// additionally draw a bounty.
func NewConsequence(c *registry.Commodity, qty int, unitPrice int64) Consequence {
	value := unitPrice * int64(qty)
	cons := Consequence{CargoSeized: true}

	switch c.Legality {
	case registry.LegalityIllegal:
		cons.Fine = int64(float64(value) * fineIllegal)
		cons.ReputationDelta = repLossIllegal
	default: // restricted
		cons.Fine = int64(float64(value) * fineRestricted)
		cons.ReputationDelta = repLossRestricted
	}

	if value > bountyThreshold {
		cons.Bounty = true
		cons.BountyAmount = int64(float64(value) * bountyFraction)
	}
	return cons
}
