package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/starlanes/internal/market"
)

// ResultCode classifies a trade outcome. Failed codes are expected gameplay
// outcomes, not engine errors; callers must check the result.
type ResultCode string

const (
	CodeOK                ResultCode = "ok"
	CodeNoMarket          ResultCode = "no_market"
	CodeUnknownCommodity  ResultCode = "unknown_commodity"
	CodeInvalidQuantity   ResultCode = "invalid_quantity"
	CodeInsufficientStock ResultCode = "insufficient_stock"
	CodeTradeDetected     ResultCode = "trade_detected"
)

// TradeRequest describes one player- or NPC-initiated trade. Buying means
// the trader buys from the location (the location sells).
type TradeRequest struct {
	LocationID  string
	CommodityID string
	Quantity    int
	Buying      bool
}

// TransactionResult reports a trade's outcome. Transient: returned to the
// caller, never stored by the engine.
type TransactionResult struct {
	ID          uuid.UUID
	Success     bool
	Code        ResultCode
	UnitPrice   int64
	TotalValue  int64
	Consequence *market.Consequence // set when Code is CodeTradeDetected
}

// ExecuteTrade validates, prices, and commits a trade. A trade either fully
// updates inventory, supply/demand, and price history, or has no observable
// effect. Committed trades trigger a price refresh for the location.
func (e *Engine) ExecuteTrade(req TradeRequest) TransactionResult {
	res := TransactionResult{ID: uuid.New()}

	l := e.ledgers[req.LocationID]
	if l == nil {
		slog.Error("trade against unregistered location", "location", req.LocationID)
		res.Code = CodeNoMarket
		return res
	}
	c, ok := e.reg.Commodity(req.CommodityID)
	if !ok {
		slog.Error("trade for unknown commodity", "commodity", req.CommodityID)
		res.Code = CodeUnknownCommodity
		return res
	}
	if req.Quantity < 1 {
		res.Code = CodeInvalidQuantity
		return res
	}

	prof, _ := e.reg.Profile(l.ProfileID)
	unit := market.Quote(c, prof, l.Market, l.State(req.CommodityID), req.Buying, req.Quantity, e.rng)
	res.UnitPrice = unit
	res.TotalValue = unit * int64(req.Quantity)

	if req.Buying {
		cons, err := l.SellToPlayer(c, req.Quantity, unit, e.rng)
		if err != nil {
			res.Code = CodeInsufficientStock
			return res
		}
		if cons != nil {
			res.Code = CodeTradeDetected
			res.Consequence = cons
			e.emit(IllegalTradeDetected{
				LocationID:  l.LocationID,
				CommodityID: c.ID,
				Quantity:    req.Quantity,
				Consequence: *cons,
			})
			return res
		}
	} else {
		l.BuyFromPlayer(c, req.Quantity, unit)
	}

	res.Success = true
	res.Code = CodeOK
	e.refreshPrices(l)
	e.emit(TradeCompleted{
		TransactionID: res.ID,
		LocationID:    l.LocationID,
		CommodityID:   c.ID,
		Quantity:      req.Quantity,
		Buying:        req.Buying,
		UnitPrice:     unit,
		TotalValue:    res.TotalValue,
	})
	return res
}
