// Command econsim runs the Starlanes galactic economy standalone: it stands
// in for the game's clock and gameplay layers, driving the market engine on
// a real-time ticker so the economy can be watched and tuned in isolation.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/starlanes/internal/config"
	"github.com/talgya/starlanes/internal/engine"
	"github.com/talgya/starlanes/internal/entropy"
	"github.com/talgya/starlanes/internal/market"
	"github.com/talgya/starlanes/internal/persistence"
)

// demoStations seed a small galaxy when no save exists.
var demoStations = []market.Params{
	{LocationID: "ceres_forge", FactionID: "terran_federation", ProfileID: "industrial", Population: 8.0, TechLevel: 6},
	{LocationID: "vesta_diggers", FactionID: "terran_federation", ProfileID: "mining", Population: 3.5, TechLevel: 3},
	{LocationID: "elysium_fields", FactionID: "free_traders", ProfileID: "agricultural", Population: 5.0, TechLevel: 2},
	{LocationID: "nocturne_reach", FactionID: "outer_syndicate", ProfileID: "frontier", Population: 1.2, TechLevel: 1},
	{LocationID: "aurora_spire", FactionID: "helios_combine", ProfileID: "luxury", Population: 4.0, TechLevel: 5},
	{LocationID: "daedalus_labs", FactionID: "helios_combine", ProfileID: "high_tech", Population: 2.5, TechLevel: 9},
	{LocationID: "tartarus_refinery", FactionID: "free_traders", ProfileID: "refining", Population: 3.0, TechLevel: 4},
}

func main() {
	var (
		seed       = flag.Int64("seed", 42, "simulation seed (same seed replays the same economy)")
		dbPath     = flag.String("db", "data/starlanes.db", "save database path")
		contentDir = flag.String("content", "content", "content directory (YAML files; defaults used if absent)")
		interval   = flag.Duration("interval", time.Second, "real time per simulated tick")
		saveEvery  = flag.Int("save-every", 60, "ticks between auto-saves")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starlanes galactic market simulation", "seed", *seed)

	reg := config.LoadRegistry(*contentDir)
	simCfg := config.LoadSimulation(*contentDir)
	if err := simCfg.Validate(); err != nil {
		slog.Warn("simulation config invalid, using defaults", "error", err)
		simCfg = config.DefaultSimulation()
	}

	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	eng := engine.New(reg, simCfg, entropy.New(*seed))
	eng.Subscribe(&logObserver{})

	if db.HasState() {
		snap, _, err := db.LoadEngine()
		if err != nil {
			slog.Error("failed to load saved state", "error", err)
			os.Exit(1)
		}
		eng.Restore(snap)
		slog.Info("economy restored", "tick", snap.Tick, "markets", len(snap.Ledgers))
	} else {
		slog.Info("no saved state found, seeding demo galaxy...")
		for _, p := range demoStations {
			eng.RegisterLocation(p)
		}
		if err := db.SaveEngine(eng.Snapshot()); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("\nStarlanes economy running: %d markets. (Ctrl+C to stop)\n", len(eng.Locations()))

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	running := true
	for running {
		select {
		case <-ticker.C:
			eng.TickOnce()
			if *saveEvery > 0 && eng.Tick()%uint64(*saveEvery) == 0 {
				if err := db.SaveEngine(eng.Snapshot()); err != nil {
					slog.Error("auto-save failed", "error", err)
				}
				report(eng)
			}
		case sig := <-sigCh:
			slog.Info("received signal, shutting down", "signal", sig)
			running = false
		}
	}

	slog.Info("final save...")
	if err := db.SaveEngine(eng.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Simulation stopped. Economy saved.")
}

// report logs a one-line economy summary per market.
func report(eng *engine.Engine) {
	for _, loc := range eng.Locations() {
		l := eng.Ledger(loc)
		var totalValue int64
		for _, id := range l.Held() {
			st := l.State(id)
			totalValue += st.CurrentPrice * int64(st.Quantity)
		}
		slog.Info("market report",
			"tick", eng.Tick(),
			"location", loc,
			"commodities", len(l.Held()),
			"inventory_value", humanize.Comma(totalValue)+" cr",
		)
	}
}

// logObserver writes engine notifications to the log. A real game would fan
// these out to the UI layer instead.
type logObserver struct{}

func (logObserver) HandleMarketEvent(ev engine.Event) {
	switch e := ev.(type) {
	case engine.TradeCompleted:
		slog.Info("trade completed",
			"location", e.LocationID,
			"commodity", e.CommodityID,
			"quantity", e.Quantity,
			"buying", e.Buying,
			"total", humanize.Comma(e.TotalValue)+" cr",
		)
	case engine.IllegalTradeDetected:
		slog.Info("illegal trade detected",
			"location", e.LocationID,
			"commodity", e.CommodityID,
			"fine", humanize.Comma(e.Consequence.Fine)+" cr",
			"bounty", e.Consequence.Bounty,
		)
	case engine.MarketAlert:
		slog.Info("market alert",
			"location", e.LocationID,
			"commodity", e.CommodityID,
			"now", e.Classification,
			"was", e.Previous,
		)
	case engine.EconomicEvent:
		// Already logged by the engine with full context.
	case engine.PriceChange:
		slog.Debug("price moved",
			"location", e.LocationID,
			"commodity", e.CommodityID,
			"before", e.Before,
			"after", e.After,
			"percent", fmt.Sprintf("%+.1f%%", e.Percent),
		)
	}
}
