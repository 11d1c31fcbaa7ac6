package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/bogaguard/bogaguard/pkg/config"
	"github.com/bogaguard/bogaguard/pkg/engine"
	"github.com/bogaguard/bogaguard/pkg/gate"
	"github.com/bogaguard/bogaguard/pkg/patterns"
	"github.com/bogaguard/bogaguard/pkg/store"
	"github.com/bogaguard/bogaguard/pkg/telemetry"
)

const Version = "0.1.0"

// Guard holds the detection components.
// Persistence collaborators are optional and gracefully degrade if unavailable.
type Guard struct {
	engine    *engine.Engine
	gate      *gate.Gate
	counters  *telemetry.Counters
	persister *store.Persister
	snapshots store.SnapshotStore
	config    *config.Config
}

// NewGuard wires the engine, gate, and optional persistence.
func NewGuard(cfg *config.Config) *Guard {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	registry := patterns.Get()

	// Pattern catalog overlay - optional
	var catalog *patterns.Catalog
	if cfg.CatalogPath != "" {
		loaded, err := patterns.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			log.Printf("○ Pattern catalog disabled (load failed: %v)", err)
		} else {
			registry = patterns.NewRegistry()
			added, err := loaded.Apply(registry)
			if err != nil {
				log.Fatalf("[STARTUP] FATAL: invalid pattern catalog: %v", err)
			}
			catalog = loaded
			log.Printf("✓ Pattern catalog enabled (%d patterns added)", added)
		}
	}

	g := &Guard{
		engine:   engine.New(cfg, registry),
		counters: telemetry.New(),
		config:   cfg,
	}
	g.gate = gate.New(cfg, g.engine)

	if catalog != nil {
		g.engine.AddKeywords(catalog.Keywords.Negative, catalog.Keywords.Positive)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Redis snapshot store - optional
	if cfg.RedisAddr != "" {
		rs, err := store.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SnapshotKey)
		if err != nil {
			log.Printf("○ Snapshot persistence disabled (redis: %v)", err)
		} else {
			g.snapshots = rs
			log.Println("✓ Snapshot persistence enabled (redis)")

			if snap, found, err := rs.Load(ctx); err != nil {
				log.Printf("[WARN] snapshot load failed, starting from seeds: %v", err)
			} else if found {
				g.engine.Hydrate(snap)
				stats := g.engine.LearningStats()
				log.Printf("✓ Learned state hydrated (%d keywords, %d patterns)",
					stats.NegativeKeywords, stats.LearnedPatterns)
			}
		}
	} else {
		log.Println("○ Snapshot persistence disabled (no redis address)")
	}

	// Postgres history archive - optional
	var archive store.HistoryAppender
	if cfg.PostgresDSN != "" {
		ha, err := store.NewHistoryArchive(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Printf("○ History archive disabled (postgres: %v)", err)
		} else {
			archive = ha
			log.Println("✓ History archive enabled (postgres)")
		}
	} else {
		log.Println("○ History archive disabled (no postgres DSN)")
	}

	if g.snapshots != nil || archive != nil {
		g.persister = store.NewPersister(g.snapshots, archive, 4)
		g.engine.SetSnapshotSink(g.persister.Sink())
	}

	return g
}

// Scan evaluates one input and counts it.
func (g *Guard) Scan(text string, kind engine.Kind) engine.Verdict {
	v := g.engine.Evaluate(text, kind)
	g.counters.RecordScan(v.Score > g.config.WarnThreshold)
	return v
}

func main() {
	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		addr := config.NewDefaultConfig().ListenAddr
		if len(os.Args) > 2 {
			addr = ":" + strings.TrimPrefix(os.Args[2], ":")
		}
		runHTTPServer(addr)
	case "scan":
		if len(os.Args) < 3 {
			fmt.Println("Usage: bogaguard scan <url>")
			os.Exit(1)
		}
		runCLIScan(strings.Join(os.Args[2:], " "))
	case "version":
		fmt.Printf("BogaGuard v%s\n", Version)
		fmt.Println("Threat Scoring Gateway - ASEAN link protection")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("BogaGuard v%s - Threat Scoring Gateway\n\n", Version)
	fmt.Println("Usage:")
	fmt.Println("  bogaguard serve [port]   Start HTTP gateway (default: 8080)")
	fmt.Println("  bogaguard scan <url>     Score a URL from the command line")
	fmt.Println("  bogaguard version        Show version")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  bogaguard serve 8080")
	fmt.Println("  bogaguard scan \"http://free-prize-survey.tk/claim\"")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  BOGAGUARD_BLOCK_THRESHOLD  Score above this blocks (default: 0.6)")
	fmt.Println("  BOGAGUARD_WARN_THRESHOLD   Score above this warns (default: 0.3)")
	fmt.Println("  BOGAGUARD_REDIS_ADDR       Redis address for snapshot persistence")
	fmt.Println("  BOGAGUARD_POSTGRES_DSN     Postgres DSN for the history archive")
	fmt.Println("  BOGAGUARD_CATALOG          YAML pattern catalog overlay path")
}

// ============================================================================
// HTTP Server Mode
// ============================================================================

func runHTTPServer(addr string) {
	cfg := config.NewDefaultConfig()
	cfg.MustValidate()
	guard := NewGuard(cfg)

	app := fiber.New(fiber.Config{
		AppName: "BogaGuard",
	})

	// Health check
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "version": Version})
	})

	// Score a URL or a page content blob.
	// kind: "url" (default) | "content"
	app.Post("/v1/scan", func(c fiber.Ctx) error {
		var req struct {
			Text string `json:"text"`
			Kind string `json:"kind"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.Text == "" {
			return c.Status(400).JSON(fiber.Map{"error": "text field is required"})
		}

		kind := engine.KindURL
		switch req.Kind {
		case "", "url":
		case "content":
			kind = engine.KindContent
		default:
			return c.Status(400).JSON(fiber.Map{"error": "invalid kind, must be: url or content"})
		}

		return c.JSON(guard.Scan(req.Text, kind))
	})

	// Feed a verdict back into the learning loop. Learning never happens
	// implicitly on scan; this endpoint is the only trigger.
	app.Post("/v1/learn", func(c fiber.Ctx) error {
		var req struct {
			Text    string         `json:"text"`
			Verdict engine.Verdict `json:"verdict"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.Text == "" {
			return c.Status(400).JSON(fiber.Map{"error": "text field is required"})
		}

		guard.engine.Learn(req.Text, req.Verdict)
		guard.counters.RecordLearn()
		return c.JSON(fiber.Map{"status": "learned", "stats": guard.engine.LearningStats()})
	})

	// Screen a navigation through the redirect gate
	app.Post("/v1/gate", func(c fiber.Ctx) error {
		var req struct {
			URL string `json:"url"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.URL == "" {
			return c.Status(400).JSON(fiber.Map{"error": "url field is required"})
		}

		d := guard.gate.Screen(req.URL)
		guard.counters.RecordScan(d.Verdict.Score > cfg.WarnThreshold)
		if d.Action == gate.ActionBlock {
			guard.counters.RecordBlock()
		}
		return c.JSON(fiber.Map{
			"decision":         d,
			"suspicious_chain": guard.gate.DetectSuspiciousChain(),
		})
	})

	// Answer an open gate decision
	app.Post("/v1/gate/resolve", func(c fiber.Ctx) error {
		var req struct {
			ID     string `json:"id"`
			Action string `json:"action"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}

		final, err := guard.gate.Resolve(req.ID, gate.Action(req.Action))
		if err != nil {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if final == gate.ActionBlock {
			guard.counters.RecordBlock()
		}
		return c.JSON(fiber.Map{"id": req.ID, "action": final})
	})

	// Allowlist a hostname
	app.Post("/v1/allowlist", func(c fiber.Ctx) error {
		var req struct {
			Host string `json:"host"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.Host == "" {
			return c.Status(400).JSON(fiber.Map{"error": "host field is required"})
		}

		guard.gate.AllowHost(req.Host)
		return c.JSON(fiber.Map{"status": "allowed", "host": req.Host})
	})

	// Activity counters and learning stats
	app.Get("/v1/stats", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"activity": guard.counters.Snapshot(),
			"learning": guard.engine.LearningStats(),
			"blocked":  guard.gate.BlockedCount(),
		})
	})

	log.Printf("BogaGuard gateway starting on %s", addr)
	log.Printf("Endpoints:")
	log.Printf("  GET  /health           - Health check")
	log.Printf("  POST /v1/scan          - Score a URL or content blob")
	log.Printf("  POST /v1/learn         - Feed a verdict back for learning")
	log.Printf("  POST /v1/gate          - Screen a navigation")
	log.Printf("  POST /v1/gate/resolve  - Answer an open gate decision")
	log.Printf("  POST /v1/allowlist     - Allowlist a hostname")
	log.Printf("  GET  /v1/stats         - Activity and learning stats")

	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}

// ============================================================================
// CLI Mode
// ============================================================================

func runCLIScan(url string) {
	cfg := config.NewDefaultConfig()
	guard := NewGuard(cfg)

	verdict := guard.Scan(url, engine.KindURL)

	output, _ := json.MarshalIndent(verdict, "", "  ")
	fmt.Println(string(output))
}
