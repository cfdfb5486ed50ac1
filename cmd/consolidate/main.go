package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	graphcache "codeatlas/internal/cache/graph"
	"codeatlas/internal/config"
	"codeatlas/internal/consolidate"
	"codeatlas/internal/llm"
	graphrepo "codeatlas/internal/repository/graph"
	"codeatlas/internal/types"
)

func main() {
	graphPath := flag.String("graph", "", "path to the discovery-phase component graph JSON")
	project := flag.String("project", "", "project id for snapshot persistence (defaults to the graph's project field)")
	outDir := flag.String("out", "out", "output directory")
	target := flag.Int("target", 0, "target component count (overrides CONSOLIDATE_TARGET)")
	model := flag.String("model", "", "model id (overrides CONSOLIDATE_MODEL)")
	timeoutMin := flag.Int("timeout", 0, "clustering call timeout in minutes (overrides CONSOLIDATE_TIMEOUT_MINUTES)")
	skipAI := flag.Bool("skip-ai", false, "skip the AI clustering pass")
	flag.Parse()
	if *graphPath == "" {
		log.Fatal("--graph is required")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	cfg := config.Load()
	if *target > 0 {
		cfg.TargetCount = *target
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *timeoutMin > 0 {
		cfg.AITimeout = time.Duration(*timeoutMin) * time.Minute
	}
	if *skipAI {
		cfg.SkipAI = true
	}

	var graph types.ComponentGraph
	readJSON(*graphPath, &graph)
	if *project == "" {
		*project = graph.Project
	}
	log.Printf("loaded graph with %d components for project %q", len(graph.Components), graph.Project)

	ctx := context.Background()

	var invoker llm.Invoker
	if !cfg.SkipAI {
		if os.Getenv("GEMINI_API_KEY") == "" {
			log.Printf("GEMINI_API_KEY is not set, running rule-based pass only")
		} else {
			cli, err := llm.NewGeminiInvoker(ctx, cfg.Model)
			if err != nil {
				log.Fatal(err)
			}
			defer cli.Close()
			invoker = cli
		}
	}

	store := openSnapshotStore(cfg.Snapshot)
	if store != nil && *project != "" {
		if err := store.Put(ctx, *project, "raw", graph); err != nil {
			log.Printf("snapshot raw: %v", err)
		}
	}

	res := consolidate.Consolidate(ctx, graph, invoker, consolidate.Options{
		TargetCount: cfg.TargetCount,
		Model:       cfg.Model,
		Timeout:     cfg.AITimeout,
		SkipAI:      cfg.SkipAI,
	})

	if store != nil && *project != "" {
		if err := store.Put(ctx, *project, "rulebased", res.RuleBasedGraph); err != nil {
			log.Printf("snapshot rulebased: %v", err)
		}
		if err := store.Put(ctx, *project, "final", res.Graph); err != nil {
			log.Printf("snapshot final: %v", err)
		}
	}

	writeJSON(*outDir, "consolidated.json", res.Graph)
	writeJSON(*outDir, "result.json", map[string]any{
		"original_count":   res.OriginalCount,
		"after_rule_based": res.AfterRuleBased,
		"final_count":      res.FinalCount,
		"duration_ms":      res.Duration.Milliseconds(),
	})
	log.Println("consolidation completed →", *outDir)
}

// openSnapshotStore picks the configured backend: Postgres when a DSN is
// set, else S3 when an endpoint is set, else none. The chosen origin is
// wrapped in the read-through cache.
func openSnapshotStore(cfg config.SnapshotConfig) graphrepo.Store {
	var origin graphrepo.Store
	switch {
	case cfg.PostgresDSN != "":
		pg, err := graphrepo.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			log.Printf("snapshot store (postgres) unavailable: %v", err)
			return nil
		}
		origin = pg
	case cfg.S3Endpoint != "":
		s3, err := graphrepo.NewS3Store(graphrepo.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			log.Printf("snapshot store (s3) unavailable: %v", err)
			return nil
		}
		origin = s3
	default:
		return nil
	}
	cached, err := graphcache.NewCachedStore(origin, cfg.CacheMaxEntries)
	if err != nil {
		return origin
	}
	return cached
}

func writeJSON(dir, name string, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", name, err)
	}
}

func readJSON(path string, v any) {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		log.Fatalf("failed to unmarshal %s: %v", path, err)
	}
}
