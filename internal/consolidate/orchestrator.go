package consolidate

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"codeatlas/internal/llm"
	"codeatlas/internal/types"
)

const (
	DefaultTargetCount = 50
	DefaultAITimeout   = 30 * time.Minute
)

// Options tunes one consolidation run.
type Options struct {
	// TargetCount is the component count the AI pass aims for; the AI pass
	// is skipped entirely when the rule-based pass already reaches it.
	TargetCount int
	Model       string
	Timeout     time.Duration
	SkipAI      bool
}

// Result reports the consolidated graph together with the intermediate
// rule-based graph, before/after counts, and wall-clock duration.
type Result struct {
	Graph          types.ComponentGraph
	RuleBasedGraph types.ComponentGraph
	OriginalCount  int
	AfterRuleBased int
	FinalCount     int
	Duration       time.Duration
}

// Consolidate runs the rule-based pass and, when an invoker is supplied and
// the graph is still above target, the AI clustering pass. AI transport
// failures, timeouts, panics, and unusable responses all fall back silently
// to the rule-based graph; every path terminates in a valid graph, so there
// is no error return.
func Consolidate(ctx context.Context, graph types.ComponentGraph, inv llm.Invoker, opts Options) Result {
	start := time.Now()
	if opts.TargetCount <= 0 {
		opts.TargetCount = DefaultTargetCount
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultAITimeout
	}

	rb := RuleBased(graph)
	final := rb

	switch {
	case opts.SkipAI:
		log.Printf("consolidate: AI pass disabled")
	case inv == nil:
		log.Printf("consolidate: no AI invoker configured, keeping rule-based graph")
	case len(rb.Components) <= opts.TargetCount:
		log.Printf("consolidate: %d components already within target %d", len(rb.Components), opts.TargetCount)
	default:
		if clustered, ok := runClusteringPass(ctx, rb, inv, opts); ok {
			final = clustered
		}
	}

	res := Result{
		Graph:          final,
		RuleBasedGraph: rb,
		OriginalCount:  len(graph.Components),
		AfterRuleBased: len(rb.Components),
		FinalCount:     len(final.Components),
		Duration:       time.Since(start),
	}
	log.Printf("consolidate: %d -> %d -> %d components in %s",
		res.OriginalCount, res.AfterRuleBased, res.FinalCount, res.Duration.Round(time.Millisecond))
	return res
}

// runClusteringPass performs the engine's only suspension point: one bounded
// AI call. The bool result reports whether a usable clustering was applied.
func runClusteringPass(ctx context.Context, rb types.ComponentGraph, inv llm.Invoker, opts Options) (types.ComponentGraph, bool) {
	prompt := BuildClusteringPrompt(rb.Components, rb.Project, opts.TargetCount)

	cctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	res, err := safeInvoke(cctx, inv, prompt, llm.InvokeOptions{Model: opts.Model, Timeout: opts.Timeout})
	if err != nil {
		log.Printf("consolidate: clustering call failed, falling back: %v", err)
		return rb, false
	}
	if !res.Success || strings.TrimSpace(res.Response) == "" {
		log.Printf("consolidate: clustering call returned no usable response, falling back (%s)", res.Error)
		return rb, false
	}

	clusters := ParseClusterResponse(res.Response, rb.Components)
	if len(clusters) == 0 {
		log.Printf("consolidate: clustering response carried no parsable clusters, falling back")
		return rb, false
	}
	return ApplyClusters(rb, clusters), true
}

// safeInvoke shields the orchestrator from a panicking invoker; a panic is
// treated the same as any other transport failure.
func safeInvoke(ctx context.Context, inv llm.Invoker, prompt string, opts llm.InvokeOptions) (res llm.InvokeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = llm.InvokeResult{}
			err = fmt.Errorf("invoker panic: %v", r)
		}
	}()
	return inv.Invoke(ctx, prompt, opts)
}
