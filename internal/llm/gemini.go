package llm

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	genai "google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("llm: empty response from model")

// GeminiInvoker is a thin wrapper around the official genai client.
type GeminiInvoker struct {
	cli   *genai.Client
	model string
	rl    *rpsLimiter
}

func NewGeminiInvoker(ctx context.Context, model string) (*GeminiInvoker, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	// Optional RPS limiter via env: LLM_RPS/GEMINI_RPS and LLM_BURST/GEMINI_BURST
	rps := envFloat("LLM_RPS")
	if rps == 0 {
		rps = envFloat("GEMINI_RPS")
	}
	burst := envInt("LLM_BURST")
	if burst == 0 {
		burst = envInt("GEMINI_BURST")
	}
	return &GeminiInvoker{cli: cli, model: model, rl: newRPSLimiter(rps, burst)}, nil
}

func (g *GeminiInvoker) Name() string { return "Gemini:" + g.model }

func (g *GeminiInvoker) Close() error {
	if g.rl != nil {
		g.rl.Stop()
	}
	return nil
}

// Invoke sends the prompt and requests application/json output. Transport
// errors are retried with backoff; an exhausted retry budget surfaces as a
// failed result rather than an error so callers can fall back uniformly.
func (g *GeminiInvoker) Invoke(ctx context.Context, prompt string, opts InvokeOptions) (InvokeResult, error) {
	model := opts.Model
	if model == "" {
		model = g.model
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	log.Printf("llm: request (%s): %d bytes", model, len(prompt))

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		// Each API call consumes a limiter token.
		if err := g.rl.Acquire(ctx); err != nil {
			lastErr = err
			break
		}
		resp, err := g.cli.Models.GenerateContent(ctx, model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
			&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
		)
		if err != nil {
			lastErr = err
		} else if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = ErrEmptyResponse
		} else {
			return InvokeResult{Success: true, Response: resp.Candidates[0].Content.Parts[0].Text}, nil
		}
		if ctx.Err() != nil {
			break
		}
		time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = ErrEmptyResponse
	}
	return InvokeResult{Success: false, Error: lastErr.Error()}, nil
}

func envFloat(key string) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

func envInt(key string) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
