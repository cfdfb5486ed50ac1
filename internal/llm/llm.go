package llm

import (
	"context"
	"time"
)

// InvokeOptions tunes a single invocation. Zero values mean "use the
// client's defaults".
type InvokeOptions struct {
	Model   string
	Timeout time.Duration
}

// InvokeResult is the invoker wire contract: Success may be true with an
// empty Response, which callers must treat as failure.
type InvokeResult struct {
	Success  bool
	Response string
	Error    string
}

// Invoker is the single external collaborator of the consolidation engine:
// one blocking, cancellable text-in/text-out AI call.
type Invoker interface {
	Name() string
	Invoke(ctx context.Context, prompt string, opts InvokeOptions) (InvokeResult, error)
	Close() error
}
