package llm

import (
	"context"
	"time"
)

// FakeInvoker returns a scripted result for offline use and tests.
type FakeInvoker struct {
	Result InvokeResult
	Err    error
	// Delay makes the invocation block, so timeout paths are testable.
	Delay time.Duration
	// Panic simulates an invoker implementation blowing up mid-call.
	Panic bool

	LastPrompt string
	Calls      int
}

func (f *FakeInvoker) Name() string { return "FakeLLM" }
func (f *FakeInvoker) Close() error { return nil }

func (f *FakeInvoker) Invoke(ctx context.Context, prompt string, opts InvokeOptions) (InvokeResult, error) {
	f.Calls++
	f.LastPrompt = prompt
	if f.Panic {
		panic("fake invoker failure")
	}
	if f.Delay > 0 {
		select {
		case <-ctx.Done():
			return InvokeResult{Success: false, Error: ctx.Err().Error()}, ctx.Err()
		case <-time.After(f.Delay):
		}
	}
	return f.Result, f.Err
}
