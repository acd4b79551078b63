package metrics

import (
	"context"
	"time"

	"github.com/artem13815/mockinterview/pkg/llm"
)

type instrumented struct {
	next llm.ChatModel
	m    *Metrics
}

// InstrumentChatModel records count and latency of every completion call.
func InstrumentChatModel(next llm.ChatModel, m *Metrics) llm.ChatModel {
	return &instrumented{next: next, m: m}
}

func (i *instrumented) Complete(ctx context.Context, req llm.Request) (string, error) {
	start := time.Now()
	out, err := i.next.Complete(ctx, req)
	op := req.Operation
	if op == "" {
		op = "unknown"
	}
	i.m.ObserveCompletion(op, err, time.Since(start))
	return out, err
}
