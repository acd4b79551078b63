package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/artem13815/mockinterview/pkg/llm"
)

// Settings controls when the breaker opens and how long it stays open.
type Settings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

// ChatModel guards an llm.ChatModel with a circuit breaker. While open, calls fail
// immediately with gobreaker.ErrOpenState instead of waiting on a dead upstream.
type ChatModel struct {
	next llm.ChatModel
	cb   *gobreaker.CircuitBreaker[string]
}

func Wrap(next llm.ChatModel, s Settings, log *zap.Logger) *ChatModel {
	if log == nil {
		log = zap.NewNop()
	}
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	st := gobreaker.Settings{
		Name:        "llm",
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			// caller cancellations say nothing about upstream health
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	return &ChatModel{next: next, cb: gobreaker.NewCircuitBreaker[string](st)}
}

func (b *ChatModel) Complete(ctx context.Context, req llm.Request) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.next.Complete(ctx, req)
	})
}

// State reports the current breaker state ("closed", "open", "half-open").
func (b *ChatModel) State() string { return b.cb.State().String() }
