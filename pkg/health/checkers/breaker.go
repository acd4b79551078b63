package checkers

import (
	"context"
	"errors"
)

var ErrBreakerOpen = errors.New("circuit breaker open")

type stater interface {
	State() string
}

// BreakerChecker reports not ready while the completion breaker is open.
type BreakerChecker struct {
	b stater
}

func NewBreakerChecker(b stater) *BreakerChecker {
	return &BreakerChecker{b: b}
}

func (c *BreakerChecker) Name() string { return "llm" }

func (c *BreakerChecker) Check(context.Context) error {
	if c.b.State() == "open" {
		return ErrBreakerOpen
	}
	return nil
}
