package checkers

import (
	"context"
	"time"
)

const pingTimeout = time.Second

// PingFunc matches (*pgxpool.Pool).Ping and (*sql.DB).PingContext.
type PingFunc func(ctx context.Context) error

// PingChecker reports a store as healthy when its ping answers within a second.
type PingChecker struct {
	name string
	ping PingFunc
}

func NewPingChecker(name string, ping PingFunc) *PingChecker {
	return &PingChecker{name: name, ping: ping}
}

func (c *PingChecker) Name() string { return c.name }

func (c *PingChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return c.ping(ctx)
}
