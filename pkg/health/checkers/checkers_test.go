package checkers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlitestore "github.com/artem13815/mockinterview/pkg/storage/sqlite"
)

type fixedState string

func (s fixedState) State() string { return string(s) }

func TestBreakerChecker(t *testing.T) {
	assert.NoError(t, NewBreakerChecker(fixedState("closed")).Check(context.Background()))
	assert.NoError(t, NewBreakerChecker(fixedState("half-open")).Check(context.Background()))
	assert.ErrorIs(t, NewBreakerChecker(fixedState("open")).Check(context.Background()), ErrBreakerOpen)
}

func TestPingCheckerOnSQLite(t *testing.T) {
	db, err := sqlitestore.Open(context.Background(), filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)

	c := NewPingChecker("sqlite", db.PingContext)
	assert.Equal(t, "sqlite", c.Name())
	assert.NoError(t, c.Check(context.Background()))

	require.NoError(t, db.Close())
	assert.Error(t, c.Check(context.Background()))
}

func TestPingCheckerBoundsSlowPing(t *testing.T) {
	c := NewPingChecker("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	start := time.Now()
	assert.ErrorIs(t, c.Check(context.Background()), context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 3*time.Second)
}
