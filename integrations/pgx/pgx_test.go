package pgx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdictlab/verdict/classify"
	"github.com/verdictlab/verdict/hierarchy"
)

func TestRegister(t *testing.T) {
	reg := hierarchy.NewRegistry()
	require.NoError(t, Register(reg))

	pg, ok := reg.Resolve(KindPostgres)
	require.True(t, ok)
	assert.True(t, pg.Is(reg.SQL()))

	connect, ok := reg.Resolve(KindConnect)
	require.True(t, ok)
	assert.True(t, connect.Is(pg))

	assert.Same(t, pg, reg.KindOf(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
	assert.Same(t, connect, reg.KindOf(&pgconn.ConnectError{}))

	// Registering twice must fail on the duplicate kind.
	assert.ErrorIs(t, Register(reg), hierarchy.ErrKindExists)
}

func TestCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.DeadlockDetected}
	code, ok := Code(fmt.Errorf("query: %w", pgErr))
	require.True(t, ok)
	assert.Equal(t, pgerrcode.DeadlockDetected, code)

	_, ok = Code(errors.New("no pg error here"))
	assert.False(t, ok)
}

func TestCockroachRules_RetriesSerializationFailure(t *testing.T) {
	reg := hierarchy.NewRegistry()
	require.NoError(t, Register(reg))

	c, err := classify.New(reg, CockroachRules())
	require.NoError(t, err)

	retryErr := &pgconn.PgError{
		Code:    pgerrcode.SerializationFailure,
		Message: "restart transaction: TransactionRetryWithProtoRefreshError",
	}
	assert.True(t, c.ShouldRetry(fmt.Errorf("exec batch: %w", retryErr)))

	permanent := &pgconn.PgError{Code: pgerrcode.UniqueViolation, Message: "duplicate key"}
	assert.False(t, c.ShouldRetry(permanent))
}

func TestPostgresRules_RetriesTransientClasses(t *testing.T) {
	reg := hierarchy.NewRegistry()
	require.NoError(t, Register(reg))

	c, err := classify.New(reg, PostgresRules())
	require.NoError(t, err)

	for _, code := range []string{
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.ConnectionFailure,
		pgerrcode.TooManyConnections,
	} {
		assert.True(t, c.ShouldRetry(&pgconn.PgError{Code: code}), "code %s", code)
	}

	assert.False(t, c.ShouldRetry(&pgconn.PgError{Code: pgerrcode.SyntaxError}))
}
