// Package pgx wires pgx/v5-backed database clients into verdict.
//
// *pgconn.PgError already exposes the SQLState capability, so sqlState rules
// match pgx errors with no adaptation. Register adds named kinds for pgx
// error types so rulesets can also target them by kind, and the preset
// rulesets cover the usual transient failure codes.
package pgx

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/verdictlab/verdict/hierarchy"
)

// Kind names defined by Register.
const (
	KindPostgres = "pg"
	KindConnect  = "pg.connect"
)

// Register defines the pg kinds and binds pgconn's error types to them:
// *pgconn.PgError classifies as "pg" (under the sql builtin) and
// *pgconn.ConnectError as "pg.connect".
func Register(reg *hierarchy.Registry) error {
	pg, err := reg.Define(KindPostgres, reg.SQL())
	if err != nil {
		return err
	}
	connect, err := reg.Define(KindConnect, pg)
	if err != nil {
		return err
	}
	hierarchy.BindFor[*pgconn.PgError](reg, pg)
	hierarchy.BindFor[*pgconn.ConnectError](reg, connect)
	return nil
}

// Code returns the SQLSTATE of the first *pgconn.PgError in err's chain.
func Code(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}

// CockroachRules is a starting ruleset for CockroachDB clients: retry
// serialization conflicts (the code CockroachDB reports when a transaction
// must be tried again) and connection-level failures. Requires a registry
// that Register was called on.
func CockroachRules() map[string]string {
	return map[string]string{
		"sqlState." + pgerrcode.SerializationFailure: "RETRY",
		"sqlState." + pgerrcode.AdminShutdown:        "RETRY",
		"sqlState." + pgerrcode.CrashShutdown:        "RETRY",
		"sqlState." + pgerrcode.CannotConnectNow:     "RETRY",
		KindConnect:                                  "RETRY",
	}
}

// PostgresRules is a starting ruleset for PostgreSQL clients: retry
// serialization failures, deadlocks, and the connection exception class.
func PostgresRules() map[string]string {
	return map[string]string{
		"sqlState." + pgerrcode.SerializationFailure:                          "RETRY",
		"sqlState." + pgerrcode.DeadlockDetected:                              "RETRY",
		"sqlState." + pgerrcode.ConnectionException:                           "RETRY",
		"sqlState." + pgerrcode.ConnectionDoesNotExist:                        "RETRY",
		"sqlState." + pgerrcode.ConnectionFailure:                             "RETRY",
		"sqlState." + pgerrcode.SQLClientUnableToEstablishSQLConnection:       "RETRY",
		"sqlState." + pgerrcode.SQLServerRejectedEstablishmentOfSQLConnection: "RETRY",
		"sqlState." + pgerrcode.CannotConnectNow:                              "RETRY",
		"sqlState." + pgerrcode.TooManyConnections:                            "RETRY",
		KindConnect: "RETRY",
	}
}
