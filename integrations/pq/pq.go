// Package pq wires lib/pq-backed database clients into verdict.
//
// *pq.Error implements SQLState(), so sqlState rules match lib/pq errors
// directly; Register additionally gives them a named kind to target. The
// pq kind sits below the sql builtin, so a rule targeting pq is more
// specific than any sqlState rule and takes precedence over it.
package pq

import (
	"errors"

	libpq "github.com/lib/pq"

	"github.com/verdictlab/verdict/hierarchy"
)

// KindPq is the kind Register binds *pq.Error to.
const KindPq = "pq"

// Register defines the pq kind under the sql builtin and binds *pq.Error to it.
func Register(reg *hierarchy.Registry) error {
	k, err := reg.Define(KindPq, reg.SQL())
	if err != nil {
		return err
	}
	hierarchy.BindFor[*libpq.Error](reg, k)
	return nil
}

// Code returns the SQLSTATE of the first *pq.Error in err's chain.
func Code(err error) (string, bool) {
	var pqErr *libpq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}
	return "", false
}
