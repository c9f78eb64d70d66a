// Package applog provides helpers for application logs of the swap and ledger
// transactions.
package applog

import (
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Filter returns copy of the application log with only those notifications
// which were emitted by the given contract. Execution list is kept as is, so
// execution indices in parsing errors stay the same. Nil log is returned as
// is.
//
// Event parsers of the contract bindings select notifications by name only,
// while a single swap transaction carries Transfer and Approval notifications
// of both ledgers. Filter should be applied before parsing such logs.
func Filter(log *result.ApplicationLog, contract util.Uint160) *result.ApplicationLog {
	if log == nil {
		return nil
	}

	res := *log
	res.Executions = make([]state.Execution, len(log.Executions))

	for i, ex := range log.Executions {
		res.Executions[i] = ex
		res.Executions[i].Events = nil

		for _, e := range ex.Events {
			if e.ScriptHash.Equals(contract) {
				res.Executions[i].Events = append(res.Executions[i].Events, e)
			}
		}
	}

	return &res
}
