package ledger

import "fmt"

// Outcome is what the engine did with one event. Everything other than
// OutcomeApplied is a business-rule rejection: the event left no trace.
type Outcome uint8

const (
	OutcomeApplied Outcome = iota + 1
	OutcomeDuplicateTx
	OutcomeInvalidAmount
	OutcomeUnknownAccount
	OutcomeAccountLocked
	OutcomeInsufficientFunds
	OutcomeUnknownTx
	OutcomeClientMismatch
	OutcomeInvalidStatus
	OutcomeOverflow
)

var outcomeNames = map[Outcome]string{
	OutcomeApplied:           "applied",
	OutcomeDuplicateTx:       "duplicate_tx",
	OutcomeInvalidAmount:     "invalid_amount",
	OutcomeUnknownAccount:    "unknown_account",
	OutcomeAccountLocked:     "account_locked",
	OutcomeInsufficientFunds: "insufficient_funds",
	OutcomeUnknownTx:         "unknown_tx",
	OutcomeClientMismatch:    "client_mismatch",
	OutcomeInvalidStatus:     "invalid_status",
	OutcomeOverflow:          "overflow",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// Rejected reports whether the event was dropped.
func (o Outcome) Rejected() bool { return o != OutcomeApplied }

// rejection aborts an atomic scope without being a failure. Apply turns it
// back into an Outcome after the scope has rolled back.
type rejection struct {
	outcome Outcome
}

func (r *rejection) Error() string { return "event rejected: " + r.outcome.String() }

func reject(o Outcome) error { return &rejection{outcome: o} }
