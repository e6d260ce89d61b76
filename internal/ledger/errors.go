package ledger

import "errors"

var (
	ErrUnknownEvent = errors.New("unknown event type")
	ErrOrphanTx     = errors.New("transaction owner account missing")
)
