// Package feed turns raw input rows into typed ledger events.
//
// Every source is read once, in order. A row that cannot be decoded is a
// feed error: sources return it wrapped in ErrMalformedEvent and the run
// stops there.
package feed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/money"
)

var ErrMalformedEvent = errors.New("malformed event")

// Decode builds an event from its textual fields. amount may be empty for
// dispute, resolve and chargeback rows; it is ignored for them.
func Decode(kind, client, tx, amount string) (model.Event, error) {
	k, err := model.ParseKind(strings.TrimSpace(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	c, err := strconv.ParseUint(strings.TrimSpace(client), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: client %q: %v", ErrMalformedEvent, client, err)
	}

	id, err := strconv.ParseUint(strings.TrimSpace(tx), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: tx %q: %v", ErrMalformedEvent, tx, err)
	}

	var amt *money.Money
	if k == model.KindDeposit || k == model.KindWithdrawal {
		if strings.TrimSpace(amount) != "" {
			m, err := money.Parse(amount)
			if err != nil {
				return nil, fmt.Errorf("%w: tx %d: %v", ErrMalformedEvent, id, err)
			}
			amt = &m
		}
	}

	ev, err := model.NewEvent(k, model.TxID(id), model.ClientID(c), amt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	return ev, nil
}
