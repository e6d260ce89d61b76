// Package validation checks identifiers typed on the command line.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hance08/payledger/internal/model"
)

// ParseClientID validates a client id argument (0..65535).
func ParseClientID(val string) (model.ClientID, error) {
	id, err := parseID(val, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid client ID %q: %w", val, err)
	}
	return model.ClientID(id), nil
}

// ParseTxID validates a transaction id argument (0..4294967295).
func ParseTxID(val string) (model.TxID, error) {
	id, err := parseID(val, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction ID %q: %w", val, err)
	}
	return model.TxID(id), nil
}

func parseID(val string, bits int) (uint64, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0, errors.New("can't be empty")
	}
	if strings.HasPrefix(val, "-") {
		return 0, errors.New("must not be negative")
	}

	id, err := strconv.ParseUint(val, 10, bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("too large (max %d)", uint64(1)<<bits-1)
		}
		return 0, errors.New("must be a whole number")
	}
	return id, nil
}
