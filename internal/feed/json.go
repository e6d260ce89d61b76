package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hance08/payledger/internal/model"
)

// wireEvent is the JSON shape of one event on a message bus:
//
//	{"type":"deposit","client":1,"tx":7,"amount":"1.5"}
//
// amount may be a JSON string or number, and may be omitted or null for
// dispute, resolve and chargeback.
type wireEvent struct {
	Type   string          `json:"type"`
	Client json.Number     `json:"client"`
	Tx     json.Number     `json:"tx"`
	Amount json.RawMessage `json:"amount,omitempty"`
}

// DecodeJSON decodes a single JSON event.
func DecodeJSON(data []byte) (model.Event, error) {
	var w wireEvent
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	amount, err := rawAmount(w.Amount)
	if err != nil {
		return nil, err
	}
	return Decode(w.Type, w.Client.String(), w.Tx.String(), amount)
}

func rawAmount(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return "", fmt.Errorf("%w: amount %s: %v", ErrMalformedEvent, raw, err)
		}
		return s, nil
	}
	return string(raw), nil
}
