package feed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hance08/payledger/internal/model"
)

// Columns a CSV feed must carry. amount may be absent from the header only
// if the file never contains deposits or withdrawals.
const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

// CSVSource streams events from a CSV document with a header row.
// Columns are located by name, so their order does not matter.
type CSVSource struct {
	r    *csv.Reader
	cols map[string]int
}

func NewCSVSource(r io.Reader) *CSVSource {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &CSVSource{r: cr}
}

func (s *CSVSource) Next(_ context.Context) (model.Event, error) {
	if s.cols == nil {
		if err := s.readHeader(); err != nil {
			return nil, err
		}
	}

	rec, err := s.r.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	line, _ := s.r.FieldPos(0)
	ev, err := Decode(
		s.field(rec, ColumnType),
		s.field(rec, ColumnClient),
		s.field(rec, ColumnTx),
		s.field(rec, ColumnAmount),
	)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}
	return ev, nil
}

func (s *CSVSource) readHeader() error {
	header, err := s.r.Read()
	if errors.Is(err, io.EOF) {
		// An empty document is an empty feed.
		s.cols = map[string]int{}
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("%w: header: %v", ErrMalformedEvent, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{ColumnType, ColumnClient, ColumnTx} {
		if _, ok := cols[required]; !ok {
			return fmt.Errorf("%w: header lacks %q column", ErrMalformedEvent, required)
		}
	}

	s.cols = cols
	return nil
}

func (s *CSVSource) field(rec []string, name string) string {
	i, ok := s.cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
