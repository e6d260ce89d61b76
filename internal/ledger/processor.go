package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/hance08/payledger/internal/model"
)

// Source yields events in feed order and returns io.EOF once exhausted.
// It is read once; there is no rewind.
type Source interface {
	Next(ctx context.Context) (model.Event, error)
}

// Summary counts what a run did with the feed.
type Summary struct {
	Events   int
	Applied  int
	Rejected map[Outcome]int
	Elapsed  time.Duration
}

func (s Summary) RejectedTotal() int {
	n := 0
	for _, c := range s.Rejected {
		n += c
	}
	return n
}

// Reasons lists rejection reasons in a stable order.
func (s Summary) Reasons() []Outcome {
	reasons := make([]Outcome, 0, len(s.Rejected))
	for o := range s.Rejected {
		reasons = append(reasons, o)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}

// Processor feeds a Source through the Engine one event at a time.
type Processor struct {
	engine *Engine
	logger *zap.Logger
}

func NewProcessor(engine *Engine, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{engine: engine, logger: logger.Named("processor")}
}

// Run consumes src until io.EOF. A feed error or a store error stops the run
// at once; events already committed stay committed.
func (p *Processor) Run(ctx context.Context, src Source) (Summary, error) {
	start := time.Now()
	summary := Summary{Rejected: make(map[Outcome]int)}

	for {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, fmt.Errorf("stopped after event #%d: %w", summary.Events, err)
		}

		ev, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			summary.Elapsed = time.Since(start)
			return summary, fmt.Errorf("read event #%d: %w", summary.Events+1, err)
		}
		summary.Events++

		outcome, err := p.engine.Apply(ctx, ev)
		if err != nil {
			summary.Elapsed = time.Since(start)
			return summary, fmt.Errorf("apply event #%d: %w", summary.Events, err)
		}

		if outcome.Rejected() {
			summary.Rejected[outcome]++
		} else {
			summary.Applied++
		}
	}

	summary.Elapsed = time.Since(start)

	fields := []zap.Field{
		zap.Int("events", summary.Events),
		zap.Int("applied", summary.Applied),
		zap.Int("rejected", summary.RejectedTotal()),
		zap.Duration("elapsed", summary.Elapsed),
	}
	for _, o := range summary.Reasons() {
		fields = append(fields, zap.Int("rejected_"+o.String(), summary.Rejected[o]))
	}
	p.logger.Info("feed processed", fields...)

	return summary, nil
}

// SliceSource replays a fixed list of events. Handy for tests and tools.
type SliceSource struct {
	events []model.Event
	pos    int
}

func NewSliceSource(events ...model.Event) *SliceSource {
	return &SliceSource{events: events}
}

func (s *SliceSource) Next(context.Context) (model.Event, error) {
	if s.pos >= len(s.events) {
		return nil, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}
