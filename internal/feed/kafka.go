package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/hance08/payledger/internal/model"
)

// KafkaConfig selects the single partition a KafkaSource replays. One
// partition keeps the total event order.
type KafkaConfig struct {
	Brokers     []string
	Topic       string
	Partition   int
	IdleTimeout time.Duration
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Lag() int64
	Close() error
}

// KafkaSource reads JSON events from one topic partition, starting at the
// first retained offset. The feed ends once the reader has caught up with
// the partition's high-water mark, or when nothing arrives for IdleTimeout.
type KafkaSource struct {
	reader messageReader
	idle   time.Duration
	done   bool
}

func NewKafkaSource(cfg KafkaConfig) (*KafkaSource, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: no topic configured")
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   cfg.Brokers,
		Topic:     cfg.Topic,
		Partition: cfg.Partition,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	return newKafkaSource(r, cfg.IdleTimeout), nil
}

func newKafkaSource(r messageReader, idle time.Duration) *KafkaSource {
	return &KafkaSource{reader: r, idle: idle}
}

func (s *KafkaSource) Next(ctx context.Context) (model.Event, error) {
	if s.done {
		return nil, io.EOF
	}

	readCtx := ctx
	if s.idle > 0 {
		var cancel context.CancelFunc
		readCtx, cancel = context.WithTimeout(ctx, s.idle)
		defer cancel()
	}

	msg, err := s.reader.ReadMessage(readCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			s.done = true
			return nil, io.EOF
		}
		return nil, fmt.Errorf("kafka: read message: %w", err)
	}
	if s.reader.Lag() == 0 {
		s.done = true
	}

	ev, err := DecodeJSON(msg.Value)
	if err != nil {
		return nil, fmt.Errorf("partition %d offset %d: %w", msg.Partition, msg.Offset, err)
	}
	return ev, nil
}

func (s *KafkaSource) Close() error {
	return s.reader.Close()
}
