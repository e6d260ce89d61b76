package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hance08/payledger/internal/app"
	"github.com/hance08/payledger/internal/feed"
)

type consumeFlags struct {
	outputFlags
	Brokers   []string
	Topic     string
	Partition int
}

type consumeRunner struct {
	app   *app.App
	flags *consumeFlags
}

func NewConsumeCmd(provide app.Provider) *cobra.Command {
	flags := &consumeFlags{}

	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Apply JSON events from a Kafka partition and print the final accounts",
		Long: `Replay one Kafka topic partition from its first retained offset. Each
message holds one JSON event, e.g. {"type":"deposit","client":1,"tx":1,"amount":"1.5"}.

The run ends once the partition is drained or no message arrives within
kafka.idle_timeout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &consumeRunner{
				app:   provide(),
				flags: flags,
			}
			return runner.Run(cmd)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&flags.Brokers, "brokers", nil, "Kafka brokers; defaults to kafka.brokers")
	cmd.Flags().StringVar(&flags.Topic, "topic", "", "topic to read; defaults to kafka.topic")
	cmd.Flags().IntVar(&flags.Partition, "partition", -1, "partition to read; defaults to kafka.partition")

	return cmd
}

func (r *consumeRunner) Run(cmd *cobra.Command) error {
	kc := r.app.Config.Kafka
	cfg := feed.KafkaConfig{
		Brokers:     kc.Brokers,
		Topic:       kc.Topic,
		Partition:   kc.Partition,
		IdleTimeout: kc.IdleTimeout,
	}
	if len(r.flags.Brokers) > 0 {
		cfg.Brokers = r.flags.Brokers
	}
	if r.flags.Topic != "" {
		cfg.Topic = r.flags.Topic
	}
	if r.flags.Partition >= 0 {
		cfg.Partition = r.flags.Partition
	}

	src, err := feed.NewKafkaSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	return runFeed(cmd, r.app, src, &r.flags.outputFlags, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
