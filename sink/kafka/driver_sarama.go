package kafka

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/IBM/sarama"

	"tabular/internal/logging"
	"tabular/internal/table"
	"tabular/sink"
)

type Config struct {
	Brokers     []string `yaml:"brokers"`
	Topic       string   `yaml:"topic"`
	Key         string   `yaml:"key"`           // optional message key
	Acks        int16    `yaml:"required_acks"` // 0,1,-1
	Version     string   `yaml:"version"`       // e.g. "3.6.0"
	Compression string   `yaml:"compression"`   // none|gzip|snappy|lz4|zstd
}

var newProducer = sarama.NewAsyncProducer

var codecs = map[string]sarama.CompressionCodec{
	"":       sarama.CompressionNone,
	"none":   sarama.CompressionNone,
	"gzip":   sarama.CompressionGZIP,
	"snappy": sarama.CompressionSnappy,
	"lz4":    sarama.CompressionLZ4,
	"zstd":   sarama.CompressionZSTD,
}

// driver publishes each table as one JSON message.
type driver struct {
	cfg Config
	p   sarama.AsyncProducer

	failed  atomic.Int64
	drained sync.WaitGroup
	once    sync.Once
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-sink: want Config, got %T", c)
	}
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return fmt.Errorf("kafka-sink: brokers and topic are required")
	}
	d.cfg = cfg

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Acks)
	sc.Producer.Return.Errors = true
	if cfg.Version != "" {
		v, err := sarama.ParseKafkaVersion(cfg.Version)
		if err != nil {
			return fmt.Errorf("kafka-sink: %w", err)
		}
		sc.Version = v
	}
	codec, ok := codecs[cfg.Compression]
	if !ok {
		return fmt.Errorf("kafka-sink: unknown compression %q", cfg.Compression)
	}
	sc.Producer.Compression = codec

	p, err := newProducer(cfg.Brokers, sc)
	if err != nil {
		return fmt.Errorf("kafka-sink: %w", err)
	}
	d.p = p

	d.drained.Add(1)
	go d.drainErrors()
	return nil
}

func (d *driver) drainErrors() {
	defer d.drained.Done()
	for perr := range d.p.Errors() {
		d.failed.Add(1)
		logging.L().Error("kafka-sink: publish failed", "topic", perr.Msg.Topic, "err", perr.Err)
	}
}

func (d *driver) Push(m *table.Model) error {
	if d.p == nil {
		return fmt.Errorf("kafka-sink: not configured")
	}
	value, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("kafka-sink: encode table: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("content-type"), Value: []byte("application/json")},
		},
	}
	if d.cfg.Key != "" {
		msg.Key = sarama.StringEncoder(d.cfg.Key)
	}
	d.p.Input() <- msg
	return nil
}

// Close flushes pending messages and reports how many failed.
func (d *driver) Close() error {
	if d.p == nil {
		return nil
	}
	d.once.Do(func() {
		d.p.AsyncClose()
		d.drained.Wait()
	})
	if n := d.failed.Load(); n > 0 {
		return fmt.Errorf("kafka-sink: %d message(s) failed", n)
	}
	return nil
}

func init() { sink.Register("kafka", func() sink.Adapter { return &driver{} }) }
