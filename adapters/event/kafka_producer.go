package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/bunny-go/internal/config"
	"github.com/khoahotran/bunny-go/pkg/logger"
)

const TopicJobs = "bunny.jobs"

type JobType string

const (
	JobStorageUpload JobType = "storage.upload"
	JobStreamFetch   JobType = "stream.fetch"
)

// JobPayload is one unit of SDK work queued for the worker. Only the
// fields of its Type are set.
type JobPayload struct {
	JobID string  `json:"job_id"`
	Type  JobType `json:"type"`

	// storage.upload
	Folder  string `json:"folder,omitempty"`
	Name    string `json:"name,omitempty"`
	Content []byte `json:"content,omitempty"`

	// stream.fetch
	URL          string            `json:"url,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	CollectionID string            `json:"collection_id,omitempty"`
	LowPriority  bool              `json:"low_priority,omitempty"`
}

func DecodeJobPayload(data []byte) (JobPayload, error) {
	var p JobPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return JobPayload{}, err
	}
	if p.Type == "" {
		return JobPayload{}, fmt.Errorf("job %q has no type", p.JobID)
	}
	return p, nil
}

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	JobsWriter MessageWriter
	logger     logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	jobsWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicJobs,
		Balancer: &kafka.LeastBytes{},
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))
	return NewKafkaProducerWithWriter(jobsWriter, log), nil
}

func NewKafkaProducerWithWriter(w MessageWriter, log logger.Logger) *KafkaProducerClient {
	return &KafkaProducerClient{JobsWriter: w, logger: log}
}

// PublishJob assigns a job id when p has none and returns it.
func (c *KafkaProducerClient) PublishJob(ctx context.Context, p JobPayload) (string, error) {
	if p.JobID == "" {
		p.JobID = uuid.NewString()
	}
	value, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal job %s: %w", p.JobID, err)
	}

	err = c.JobsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(p.JobID),
		Value: value,
	})
	if err != nil {
		return "", fmt.Errorf("publish job %s: %w", p.JobID, err)
	}

	c.logger.Info("Published job", zap.String("job_id", p.JobID), zap.String("type", string(p.Type)))
	return p.JobID, nil
}

func (c *KafkaProducerClient) Close() {
	if c.JobsWriter != nil {
		if err := c.JobsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka producer", err)
			return
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
