// Package queue moves processing work from the API to the pipeline
// workers through Kafka. The publisher enqueues one message per job;
// the consumer pool fetches, runs the indexing pipeline and records
// the outcome on the job row.
package queue

import (
	"context"
	"encoding/json"

	kafkadb "docuhub/internal/database/kafka"
	"docuhub/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// ProcessMessage is the wire format of one queued processing job.
type ProcessMessage struct {
	JobID          string `json:"jobId"`
	DocumentID     string `json:"documentId"`
	OrganizationID string `json:"organizationId"`
}

// Publisher enqueues processing jobs.
type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewPublisher creates a Publisher on the shared Kafka writer.
func NewPublisher(client *kafkadb.KafkaClient, log *logger.Logger) *Publisher {
	return &Publisher{writer: client.Writer, log: log}
}

// Publish enqueues one job. The document id keys the message so all
// runs for a document land on one partition and process in order.
func (p *Publisher) Publish(ctx context.Context, msg ProcessMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.DocumentID),
		Value: data,
	})
	if err != nil {
		p.log.WithError(err).Error("Failed to enqueue processing job")
		return err
	}
	p.log.WithPayload(map[string]interface{}{
		"job_id":      msg.JobID,
		"document_id": msg.DocumentID,
	}).Debug("Processing job enqueued")
	return nil
}
