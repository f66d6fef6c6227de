package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/logger"
	"github.com/sbilibin2017/taskboard/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=events.go -destination=mock_events.go -package=services

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

func newTaskEvent(eventType string, task *models.Task, actor *models.User) models.TaskEvent {
	return models.TaskEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		TaskID:    task.ID.String(),
		OwnerID:   task.OwnerID.String(),
		ActorID:   actor.ID.String(),
		Status:    string(task.Status),
	}
}

// publishTaskEvent publishes a task event to Kafka keyed by task id.
// Failures are logged, the change itself is already stored.
func publishTaskEvent(ctx context.Context, writer KafkaWriter, event models.TaskEvent) {
	if writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "type", event.Type)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal task event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TaskID),
		Value: data,
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish task event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Task event published to Kafka", "event_id", event.EventID, "type", event.Type, "task_id", event.TaskID)
	}
}
