package models

// Task event types published on task mutations.
const (
	EventTaskCreated       = "task.created"
	EventTaskAssigned      = "task.assigned"
	EventTaskUpdated       = "task.updated"
	EventTaskStatusChanged = "task.status_changed"
	EventTaskDeleted       = "task.deleted"
)

// TaskEvent is an audit record of a change to a task.
type TaskEvent struct {
	EventID   string `json:"event_id"`         // EventID is a unique identifier for the event.
	Type      string `json:"type"`             // Type is one of the EventTask* constants.
	Timestamp int64  `json:"timestamp"`        // Timestamp is the Unix time (seconds) of the change.
	TaskID    string `json:"task_id"`          // TaskID identifies the affected task.
	OwnerID   string `json:"owner_id"`         // OwnerID is the task owner at the time of the change.
	ActorID   string `json:"actor_id"`         // ActorID is the user who made the change.
	Status    string `json:"status,omitempty"` // Status is the task status after the change.
}
