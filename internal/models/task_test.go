package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func TestNewTask(t *testing.T) {
	owner := uuid.New()

	task, err := NewTask("Write report", "", owner)
	require.NoError(t, err)
	assert.Equal(t, StatusToDo, task.Status)
	assert.Equal(t, owner, task.OwnerID)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)

	task, err = NewTask("  ", "desc", owner)
	assert.ErrorIs(t, err, validation.ErrTitleEmpty)
	assert.Nil(t, task)
}

func TestParseTaskStatus(t *testing.T) {
	for _, s := range []string{"ToDo", "Doing", "Done"} {
		st, ok := ParseTaskStatus(s)
		assert.True(t, ok)
		assert.Equal(t, s, string(st))
	}
	for _, s := range []string{"To Do", "todo", "", "Archived"} {
		_, ok := ParseTaskStatus(s)
		assert.False(t, ok, s)
	}
}

func TestTask_UpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantOK     bool
		wantStatus TaskStatus
	}{
		{"to doing", "Doing", true, StatusDoing},
		{"to done", "Done", true, StatusDone},
		{"to todo", "ToDo", true, StatusToDo},
		{"same status still bumps", "ToDo", true, StatusToDo},
		{"invalid", "Blocked", false, StatusToDo},
		{"legacy spelling", "To Do", false, StatusToDo},
		{"empty", "", false, StatusToDo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := RestoreTask(uuid.New(), "t", "", StatusToDo, uuid.New(), fixedTime, fixedTime)

			ok := task.UpdateStatus(tt.status)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, task.Status)
			if tt.wantOK {
				assert.True(t, task.UpdatedAt.After(fixedTime))
			} else {
				assert.Equal(t, fixedTime, task.UpdatedAt)
			}
		})
	}
}

func TestTask_UpdateStatus_StrictlyIncreasing(t *testing.T) {
	future := time.Now().Add(time.Hour).UTC()
	task := RestoreTask(uuid.New(), "t", "", StatusToDo, uuid.New(), fixedTime, future)

	require.True(t, task.UpdateStatus("Done"))
	assert.True(t, task.UpdatedAt.After(future))
}

func TestTask_UpdateDetails(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		wantChanged bool
		wantTitle   string
		wantDesc    string
	}{
		{"title only", "New", "", true, "New", "old desc"},
		{"description only", "", "new desc", true, "Old", "new desc"},
		{"both", "New", "new desc", true, "New", "new desc"},
		{"no-op empty", "", "", false, "Old", "old desc"},
		{"no-op same values", "Old", "old desc", false, "Old", "old desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := RestoreTask(uuid.New(), "Old", "old desc", StatusDoing, uuid.New(), fixedTime, fixedTime)

			changed := task.UpdateDetails(tt.title, tt.description)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantTitle, task.Title)
			assert.Equal(t, tt.wantDesc, task.Description)
			assert.Equal(t, StatusDoing, task.Status)
			if tt.wantChanged {
				assert.True(t, task.UpdatedAt.After(fixedTime))
			} else {
				assert.Equal(t, fixedTime, task.UpdatedAt)
			}
		})
	}
}
