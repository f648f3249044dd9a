package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask_IsComplete(t *testing.T) {
	assert.True(t, Task{Status: "complete"}.IsComplete())
	assert.False(t, Task{Status: "Complete"}.IsComplete())
	assert.False(t, Task{Status: "COMPLETE"}.IsComplete())
	assert.False(t, Task{Status: "completed"}.IsComplete())
	assert.False(t, Task{Status: ""}.IsComplete())
}

func TestTracker_PendingPreservesOrder(t *testing.T) {
	tr := &Tracker{Tasks: []Task{
		{ID: "T3", Status: "pending"},
		{ID: "T1", Status: "complete"},
		{ID: "T2", Status: "blocked"},
		{ID: "T0", Status: "in_progress"},
	}}

	pending := tr.Pending()
	ids := make([]string, len(pending))
	for i, task := range pending {
		ids[i] = task.ID
	}
	assert.Equal(t, []string{"T3", "T2", "T0"}, ids)
}

func TestTracker_PendingAllComplete(t *testing.T) {
	tr := &Tracker{Tasks: []Task{{ID: "T1", Status: "complete"}}}

	pending := tr.Pending()
	assert.NotNil(t, pending)
	assert.Empty(t, pending)
}
