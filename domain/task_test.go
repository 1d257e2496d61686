package domain

import (
	"testing"
	"time"
)

func TestComputeTaskStats(t *testing.T) {
	tasks := []Task{
		{ID: "1", Status: StatusPending},
		{ID: "2", Status: StatusInProgress},
		{ID: "3", Status: StatusCompleted},
		{ID: "4", Status: StatusPending},
	}

	stats := ComputeTaskStats(tasks)
	if stats.Total != 4 {
		t.Errorf("expected total 4, got %d", stats.Total)
	}
	if stats.Pending != 2 {
		t.Errorf("expected pending 2, got %d", stats.Pending)
	}
	if stats.InProgress != 1 {
		t.Errorf("expected in_progress 1, got %d", stats.InProgress)
	}
	if stats.Completed != 1 {
		t.Errorf("expected completed 1, got %d", stats.Completed)
	}
}

func TestComputeTaskStatsEmpty(t *testing.T) {
	stats := ComputeTaskStats(nil)
	if stats.Total != 0 || stats.Pending != 0 || stats.InProgress != 0 || stats.Completed != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestTaskStatusValid(t *testing.T) {
	for _, status := range TaskStatuses() {
		if !status.Valid() {
			t.Errorf("status %q should be valid", status)
		}
	}
	if TaskStatus("archived").Valid() {
		t.Error("unknown status should not be valid")
	}
	if TaskStatus("").Valid() {
		t.Error("empty status should not be valid")
	}
}

func TestTaskPriorityValid(t *testing.T) {
	for _, priority := range TaskPriorities() {
		if !priority.Valid() {
			t.Errorf("priority %q should be valid", priority)
		}
	}
	if TaskPriority("urgent").Valid() {
		t.Error("unknown priority should not be valid")
	}
}

func TestTaskPriorityRank(t *testing.T) {
	if PriorityHigh.Rank() >= PriorityMedium.Rank() {
		t.Error("high should rank before medium")
	}
	if PriorityMedium.Rank() >= PriorityLow.Rank() {
		t.Error("medium should rank before low")
	}
	if TaskPriority("").Rank() <= PriorityLow.Rank() {
		t.Error("unknown priority should rank last")
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		in   TaskStatus
		want string
	}{
		{StatusPending, "Pending"},
		{StatusInProgress, "In Progress"},
		{StatusCompleted, "Completed"},
	}
	for _, tt := range tests {
		if got := tt.in.Label(); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTaskIsCompleted(t *testing.T) {
	task := &Task{Status: StatusCompleted}
	if !task.IsCompleted() {
		t.Error("completed task should report completed")
	}
	task.Status = StatusPending
	if task.IsCompleted() {
		t.Error("pending task should not report completed")
	}
	var nilTask *Task
	if nilTask.IsCompleted() {
		t.Error("nil task should not report completed")
	}
}

func TestChatMessageEqual(t *testing.T) {
	a := ChatMessage{Role: ChatRoleUser, Content: "hello", SentAt: time.Now()}
	b := ChatMessage{Role: ChatRoleUser, Content: "hello", SentAt: time.Now().Add(time.Hour)}
	if !a.Equal(b) {
		t.Error("messages differing only in timestamp should be equal")
	}

	c := ChatMessage{Role: ChatRoleAssistant, Content: "hello"}
	if a.Equal(c) {
		t.Error("messages with different roles should not be equal")
	}
}
