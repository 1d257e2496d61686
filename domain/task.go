package domain

import (
	"strings"
	"time"
)

// TaskStatus enumerates the lifecycle states the backend accepts.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskPriority enumerates the priority levels the backend accepts.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskStatuses lists valid statuses in form order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
}

// TaskPriorities lists valid priorities in form order.
func TaskPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label renders the status for display ("in_progress" -> "In Progress").
func (s TaskStatus) Label() string {
	return titleWords(string(s))
}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for sorting, highest first.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

func (p TaskPriority) Label() string {
	return titleWords(string(p))
}

// Task represents a user-owned activity item as served by the backend.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// TaskStats aggregates per-status counts for the dashboard tiles.
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// ComputeTaskStats derives counters from a task list. Pages fall back to it
// when the backend stats endpoint is unavailable.
func ComputeTaskStats(tasks []Task) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for i := range tasks {
		switch tasks[i].Status {
		case StatusPending:
			stats.Pending++
		case StatusInProgress:
			stats.InProgress++
		case StatusCompleted:
			stats.Completed++
		}
	}
	return stats
}

func titleWords(s string) string {
	parts := strings.Split(s, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
