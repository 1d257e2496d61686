package monitor

import "time"

// Status is a point-in-time health snapshot. A dependency that is not
// configured (no Redis store, no history file) reports healthy, since
// nothing the app relies on is broken.
type Status struct {
	Backend       bool      `json:"backend"`
	Redis         bool      `json:"redis"`
	History       bool      `json:"history"`
	Conversations int       `json:"conversations"`
	LastCheck     time.Time `json:"last_check"`
}
