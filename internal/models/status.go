package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// LoadState is the lifecycle state of a portfolio load
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateSuccess LoadState = "success"
	StateError   LoadState = "error"
)

// LoadStatus is a point-in-time view of the portfolio loader
type LoadStatus struct {
	State       LoadState    `json:"state"`
	User        *User        `json:"user"`
	Repos       []Repository `json:"repos"`
	Stats       Stats        `json:"stats"`
	Error       string       `json:"error,omitempty"`
	Generation  uint64       `json:"generation"`
	LastSuccess time.Time    `json:"last_success,omitempty"`
}

// IsLoading reports whether a fetch is in flight
func (s *LoadStatus) IsLoading() bool {
	return s.State == StateLoading
}

// BatchProgress tracks the progress of batch processing
type BatchProgress struct {
	TotalBatches     int       `json:"total_batches"`
	ProcessedBatches int       `json:"processed_batches"`
	TotalItems       int       `json:"total_items"`
	ProcessedItems   int       `json:"processed_items"`
	StartTime        time.Time `json:"start_time"`
	LastUpdateTime   time.Time `json:"last_update_time"`
}

// String returns the JSON string representation of the load status
func (s *LoadStatus) String() string {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal load status: %v"}`, err)
	}
	return string(data)
}
