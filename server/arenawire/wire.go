package arenawire

import "github.com/tuannm99/arenadb/internal/sql/executor"

// ExecuteRequest carries one command line.
type ExecuteRequest struct {
	ID   uint64 `json:"id"`
	Line string `json:"line"`
}

// ExecuteResponse is the response for a request ID.
type ExecuteResponse struct {
	ID     uint64           `json:"id"`
	Result *executor.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}
