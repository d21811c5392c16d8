package executor

import "github.com/tuannm99/arenadb/internal/record"

// Result is the generic command result returned to the caller.
type Result struct {
	// Rows holds one rendered line per selected record, in insert order.
	Rows []string `json:"rows,omitempty"`
	// Records holds the selected records themselves; not sent over the wire.
	Records []record.Record `json:"-"`

	Message string `json:"message,omitempty"`

	// For DML:
	AffectedRows int64 `json:"affected_rows"`

	// Exit is set by ".exit": the caller should stop reading commands.
	Exit bool `json:"exit,omitempty"`
}

// Lines returns everything the caller should print, rows first.
func (r *Result) Lines() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Rows)+1)
	out = append(out, r.Rows...)
	if r.Message != "" {
		out = append(out, r.Message)
	}
	return out
}
