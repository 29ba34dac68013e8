package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TaskCount is the concurrent task count as it travels on the wire.
// The editor sends the raw form text as a JSON string; the service also
// accepts a JSON number.
type TaskCount string

// MarshalJSON encodes the count as a JSON string.
func (c TaskCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (c *TaskCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = TaskCount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task count must be a string or number: %w", err)
	}
	*c = TaskCount(n.String())
	return nil
}

// Int parses the count. Surrounding whitespace is ignored.
func (c TaskCount) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(c)))
}

// PortUpdate is the component section of an update request. Optional fields are
// pointers and are omitted from the JSON body when nil so the service keeps its
// current value.
type PortUpdate struct {
	ID                               string          `json:"id"`
	Name                             *string         `json:"name,omitempty"`
	Comments                         *string         `json:"comments,omitempty"`
	ConcurrentlySchedulableTaskCount *TaskCount      `json:"concurrentlySchedulableTaskCount,omitempty"`
	State                            *ScheduledState `json:"state,omitempty"`
	AllowRemoteAccess                *bool           `json:"allowRemoteAccess,omitempty"`
}

// PortUpdateRequest is the body of the PUT sent to a port's URI.
type PortUpdateRequest struct {
	Revision                     Revision   `json:"revision"`
	DisconnectedNodeAcknowledged bool       `json:"disconnectedNodeAcknowledged"`
	Component                    PortUpdate `json:"component"`
}
