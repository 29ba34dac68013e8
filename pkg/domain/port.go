package domain

import (
	"fmt"
	"strings"
)

// ComponentType identifies the kind of graph element behind a selection.
type ComponentType string

// IsPort reports whether the type is an input or output port.
func (t ComponentType) IsPort() bool {
	return t == TypeInputPort || t == TypeOutputPort
}

// ScheduledState is the run state of a port.
type ScheduledState string

const (
	StateRunning  ScheduledState = "RUNNING"
	StateStopped  ScheduledState = "STOPPED"
	StateDisabled ScheduledState = "DISABLED"
)

// ParseScheduledState validates a raw state string.
func ParseScheduledState(s string) (ScheduledState, error) {
	switch ScheduledState(s) {
	case StateRunning, StateStopped, StateDisabled:
		return ScheduledState(s), nil
	}
	return "", fmt.Errorf("unknown scheduled state %q", s)
}

// PortComponent holds the configurable fields of a port.
type PortComponent struct {
	ID                               string         `json:"id" mapstructure:"id" yaml:"id"`
	ParentGroupID                    string         `json:"parentGroupId,omitempty" mapstructure:"parentGroupId" yaml:"parentGroupId,omitempty"`
	Name                             string         `json:"name" mapstructure:"name" yaml:"name"`
	Comments                         string         `json:"comments" mapstructure:"comments" yaml:"comments"`
	State                            ScheduledState `json:"state" mapstructure:"state" yaml:"state"`
	Type                             ComponentType  `json:"type" mapstructure:"type" yaml:"type"`
	ConcurrentlySchedulableTaskCount int            `json:"concurrentlySchedulableTaskCount" mapstructure:"concurrentlySchedulableTaskCount" yaml:"concurrentlySchedulableTaskCount"`
	AllowRemoteAccess                bool           `json:"allowRemoteAccess" mapstructure:"allowRemoteAccess" yaml:"allowRemoteAccess"`
}

// PortEntity is the service's representation of a port, including the revision
// that must accompany any update. It is stored verbatim in the Port Model Store.
type PortEntity struct {
	Revision Revision `json:"revision" mapstructure:"revision" yaml:"revision"`
	ID       string   `json:"id" mapstructure:"id" yaml:"id"`
	URI      string   `json:"uri" mapstructure:"uri" yaml:"uri"`

	// AllowRemoteAccess at entity level decides whether the task-count field is shown.
	AllowRemoteAccess bool `json:"allowRemoteAccess" mapstructure:"allowRemoteAccess" yaml:"allowRemoteAccess"`

	Component *PortComponent `json:"component,omitempty" mapstructure:"component" yaml:"component,omitempty"`
}

// Clone returns a deep copy of the entity.
func (e *PortEntity) Clone() *PortEntity {
	if e == nil {
		return nil
	}
	c := *e
	if e.Component != nil {
		comp := *e.Component
		c.Component = &comp
	}
	return &c
}

// Kind returns the component type of the port, or "" when unknown.
func (e *PortEntity) Kind() ComponentType {
	if e == nil || e.Component == nil {
		return ""
	}
	return e.Component.Type
}

// ParsePortKind accepts "input", "output" or the full component type names.
func ParsePortKind(raw string) (ComponentType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "input", "input_port":
		return TypeInputPort, nil
	case "output", "output_port":
		return TypeOutputPort, nil
	}
	return "", fmt.Errorf("unknown port kind %q (want input or output)", raw)
}
