package domain

import "strconv"

// Toggle is the visual state of a checkbox. The zero value is Indeterminate,
// which is what a cleared checkbox looks like.
type Toggle int

const (
	ToggleIndeterminate Toggle = iota
	ToggleChecked
	ToggleUnchecked
)

// ToggleOf maps a boolean onto a determinate toggle.
func ToggleOf(b bool) Toggle {
	if b {
		return ToggleChecked
	}
	return ToggleUnchecked
}

// Bool returns the boolean value and whether the toggle is determinate.
func (t Toggle) Bool() (value bool, ok bool) {
	switch t {
	case ToggleChecked:
		return true, true
	case ToggleUnchecked:
		return false, true
	}
	return false, false
}

func (t Toggle) String() string {
	switch t {
	case ToggleChecked:
		return "checked"
	case ToggleUnchecked:
		return "unchecked"
	}
	return "indeterminate"
}

// EditSession is the dialog-scoped copy of a port's editable fields.
// It is populated once from the selection and read back when the request is built;
// nothing is bound live to the underlying entity.
type EditSession struct {
	PortID   string
	URI      string
	Revision Revision

	// Entity is the snapshot the session was populated from. The revision
	// collaborator reads it; the request builder never does.
	Entity *PortEntity

	Name                   string
	Comments               string
	Enabled                Toggle
	AllowRemoteAccess      Toggle
	ConcurrentTasks        string
	ConcurrentTasksVisible bool
}

// NewEditSession snapshots the editable fields of an entity.
func NewEditSession(entity *PortEntity) EditSession {
	s := EditSession{
		PortID:                 entity.ID,
		URI:                    entity.URI,
		Revision:               entity.Revision,
		Entity:                 entity.Clone(),
		ConcurrentTasksVisible: entity.AllowRemoteAccess,
		Enabled:                ToggleChecked,
		AllowRemoteAccess:      ToggleUnchecked,
	}
	if c := entity.Component; c != nil {
		s.Name = c.Name
		s.Comments = c.Comments
		if c.State == StateDisabled {
			s.Enabled = ToggleUnchecked
		}
		s.AllowRemoteAccess = ToggleOf(c.AllowRemoteAccess)
		s.ConcurrentTasks = strconv.Itoa(c.ConcurrentlySchedulableTaskCount)
	}
	return s
}

// IsZero reports whether every field has been cleared.
func (s EditSession) IsZero() bool {
	return s.PortID == "" &&
		s.URI == "" &&
		s.Revision == (Revision{}) &&
		s.Entity == nil &&
		s.Name == "" &&
		s.Comments == "" &&
		s.Enabled == ToggleIndeterminate &&
		s.AllowRemoteAccess == ToggleIndeterminate &&
		s.ConcurrentTasks == "" &&
		!s.ConcurrentTasksVisible
}

// Update builds the component section of the request from the current field values.
//
// The task count is only sent while its field is visible. State and remote access
// are only sent while their toggles are determinate.
func (s EditSession) Update() PortUpdate {
	name := s.Name
	comments := s.Comments
	u := PortUpdate{
		ID:       s.PortID,
		Name:     &name,
		Comments: &comments,
	}

	if s.ConcurrentTasksVisible {
		tasks := TaskCount(s.ConcurrentTasks)
		u.ConcurrentlySchedulableTaskCount = &tasks
	}

	switch s.Enabled {
	case ToggleUnchecked:
		state := StateDisabled
		u.State = &state
	case ToggleChecked:
		state := StateStopped
		u.State = &state
	}

	if v, ok := s.AllowRemoteAccess.Bool(); ok {
		u.AllowRemoteAccess = &v
	}
	return u
}

// Request wraps the update with the revision and the disconnection acknowledgement.
func (s EditSession) Request(revision Revision, disconnectedAck bool) PortUpdateRequest {
	return PortUpdateRequest{
		Revision:                     revision,
		DisconnectedNodeAcknowledged: disconnectedAck,
		Component:                    s.Update(),
	}
}
