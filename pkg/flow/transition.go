package flow

import (
	"fmt"

	"github.com/aretw0/portcfg/pkg/domain"
)

// transition resolves a requested scheduled state against the current one.
//
//	RUNNING  -> STOPPED   stop
//	DISABLED -> STOPPED   enable
//	STOPPED  -> DISABLED  disable
//	STOPPED  -> RUNNING   start
//	RUNNING  -> DISABLED  conflict, the port must be stopped first
//	DISABLED -> RUNNING   conflict, the port must be enabled first
func transition(id string, from, to domain.ScheduledState) (domain.ScheduledState, error) {
	if _, err := domain.ParseScheduledState(string(to)); err != nil {
		return from, &domain.ConflictError{Message: fmt.Sprintf("%s: %v", id, err)}
	}
	if from == to {
		return from, nil
	}
	switch {
	case from == domain.StateRunning && to == domain.StateDisabled:
		return from, &domain.ConflictError{Message: fmt.Sprintf("%s cannot be disabled because it is running", id)}
	case from == domain.StateDisabled && to == domain.StateRunning:
		return from, &domain.ConflictError{Message: fmt.Sprintf("%s cannot be started because it is disabled", id)}
	}
	return to, nil
}
