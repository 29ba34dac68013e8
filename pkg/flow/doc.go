// Package flow is an in-process Port Update Service.
//
// It owns the authoritative copy of every port, checks the revision of each write,
// validates the proposed configuration and applies scheduled-state transitions.
// The HTTP adapter exposes it with the same wire contract the editor speaks, so the
// editor can be exercised end to end without a running flow controller.
package flow
