package ports

import "github.com/aretw0/portcfg/pkg/domain"

// Selection is a selected element of the flow graph.
type Selection interface {
	// ComponentType reports what kind of element is selected.
	ComponentType() domain.ComponentType

	// CurrentData returns the element's datum as the canvas holds it.
	CurrentData() map[string]any
}

// Canvas exposes the capability predicates used to gate the editor.
type Canvas interface {
	IsInputPort(sel Selection) bool
	IsOutputPort(sel Selection) bool
}
