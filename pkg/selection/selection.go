// Package selection provides canvas selections and the capability predicates the
// editor uses to decide whether it can configure the selected element.
package selection

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/aretw0/portcfg/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

// Selection is a single selected graph element and its datum.
type Selection struct {
	Type  domain.ComponentType
	Datum map[string]any
}

var _ ports.Selection = (*Selection)(nil)

// New creates a selection from a raw datum.
func New(componentType domain.ComponentType, datum map[string]any) *Selection {
	return &Selection{Type: componentType, Datum: datum}
}

// FromEntity creates a selection whose datum is the JSON form of the entity,
// matching what a canvas holds after loading the entity from the service.
func FromEntity(entity *domain.PortEntity) (*Selection, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	var datum map[string]any
	if err := json.Unmarshal(data, &datum); err != nil {
		return nil, fmt.Errorf("failed to build datum: %w", err)
	}
	return New(entity.Kind(), datum), nil
}

// ComponentType implements ports.Selection.
func (s *Selection) ComponentType() domain.ComponentType {
	if s == nil {
		return ""
	}
	return s.Type
}

// CurrentData implements ports.Selection.
func (s *Selection) CurrentData() map[string]any {
	if s == nil {
		return nil
	}
	return s.Datum
}

// Decode converts a selection datum into a port entity.
func Decode(datum map[string]any) (*domain.PortEntity, error) {
	if datum == nil {
		return nil, errors.New("selection has no data")
	}

	var entity domain.PortEntity
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		Result:           &entity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(datum); err != nil {
		return nil, fmt.Errorf("failed to decode selection: %w", err)
	}

	if entity.ID == "" {
		return nil, errors.New("selection datum has no id")
	}
	if entity.Component == nil {
		return nil, fmt.Errorf("selection %s has no component", entity.ID)
	}
	return &entity, nil
}

// Canvas implements ports.Canvas from the selection's component type.
type Canvas struct{}

var _ ports.Canvas = Canvas{}

// IsInputPort reports whether the selection is an input port.
func (Canvas) IsInputPort(sel ports.Selection) bool {
	return sel != nil && sel.ComponentType() == domain.TypeInputPort
}

// IsOutputPort reports whether the selection is an output port.
func (Canvas) IsOutputPort(sel ports.Selection) bool {
	return sel != nil && sel.ComponentType() == domain.TypeOutputPort
}
