// Package intg contains the Integration API models: the entities a driver
// announces, entity commands and state changes, the driver and integration
// instance records kept by the remote, and the driver setup flow.
//
// Integration API payloads decode leniently, so newer drivers may send fields
// this package does not know yet. The REST create and patch models
// IntegrationDriverUpdate and IntegrationUpdate decode strictly.
package intg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/entity"
	"github.com/nerrad567/ucapi/model"
	"github.com/nerrad567/ucapi/validate"
)

// AvailableEntity is an entity announced by an integration driver.
//
// EntityType is the discriminant: it selects the feature vocabulary, the
// device classes and the Options variant that apply. Light entities must
// carry LightOptions with a brightness range; the other types may omit
// options.
type AvailableEntity struct {
	EntityID    string             `json:"entity_id"`
	DeviceID    string             `json:"device_id,omitempty"`
	EntityType  entity.EntityType  `json:"entity_type"`
	DeviceClass string             `json:"device_class,omitempty"`
	Name        model.LanguageText `json:"name"`
	Features    []string           `json:"features,omitempty"`
	Area        string             `json:"area,omitempty"`
	Options     entity.Options     `json:"options,omitempty"`
}

// availableEntityWire is the wire form of AvailableEntity with the options
// kept raw until the entity type is known.
type availableEntityWire struct {
	EntityID    string             `json:"entity_id"`
	DeviceID    string             `json:"device_id,omitempty"`
	EntityType  entity.EntityType  `json:"entity_type"`
	DeviceClass string             `json:"device_class,omitempty"`
	Name        model.LanguageText `json:"name"`
	Features    []string           `json:"features,omitempty"`
	Area        string             `json:"area,omitempty"`
	Options     json.RawMessage    `json:"options,omitempty"`
}

// WireShape selects the option variant from entity_type and makes options
// required for the types that need them.
func (*AvailableEntity) WireShape(obj map[string]json.RawMessage) codec.Shape {
	shape := codec.Shape{Of: (*availableEntityWire)(nil)}

	var t entity.EntityType
	if err := json.Unmarshal(obj["entity_type"], &t); err != nil {
		return shape
	}
	zero, err := entity.ZeroOptions(t)
	if err != nil {
		return shape
	}
	shape.Fields = map[string]any{"options": zero}
	if entity.OptionsRequired(t) {
		shape.Required = []string{"options"}
	}
	return shape
}

// UnmarshalJSON decodes options into the variant of the entity type.
func (e *AvailableEntity) UnmarshalJSON(data []byte) error {
	var w availableEntityWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = AvailableEntity{
		EntityID:    w.EntityID,
		DeviceID:    w.DeviceID,
		EntityType:  w.EntityType,
		DeviceClass: w.DeviceClass,
		Name:        w.Name,
		Features:    w.Features,
		Area:        w.Area,
	}
	if len(w.Options) == 0 || bytes.Equal(bytes.TrimSpace(w.Options), []byte("null")) {
		return nil
	}
	opts, err := entity.DecodeOptions(w.EntityType, w.Options)
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	e.Options = opts
	return nil
}

// Validate checks the identifiers, the device class and features against
// the entity type, and the options.
func (e AvailableEntity) Validate() error {
	c := validate.New()
	c.Rule("entity_id", "entity_id", e.EntityID)
	c.RuleIfSet("device_id", "device_id", e.DeviceID)
	c.Token("entity_type", e.EntityType)
	c.Nested("name", e.Name.Validate())
	c.RuleIfSet("area", "area", e.Area)

	if e.DeviceClass != "" {
		c.Rule("device_class", "device_class", e.DeviceClass)
		if e.EntityType.Valid() && !entity.AcceptsDeviceClass(e.EntityType, e.DeviceClass) {
			c.Add("device_class", validate.ConstraintEnum, "%q is not a %s device class", e.DeviceClass, e.EntityType)
		}
	}
	if e.EntityType.Valid() {
		for i, f := range e.Features {
			if !entity.ValidFeature(e.EntityType, f) {
				c.Add(fmt.Sprintf("features[%d]", i), validate.ConstraintEnum, "%q is not a %s feature", f, e.EntityType)
			}
		}
		if e.Options == nil {
			c.Required("options", !entity.OptionsRequired(e.EntityType))
		} else if err := entity.CheckOptions(e.EntityType, e.Options); err != nil {
			c.Add("options", validate.ConstraintConsistency, "%v", err)
		} else {
			c.Nested("options", e.Options.Validate())
		}
	}
	return c.Err()
}

// HasFeature reports whether the entity announces feature.
func (e AvailableEntity) HasFeature(feature string) bool {
	return slices.Contains(e.Features, feature)
}

// EntityCommand instructs a driver to execute a command such as "on" or
// "target_temperature". A successful command is followed by an entity_change
// event with the new attribute values.
type EntityCommand struct {
	DeviceID   string            `json:"device_id,omitempty"`
	EntityType entity.EntityType `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	CmdID      string            `json:"cmd_id"`
	Params     map[string]any    `json:"params,omitempty"`
}

// Validate checks the identifiers and that cmd_id is a command of the
// entity type. Types without a command vocabulary accept no commands.
func (cmd EntityCommand) Validate() error {
	c := validate.New()
	c.RuleIfSet("device_id", "device_id", cmd.DeviceID)
	c.Token("entity_type", cmd.EntityType)
	c.Rule("entity_id", "entity_id", cmd.EntityID)
	c.Required("cmd_id", cmd.CmdID != "")
	if cmd.CmdID != "" && cmd.EntityType.Valid() && !entity.ValidCommand(cmd.EntityType, cmd.CmdID) {
		c.Add("cmd_id", validate.ConstraintEnum, "%q is not a %s command", cmd.CmdID, cmd.EntityType)
	}
	return c.Err()
}

// EntityChange reports changed attributes of an entity, either after an
// entity command or after an external change.
type EntityChange struct {
	DeviceID   string            `json:"device_id,omitempty"`
	EntityType entity.EntityType `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	Attributes map[string]any    `json:"attributes"`
}

// Validate checks the identifiers. Attribute names outside the entity type's
// vocabulary are tolerated so that newer drivers keep working; see
// UnknownAttributes.
func (ch EntityChange) Validate() error {
	c := validate.New()
	c.RuleIfSet("device_id", "device_id", ch.DeviceID)
	c.Token("entity_type", ch.EntityType)
	c.Rule("entity_id", "entity_id", ch.EntityID)
	c.Required("attributes", ch.Attributes != nil)
	return c.Err()
}

// UnknownAttributes returns, sorted, the attribute names that are not part
// of the entity type's attribute vocabulary.
func (ch EntityChange) UnknownAttributes() []string {
	known := entity.Attributes(ch.EntityType)
	var unknown []string
	for k := range ch.Attributes {
		if !slices.Contains(known, k) {
			unknown = append(unknown, k)
		}
	}
	slices.Sort(unknown)
	return unknown
}
