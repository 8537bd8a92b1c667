package intg

import (
	"maps"

	"github.com/google/uuid"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/model"
	"github.com/nerrad567/ucapi/validate"
)

// Integration is a configured instance of an integration driver.
type Integration struct {
	IntegrationID string `json:"integration_id"`
	// DriverID references the IntegrationDriver providing this instance.
	DriverID string `json:"driver_id"`
	// DeviceID is only used by multi-device drivers.
	DeviceID string             `json:"device_id,omitempty"`
	Name     model.LanguageText `json:"name"`
	Icon     string             `json:"icon,omitempty"`
	Enabled  bool               `json:"enabled"`
	// SetupData holds the driver configuration. It is never nil on the wire;
	// use an empty map for a driver without configuration.
	SetupData   map[string]any `json:"setup_data"`
	DeviceState DeviceState    `json:"device_state,omitempty"`
}

// Validate checks a complete integration record.
func (in Integration) Validate() error {
	c := validate.New()
	c.Rule("integration_id", "integration_id", in.IntegrationID)
	c.Rule("driver_id", "driver_id", in.DriverID)
	c.RuleIfSet("device_id", "device_id", in.DeviceID)
	c.Required("name", len(in.Name) > 0)
	c.Nested("name", in.Name.Validate())
	c.RuleIfSet("icon", "icon", in.Icon)
	c.Required("setup_data", in.SetupData != nil)
	c.OptionalToken("device_state", in.DeviceState)
	return c.Err()
}

// Apply merges the fields set in u into in. The integration, driver and
// device ids cannot change.
func (in *Integration) Apply(u IntegrationUpdate) error {
	if u.IntegrationID != nil && *u.IntegrationID != in.IntegrationID {
		return immutable("integration_id")
	}
	if u.DriverID != nil && *u.DriverID != in.DriverID {
		return immutable("driver_id")
	}
	if u.DeviceID != nil && *u.DeviceID != in.DeviceID {
		return immutable("device_id")
	}
	if u.Name != nil {
		in.Name = u.Name
	}
	setString(&in.Icon, u.Icon)
	if u.Enabled != nil {
		in.Enabled = *u.Enabled
	}
	if u.SetupData != nil {
		in.SetupData = maps.Clone(u.SetupData)
	}
	return nil
}

// Status returns the status record of the instance. The driver type and
// state come from the driver providing it.
func (in Integration) Status(driver IntegrationDriver) IntegrationStatus {
	return IntegrationStatus{
		DriverID:      in.DriverID,
		IntegrationID: in.IntegrationID,
		Name:          in.Name,
		Icon:          in.Icon,
		DriverType:    driver.DriverType,
		State:         combinedState(driver.DriverState, in.DeviceState),
		DeviceState:   in.DeviceState,
		DriverState:   driver.DriverState,
	}
}

// combinedState folds the driver connection state and the device state into
// one integration state. Driver problems take precedence.
func combinedState(drv DriverState, dev DeviceState) IntegrationState {
	switch drv {
	case DriverStateNotConfigured:
		return StateNotConfigured
	case DriverStateIdle:
		return StateIdle
	case DriverStateConnecting:
		return StateConnecting
	case DriverStateReconnecting:
		return StateReconnecting
	case DriverStateError:
		return StateError
	}
	switch dev {
	case DeviceConnecting:
		return StateConnecting
	case DeviceConnected:
		return StateConnected
	case DeviceDisconnected:
		return StateDisconnected
	case DeviceError:
		return StateError
	}
	if drv == DriverStateActive {
		return StateActive
	}
	return StateUnknown
}

// IntegrationUpdate is the create and patch model of Integration. Unset
// fields are left unchanged by Apply.
type IntegrationUpdate struct {
	// IntegrationID is assigned by the system and cannot be updated.
	IntegrationID *string `json:"integration_id,omitempty"`
	// DriverID cannot be updated.
	DriverID *string `json:"driver_id,omitempty"`
	// DeviceID cannot be updated.
	DeviceID  *string            `json:"device_id,omitempty"`
	Name      model.LanguageText `json:"name,omitempty"`
	Icon      *string            `json:"icon,omitempty"`
	Enabled   *bool              `json:"enabled,omitempty"`
	SetupData map[string]any     `json:"setup_data,omitzero"`
}

// DecodePolicy rejects unknown fields.
func (IntegrationUpdate) DecodePolicy() codec.Policy { return codec.Strict }

// Validate checks the constraints of every field that is set.
func (u IntegrationUpdate) Validate() error {
	c := validate.New()
	c.OptionalRule("integration_id", "integration_id", u.IntegrationID)
	c.OptionalRule("driver_id", "driver_id", u.DriverID)
	c.OptionalRule("device_id", "device_id", u.DeviceID)
	c.Nested("name", u.Name.Validate())
	c.OptionalRule("icon", "icon", u.Icon)
	return c.Err()
}

// FromIntegration returns an update that sets every field of in.
func FromIntegration(in Integration) IntegrationUpdate {
	return IntegrationUpdate{
		IntegrationID: &in.IntegrationID,
		DriverID:      &in.DriverID,
		DeviceID:      optString(in.DeviceID),
		Name:          in.Name,
		Icon:          optString(in.Icon),
		Enabled:       &in.Enabled,
		SetupData:     in.SetupData,
	}
}

// NewIntegration creates an integration record. driver_id and name are
// required. A missing integration_id is generated, a missing enabled flag
// defaults to true and missing setup data to an empty map.
func (u IntegrationUpdate) NewIntegration() (Integration, error) {
	c := validate.New()
	c.Nested("", u.Validate())
	c.Required("driver_id", u.DriverID != nil && *u.DriverID != "")
	c.Required("name", len(u.Name) > 0)
	if err := c.Err(); err != nil {
		return Integration{}, err
	}

	in := Integration{
		IntegrationID: uuid.NewString(),
		DriverID:      *u.DriverID,
		Enabled:       true,
		SetupData:     map[string]any{},
	}
	if u.IntegrationID != nil && *u.IntegrationID != "" {
		in.IntegrationID = *u.IntegrationID
	}
	if u.DeviceID != nil {
		in.DeviceID = *u.DeviceID
	}
	u.IntegrationID, u.DriverID, u.DeviceID = nil, nil, nil
	if err := in.Apply(u); err != nil {
		return Integration{}, err
	}
	return in, nil
}

// IntegrationStatus is the status record of an integration instance.
type IntegrationStatus struct {
	DriverID      string             `json:"driver_id,omitempty"`
	IntegrationID string             `json:"integration_id,omitempty"`
	Name          model.LanguageText `json:"name"`
	Icon          string             `json:"icon,omitempty"`
	DriverType    DriverType         `json:"driver_type"`
	State         IntegrationState   `json:"state,omitempty"`
	// Deprecated: use State.
	DeviceState DeviceState `json:"device_state,omitempty"`
	// Deprecated: use State.
	DriverState DriverState `json:"driver_state,omitempty"`
}

// IntegrationVersion is the version information reported by a driver.
type IntegrationVersion struct {
	// API is the implemented Integration API version.
	API    string `json:"api,omitempty"`
	Driver string `json:"driver,omitempty"`
}

// SubscribeEvents subscribes to entity_change events. An empty list
// subscribes to every available entity.
type SubscribeEvents struct {
	DeviceID  string   `json:"device_id,omitempty"`
	EntityIDs []string `json:"entity_ids"`
}

// Validate checks every entity id.
func (s SubscribeEvents) Validate() error {
	c := validate.New()
	c.RuleIfSet("device_id", "device_id", s.DeviceID)
	c.Required("entity_ids", s.EntityIDs != nil)
	for i, id := range s.EntityIDs {
		c.Rule(indexed("entity_ids", i), "entity_id", id)
	}
	return c.Err()
}
