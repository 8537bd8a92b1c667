package entity

import (
	"github.com/nerrad567/ucapi/codec"
)

// SwitchFeature is a capability of a switch entity.
type SwitchFeature string

const (
	SwitchFeatureOnOff  SwitchFeature = "on_off"
	SwitchFeatureToggle SwitchFeature = "toggle"
)

var switchFeatures = codec.NewTokens("switch feature",
	SwitchFeatureOnOff,
	SwitchFeatureToggle,
)

// AllSwitchFeatures returns every switch feature in wire order.
func AllSwitchFeatures() []SwitchFeature { return switchFeatures.All() }

func (v SwitchFeature) Valid() bool                   { return switchFeatures.Contains(v) }
func (v SwitchFeature) MarshalText() ([]byte, error)  { return switchFeatures.Marshal(v) }
func (v *SwitchFeature) UnmarshalText(b []byte) error { return switchFeatures.Unmarshal(v, b) }

// SwitchCommand is a command accepted by a switch entity.
type SwitchCommand string

const (
	SwitchCommandOn     SwitchCommand = "on"
	SwitchCommandOff    SwitchCommand = "off"
	SwitchCommandToggle SwitchCommand = "toggle"
)

var switchCommands = codec.NewTokens("switch command",
	SwitchCommandOn,
	SwitchCommandOff,
	SwitchCommandToggle,
)

// AllSwitchCommands returns every switch command in wire order.
func AllSwitchCommands() []SwitchCommand { return switchCommands.All() }

func (v SwitchCommand) Valid() bool                   { return switchCommands.Contains(v) }
func (v SwitchCommand) MarshalText() ([]byte, error)  { return switchCommands.Marshal(v) }
func (v *SwitchCommand) UnmarshalText(b []byte) error { return switchCommands.Unmarshal(v, b) }

// SwitchDeviceClass refines how the UI presents a switch.
type SwitchDeviceClass string

const (
	SwitchDeviceClassOutlet SwitchDeviceClass = "outlet"
	SwitchDeviceClassSwitch SwitchDeviceClass = "switch"
)

var switchDeviceClasses = codec.NewTokens("switch device class",
	SwitchDeviceClassOutlet,
	SwitchDeviceClassSwitch,
)

// AllSwitchDeviceClasses returns every switch device class in wire order.
func AllSwitchDeviceClasses() []SwitchDeviceClass { return switchDeviceClasses.All() }

func (v SwitchDeviceClass) Valid() bool                   { return switchDeviceClasses.Contains(v) }
func (v SwitchDeviceClass) MarshalText() ([]byte, error)  { return switchDeviceClasses.Marshal(v) }
func (v *SwitchDeviceClass) UnmarshalText(b []byte) error { return switchDeviceClasses.Unmarshal(v, b) }

// SwitchOption names a field of SwitchOptions.
type SwitchOption string

const (
	SwitchOptionReadable SwitchOption = "readable"
)

var switchOptions = codec.NewTokens("switch option",
	SwitchOptionReadable,
)

// AllSwitchOptions returns every switch option in wire order.
func AllSwitchOptions() []SwitchOption { return switchOptions.All() }

func (v SwitchOption) Valid() bool                   { return switchOptions.Contains(v) }
func (v SwitchOption) MarshalText() ([]byte, error)  { return switchOptions.Marshal(v) }
func (v *SwitchOption) UnmarshalText(b []byte) error { return switchOptions.Unmarshal(v, b) }

// SwitchAttribute is a state attribute reported by a switch entity.
type SwitchAttribute string

const (
	SwitchAttributeState SwitchAttribute = "state"
)

var switchAttributes = codec.NewTokens("switch attribute",
	SwitchAttributeState,
)

// AllSwitchAttributes returns every switch attribute in wire order.
func AllSwitchAttributes() []SwitchAttribute { return switchAttributes.All() }

func (v SwitchAttribute) Valid() bool                   { return switchAttributes.Contains(v) }
func (v SwitchAttribute) MarshalText() ([]byte, error)  { return switchAttributes.Marshal(v) }
func (v *SwitchAttribute) UnmarshalText(b []byte) error { return switchAttributes.Unmarshal(v, b) }

// SwitchOptions is the option set of a switch entity.
type SwitchOptions struct {
	// Readable is false for switches that cannot report their state.
	Readable *bool `json:"readable,omitempty"`
}

// EntityType returns TypeSwitch.
func (SwitchOptions) EntityType() EntityType { return TypeSwitch }

// Validate always succeeds.
func (SwitchOptions) Validate() error { return nil }
