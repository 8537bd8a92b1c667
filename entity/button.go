package entity

import (
	"github.com/nerrad567/ucapi/codec"
)

// ButtonFeature is a capability of a button entity.
type ButtonFeature string

const (
	ButtonFeaturePress ButtonFeature = "press"
)

var buttonFeatures = codec.NewTokens("button feature",
	ButtonFeaturePress,
)

// AllButtonFeatures returns every button feature in wire order.
func AllButtonFeatures() []ButtonFeature { return buttonFeatures.All() }

func (v ButtonFeature) Valid() bool                   { return buttonFeatures.Contains(v) }
func (v ButtonFeature) MarshalText() ([]byte, error)  { return buttonFeatures.Marshal(v) }
func (v *ButtonFeature) UnmarshalText(b []byte) error { return buttonFeatures.Unmarshal(v, b) }

// ButtonCommand is a command accepted by a button entity.
type ButtonCommand string

const (
	ButtonCommandPush ButtonCommand = "push"
)

var buttonCommands = codec.NewTokens("button command",
	ButtonCommandPush,
)

// AllButtonCommands returns every button command in wire order.
func AllButtonCommands() []ButtonCommand { return buttonCommands.All() }

func (v ButtonCommand) Valid() bool                   { return buttonCommands.Contains(v) }
func (v ButtonCommand) MarshalText() ([]byte, error)  { return buttonCommands.Marshal(v) }
func (v *ButtonCommand) UnmarshalText(b []byte) error { return buttonCommands.Unmarshal(v, b) }

// ButtonAttribute is a state attribute reported by a button entity.
type ButtonAttribute string

const (
	ButtonAttributeState ButtonAttribute = "state"
)

var buttonAttributes = codec.NewTokens("button attribute",
	ButtonAttributeState,
)

// AllButtonAttributes returns every button attribute in wire order.
func AllButtonAttributes() []ButtonAttribute { return buttonAttributes.All() }

func (v ButtonAttribute) Valid() bool                   { return buttonAttributes.Contains(v) }
func (v ButtonAttribute) MarshalText() ([]byte, error)  { return buttonAttributes.Marshal(v) }
func (v *ButtonAttribute) UnmarshalText(b []byte) error { return buttonAttributes.Unmarshal(v, b) }

// ButtonOptions is the option set of a button entity. Buttons have no options.
type ButtonOptions struct{}

// EntityType returns TypeButton.
func (ButtonOptions) EntityType() EntityType { return TypeButton }

// Validate always succeeds.
func (ButtonOptions) Validate() error { return nil }
