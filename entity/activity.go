package entity

import (
	"github.com/nerrad567/ucapi/codec"
)

// ActivityFeature is a capability of an activity entity.
type ActivityFeature string

const (
	ActivityFeatureOnOff ActivityFeature = "on_off"
	ActivityFeatureStart ActivityFeature = "start"
)

var activityFeatures = codec.NewTokens("activity feature",
	ActivityFeatureOnOff,
	ActivityFeatureStart,
)

// AllActivityFeatures returns every activity feature in wire order.
func AllActivityFeatures() []ActivityFeature { return activityFeatures.All() }

func (v ActivityFeature) Valid() bool                   { return activityFeatures.Contains(v) }
func (v ActivityFeature) MarshalText() ([]byte, error)  { return activityFeatures.Marshal(v) }
func (v *ActivityFeature) UnmarshalText(b []byte) error { return activityFeatures.Unmarshal(v, b) }

// ActivityCommand is a command accepted by an activity entity.
type ActivityCommand string

const (
	ActivityCommandOn    ActivityCommand = "on"
	ActivityCommandOff   ActivityCommand = "off"
	ActivityCommandStart ActivityCommand = "start"
)

var activityCommands = codec.NewTokens("activity command",
	ActivityCommandOn,
	ActivityCommandOff,
	ActivityCommandStart,
)

// AllActivityCommands returns every activity command in wire order.
func AllActivityCommands() []ActivityCommand { return activityCommands.All() }

func (v ActivityCommand) Valid() bool                   { return activityCommands.Contains(v) }
func (v ActivityCommand) MarshalText() ([]byte, error)  { return activityCommands.Marshal(v) }
func (v *ActivityCommand) UnmarshalText(b []byte) error { return activityCommands.Unmarshal(v, b) }

// ActivityOptions is the option set of an activity entity as announced over
// the Integration API. It carries no fields.
type ActivityOptions struct{}

// EntityType returns TypeActivity.
func (ActivityOptions) EntityType() EntityType { return TypeActivity }

// Validate always succeeds.
func (ActivityOptions) Validate() error { return nil }

// MacroFeature is a capability of a macro entity.
type MacroFeature string

const (
	MacroFeatureRun MacroFeature = "run"
)

var macroFeatures = codec.NewTokens("macro feature",
	MacroFeatureRun,
)

// AllMacroFeatures returns every macro feature in wire order.
func AllMacroFeatures() []MacroFeature { return macroFeatures.All() }

func (v MacroFeature) Valid() bool                   { return macroFeatures.Contains(v) }
func (v MacroFeature) MarshalText() ([]byte, error)  { return macroFeatures.Marshal(v) }
func (v *MacroFeature) UnmarshalText(b []byte) error { return macroFeatures.Unmarshal(v, b) }

// MacroCommand is a command accepted by a macro entity.
type MacroCommand string

const (
	MacroCommandRun MacroCommand = "run"
)

var macroCommands = codec.NewTokens("macro command",
	MacroCommandRun,
)

// AllMacroCommands returns every macro command in wire order.
func AllMacroCommands() []MacroCommand { return macroCommands.All() }

func (v MacroCommand) Valid() bool                   { return macroCommands.Contains(v) }
func (v MacroCommand) MarshalText() ([]byte, error)  { return macroCommands.Marshal(v) }
func (v *MacroCommand) UnmarshalText(b []byte) error { return macroCommands.Unmarshal(v, b) }

// MacroOptions is the option set of a macro entity. It carries no fields.
type MacroOptions struct{}

// EntityType returns TypeMacro.
func (MacroOptions) EntityType() EntityType { return TypeMacro }

// Validate always succeeds.
func (MacroOptions) Validate() error { return nil }
