package entity

import (
	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/validate"
)

// ClimateFeature is a capability of a climate entity.
type ClimateFeature string

const (
	ClimateFeatureOnOff              ClimateFeature = "on_off"
	ClimateFeatureHeat               ClimateFeature = "heat"
	ClimateFeatureCool               ClimateFeature = "cool"
	ClimateFeatureCurrentTemperature ClimateFeature = "current_temperature"
	ClimateFeatureTargetTemperature  ClimateFeature = "target_temperature"
)

var climateFeatures = codec.NewTokens("climate feature",
	ClimateFeatureOnOff,
	ClimateFeatureHeat,
	ClimateFeatureCool,
	ClimateFeatureCurrentTemperature,
	ClimateFeatureTargetTemperature,
)

// AllClimateFeatures returns every climate feature in wire order.
func AllClimateFeatures() []ClimateFeature { return climateFeatures.All() }

func (v ClimateFeature) Valid() bool                   { return climateFeatures.Contains(v) }
func (v ClimateFeature) MarshalText() ([]byte, error)  { return climateFeatures.Marshal(v) }
func (v *ClimateFeature) UnmarshalText(b []byte) error { return climateFeatures.Unmarshal(v, b) }

// ClimateOption names a field of ClimateOptions.
type ClimateOption string

const (
	ClimateOptionTemperatureUnit       ClimateOption = "temperature_unit"
	ClimateOptionTargetTemperatureStep ClimateOption = "target_temperature_step"
	ClimateOptionMaxTemperature        ClimateOption = "max_temperature"
	ClimateOptionMinTemperature        ClimateOption = "min_temperature"
)

var climateOptions = codec.NewTokens("climate option",
	ClimateOptionTemperatureUnit,
	ClimateOptionTargetTemperatureStep,
	ClimateOptionMaxTemperature,
	ClimateOptionMinTemperature,
)

// AllClimateOptions returns every climate option in wire order.
func AllClimateOptions() []ClimateOption { return climateOptions.All() }

func (v ClimateOption) Valid() bool                   { return climateOptions.Contains(v) }
func (v ClimateOption) MarshalText() ([]byte, error)  { return climateOptions.Marshal(v) }
func (v *ClimateOption) UnmarshalText(b []byte) error { return climateOptions.Unmarshal(v, b) }

// ClimateCommand is a command accepted by a climate entity.
type ClimateCommand string

const (
	ClimateCommandOn                ClimateCommand = "on"
	ClimateCommandOff               ClimateCommand = "off"
	ClimateCommandHVACMode          ClimateCommand = "hvac_mode"
	ClimateCommandTargetTemperature ClimateCommand = "target_temperature"
)

var climateCommands = codec.NewTokens("climate command",
	ClimateCommandOn,
	ClimateCommandOff,
	ClimateCommandHVACMode,
	ClimateCommandTargetTemperature,
)

// AllClimateCommands returns every climate command in wire order.
func AllClimateCommands() []ClimateCommand { return climateCommands.All() }

func (v ClimateCommand) Valid() bool                   { return climateCommands.Contains(v) }
func (v ClimateCommand) MarshalText() ([]byte, error)  { return climateCommands.Marshal(v) }
func (v *ClimateCommand) UnmarshalText(b []byte) error { return climateCommands.Unmarshal(v, b) }

// ClimateAttribute is a state attribute reported by a climate entity.
type ClimateAttribute string

const (
	ClimateAttributeState                 ClimateAttribute = "state"
	ClimateAttributeCurrentTemperature    ClimateAttribute = "current_temperature"
	ClimateAttributeTargetTemperature     ClimateAttribute = "target_temperature"
	ClimateAttributeTargetTemperatureHigh ClimateAttribute = "target_temperature_high"
	ClimateAttributeTargetTemperatureLow  ClimateAttribute = "target_temperature_low"
	ClimateAttributeFanMode               ClimateAttribute = "fan_mode"
)

var climateAttributes = codec.NewTokens("climate attribute",
	ClimateAttributeState,
	ClimateAttributeCurrentTemperature,
	ClimateAttributeTargetTemperature,
	ClimateAttributeTargetTemperatureHigh,
	ClimateAttributeTargetTemperatureLow,
	ClimateAttributeFanMode,
)

// AllClimateAttributes returns every climate attribute in wire order.
func AllClimateAttributes() []ClimateAttribute { return climateAttributes.All() }

func (v ClimateAttribute) Valid() bool                   { return climateAttributes.Contains(v) }
func (v ClimateAttribute) MarshalText() ([]byte, error)  { return climateAttributes.Marshal(v) }
func (v *ClimateAttribute) UnmarshalText(b []byte) error { return climateAttributes.Unmarshal(v, b) }

// TemperatureUnit is the unit a climate entity reports in.
type TemperatureUnit string

const (
	UnitCelsius    TemperatureUnit = "CELSIUS"
	UnitFahrenheit TemperatureUnit = "FAHRENHEIT"
)

var temperatureUnits = codec.NewTokens("temperature unit",
	UnitCelsius,
	UnitFahrenheit,
)

// AllTemperatureUnits returns every temperature unit in wire order.
func AllTemperatureUnits() []TemperatureUnit { return temperatureUnits.All() }

func (v TemperatureUnit) Valid() bool                   { return temperatureUnits.Contains(v) }
func (v TemperatureUnit) MarshalText() ([]byte, error)  { return temperatureUnits.Marshal(v) }
func (v *TemperatureUnit) UnmarshalText(b []byte) error { return temperatureUnits.Unmarshal(v, b) }

// Smallest step the UI can offer for the target temperature.
const minTemperatureStep = 0.1

// ClimateOptions is the option set of a climate entity. Unset fields fall
// back to the remote's settings.
type ClimateOptions struct {
	TemperatureUnit       TemperatureUnit `json:"temperature_unit,omitempty"`
	TargetTemperatureStep *float64        `json:"target_temperature_step,omitempty"`
	MaxTemperature        *float64        `json:"max_temperature,omitempty"`
	MinTemperature        *float64        `json:"min_temperature,omitempty"`
}

// EntityType returns TypeClimate.
func (ClimateOptions) EntityType() EntityType { return TypeClimate }

// Validate checks the unit token, the step size and the temperature range.
func (o ClimateOptions) Validate() error {
	c := validate.New()
	c.OptionalToken("temperature_unit", o.TemperatureUnit)
	if o.TargetTemperatureStep != nil && *o.TargetTemperatureStep < minTemperatureStep {
		c.Add("target_temperature_step", validate.ConstraintRange, "must be at least %v", minTemperatureStep)
	}
	if o.MinTemperature != nil && o.MaxTemperature != nil && *o.MinTemperature > *o.MaxTemperature {
		c.Add("min_temperature", validate.ConstraintConsistency, "exceeds max_temperature")
	}
	return c.Err()
}
