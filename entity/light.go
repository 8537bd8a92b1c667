package entity

import (
	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/validate"
)

// LightFeature is a capability of a light entity.
type LightFeature string

const (
	LightFeatureOnOff            LightFeature = "on_off"
	LightFeatureToggle           LightFeature = "toggle"
	LightFeatureDim              LightFeature = "dim"
	LightFeatureColor            LightFeature = "color"
	LightFeatureColorTemperature LightFeature = "color_temperature"
)

var lightFeatures = codec.NewTokens("light feature",
	LightFeatureOnOff,
	LightFeatureToggle,
	LightFeatureDim,
	LightFeatureColor,
	LightFeatureColorTemperature,
)

// AllLightFeatures returns every light feature in wire order.
func AllLightFeatures() []LightFeature { return lightFeatures.All() }

func (v LightFeature) Valid() bool                   { return lightFeatures.Contains(v) }
func (v LightFeature) MarshalText() ([]byte, error)  { return lightFeatures.Marshal(v) }
func (v *LightFeature) UnmarshalText(b []byte) error { return lightFeatures.Unmarshal(v, b) }

// LightCommand is a command accepted by a light entity.
type LightCommand string

const (
	LightCommandOn     LightCommand = "on"
	LightCommandOff    LightCommand = "off"
	LightCommandToggle LightCommand = "toggle"
)

var lightCommands = codec.NewTokens("light command",
	LightCommandOn,
	LightCommandOff,
	LightCommandToggle,
)

// AllLightCommands returns every light command in wire order.
func AllLightCommands() []LightCommand { return lightCommands.All() }

func (v LightCommand) Valid() bool                   { return lightCommands.Contains(v) }
func (v LightCommand) MarshalText() ([]byte, error)  { return lightCommands.Marshal(v) }
func (v *LightCommand) UnmarshalText(b []byte) error { return lightCommands.Unmarshal(v, b) }

// LightOption names a field of LightOptions.
type LightOption string

const (
	LightOptionBrightnessRange       LightOption = "brightness_range"
	LightOptionColorTemperatureSteps LightOption = "color_temperature_steps"
)

var lightOptions = codec.NewTokens("light option",
	LightOptionBrightnessRange,
	LightOptionColorTemperatureSteps,
)

// AllLightOptions returns every light option in wire order.
func AllLightOptions() []LightOption { return lightOptions.All() }

func (v LightOption) Valid() bool                   { return lightOptions.Contains(v) }
func (v LightOption) MarshalText() ([]byte, error)  { return lightOptions.Marshal(v) }
func (v *LightOption) UnmarshalText(b []byte) error { return lightOptions.Unmarshal(v, b) }

// LightAttribute is a state attribute reported by a light entity.
type LightAttribute string

const (
	LightAttributeState            LightAttribute = "state"
	LightAttributeHue              LightAttribute = "hue"
	LightAttributeSaturation       LightAttribute = "saturation"
	LightAttributeBrightness       LightAttribute = "brightness"
	LightAttributeColorTemperature LightAttribute = "color_temperature"
)

var lightAttributes = codec.NewTokens("light attribute",
	LightAttributeState,
	LightAttributeHue,
	LightAttributeSaturation,
	LightAttributeBrightness,
	LightAttributeColorTemperature,
)

// AllLightAttributes returns every light attribute in wire order.
func AllLightAttributes() []LightAttribute { return lightAttributes.All() }

func (v LightAttribute) Valid() bool                   { return lightAttributes.Contains(v) }
func (v LightAttribute) MarshalText() ([]byte, error)  { return lightAttributes.Marshal(v) }
func (v *LightAttribute) UnmarshalText(b []byte) error { return lightAttributes.Unmarshal(v, b) }

// Brightness limits on the wire.
const (
	minBrightness = 0
	maxBrightness = 255

	minColorTemperatureSteps = 2
	maxColorTemperatureSteps = 100
)

// BrightnessRange is the brightness scale a light entity reports and accepts.
type BrightnessRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// LightOptions is the option set of a light entity. Unlike the other entity
// types a light must announce its brightness range.
type LightOptions struct {
	BrightnessRange       BrightnessRange `json:"brightness_range"`
	ColorTemperatureSteps *int            `json:"color_temperature_steps,omitempty"`
}

// EntityType returns TypeLight.
func (LightOptions) EntityType() EntityType { return TypeLight }

// Validate checks the brightness range and the colour temperature step count.
func (o LightOptions) Validate() error {
	c := validate.New()
	r := o.BrightnessRange
	c.Range("brightness_range.min", float64(r.Min), minBrightness, maxBrightness)
	c.Range("brightness_range.max", float64(r.Max), minBrightness, maxBrightness)
	if r.Min >= r.Max {
		c.Add("brightness_range", validate.ConstraintConsistency, "min %d must be below max %d", r.Min, r.Max)
	}
	if o.ColorTemperatureSteps != nil {
		c.Range("color_temperature_steps", float64(*o.ColorTemperatureSteps), minColorTemperatureSteps, maxColorTemperatureSteps)
	}
	return c.Err()
}
