package entity

import (
	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/validate"
)

// SensorOption names a field of SensorOptions.
type SensorOption string

const (
	SensorOptionCustomLabel SensorOption = "custom_label"
	SensorOptionCustomUnit  SensorOption = "custom_unit"
	SensorOptionNativeUnit  SensorOption = "native_unit"
	SensorOptionDecimals    SensorOption = "decimals"
)

var sensorOptions = codec.NewTokens("sensor option",
	SensorOptionCustomLabel,
	SensorOptionCustomUnit,
	SensorOptionNativeUnit,
	SensorOptionDecimals,
)

// AllSensorOptions returns every sensor option in wire order.
func AllSensorOptions() []SensorOption { return sensorOptions.All() }

func (v SensorOption) Valid() bool                   { return sensorOptions.Contains(v) }
func (v SensorOption) MarshalText() ([]byte, error)  { return sensorOptions.Marshal(v) }
func (v *SensorOption) UnmarshalText(b []byte) error { return sensorOptions.Unmarshal(v, b) }

// SensorDeviceClass is the measured quantity of a sensor.
type SensorDeviceClass string

const (
	SensorDeviceClassCustom      SensorDeviceClass = "custom"
	SensorDeviceClassBattery     SensorDeviceClass = "battery"
	SensorDeviceClassCurrent     SensorDeviceClass = "current"
	SensorDeviceClassEnergy      SensorDeviceClass = "energy"
	SensorDeviceClassHumidity    SensorDeviceClass = "humidity"
	SensorDeviceClassPower       SensorDeviceClass = "power"
	SensorDeviceClassTemperature SensorDeviceClass = "temperature"
	SensorDeviceClassVoltage     SensorDeviceClass = "voltage"
)

var sensorDeviceClasses = codec.NewTokens("sensor device class",
	SensorDeviceClassCustom,
	SensorDeviceClassBattery,
	SensorDeviceClassCurrent,
	SensorDeviceClassEnergy,
	SensorDeviceClassHumidity,
	SensorDeviceClassPower,
	SensorDeviceClassTemperature,
	SensorDeviceClassVoltage,
)

// AllSensorDeviceClasses returns every sensor device class in wire order.
func AllSensorDeviceClasses() []SensorDeviceClass { return sensorDeviceClasses.All() }

func (v SensorDeviceClass) Valid() bool                   { return sensorDeviceClasses.Contains(v) }
func (v SensorDeviceClass) MarshalText() ([]byte, error)  { return sensorDeviceClasses.Marshal(v) }
func (v *SensorDeviceClass) UnmarshalText(b []byte) error { return sensorDeviceClasses.Unmarshal(v, b) }

// SensorAttribute is a state attribute reported by a sensor entity.
type SensorAttribute string

const (
	SensorAttributeState SensorAttribute = "state"
	SensorAttributeValue SensorAttribute = "value"
	SensorAttributeUnit  SensorAttribute = "unit"
)

var sensorAttributes = codec.NewTokens("sensor attribute",
	SensorAttributeState,
	SensorAttributeValue,
	SensorAttributeUnit,
)

// AllSensorAttributes returns every sensor attribute in wire order.
func AllSensorAttributes() []SensorAttribute { return sensorAttributes.All() }

func (v SensorAttribute) Valid() bool                   { return sensorAttributes.Contains(v) }
func (v SensorAttribute) MarshalText() ([]byte, error)  { return sensorAttributes.Marshal(v) }
func (v *SensorAttribute) UnmarshalText(b []byte) error { return sensorAttributes.Unmarshal(v, b) }

const maxSensorDecimals = 10

// SensorOptions is the option set of a sensor entity.
type SensorOptions struct {
	// CustomLabel labels a custom sensor or overrides the device class label.
	CustomLabel string `json:"custom_label,omitempty"`
	// CustomUnit labels the unit of a custom sensor or overrides the default unit.
	CustomUnit string `json:"custom_unit,omitempty"`
	// NativeUnit enables automatic unit conversion (temperature sensors only).
	NativeUnit string `json:"native_unit,omitempty"`
	// Decimals is the number of decimal places shown for numeric values.
	Decimals *int `json:"decimals,omitempty"`
}

// EntityType returns TypeSensor.
func (SensorOptions) EntityType() EntityType { return TypeSensor }

// Validate checks the decimal count.
func (o SensorOptions) Validate() error {
	c := validate.New()
	if o.Decimals != nil {
		c.Range("decimals", float64(*o.Decimals), 0, maxSensorDecimals)
	}
	return c.Err()
}
