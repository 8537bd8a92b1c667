package intg

import "github.com/nerrad567/ucapi/codec"

// DriverType tells where an integration driver runs.
type DriverType string

const (
	DriverLocal    DriverType = "LOCAL"
	DriverExternal DriverType = "EXTERNAL"
	DriverCustom   DriverType = "CUSTOM"
)

var driverTypes = codec.NewTokens("driver type",
	DriverLocal,
	DriverExternal,
	DriverCustom,
)

// AllDriverTypes returns every driver type in wire order.
func AllDriverTypes() []DriverType { return driverTypes.All() }

func (v DriverType) Valid() bool                   { return driverTypes.Contains(v) }
func (v DriverType) MarshalText() ([]byte, error)  { return driverTypes.Marshal(v) }
func (v *DriverType) UnmarshalText(b []byte) error { return driverTypes.Unmarshal(v, b) }

// IotClass describes how an integration connects and communicates with a device or service.
type IotClass string

const (
	IotAssumedState IotClass = "assumed_state"
	IotCloudPolling IotClass = "cloud_polling"
	IotCloudPush    IotClass = "cloud_push"
	IotLocalPolling IotClass = "local_polling"
	IotLocalPush    IotClass = "local_push"
)

var iotClasses = codec.NewTokens("IoT class",
	IotAssumedState,
	IotCloudPolling,
	IotCloudPush,
	IotLocalPolling,
	IotLocalPush,
)

// AllIotClasses returns every IoT class in wire order.
func AllIotClasses() []IotClass { return iotClasses.All() }

func (v IotClass) Valid() bool                   { return iotClasses.Contains(v) }
func (v IotClass) MarshalText() ([]byte, error)  { return iotClasses.Marshal(v) }
func (v *IotClass) UnmarshalText(b []byte) error { return iotClasses.Unmarshal(v, b) }

// DeviceState is the connection state of the device behind an integration.
type DeviceState string

const (
	DeviceUnknown      DeviceState = "UNKNOWN"
	DeviceConnecting   DeviceState = "CONNECTING"
	DeviceConnected    DeviceState = "CONNECTED"
	DeviceDisconnected DeviceState = "DISCONNECTED"
	DeviceError        DeviceState = "ERROR"
)

var deviceStates = codec.NewTokens("device state",
	DeviceUnknown,
	DeviceConnecting,
	DeviceConnected,
	DeviceDisconnected,
	DeviceError,
)

// AllDeviceStates returns every device state in wire order.
func AllDeviceStates() []DeviceState { return deviceStates.All() }

func (v DeviceState) Valid() bool                   { return deviceStates.Contains(v) }
func (v DeviceState) MarshalText() ([]byte, error)  { return deviceStates.Marshal(v) }
func (v *DeviceState) UnmarshalText(b []byte) error { return deviceStates.Unmarshal(v, b) }

// DriverState is the connection state of an integration driver. The short lived
// connected-but-unauthenticated and disconnecting states are not reported.
type DriverState string

const (
	DriverStateNotConfigured DriverState = "NOT_CONFIGURED"
	DriverStateIdle          DriverState = "IDLE"
	DriverStateConnecting    DriverState = "CONNECTING"
	DriverStateActive        DriverState = "ACTIVE"
	DriverStateReconnecting  DriverState = "RECONNECTING"
	DriverStateError         DriverState = "ERROR"
)

var driverStates = codec.NewTokens("driver state",
	DriverStateNotConfigured,
	DriverStateIdle,
	DriverStateConnecting,
	DriverStateActive,
	DriverStateReconnecting,
	DriverStateError,
)

// AllDriverStates returns every driver state in wire order.
func AllDriverStates() []DriverState { return driverStates.All() }

func (v DriverState) Valid() bool                   { return driverStates.Contains(v) }
func (v DriverState) MarshalText() ([]byte, error)  { return driverStates.Marshal(v) }
func (v *DriverState) UnmarshalText(b []byte) error { return driverStates.Unmarshal(v, b) }

// IntegrationState is the combined driver and device state of an integration.
type IntegrationState string

const (
	StateNotConfigured IntegrationState = "NOT_CONFIGURED"
	StateUnknown       IntegrationState = "UNKNOWN"
	StateIdle          IntegrationState = "IDLE"
	StateConnecting    IntegrationState = "CONNECTING"
	StateConnected     IntegrationState = "CONNECTED"
	StateDisconnected  IntegrationState = "DISCONNECTED"
	StateReconnecting  IntegrationState = "RECONNECTING"
	StateActive        IntegrationState = "ACTIVE"
	StateError         IntegrationState = "ERROR"
)

var integrationStates = codec.NewTokens("integration state",
	StateNotConfigured,
	StateUnknown,
	StateIdle,
	StateConnecting,
	StateConnected,
	StateDisconnected,
	StateReconnecting,
	StateActive,
	StateError,
)

// AllIntegrationStates returns every integration state in wire order.
func AllIntegrationStates() []IntegrationState { return integrationStates.All() }

func (v IntegrationState) Valid() bool                   { return integrationStates.Contains(v) }
func (v IntegrationState) MarshalText() ([]byte, error)  { return integrationStates.Marshal(v) }
func (v *IntegrationState) UnmarshalText(b []byte) error { return integrationStates.Unmarshal(v, b) }
