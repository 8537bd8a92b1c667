package messages

import "github.com/nerrad567/ucapi/codec"

// R2Request names a request sent by the remote to an integration driver.
type R2Request string

const (
	R2RequestGetDriverVersion     R2Request = "get_driver_version"
	R2RequestGetDeviceState       R2Request = "get_device_state"
	R2RequestGetAvailableEntities R2Request = "get_available_entities"
	R2RequestSubscribeEvents      R2Request = "subscribe_events"
	R2RequestUnsubscribeEvents    R2Request = "unsubscribe_events"
	R2RequestGetEntityStates      R2Request = "get_entity_states"
	R2RequestEntityCommand        R2Request = "entity_command"
	R2RequestGetDriverMetadata    R2Request = "get_driver_metadata"
	R2RequestSetupDriver          R2Request = "setup_driver"
	R2RequestSetDriverUserData    R2Request = "set_driver_user_data"
)

var r2Requests = codec.NewTokens("remote request",
	R2RequestGetDriverVersion,
	R2RequestGetDeviceState,
	R2RequestGetAvailableEntities,
	R2RequestSubscribeEvents,
	R2RequestUnsubscribeEvents,
	R2RequestGetEntityStates,
	R2RequestEntityCommand,
	R2RequestGetDriverMetadata,
	R2RequestSetupDriver,
	R2RequestSetDriverUserData,
)

// AllR2Requests returns every remote request in wire order.
func AllR2Requests() []R2Request { return r2Requests.All() }

func (v R2Request) Valid() bool                   { return r2Requests.Contains(v) }
func (v R2Request) MarshalText() ([]byte, error)  { return r2Requests.Marshal(v) }
func (v *R2Request) UnmarshalText(b []byte) error { return r2Requests.Unmarshal(v, b) }

// R2Response names a response sent by the remote to a driver request.
type R2Response string

const (
	R2ResponseVersion              R2Response = "version"
	R2ResponseSupportedEntityTypes R2Response = "supported_entity_types"
	R2ResponseConfiguredEntities   R2Response = "configured_entities"
	R2ResponseLocalizationCfg      R2Response = "localization_cfg"
	R2ResponseRuntimeInfo          R2Response = "runtime_info"
	R2ResponseOauth2AuthURL        R2Response = "oauth2_auth_url"
	R2ResponseOauth2Token          R2Response = "oauth2_token"
)

var r2Responses = codec.NewTokens("remote response",
	R2ResponseVersion,
	R2ResponseSupportedEntityTypes,
	R2ResponseConfiguredEntities,
	R2ResponseLocalizationCfg,
	R2ResponseRuntimeInfo,
	R2ResponseOauth2AuthURL,
	R2ResponseOauth2Token,
)

// AllR2Responses returns every remote response in wire order.
func AllR2Responses() []R2Response { return r2Responses.All() }

func (v R2Response) Valid() bool                   { return r2Responses.Contains(v) }
func (v R2Response) MarshalText() ([]byte, error)  { return r2Responses.Marshal(v) }
func (v *R2Response) UnmarshalText(b []byte) error { return r2Responses.Unmarshal(v, b) }

// R2Event names an event sent by the remote to an integration driver.
type R2Event string

const (
	R2EventConnect             R2Event = "connect"
	R2EventDisconnect          R2Event = "disconnect"
	R2EventEnterStandby        R2Event = "enter_standby"
	R2EventExitStandby         R2Event = "exit_standby"
	R2EventAbortDriverSetup    R2Event = "abort_driver_setup"
	R2EventOauth2Authorization R2Event = "oauth2_authorization"
)

var r2Events = codec.NewTokens("remote event",
	R2EventConnect,
	R2EventDisconnect,
	R2EventEnterStandby,
	R2EventExitStandby,
	R2EventAbortDriverSetup,
	R2EventOauth2Authorization,
)

// AllR2Events returns every remote event in wire order.
func AllR2Events() []R2Event { return r2Events.All() }

func (v R2Event) Valid() bool                   { return r2Events.Contains(v) }
func (v R2Event) MarshalText() ([]byte, error)  { return r2Events.Marshal(v) }
func (v *R2Event) UnmarshalText(b []byte) error { return r2Events.Unmarshal(v, b) }

// DriverRequest names a request sent by an integration driver to the remote.
type DriverRequest string

const (
	DriverRequestGetVersion              DriverRequest = "get_version"
	DriverRequestGetSupportedEntityTypes DriverRequest = "get_supported_entity_types"
	DriverRequestGetConfiguredEntities   DriverRequest = "get_configured_entities"
	DriverRequestGetLocalizationCfg      DriverRequest = "get_localization_cfg"
	DriverRequestGetRuntimeInfo          DriverRequest = "get_runtime_info"
	DriverRequestGenerateOauth2AuthURL   DriverRequest = "generate_oauth2_auth_url"
	DriverRequestCreateOauth2Cfg         DriverRequest = "create_oauth2_cfg"
	DriverRequestGetOauth2Token          DriverRequest = "get_oauth2_token"
	DriverRequestDeleteOauth2Token       DriverRequest = "delete_oauth2_token"
)

var driverRequests = codec.NewTokens("driver request",
	DriverRequestGetVersion,
	DriverRequestGetSupportedEntityTypes,
	DriverRequestGetConfiguredEntities,
	DriverRequestGetLocalizationCfg,
	DriverRequestGetRuntimeInfo,
	DriverRequestGenerateOauth2AuthURL,
	DriverRequestCreateOauth2Cfg,
	DriverRequestGetOauth2Token,
	DriverRequestDeleteOauth2Token,
)

// AllDriverRequests returns every driver request in wire order.
func AllDriverRequests() []DriverRequest { return driverRequests.All() }

func (v DriverRequest) Valid() bool                   { return driverRequests.Contains(v) }
func (v DriverRequest) MarshalText() ([]byte, error)  { return driverRequests.Marshal(v) }
func (v *DriverRequest) UnmarshalText(b []byte) error { return driverRequests.Unmarshal(v, b) }

// DriverResponse names a response sent by an integration driver to a remote request.
type DriverResponse string

const (
	DriverResponseResult            DriverResponse = "result"
	DriverResponseDriverVersion     DriverResponse = "driver_version"
	DriverResponseAvailableEntities DriverResponse = "available_entities"
	DriverResponseEntityStates      DriverResponse = "entity_states"
	DriverResponseDriverMetadata    DriverResponse = "driver_metadata"
)

var driverResponses = codec.NewTokens("driver response",
	DriverResponseResult,
	DriverResponseDriverVersion,
	DriverResponseAvailableEntities,
	DriverResponseEntityStates,
	DriverResponseDriverMetadata,
)

// AllDriverResponses returns every driver response in wire order.
func AllDriverResponses() []DriverResponse { return driverResponses.All() }

func (v DriverResponse) Valid() bool                   { return driverResponses.Contains(v) }
func (v DriverResponse) MarshalText() ([]byte, error)  { return driverResponses.Marshal(v) }
func (v *DriverResponse) UnmarshalText(b []byte) error { return driverResponses.Unmarshal(v, b) }

// DriverEvent names an event sent by an integration driver to the remote.
type DriverEvent string

const (
	DriverEventAuthRequired      DriverEvent = "auth_required"
	DriverEventDeviceState       DriverEvent = "device_state"
	DriverEventEntityChange      DriverEvent = "entity_change"
	DriverEventEntityAvailable   DriverEvent = "entity_available"
	DriverEventEntityRemoved     DriverEvent = "entity_removed"
	DriverEventDriverSetupChange DriverEvent = "driver_setup_change"
)

var driverEvents = codec.NewTokens("driver event",
	DriverEventAuthRequired,
	DriverEventDeviceState,
	DriverEventEntityChange,
	DriverEventEntityAvailable,
	DriverEventEntityRemoved,
	DriverEventDriverSetupChange,
)

// AllDriverEvents returns every driver event in wire order.
func AllDriverEvents() []DriverEvent { return driverEvents.All() }

func (v DriverEvent) Valid() bool                   { return driverEvents.Contains(v) }
func (v DriverEvent) MarshalText() ([]byte, error)  { return driverEvents.Marshal(v) }
func (v *DriverEvent) UnmarshalText(b []byte) error { return driverEvents.Unmarshal(v, b) }
