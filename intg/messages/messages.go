// Package messages holds the Integration API WebSocket message names and
// the msg_data payload of each message.
//
// Names are split by direction: R2* messages are sent by the remote, Driver*
// messages by the integration driver. Payloads decode leniently.
package messages

import "github.com/nerrad567/ucapi/ws"

var driverAnswers = map[R2Request]DriverResponse{
	R2RequestGetDriverVersion:     DriverResponseDriverVersion,
	R2RequestGetAvailableEntities: DriverResponseAvailableEntities,
	R2RequestSubscribeEvents:      DriverResponseResult,
	R2RequestUnsubscribeEvents:    DriverResponseResult,
	R2RequestGetEntityStates:      DriverResponseEntityStates,
	R2RequestEntityCommand:        DriverResponseResult,
	R2RequestGetDriverMetadata:    DriverResponseDriverMetadata,
	R2RequestSetupDriver:          DriverResponseResult,
	R2RequestSetDriverUserData:    DriverResponseResult,
}

// ResponseName returns the message name of the driver's response to r.
// get_device_state is answered with a device_state event instead, so it has
// no response and ok is false.
func (v R2Request) ResponseName() (name DriverResponse, ok bool) {
	name, ok = driverAnswers[v]
	return name, ok
}

var remoteAnswers = map[DriverRequest]string{
	DriverRequestGetVersion:              string(R2ResponseVersion),
	DriverRequestGetSupportedEntityTypes: string(R2ResponseSupportedEntityTypes),
	DriverRequestGetConfiguredEntities:   string(R2ResponseConfiguredEntities),
	DriverRequestGetLocalizationCfg:      string(R2ResponseLocalizationCfg),
	DriverRequestGetRuntimeInfo:          string(R2ResponseRuntimeInfo),
	DriverRequestGenerateOauth2AuthURL:   string(R2ResponseOauth2AuthURL),
	DriverRequestCreateOauth2Cfg:         ws.MsgResult,
	DriverRequestGetOauth2Token:          string(R2ResponseOauth2Token),
	DriverRequestDeleteOauth2Token:       ws.MsgResult,
}

// ResponseName returns the message name of the remote's response to r:
// an R2Response token, or "result" for requests without a payload in the
// answer.
func (v DriverRequest) ResponseName() (string, bool) {
	name, ok := remoteAnswers[v]
	return name, ok
}
