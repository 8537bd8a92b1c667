package schema

import (
	"encoding/json"
	"fmt"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/intg/messages"
	"github.com/nerrad567/ucapi/ws"
)

type payload struct {
	kind ws.Kind
	typ  string
}

// payloads maps Integration API message names to the type of their msg_data.
// Messages without msg_data, or with only an optional device_id, are absent.
var payloads = map[string]payload{
	// remote requests
	string(messages.R2RequestGetAvailableEntities): {ws.KindRequest, "messages.GetAvailableEntitiesMsgData"},
	string(messages.R2RequestSubscribeEvents):      {ws.KindRequest, "intg.SubscribeEvents"},
	string(messages.R2RequestUnsubscribeEvents):    {ws.KindRequest, "intg.SubscribeEvents"},
	string(messages.R2RequestEntityCommand):        {ws.KindRequest, "intg.EntityCommand"},
	string(messages.R2RequestSetupDriver):          {ws.KindRequest, "intg.SetupDriver"},
	string(messages.R2RequestSetDriverUserData):    {ws.KindRequest, "intg.IntegrationSetup"},

	// remote responses
	string(messages.R2ResponseVersion):       {ws.KindResponse, "intg.IntegrationVersion"},
	string(messages.R2ResponseRuntimeInfo):   {ws.KindResponse, "messages.RuntimeInfoMsgData"},
	string(messages.R2ResponseOauth2AuthURL): {ws.KindResponse, "messages.Oauth2AuthURLMsgData"},
	string(messages.R2ResponseOauth2Token):   {ws.KindResponse, "messages.Oauth2TokenMsgData"},

	// remote events
	string(messages.R2EventOauth2Authorization): {ws.KindEvent, "messages.Oauth2AuthorizationMsgData"},

	// driver requests
	string(messages.DriverRequestGenerateOauth2AuthURL): {ws.KindRequest, "messages.GenerateOauth2AuthURLMsgData"},
	string(messages.DriverRequestCreateOauth2Cfg):       {ws.KindRequest, "messages.CreateOauth2CfgMsgData"},
	string(messages.DriverRequestGetOauth2Token):        {ws.KindRequest, "messages.GetOauth2TokenMsgData"},
	string(messages.DriverRequestDeleteOauth2Token):     {ws.KindRequest, "messages.DeleteOauth2TokenMsgData"},

	// driver responses
	string(messages.DriverResponseResult):            {ws.KindResponse, "ws.ResultMsgData"},
	string(messages.DriverResponseDriverVersion):     {ws.KindResponse, "messages.DriverVersionMsgData"},
	string(messages.DriverResponseAvailableEntities): {ws.KindResponse, "messages.AvailableEntitiesMsgData"},
	string(messages.DriverResponseEntityStates):      {ws.KindResponse, "intg.EntityStates"},
	string(messages.DriverResponseDriverMetadata):    {ws.KindResponse, "intg.IntegrationDriver"},

	// driver events
	string(messages.DriverEventDeviceState):       {ws.KindEvent, "messages.DeviceStateMsgData"},
	string(messages.DriverEventEntityChange):      {ws.KindEvent, "intg.EntityChange"},
	string(messages.DriverEventEntityAvailable):   {ws.KindEvent, "messages.EntityAvailableMsgData"},
	string(messages.DriverEventEntityRemoved):     {ws.KindEvent, "messages.EntityRemovedMsgData"},
	string(messages.DriverEventDriverSetupChange): {ws.KindEvent, "intg.DriverSetupChange"},
}

// PayloadType returns the registered type name of the msg_data of msg, and
// the message kind it is sent with.
func PayloadType(msg string) (name string, kind ws.Kind, ok bool) {
	p, ok := payloads[msg]
	return p.typ, p.kind, ok
}

// DecodePayload decodes the msg_data of m into its registered type, using
// the policy that type declares.
//
// A message with an empty kind is accepted for any payload. Messages without
// a registered payload fail with ErrUnknownMessage.
func DecodePayload(m ws.Message) (any, error) {
	return decodePayload(m, ws.DecodeData)
}

// DecodePayloadPolicy is DecodePayload with an explicit decode policy for
// the msg_data.
func DecodePayloadPolicy(m ws.Message, p codec.Policy) (any, error) {
	return decodePayload(m, func(data json.RawMessage, v any) error {
		return ws.DecodeDataPolicy(data, v, p)
	})
}

func decodePayload(m ws.Message, decode func(json.RawMessage, any) error) (any, error) {
	p, ok := payloads[m.Msg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Msg)
	}
	if m.Kind != "" && m.Kind != p.kind {
		return nil, fmt.Errorf("%w: %q is sent as %s, got %s", ErrKindMismatch, m.Msg, p.kind, m.Kind)
	}
	v, err := New(p.typ)
	if err != nil {
		return nil, err
	}
	if err := decode(m.MsgData, v); err != nil {
		return nil, fmt.Errorf("decoding %s msg_data: %w", m.Msg, err)
	}
	return v, nil
}

// Policy returns the decode policy the named type declares.
func Policy(name string) (codec.Policy, error) {
	v, err := New(name)
	if err != nil {
		return codec.Lenient, err
	}
	if pp, ok := v.(codec.PolicyProvider); ok {
		return pp.DecodePolicy(), nil
	}
	return codec.Lenient, nil
}
