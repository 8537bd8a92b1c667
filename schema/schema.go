// Package schema is the registry of every wire model type.
//
// Types are registered once at init under a package-qualified name
// ("intg.AvailableEntity", "ws.Message") and are read-only afterwards. The
// registry answers three questions:
//
//   - which Go type a wire type name refers to (Lookup, Decode)
//   - which payload type a WebSocket message carries (PayloadType, DecodePayload)
//   - whether the Go types still match the recorded wire contract (Drift)
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/core"
	"github.com/nerrad567/ucapi/entity"
	"github.com/nerrad567/ucapi/intg"
	"github.com/nerrad567/ucapi/intg/messages"
	"github.com/nerrad567/ucapi/model"
	"github.com/nerrad567/ucapi/ws"
)

var (
	// ErrUnknownType is returned for a type name that is not registered.
	ErrUnknownType = errors.New("schema: unknown type")

	// ErrUnknownMessage is returned for a message name without a known payload.
	ErrUnknownMessage = errors.New("schema: unknown message")

	// ErrKindMismatch is returned when a known message is sent with the wrong kind.
	ErrKindMismatch = errors.New("schema: message kind mismatch")
)

var types = map[string]reflect.Type{}

func register[T any](name string) {
	if _, dup := types[name]; dup {
		panic("schema: duplicate type " + name)
	}
	types[name] = reflect.TypeFor[T]()
}

func init() {
	register[ws.Message]("ws.Message")
	register[ws.Request]("ws.Request")
	register[ws.Response]("ws.Response")
	register[ws.Event]("ws.Event")
	register[ws.ResultMsgData]("ws.ResultMsgData")

	register[model.Oauth2Token]("model.Oauth2Token")
	register[model.SettingsPage]("model.SettingsPage")
	register[model.Setting]("model.Setting")
	register[model.Field]("model.Field")
	register[model.DropdownItem]("model.DropdownItem")
	register[model.ConfirmationPage]("model.ConfirmationPage")
	register[model.RequireUserAction]("model.RequireUserAction")

	register[entity.LightOptions]("entity.LightOptions")
	register[entity.ClimateOptions]("entity.ClimateOptions")
	register[entity.MediaPlayerOptions]("entity.MediaPlayerOptions")
	register[entity.RemoteOptions]("entity.RemoteOptions")
	register[entity.SensorOptions]("entity.SensorOptions")
	register[entity.BrightnessRange]("entity.BrightnessRange")

	register[intg.AvailableEntity]("intg.AvailableEntity")
	register[intg.EntityCommand]("intg.EntityCommand")
	register[intg.EntityChange]("intg.EntityChange")
	register[intg.IntegrationDriver]("intg.IntegrationDriver")
	register[intg.IntegrationDriverUpdate]("intg.IntegrationDriverUpdate")
	register[intg.IntegrationDriverInfo]("intg.IntegrationDriverInfo")
	register[intg.DriverDeveloper]("intg.DriverDeveloper")
	register[intg.DriverManifest]("intg.DriverManifest")
	register[intg.DriverFeature]("intg.DriverFeature")
	register[intg.Integration]("intg.Integration")
	register[intg.IntegrationUpdate]("intg.IntegrationUpdate")
	register[intg.IntegrationStatus]("intg.IntegrationStatus")
	register[intg.IntegrationVersion]("intg.IntegrationVersion")
	register[intg.SubscribeEvents]("intg.SubscribeEvents")
	register[intg.SetupDriver]("intg.SetupDriver")
	register[intg.DriverSetupChange]("intg.DriverSetupChange")
	register[intg.IntegrationSetup]("intg.IntegrationSetup")
	register[[]intg.EntityChange]("intg.EntityStates")

	register[messages.DriverVersionMsgData]("messages.DriverVersionMsgData")
	register[messages.DeviceStateMsgData]("messages.DeviceStateMsgData")
	register[messages.EntityAvailableMsgData]("messages.EntityAvailableMsgData")
	register[messages.EntityRemovedMsgData]("messages.EntityRemovedMsgData")
	register[messages.GetAvailableEntitiesMsgData]("messages.GetAvailableEntitiesMsgData")
	register[messages.AvailableEntitiesFilter]("messages.AvailableEntitiesFilter")
	register[messages.AvailableEntitiesMsgData]("messages.AvailableEntitiesMsgData")
	register[messages.RuntimeInfoMsgData]("messages.RuntimeInfoMsgData")
	register[messages.GenerateOauth2AuthURLMsgData]("messages.GenerateOauth2AuthURLMsgData")
	register[messages.Oauth2AuthURLMsgData]("messages.Oauth2AuthURLMsgData")
	register[messages.CreateOauth2CfgMsgData]("messages.CreateOauth2CfgMsgData")
	register[messages.GetOauth2TokenMsgData]("messages.GetOauth2TokenMsgData")
	register[messages.Oauth2TokenMsgData]("messages.Oauth2TokenMsgData")
	register[messages.DeleteOauth2TokenMsgData]("messages.DeleteOauth2TokenMsgData")
	register[messages.Oauth2AuthorizationMsgData]("messages.Oauth2AuthorizationMsgData")

	register[core.APIResponse]("core.APIResponse")
}

// Names returns every registered type name in sorted order.
func Names() []string {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the Go type registered under name.
func Lookup(name string) (reflect.Type, bool) {
	t, ok := types[name]
	return t, ok
}

// New returns a pointer to a zero value of the named type.
func New(name string) (any, error) {
	t, ok := types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return reflect.New(t).Interface(), nil
}

// Decode decodes data into a new value of the named type with the type's own
// decode policy and returns a pointer to it.
//
// Parameters:
//   - name: Registered type name, e.g. "intg.AvailableEntity"
//   - data: JSON document
//
// Returns:
//   - any: Pointer to the decoded value
//   - error: ErrUnknownType for an unregistered name, otherwise the *codec.DecodeError
func Decode(name string, data []byte) (any, error) {
	v, err := New(name)
	if err != nil {
		return nil, err
	}
	if err := codec.Unmarshal(data, v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodePolicy is Decode with an explicit decode policy.
func DecodePolicy(name string, data []byte, p codec.Policy) (any, error) {
	v, err := New(name)
	if err != nil {
		return nil, err
	}
	if err := codec.UnmarshalPolicy(data, v, p); err != nil {
		return nil, err
	}
	return v, nil
}
