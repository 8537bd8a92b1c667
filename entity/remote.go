package entity

import (
	"encoding/json"
	"fmt"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/validate"
)

// RemoteFeature is a capability of a remote entity.
type RemoteFeature string

const (
	RemoteFeatureOnOff    RemoteFeature = "on_off"
	RemoteFeatureSend     RemoteFeature = "send"
	RemoteFeatureStopSend RemoteFeature = "stop_send"
)

var remoteFeatures = codec.NewTokens("remote feature",
	RemoteFeatureOnOff,
	RemoteFeatureSend,
	RemoteFeatureStopSend,
)

// AllRemoteFeatures returns every remote feature in wire order.
func AllRemoteFeatures() []RemoteFeature { return remoteFeatures.All() }

func (v RemoteFeature) Valid() bool                   { return remoteFeatures.Contains(v) }
func (v RemoteFeature) MarshalText() ([]byte, error)  { return remoteFeatures.Marshal(v) }
func (v *RemoteFeature) UnmarshalText(b []byte) error { return remoteFeatures.Unmarshal(v, b) }

// RemoteCommand is a command accepted by a remote entity.
type RemoteCommand string

const (
	RemoteCommandOn       RemoteCommand = "on"
	RemoteCommandOff      RemoteCommand = "off"
	RemoteCommandSend     RemoteCommand = "send"
	RemoteCommandStopSend RemoteCommand = "stop_send"
)

var remoteCommands = codec.NewTokens("remote command",
	RemoteCommandOn,
	RemoteCommandOff,
	RemoteCommandSend,
	RemoteCommandStopSend,
)

// AllRemoteCommands returns every remote command in wire order.
func AllRemoteCommands() []RemoteCommand { return remoteCommands.All() }

func (v RemoteCommand) Valid() bool                   { return remoteCommands.Contains(v) }
func (v RemoteCommand) MarshalText() ([]byte, error)  { return remoteCommands.Marshal(v) }
func (v *RemoteCommand) UnmarshalText(b []byte) error { return remoteCommands.Unmarshal(v, b) }

// RemoteOption names a field of RemoteOptions.
type RemoteOption string

const (
	RemoteOptionSimpleCommands RemoteOption = "simple_commands"
	RemoteOptionButtonMapping  RemoteOption = "button_mapping"
	RemoteOptionUserInterface  RemoteOption = "user_interface"
)

var remoteOptions = codec.NewTokens("remote option",
	RemoteOptionSimpleCommands,
	RemoteOptionButtonMapping,
	RemoteOptionUserInterface,
)

// AllRemoteOptions returns every remote option in wire order.
func AllRemoteOptions() []RemoteOption { return remoteOptions.All() }

func (v RemoteOption) Valid() bool                   { return remoteOptions.Contains(v) }
func (v RemoteOption) MarshalText() ([]byte, error)  { return remoteOptions.Marshal(v) }
func (v *RemoteOption) UnmarshalText(b []byte) error { return remoteOptions.Unmarshal(v, b) }

// RemoteOptions is the option set of a remote entity as announced by an
// integration. Button mapping and user interface definitions are passed
// through untouched.
type RemoteOptions struct {
	// SimpleCommands lists the command identifiers usable with the send command.
	SimpleCommands []string        `json:"simple_commands,omitempty"`
	ButtonMapping  json.RawMessage `json:"button_mapping,omitempty"`
	UserInterface  json.RawMessage `json:"user_interface,omitempty"`
}

// EntityType returns TypeRemote.
func (RemoteOptions) EntityType() EntityType { return TypeRemote }

// Validate rejects empty command identifiers.
func (o RemoteOptions) Validate() error {
	c := validate.New()
	for i, cmd := range o.SimpleCommands {
		c.Required(fmt.Sprintf("simple_commands[%d]", i), cmd != "")
	}
	return c.Err()
}
