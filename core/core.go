// Package core holds the models that only exist on the Core REST API.
package core

import (
	"fmt"
	"net/http"

	"github.com/nerrad567/ucapi/codec"
)

// RemoteOptionField names a remote entity option that can be patched on its
// own through the Core API.
type RemoteOptionField string

const (
	RemoteOptionEditable       RemoteOptionField = "editable"
	RemoteOptionSimpleCommands RemoteOptionField = "simple_commands"
	RemoteOptionButtonMapping  RemoteOptionField = "button_mapping"
	RemoteOptionUserInterface  RemoteOptionField = "user_interface"
)

var remoteOptionFields = codec.NewTokens("remote option field",
	RemoteOptionEditable,
	RemoteOptionSimpleCommands,
	RemoteOptionButtonMapping,
	RemoteOptionUserInterface,
)

// AllRemoteOptionFields returns every remote option field in wire order.
func AllRemoteOptionFields() []RemoteOptionField { return remoteOptionFields.All() }

func (v RemoteOptionField) Valid() bool                   { return remoteOptionFields.Contains(v) }
func (v RemoteOptionField) MarshalText() ([]byte, error)  { return remoteOptionFields.Marshal(v) }
func (v *RemoteOptionField) UnmarshalText(b []byte) error { return remoteOptionFields.Unmarshal(v, b) }

// APIResponse is the generic body of a Core REST response without a payload.
type APIResponse struct {
	// Code is the HTTP status code.
	Code    uint16 `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewAPIResponse returns a response with the standard status text as message.
func NewAPIResponse(code uint16) APIResponse {
	return APIResponse{Code: code, Message: http.StatusText(int(code))}
}

// OK reports whether the response carries a 2xx status.
func (r APIResponse) OK() bool {
	return r.Code >= 200 && r.Code < 300
}

func (r APIResponse) Error() string {
	if r.Message == "" {
		return fmt.Sprintf("core api: status %d", r.Code)
	}
	return fmt.Sprintf("core api: status %d: %s", r.Code, r.Message)
}
