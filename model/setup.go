package model

import (
	"fmt"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/validate"
)

// SetupChangeEventType is the phase reported by a driver_setup_change event.
type SetupChangeEventType string

const (
	SetupEventStart SetupChangeEventType = "START"
	SetupEventSetup SetupChangeEventType = "SETUP"
	SetupEventStop  SetupChangeEventType = "STOP"
)

var setupChangeEventTypes = codec.NewTokens("setup change event type",
	SetupEventStart,
	SetupEventSetup,
	SetupEventStop,
)

// AllSetupChangeEventTypes returns every setup change event type in wire order.
func AllSetupChangeEventTypes() []SetupChangeEventType { return setupChangeEventTypes.All() }

func (v SetupChangeEventType) Valid() bool                   { return setupChangeEventTypes.Contains(v) }
func (v SetupChangeEventType) MarshalText() ([]byte, error)  { return setupChangeEventTypes.Marshal(v) }
func (v *SetupChangeEventType) UnmarshalText(b []byte) error { return setupChangeEventTypes.Unmarshal(v, b) }

// IntegrationSetupState is the state of a driver setup flow.
type IntegrationSetupState string

const (
	SetupStateNew            IntegrationSetupState = "NEW"
	SetupStateSetup          IntegrationSetupState = "SETUP"
	SetupStateWaitUserAction IntegrationSetupState = "WAIT_USER_ACTION"
	SetupStateOK             IntegrationSetupState = "OK"
	SetupStateError          IntegrationSetupState = "ERROR"
)

var integrationSetupStates = codec.NewTokens("integration setup state",
	SetupStateNew,
	SetupStateSetup,
	SetupStateWaitUserAction,
	SetupStateOK,
	SetupStateError,
)

// AllIntegrationSetupStates returns every integration setup state in wire order.
func AllIntegrationSetupStates() []IntegrationSetupState { return integrationSetupStates.All() }

func (v IntegrationSetupState) Valid() bool                   { return integrationSetupStates.Contains(v) }
func (v IntegrationSetupState) MarshalText() ([]byte, error)  { return integrationSetupStates.Marshal(v) }
func (v *IntegrationSetupState) UnmarshalText(b []byte) error { return integrationSetupStates.Unmarshal(v, b) }

// IntegrationSetupError is the reason a driver setup flow failed.
type IntegrationSetupError string

const (
	SetupErrorNone               IntegrationSetupError = "NONE"
	SetupErrorNotFound           IntegrationSetupError = "NOT_FOUND"
	SetupErrorConnectionRefused  IntegrationSetupError = "CONNECTION_REFUSED"
	SetupErrorAuthorizationError IntegrationSetupError = "AUTHORIZATION_ERROR"
	SetupErrorTimeout            IntegrationSetupError = "TIMEOUT"
	SetupErrorOther              IntegrationSetupError = "OTHER"
)

var integrationSetupErrors = codec.NewTokens("integration setup error",
	SetupErrorNone,
	SetupErrorNotFound,
	SetupErrorConnectionRefused,
	SetupErrorAuthorizationError,
	SetupErrorTimeout,
	SetupErrorOther,
)

// AllIntegrationSetupErrors returns every integration setup error in wire order.
func AllIntegrationSetupErrors() []IntegrationSetupError { return integrationSetupErrors.All() }

func (v IntegrationSetupError) Valid() bool                   { return integrationSetupErrors.Contains(v) }
func (v IntegrationSetupError) MarshalText() ([]byte, error)  { return integrationSetupErrors.Marshal(v) }
func (v *IntegrationSetupError) UnmarshalText(b []byte) error { return integrationSetupErrors.Unmarshal(v, b) }

// RequireUserAction asks the user for input during driver setup. Exactly one
// of Input and Confirmation is set.
type RequireUserAction struct {
	Input        *SettingsPage     `json:"input,omitempty"`
	Confirmation *ConfirmationPage `json:"confirmation,omitempty"`
}

// Validate checks that exactly one action is present and validates it.
func (a RequireUserAction) Validate() error {
	c := validate.New()
	switch {
	case a.Input == nil && a.Confirmation == nil:
		c.Add("", validate.ConstraintRequired, "one of input or confirmation is required")
	case a.Input != nil && a.Confirmation != nil:
		c.Add("", validate.ConstraintConsistency, "input and confirmation are mutually exclusive")
	case a.Input != nil:
		c.Nested("input", a.Input.Validate())
	default:
		c.Nested("confirmation", a.Confirmation.Validate())
	}
	return c.Err()
}

// UserInputAction returns a RequireUserAction asking for a settings page.
func UserInputAction(page SettingsPage) RequireUserAction {
	return RequireUserAction{Input: &page}
}

// UserConfirmationAction returns a RequireUserAction asking for confirmation.
func UserConfirmationAction(page ConfirmationPage) RequireUserAction {
	return RequireUserAction{Confirmation: &page}
}

// String implements fmt.Stringer for log output.
func (a RequireUserAction) String() string {
	switch {
	case a.Input != nil:
		return fmt.Sprintf("input(%d settings)", len(a.Input.Settings))
	case a.Confirmation != nil:
		return "confirmation"
	default:
		return "none"
	}
}
