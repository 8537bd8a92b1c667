package intg

import (
	"github.com/nerrad567/ucapi/model"
	"github.com/nerrad567/ucapi/validate"
)

// SetupDriver starts the setup flow of a driver.
type SetupDriver struct {
	// Reconfigure distinguishes a reconfiguration from a first setup.
	Reconfigure *bool `json:"reconfigure,omitempty"`
	// SetupData holds the input values of the initial setup page, keyed by
	// input field id.
	SetupData map[string]string `json:"setup_data"`
}

// Validate requires setup data, which may be empty.
func (s SetupDriver) Validate() error {
	c := validate.New()
	c.Required("setup_data", s.SetupData != nil)
	return c.Err()
}

// DriverSetupChange reports progress of a driver setup flow.
type DriverSetupChange struct {
	EventType         model.SetupChangeEventType  `json:"event_type"`
	State             model.IntegrationSetupState `json:"state"`
	Error             model.IntegrationSetupError `json:"error,omitempty"`
	RequireUserAction *model.RequireUserAction    `json:"require_user_action,omitempty"`
}

// Validate checks the tokens, and that a user action is only requested
// while the flow waits for one.
func (s DriverSetupChange) Validate() error {
	c := validate.New()
	c.Token("event_type", s.EventType)
	c.Token("state", s.State)
	c.OptionalToken("error", s.Error)
	if s.RequireUserAction != nil {
		c.Nested("require_user_action", s.RequireUserAction.Validate())
		if s.State != model.SetupStateWaitUserAction {
			c.Add("require_user_action", validate.ConstraintConsistency, "only allowed in state %s", model.SetupStateWaitUserAction)
		}
	}
	return c.Err()
}

// IntegrationSetup is the user's answer to a RequireUserAction. Exactly one
// of InputValues and Confirm is set.
type IntegrationSetup struct {
	// InputValues are the values entered on a settings page, keyed by input
	// field id.
	InputValues map[string]string `json:"input_values,omitzero"`
	// Confirm is always true; declining a confirmation aborts the setup.
	Confirm *bool `json:"confirm,omitempty"`
}

// InputValues answers a settings page.
func InputValues(values map[string]string) IntegrationSetup {
	return IntegrationSetup{InputValues: values}
}

// Confirmed answers a confirmation page.
func Confirmed() IntegrationSetup {
	ok := true
	return IntegrationSetup{Confirm: &ok}
}

// Validate checks that exactly one answer is given and that a confirmation
// is positive.
func (s IntegrationSetup) Validate() error {
	c := validate.New()
	switch {
	case s.InputValues == nil && s.Confirm == nil:
		c.Add("", validate.ConstraintRequired, "input_values or confirm is required")
	case s.InputValues != nil && s.Confirm != nil:
		c.Add("", validate.ConstraintConsistency, "only one of input_values and confirm may be set")
	case s.Confirm != nil && !*s.Confirm:
		c.Add("confirm", validate.ConstraintConsistency, "must be true")
	}
	return c.Err()
}
