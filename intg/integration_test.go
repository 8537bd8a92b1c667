package intg

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/model"
	"github.com/nerrad567/ucapi/validate"
)

func testIntegration() Integration {
	return Integration{
		IntegrationID: "denon.main",
		DriverID:      "uc_denon_driver",
		Name:          model.NewLanguageText("Living room AVR"),
		Icon:          "uc:receiver",
		Enabled:       true,
		SetupData:     map[string]any{"address": "192.168.1.40", "volume_steps": float64(80), "zone2": false},
		DeviceState:   DeviceConnected,
	}
}

func TestIntegrationRoundTrip(t *testing.T) {
	in := testIntegration()
	in.IntegrationID = "denon-main"
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	data, err := codec.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got Integration
	if err := codec.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %+v, want %+v", got, in)
	}
}

func TestIntegrationValidate(t *testing.T) {
	in := testIntegration()
	in.SetupData = nil

	errs, ok := validate.AsErrors(in.Validate())
	if !ok {
		t.Fatal("Validate() = nil")
	}
	for _, w := range []struct{ field, constraint string }{
		{"integration_id", validate.ConstraintPattern},
		{"setup_data", validate.ConstraintRequired},
	} {
		if !errs.Has(w.field, w.constraint) {
			t.Errorf("Validate() = %v, want %s/%s", errs, w.field, w.constraint)
		}
	}
}

func TestIntegrationValidateEmptyIDs(t *testing.T) {
	in := testIntegration()
	in.IntegrationID = ""
	in.DriverID = ""

	errs, ok := validate.AsErrors(in.Validate())
	if !ok {
		t.Fatal("Validate() = nil")
	}
	for _, field := range []string{"integration_id", "driver_id"} {
		if !errs.Has(field, validate.ConstraintLength) {
			t.Errorf("Validate() = %v, want %s/%s", errs, field, validate.ConstraintLength)
		}
	}

	var got Integration
	err := codec.Unmarshal([]byte(`{"integration_id":"","driver_id":"d","name":{"en":"x"},"enabled":true,"setup_data":{}}`), &got)
	if !errors.Is(err, codec.ErrInvalidValue) {
		t.Errorf("Unmarshal() error = %v, want ErrInvalidValue", err)
	}
}

func TestIntegrationUpdate(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantKind  error
		wantField string
	}{
		{"rename", `{"name":{"en":"Den"}}`, nil, ""},
		{"clear setup data", `{"setup_data":{}}`, nil, ""},
		{"unknown field", `{"name":{"en":"Den"},"state":"ACTIVE"}`, codec.ErrUnknownField, "state"},
		{"icon with slash", `{"icon":"uc/tv"}`, codec.ErrInvalidValue, "icon"},
		{"device id with space", `{"device_id":"a b"}`, codec.ErrInvalidValue, "device_id"},
		{"enabled wrong type", `{"enabled":"yes"}`, codec.ErrInvalidValue, "enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u IntegrationUpdate
			err := codec.Unmarshal([]byte(tt.payload), &u)
			if tt.wantKind == nil {
				if err != nil {
					t.Fatalf("Unmarshal() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantKind)
			}
			var de *codec.DecodeError
			if !errors.As(err, &de) || de.Field != tt.wantField {
				t.Errorf("Unmarshal() error = %v, want field %q", err, tt.wantField)
			}
		})
	}
}

func TestIntegrationApply(t *testing.T) {
	in := testIntegration()

	var u IntegrationUpdate
	if err := codec.Unmarshal([]byte(`{"enabled":false,"setup_data":{}}`), &u); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := in.Apply(u); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if in.Enabled || len(in.SetupData) != 0 || in.SetupData == nil {
		t.Errorf("Apply() = %+v, want disabled with empty setup data", in)
	}
	if in.Name.Text("en") != "Living room AVR" {
		t.Errorf("Apply() changed the name to %v", in.Name)
	}

	for _, u := range []IntegrationUpdate{
		{IntegrationID: ptr("other")},
		{DriverID: ptr("other")},
		{DeviceID: ptr("dev2")},
	} {
		if err := in.Apply(u); !errors.Is(err, ErrImmutableField) {
			t.Errorf("Apply(%+v) error = %v, want ErrImmutableField", u, err)
		}
	}

	orig := testIntegration()
	rebuilt := Integration{IntegrationID: orig.IntegrationID, DriverID: orig.DriverID, DeviceState: orig.DeviceState}
	if err := rebuilt.Apply(FromIntegration(orig)); err != nil {
		t.Fatalf("Apply(FromIntegration) error = %v", err)
	}
	if !reflect.DeepEqual(rebuilt, orig) {
		t.Errorf("Apply(FromIntegration(in)) = %+v, want %+v", rebuilt, orig)
	}
}

func TestNewIntegration(t *testing.T) {
	in, err := IntegrationUpdate{DriverID: ptr("hue"), Name: model.NewLanguageText("Hue")}.NewIntegration()
	if err != nil {
		t.Fatalf("NewIntegration() error = %v", err)
	}
	if _, err := uuid.Parse(in.IntegrationID); err != nil {
		t.Errorf("IntegrationID = %q, want a UUID", in.IntegrationID)
	}
	if !in.Enabled || in.SetupData == nil || in.DriverID != "hue" {
		t.Errorf("NewIntegration() = %+v", in)
	}
	if err := in.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	_, err = IntegrationUpdate{Name: model.NewLanguageText("Hue")}.NewIntegration()
	errs, _ := validate.AsErrors(err)
	if !errs.Has("driver_id", validate.ConstraintRequired) {
		t.Errorf("NewIntegration() error = %v, want driver_id required", err)
	}
}

func TestIntegrationStatus(t *testing.T) {
	tests := []struct {
		driver DriverState
		device DeviceState
		want   IntegrationState
	}{
		{DriverStateActive, DeviceConnected, StateConnected},
		{DriverStateActive, DeviceError, StateError},
		{DriverStateActive, "", StateActive},
		{DriverStateReconnecting, DeviceConnected, StateReconnecting},
		{DriverStateNotConfigured, "", StateNotConfigured},
		{"", "", StateUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			in := testIntegration()
			in.DeviceState = tt.device
			st := in.Status(IntegrationDriver{DriverType: DriverLocal, DriverState: tt.driver})
			if st.State != tt.want {
				t.Errorf("Status(%s, %s).State = %s, want %s", tt.driver, tt.device, st.State, tt.want)
			}
			if st.DriverType != DriverLocal || st.IntegrationID != in.IntegrationID {
				t.Errorf("Status() = %+v", st)
			}
		})
	}
}

func TestSubscribeEvents(t *testing.T) {
	var s SubscribeEvents
	if err := codec.Unmarshal([]byte(`{"entity_ids":[]}`), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	data, err := codec.Marshal(s)
	if err != nil || string(data) != `{"entity_ids":[]}` {
		t.Errorf("Marshal() = %s, %v", data, err)
	}

	err = codec.Unmarshal([]byte(`{"entity_ids":["ok","not ok"]}`), &s)
	var de *codec.DecodeError
	if !errors.As(err, &de) || de.Field != "entity_ids[1]" {
		t.Errorf("Unmarshal() error = %v, want entity_ids[1]", err)
	}
}

func TestSetupModels(t *testing.T) {
	t.Run("input values round trip", func(t *testing.T) {
		s := InputValues(map[string]string{})
		data, err := codec.Marshal(s)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if string(data) != `{"input_values":{}}` {
			t.Errorf("Marshal() = %s", data)
		}
		var got IntegrationSetup
		if err := codec.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if !reflect.DeepEqual(got, s) {
			t.Errorf("round trip = %+v, want %+v", got, s)
		}
	})

	t.Run("setup answer validation", func(t *testing.T) {
		no := false
		for _, tc := range []struct {
			setup IntegrationSetup
			field string
		}{
			{IntegrationSetup{}, ""},
			{IntegrationSetup{InputValues: map[string]string{}, Confirm: &no}, ""},
			{IntegrationSetup{Confirm: &no}, "confirm"},
		} {
			errs, ok := validate.AsErrors(tc.setup.Validate())
			if !ok || errs.FieldPath() != tc.field {
				t.Errorf("Validate(%+v) = %v, want violation on %q", tc.setup, errs, tc.field)
			}
		}
		if err := Confirmed().Validate(); err != nil {
			t.Errorf("Confirmed().Validate() error = %v", err)
		}
	})

	t.Run("setup change", func(t *testing.T) {
		payload := `{"event_type":"SETUP","state":"WAIT_USER_ACTION","require_user_action":` +
			`{"confirmation":{"title":{"en":"Press the link button"}}}}`
		var ch DriverSetupChange
		if err := codec.Unmarshal([]byte(payload), &ch); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if ch.RequireUserAction == nil || ch.RequireUserAction.Confirmation == nil {
			t.Fatalf("RequireUserAction = %+v", ch.RequireUserAction)
		}

		ch.State = model.SetupStateSetup
		errs, _ := validate.AsErrors(ch.Validate())
		if !errs.Has("require_user_action", validate.ConstraintConsistency) {
			t.Errorf("Validate() = %v, want require_user_action consistency", errs)
		}

		err := codec.Unmarshal([]byte(`{"event_type":"STOP","state":"DONE"}`), &ch)
		if !errors.Is(err, codec.ErrInvalidValue) {
			t.Errorf("Unmarshal(state DONE) error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("setup driver", func(t *testing.T) {
		var s SetupDriver
		err := codec.Unmarshal([]byte(`{"reconfigure":true}`), &s)
		if !errors.Is(err, codec.ErrMissingRequiredField) {
			t.Errorf("Unmarshal() error = %v, want ErrMissingRequiredField", err)
		}
		if err := codec.Unmarshal([]byte(`{"setup_data":{"address":"10.0.0.2"}}`), &s); err != nil {
			t.Errorf("Unmarshal() error = %v", err)
		}
	})
}
