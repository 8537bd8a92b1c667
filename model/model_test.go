package model

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/validate"
)

func TestLanguageTextFallback(t *testing.T) {
	tests := []struct {
		name string
		text LanguageText
		lang string
		want string
	}{
		{"exact", LanguageText{"de": "Licht", "en": "Light"}, "de", "Licht"},
		{"falls back to en", LanguageText{"de": "Licht", "en": "Light"}, "fr", "Light"},
		{"falls back to en-UK", LanguageText{"de": "Licht", "en-UK": "Light (UK)"}, "fr", "Light (UK)"},
		{"en-UK before en-US", LanguageText{"en-US": "Light (US)", "en-UK": "Light (UK)"}, "it", "Light (UK)"},
		{"falls back to en-US", LanguageText{"de": "Licht", "en-US": "Light (US)"}, "fr", "Light (US)"},
		{"lowest key otherwise", LanguageText{"fr": "Lumière", "de": "Licht"}, "it", "Licht"},
		{"empty", LanguageText{}, "en", ""},
		{"nil", nil, "en", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.text.Text(tt.lang); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestIntOrFloat(t *testing.T) {
	tests := []struct {
		name  string
		value IntOrFloat
		wire  string
	}{
		{"int", Int(42), "42"},
		{"negative int", Int(-3), "-3"},
		{"float", Float(0.5), "0.5"},
		{"whole float keeps fraction", Float(21), "21.0"},
		{"large float", Float(1e30), "1e+30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.value.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(data) != tt.wire {
				t.Errorf("MarshalJSON() = %s, want %s", data, tt.wire)
			}
			var back IntOrFloat
			if err := back.UnmarshalJSON(data); err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}
			if back != tt.value {
				t.Errorf("round trip = %+v, want %+v", back, tt.value)
			}
		})
	}

	var big IntOrFloat
	if err := big.UnmarshalJSON([]byte("3000000000")); err != nil || !big.IsFloat {
		t.Errorf("UnmarshalJSON(out of int32 range) = %+v, %v; want float", big, err)
	}
	if Float(2.6).Int32() != 3 {
		t.Errorf("Int32() = %d, want 3", Float(2.6).Int32())
	}
}

func TestSettingsPageWire(t *testing.T) {
	payload := `{
		"title": {"en": "Setup"},
		"settings": [
			{"id": "address", "label": {"en": "Address"}, "field": {"text": {"value": "192.168.1.2"}}},
			{"id": "port", "label": {"en": "Port"}, "field": {"number": {"value": 8080, "min": 1, "max": 65535}}},
			{"id": "tls", "label": {"en": "TLS"}, "field": {"checkbox": {"value": false}}},
			{"id": "mode", "label": {"en": "Mode"}, "field": {"dropdown": {"value": "fast", "items": [
				{"id": "fast", "label": {"en": "Fast"}},
				{"id": "safe", "label": {"en": "Safe"}}
			]}}},
			{"id": "info", "label": {"en": "Info"}, "field": {"label": {"value": {"en": "Hello"}}}}
		]
	}`

	var page SettingsPage
	if err := codec.Unmarshal([]byte(payload), &page); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := page.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	kinds := make([]string, len(page.Settings))
	for i, s := range page.Settings {
		kinds[i] = s.Field.Kind()
	}
	if want := []string{"text", "number", "checkbox", "dropdown", "label"}; !reflect.DeepEqual(kinds, want) {
		t.Errorf("field kinds = %v, want %v", kinds, want)
	}
	if page.Settings[1].Field.Number.Value != Int(8080) {
		t.Errorf("port value = %+v", page.Settings[1].Field.Number.Value)
	}

	data, err := codec.Marshal(page)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var back SettingsPage
	if err := codec.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal(round trip) error = %v", err)
	}
	if !reflect.DeepEqual(page, back) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, page)
	}
}

func TestSettingsDecodeErrors(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantKind  error
		wantField string
	}{
		{
			name:      "checkbox without value",
			payload:   `{"title":{"en":"x"},"settings":[{"id":"a","label":{},"field":{"checkbox":{}}}]}`,
			wantKind:  codec.ErrMissingRequiredField,
			wantField: "settings[0].field.checkbox.value",
		},
		{
			name:      "number as string",
			payload:   `{"title":{"en":"x"},"settings":[{"id":"a","label":{},"field":{"number":{"value":"ten"}}}]}`,
			wantKind:  codec.ErrInvalidValue,
			wantField: "settings[0].field.number.value",
		},
		{
			name:      "empty setting id",
			payload:   `{"title":{"en":"x"},"settings":[{"id":"","label":{},"field":{"checkbox":{"value":true}}}]}`,
			wantKind:  codec.ErrInvalidValue,
			wantField: "settings[0].id",
		},
		{
			name:      "missing settings",
			payload:   `{"title":{"en":"x"}}`,
			wantKind:  codec.ErrMissingRequiredField,
			wantField: "settings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var page SettingsPage
			err := codec.Unmarshal([]byte(tt.payload), &page)
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantKind)
			}
			var de *codec.DecodeError
			if errors.As(err, &de) && de.Field != tt.wantField {
				t.Errorf("DecodeError.Field = %q, want %q", de.Field, tt.wantField)
			}
		})
	}
}

func TestFieldValidate(t *testing.T) {
	lo, hi := Int(10), Int(1)
	tests := []struct {
		name           string
		field          Field
		wantField      string
		wantConstraint string
	}{
		{"empty", Field{}, "", validate.ConstraintRequired},
		{"two variants", Field{Text: &TextField{}, Checkbox: &CheckboxField{}}, "", validate.ConstraintConsistency},
		{"number bounds", Field{Number: &NumberField{Value: Int(5), Min: &lo, Max: &hi}}, "number.min", validate.ConstraintConsistency},
		{"number below min", Field{Number: &NumberField{Value: Int(5), Min: &lo}}, "number.value", validate.ConstraintRange},
		{"dropdown unknown value", Field{Dropdown: &DropdownField{Value: "x", Items: []DropdownItem{{ID: "a"}}}}, "dropdown.value", validate.ConstraintConsistency},
		{"dropdown empty item id", Field{Dropdown: &DropdownField{Items: []DropdownItem{{ID: ""}}}}, "dropdown.items[0].id", validate.ConstraintLength},
		{"label without text", Field{Label: &LabelField{}}, "label.value", validate.ConstraintRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := validate.AsErrors(tt.field.Validate())
			if !ok {
				t.Fatal("Validate() returned no violations")
			}
			if !errs.Has(tt.wantField, tt.wantConstraint) {
				t.Errorf("Validate() = %v, want %q/%s", errs, tt.wantField, tt.wantConstraint)
			}
		})
	}
}

func TestSettingsPageDuplicateIDs(t *testing.T) {
	page := SettingsPage{
		Title: NewLanguageText("Setup"),
		Settings: []Setting{
			{ID: "a", Field: Field{Checkbox: &CheckboxField{}}},
			{ID: "a", Field: Field{Checkbox: &CheckboxField{Value: true}}},
		},
	}
	errs, _ := validate.AsErrors(page.Validate())
	if !errs.Has("settings[1].id", validate.ConstraintConsistency) {
		t.Errorf("Validate() = %v, want duplicate id violation", errs)
	}
}

func TestRequireUserAction(t *testing.T) {
	page := SettingsPage{Title: NewLanguageText("Pair"), Settings: []Setting{}}
	input := UserInputAction(page)
	if err := input.Validate(); err != nil {
		t.Errorf("Validate(input) error = %v", err)
	}

	data, err := codec.Marshal(UserConfirmationAction(ConfirmationPage{Title: NewLanguageText("Press the button")}))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"confirmation":{"title":{"en":"Press the button"}}}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	if err := (RequireUserAction{}).Validate(); !errors.Is(err, validate.ErrInvalid) {
		t.Errorf("Validate(empty) error = %v, want ErrInvalid", err)
	}
	both := RequireUserAction{Input: &page, Confirmation: &ConfirmationPage{Title: NewLanguageText("x")}}
	if errs, _ := validate.AsErrors(both.Validate()); !errs.Has("", validate.ConstraintConsistency) {
		t.Errorf("Validate(both) = %v, want consistency violation", errs)
	}
}

func TestSetupEnums(t *testing.T) {
	var state IntegrationSetupState
	if err := codec.Unmarshal([]byte(`"WAIT_USER_ACTION"`), &state); err != nil || state != SetupStateWaitUserAction {
		t.Errorf("Unmarshal(WAIT_USER_ACTION) = %q, %v", state, err)
	}
	if err := codec.Unmarshal([]byte(`"wait_user_action"`), &state); !errors.Is(err, codec.ErrInvalidValue) {
		t.Errorf("Unmarshal(lower case) error = %v, want ErrInvalidValue", err)
	}
	if got := len(AllIntegrationSetupErrors()); got != 6 {
		t.Errorf("AllIntegrationSetupErrors() len = %d, want 6", got)
	}
	if got := len(AllSetupChangeEventTypes()); got != 3 {
		t.Errorf("AllSetupChangeEventTypes() len = %d, want 3", got)
	}
}

func TestOauth2Token(t *testing.T) {
	expiry := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	in := uint64(3600)
	tok := Oauth2Token{AccessToken: "abc", TokenType: "Bearer", ExpiresIn: &in, ExpiresAt: &expiry}

	data, err := codec.Marshal(tok)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var back Oauth2Token
	if err := codec.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(tok, back) {
		t.Errorf("round trip = %+v, want %+v", back, tok)
	}

	if !tok.Expired(expiry) || tok.Expired(expiry.Add(-time.Second)) {
		t.Error("Expired() boundary mismatch")
	}
	if (Oauth2Token{}).Expired(time.Now()) {
		t.Error("token without expiry reported expired")
	}

	if err := codec.Unmarshal([]byte(`{"token_type":"Bearer"}`), &back); !errors.Is(err, codec.ErrMissingRequiredField) {
		t.Errorf("Unmarshal(no access_token) error = %v", err)
	}
}

func TestIntOrFloatUnrepresentable(t *testing.T) {
	tests := []struct {
		name  string
		value IntOrFloat
	}{
		{"int above int32", IntOrFloat{Value: 3e9}},
		{"int below int32", IntOrFloat{Value: -3e9}},
		{"int with fraction", IntOrFloat{Value: 1.5}},
		{"infinite float", Float(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.value.MarshalJSON(); !errors.Is(err, codec.ErrUnrepresentable) {
				t.Errorf("MarshalJSON() error = %v, want ErrUnrepresentable", err)
			}
			_, err := codec.Marshal(NumberField{Value: tt.value})
			var ee *codec.EncodeError
			if !errors.As(err, &ee) {
				t.Fatalf("Marshal() error = %v, want *codec.EncodeError", err)
			}
			if ee.Field != "value" {
				t.Errorf("EncodeError.Field = %q, want value", ee.Field)
			}
		})
	}

	for _, v := range []IntOrFloat{Int(math.MaxInt32), Int(math.MinInt32), Float(1.5), Float(3e9)} {
		if err := v.Representable(); err != nil {
			t.Errorf("Representable(%+v) = %v", v, err)
		}
	}
}

func TestNumberFieldNaN(t *testing.T) {
	_, err := codec.Marshal(NumberField{Value: Float(math.NaN())})
	var ee *codec.EncodeError
	if !errors.As(err, &ee) {
		t.Fatalf("Marshal(NaN) error = %v, want *codec.EncodeError", err)
	}
	if ee.Field != "value" {
		t.Errorf("EncodeError.Field = %q, want value", ee.Field)
	}
}
