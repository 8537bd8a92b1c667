package model

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/validate"
)

// ConfirmationPage asks the user to confirm a setup step, optionally with
// an image between the two messages.
type ConfirmationPage struct {
	Title    LanguageText `json:"title"`
	Message1 LanguageText `json:"message1,omitempty"`
	// Image is a base64 encoded image or an image URL.
	Image    string       `json:"image,omitempty"`
	Message2 LanguageText `json:"message2,omitempty"`
}

// Validate requires a title.
func (p ConfirmationPage) Validate() error {
	c := validate.New()
	c.Required("title", len(p.Title) > 0)
	return c.Err()
}

// SettingsPage is a form shown to the user during driver setup.
type SettingsPage struct {
	Title    LanguageText `json:"title"`
	Settings []Setting    `json:"settings"`
}

// Validate checks the title and every setting. Setting ids must be unique.
func (p SettingsPage) Validate() error {
	c := validate.New()
	c.Required("title", len(p.Title) > 0)
	seen := make(map[string]struct{}, len(p.Settings))
	for i, s := range p.Settings {
		field := fmt.Sprintf("settings[%d]", i)
		c.Nested(field, s.Validate())
		if _, dup := seen[s.ID]; dup {
			c.Add(field+".id", validate.ConstraintConsistency, "duplicate setting id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return c.Err()
}

// Setting is one input of a settings page.
type Setting struct {
	ID    string       `json:"id"`
	Label LanguageText `json:"label"`
	Field Field        `json:"field"`
}

// Validate checks the id length and the input field.
func (s Setting) Validate() error {
	c := validate.New()
	c.Rule("id", "setting_id", s.ID)
	c.Nested("field", s.Field.Validate())
	return c.Err()
}

// Field is the input widget of a setting. Exactly one variant is set; the
// wire object is keyed by the variant name, e.g. {"checkbox":{"value":true}}.
type Field struct {
	Number   *NumberField   `json:"number,omitempty"`
	Text     *TextField     `json:"text,omitempty"`
	Textarea *TextareaField `json:"textarea,omitempty"`
	Password *PasswordField `json:"password,omitempty"`
	Checkbox *CheckboxField `json:"checkbox,omitempty"`
	Dropdown *DropdownField `json:"dropdown,omitempty"`
	Label    *LabelField    `json:"label,omitempty"`
}

// Kind returns the wire name of the variant that is set, or "" if none is.
// With more than one variant set the first in declaration order wins.
func (f Field) Kind() string {
	switch {
	case f.Number != nil:
		return "number"
	case f.Text != nil:
		return "text"
	case f.Textarea != nil:
		return "textarea"
	case f.Password != nil:
		return "password"
	case f.Checkbox != nil:
		return "checkbox"
	case f.Dropdown != nil:
		return "dropdown"
	case f.Label != nil:
		return "label"
	}
	return ""
}

func (f Field) count() int {
	n := 0
	for _, set := range []bool{
		f.Number != nil, f.Text != nil, f.Textarea != nil, f.Password != nil,
		f.Checkbox != nil, f.Dropdown != nil, f.Label != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Validate checks that exactly one variant is set and validates it.
func (f Field) Validate() error {
	c := validate.New()
	switch f.count() {
	case 0:
		c.Add("", validate.ConstraintRequired, "a field variant is required")
		return c.Err()
	case 1:
	default:
		c.Add("", validate.ConstraintConsistency, "only one field variant may be set")
		return c.Err()
	}
	switch {
	case f.Number != nil:
		c.Nested("number", f.Number.Validate())
	case f.Dropdown != nil:
		c.Nested("dropdown", f.Dropdown.Validate())
	case f.Label != nil:
		c.Required("label.value", len(f.Label.Value) > 0)
	}
	return c.Err()
}

// NumberField is a numeric input.
type NumberField struct {
	Value    IntOrFloat   `json:"value"`
	Min      *IntOrFloat  `json:"min,omitempty"`
	Max      *IntOrFloat  `json:"max,omitempty"`
	Steps    *int32       `json:"steps,omitempty"`
	Decimals *uint8       `json:"decimals,omitempty"`
	Unit     LanguageText `json:"unit,omitempty"`
}

// Validate checks that min <= value <= max where the bounds are set.
func (n NumberField) Validate() error {
	c := validate.New()
	if n.Min != nil && n.Max != nil && n.Min.Value > n.Max.Value {
		c.Add("min", validate.ConstraintConsistency, "min %v exceeds max %v", n.Min.Value, n.Max.Value)
	}
	if n.Min != nil && n.Value.Value < n.Min.Value {
		c.Add("value", validate.ConstraintRange, "%v is below min %v", n.Value.Value, n.Min.Value)
	}
	if n.Max != nil && n.Value.Value > n.Max.Value {
		c.Add("value", validate.ConstraintRange, "%v is above max %v", n.Value.Value, n.Max.Value)
	}
	if n.Steps != nil && *n.Steps <= 0 {
		c.Add("steps", validate.ConstraintRange, "must be positive")
	}
	return c.Err()
}

// TextField is a single line text input with an optional validation regex.
type TextField struct {
	Value *string `json:"value,omitempty"`
	Regex string  `json:"regex,omitempty"`
}

// TextareaField is a multi line text input.
type TextareaField struct {
	Value *string `json:"value,omitempty"`
}

// PasswordField is a masked text input.
type PasswordField struct {
	Value *string `json:"value,omitempty"`
	Regex string  `json:"regex,omitempty"`
}

// CheckboxField is a boolean input.
type CheckboxField struct {
	Value bool `json:"value"`
}

// DropdownField is a single choice input.
type DropdownField struct {
	// Value is the id of the preselected item.
	Value string         `json:"value,omitempty"`
	Items []DropdownItem `json:"items"`
}

// Validate checks every item id and that a preselected value is one of them.
func (d DropdownField) Validate() error {
	c := validate.New()
	ids := make([]string, 0, len(d.Items))
	for i, item := range d.Items {
		c.Rule(fmt.Sprintf("items[%d].id", i), "dropdown_item_id", item.ID)
		ids = append(ids, item.ID)
	}
	if d.Value != "" && !slices.Contains(ids, d.Value) {
		c.Add("value", validate.ConstraintConsistency, "%q is not an item id", d.Value)
	}
	return c.Err()
}

// DropdownItem is one choice of a dropdown.
type DropdownItem struct {
	ID    string       `json:"id"`
	Label LanguageText `json:"label"`
}

// LabelField is read-only text shown on a settings page.
type LabelField struct {
	Value LanguageText `json:"value"`
}

// IntOrFloat is a settings number that remembers whether it was written as
// an integer or a floating point value, so that it is sent back the same way.
type IntOrFloat struct {
	Value   float64 `json:"-"`
	IsFloat bool    `json:"-"`
}

// Int returns an integer IntOrFloat.
func Int(v int32) IntOrFloat {
	return IntOrFloat{Value: float64(v)}
}

// Float returns a floating point IntOrFloat.
func Float(v float64) IntOrFloat {
	return IntOrFloat{Value: v, IsFloat: true}
}

// Int32 returns the value rounded to the nearest integer.
func (n IntOrFloat) Int32() int32 {
	return int32(math.Round(n.Value))
}

// Representable reports whether n can be written in its own form: a float
// must be finite, an integer must be whole and fit in an int32.
func (n IntOrFloat) Representable() error {
	switch {
	case math.IsNaN(n.Value) || math.IsInf(n.Value, 0):
		return fmt.Errorf("%v is not a finite number", n.Value)
	case n.IsFloat:
		return nil
	case n.Value != math.Trunc(n.Value):
		return fmt.Errorf("integer %v has a fraction part", n.Value)
	case n.Value < math.MinInt32 || n.Value > math.MaxInt32:
		return fmt.Errorf("integer %v is outside the int32 range", n.Value)
	}
	return nil
}

// MarshalJSON writes integers without and floats with a fraction part.
func (n IntOrFloat) MarshalJSON() ([]byte, error) {
	if err := n.Representable(); err != nil {
		return nil, &codec.EncodeError{Reason: err.Error()}
	}
	if !n.IsFloat {
		return strconv.AppendInt(nil, int64(n.Value), 10), nil
	}
	s := strconv.FormatFloat(n.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return []byte(s), nil
}

// UnmarshalJSON accepts any JSON number. Numbers with a fraction or exponent,
// and integers outside the int32 range, decode as floats.
func (n *IntOrFloat) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if s == "null" {
		return nil
	}
	if !strings.ContainsAny(s, ".eE") {
		if v, err := strconv.ParseInt(s, 10, 32); err == nil {
			*n = Int(int32(v))
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("expected a number, got %s", s)
	}
	*n = Float(f)
	return nil
}
