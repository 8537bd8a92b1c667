package validate

import (
	"errors"
	"strings"
	"testing"
)

type level string

func (l level) Valid() bool { return l == "low" || l == "high" }

func TestDefaultTableRules(t *testing.T) {
	tests := []struct {
		name           string
		rule           string
		value          string
		wantConstraint string
	}{
		{"entity id ok", "entity_id", "light-1_kitchen", ""},
		{"entity id max length", "entity_id", strings.Repeat("a", 36), ""},
		{"entity id too long", "entity_id", strings.Repeat("a", 300), ConstraintLength},
		{"entity id empty", "entity_id", "", ConstraintLength},
		{"entity id bad chars", "entity_id", "light 1", ConstraintPattern},
		{"entity id dot not allowed", "entity_id", "light.1", ConstraintPattern},
		{"icon allows namespace", "icon", "uc:lightbulb", ""},
		{"icon bad chars", "icon", "uc/lightbulb", ConstraintPattern},
		{"device class length", "device_class", strings.Repeat("x", 21), ConstraintLength},
		{"length counts characters", "device_class", strings.Repeat("ü", 20), ""},
		{"feature name too short", "feature_name", "abc", ConstraintLength},
		{"url ok", "driver_url", "ws://192.168.1.20:9090", ""},
		{"url relative", "driver_url", "/just/a/path", ConstraintURL},
		{"email ok", "developer_email", "dev@example.com", ""},
		{"email with display name", "developer_email", "Dev <dev@example.com>", ConstraintEmail},
		{"oauth token id upper bound", "oauth2_token_id", strings.Repeat("t", 513), ConstraintLength},
	}

	table := DefaultTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := table.Check("field", tt.rule, tt.value)
			if tt.wantConstraint == "" {
				if len(errs) != 0 {
					t.Errorf("Check(%q) = %v, want no errors", tt.value, errs)
				}
				return
			}
			if !Errors(errs).Has("field", tt.wantConstraint) {
				t.Errorf("Check(%q) = %v, want %s violation", tt.value, errs, tt.wantConstraint)
			}
		})
	}
}

func TestParseTable(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"valid", "patterns:\n  p: '^a+$'\nrules:\n  r:\n    max: 3\n    pattern: p\n", false},
		{"bad regex", "patterns:\n  p: '('\nrules: {}\n", true},
		{"unknown pattern", "rules:\n  r:\n    pattern: nope\n", true},
		{"min above max", "rules:\n  r:\n    min: 5\n    max: 2\n", true},
		{"unknown format", "rules:\n  r:\n    format: phone\n", true},
		{"not yaml", "rules: [", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckerCollectsAll(t *testing.T) {
	c := New()
	c.Rule("entity_id", "entity_id", strings.Repeat("x", 40))
	c.RuleIfSet("area", "area", "")
	c.Required("name", false)
	c.Token("level", level("medium"))
	c.OptionalToken("other", level(""))
	c.Range("steps", 1, 2, 100)
	c.Rule("bogus", "no_such_rule", "x")

	err := c.Err()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Err() = %v, want ErrInvalid", err)
	}
	errs, ok := AsErrors(err)
	if !ok {
		t.Fatalf("AsErrors() ok = false")
	}

	want := []struct{ field, constraint string }{
		{"entity_id", ConstraintLength},
		{"name", ConstraintRequired},
		{"level", ConstraintEnum},
		{"steps", ConstraintRange},
		{"bogus", ConstraintUnknownRule},
	}
	if len(errs) != len(want) {
		t.Fatalf("got %d violations %v, want %d", len(errs), errs, len(want))
	}
	for _, w := range want {
		if !errs.Has(w.field, w.constraint) {
			t.Errorf("missing %s/%s in %v", w.field, w.constraint, errs)
		}
	}
	if errs.FieldPath() != "entity_id" {
		t.Errorf("FieldPath() = %q, want entity_id", errs.FieldPath())
	}
}

func TestCheckerNested(t *testing.T) {
	inner := New()
	inner.Rule("email", "developer_email", "nope")

	list := New()
	list.Nested("[2]", inner.Err())

	outer := New()
	outer.Nested("developer", inner.Err())
	outer.Nested("features", list.Err())
	outer.Nested("plain", errors.New("boom"))
	outer.Nested("ignored", nil)

	errs, _ := AsErrors(outer.Err())
	for _, w := range []struct{ field, constraint string }{
		{"developer.email", ConstraintEmail},
		{"features[2].email", ConstraintEmail},
		{"plain", ConstraintConsistency},
	} {
		if !errs.Has(w.field, w.constraint) {
			t.Errorf("missing %s/%s in %v", w.field, w.constraint, errs)
		}
	}
}

func TestCheckerNoErrors(t *testing.T) {
	c := New()
	c.Rule("entity_id", "entity_id", "ok")
	if err := c.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}
