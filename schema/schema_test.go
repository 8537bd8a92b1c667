package schema

import (
	"encoding/json"
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/intg"
	"github.com/nerrad567/ucapi/intg/messages"
	"github.com/nerrad567/ucapi/ws"
)

func TestNoDrift(t *testing.T) {
	drift, err := Drift()
	if err != nil {
		t.Fatalf("Drift() error = %v", err)
	}
	for _, m := range drift {
		t.Errorf("drift: %s", m)
	}
}

func TestContractDrift(t *testing.T) {
	c, err := ParseContract([]byte(`
types:
  ws.ResultMsgData: [code, msg]
  ws.Legacy: [kind]
`))
	if err != nil {
		t.Fatalf("ParseContract() error = %v", err)
	}
	drift := c.Drift()

	byType := make(map[string]Mismatch, len(drift))
	for _, m := range drift {
		byType[m.Type] = m
	}
	if m := byType["ws.ResultMsgData"]; !reflect.DeepEqual(m.Missing, []string{"msg"}) || !reflect.DeepEqual(m.Extra, []string{"message"}) {
		t.Errorf("ws.ResultMsgData = %+v", m)
	}
	if !byType["ws.Legacy"].Unregistered {
		t.Errorf("ws.Legacy = %+v, want unregistered", byType["ws.Legacy"])
	}
	if !byType["intg.Integration"].Uncontracted {
		t.Errorf("intg.Integration = %+v, want uncontracted", byType["intg.Integration"])
	}
	if !slices.IsSortedFunc(drift, func(a, b Mismatch) int {
		if a.Type < b.Type {
			return -1
		}
		if a.Type > b.Type {
			return 1
		}
		return 0
	}) {
		t.Error("Drift() not sorted by type")
	}

	if _, err := ParseContract([]byte(`types: {}`)); err == nil {
		t.Error("ParseContract(empty) error = nil")
	}
}

func TestFieldsAndRequired(t *testing.T) {
	if got := Fields("intg.SubscribeEvents"); !reflect.DeepEqual(got, []string{"device_id", "entity_ids"}) {
		t.Errorf("Fields() = %v", got)
	}
	if got := Required("intg.SubscribeEvents"); !reflect.DeepEqual(got, []string{"entity_ids"}) {
		t.Errorf("Required() = %v", got)
	}
	if got := Required("intg.EntityStates"); !reflect.DeepEqual(got, []string{"entity_type", "entity_id", "attributes"}) {
		t.Errorf("Required(EntityStates) = %v", got)
	}
	if got := Required("ws.Message"); len(got) != 0 {
		t.Errorf("Required(ws.Message) = %v, want none", got)
	}
	if Fields("nope") != nil {
		t.Error("Fields(unknown) != nil")
	}
}

func TestDecode(t *testing.T) {
	v, err := Decode("intg.SubscribeEvents", []byte(`{"entity_ids":["light1"]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	s, ok := v.(*intg.SubscribeEvents)
	if !ok || !reflect.DeepEqual(s.EntityIDs, []string{"light1"}) {
		t.Errorf("Decode() = %#v", v)
	}

	if _, err := Decode("intg.Nope", []byte(`{}`)); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Decode(unknown) error = %v, want ErrUnknownType", err)
	}

	// strict by type
	_, err = Decode("intg.IntegrationUpdate", []byte(`{"colour":"red"}`))
	if !errors.Is(err, codec.ErrUnknownField) {
		t.Errorf("Decode(IntegrationUpdate) error = %v, want ErrUnknownField", err)
	}
	// forced strict
	_, err = DecodePolicy("intg.SubscribeEvents", []byte(`{"entity_ids":[],"x":1}`), codec.Strict)
	if !errors.Is(err, codec.ErrUnknownField) {
		t.Errorf("DecodePolicy(Strict) error = %v, want ErrUnknownField", err)
	}

	for name, want := range map[string]codec.Policy{
		"intg.IntegrationDriverUpdate": codec.Strict,
		"intg.IntegrationUpdate":       codec.Strict,
		"intg.IntegrationDriver":       codec.Lenient,
		"ws.Message":                   codec.Lenient,
	} {
		if got, err := Policy(name); err != nil || got != want {
			t.Errorf("Policy(%s) = %v, %v, want %v", name, got, err, want)
		}
	}
}

func TestPayloadTypesRegistered(t *testing.T) {
	for msg, p := range payloads {
		if _, ok := Lookup(p.typ); !ok {
			t.Errorf("message %q refers to unregistered type %q", msg, p.typ)
		}
		if !p.kind.Valid() {
			t.Errorf("message %q has kind %q", msg, p.kind)
		}
	}
	for _, ev := range messages.AllDriverEvents() {
		if ev == messages.DriverEventAuthRequired {
			continue
		}
		if _, _, ok := PayloadType(string(ev)); !ok {
			t.Errorf("driver event %q has no payload type", ev)
		}
	}
}

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name     string
		msg      ws.Message
		wantType any
		wantErr  error
	}{
		{
			name: "entity change event",
			msg: ws.Message{Kind: ws.KindEvent, Msg: "entity_change",
				MsgData: json.RawMessage(`{"entity_type":"switch","entity_id":"s1","attributes":{"state":"ON"}}`)},
			wantType: &intg.EntityChange{},
		},
		{
			name:     "entity states response",
			msg:      ws.Message{Kind: ws.KindResponse, Msg: "entity_states", MsgData: json.RawMessage(`[]`)},
			wantType: &[]intg.EntityChange{},
		},
		{
			name:     "kindless",
			msg:      ws.Message{Msg: "device_state", MsgData: json.RawMessage(`{"state":"CONNECTED"}`)},
			wantType: &messages.DeviceStateMsgData{},
		},
		{
			name:    "unknown message",
			msg:     ws.Message{Kind: ws.KindEvent, Msg: "fireworks"},
			wantErr: ErrUnknownMessage,
		},
		{
			name:    "wrong kind",
			msg:     ws.Message{Kind: ws.KindRequest, Msg: "entity_change"},
			wantErr: ErrKindMismatch,
		},
		{
			name:    "invalid payload",
			msg:     ws.Message{Kind: ws.KindEvent, Msg: "device_state", MsgData: json.RawMessage(`{"state":"ONLINE"}`)},
			wantErr: codec.ErrInvalidValue,
		},
		{
			name:    "missing payload",
			msg:     ws.Message{Kind: ws.KindRequest, Msg: "entity_command"},
			wantErr: codec.ErrMissingRequiredField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePayload(tt.msg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodePayload() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodePayload() error = %v", err)
			}
			if reflect.TypeOf(got) != reflect.TypeOf(tt.wantType) {
				t.Errorf("DecodePayload() = %T, want %T", got, tt.wantType)
			}
		})
	}
}

func TestDecodePayloadPolicy(t *testing.T) {
	m := ws.Message{Kind: ws.KindEvent, Msg: "device_state", MsgData: json.RawMessage(`{"state":"CONNECTED","bogus":1}`)}

	if _, err := DecodePayload(m); err != nil {
		t.Fatalf("DecodePayload() error = %v", err)
	}
	if _, err := DecodePayloadPolicy(m, codec.Lenient); err != nil {
		t.Fatalf("DecodePayloadPolicy(Lenient) error = %v", err)
	}
	_, err := DecodePayloadPolicy(m, codec.Strict)
	var de *codec.DecodeError
	if !errors.As(err, &de) || !errors.Is(err, codec.ErrUnknownField) || de.Field != "bogus" {
		t.Errorf("DecodePayloadPolicy(Strict) error = %v, want unknown field bogus", err)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if !slices.IsSorted(names) {
		t.Error("Names() not sorted")
	}
	if !slices.Contains(names, "intg.AvailableEntity") || !slices.Contains(names, "core.APIResponse") {
		t.Errorf("Names() = %v", names)
	}
}
