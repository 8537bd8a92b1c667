// Package ws contains the WebSocket message envelope shared by the Core and
// Integration APIs.
//
// Every frame is a JSON object with a kind (req, resp or event) and a message
// name. Requests carry a correlation id that the matching response echoes in
// req_id. Events carry no correlation id.
//
// Message is the loosely typed form used when the kind is not yet known.
// Request, Response and Event are the typed forms; each converts to and from
// a Message.
package ws

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/validate"
)

// Message is a best-effort generic envelope. All fields are optional on the
// wire. Top-level fields this type does not declare are kept in Extra and
// written back on encoding.
type Message struct {
	Kind    Kind            `json:"kind,omitempty"`
	ID      *uint32         `json:"id,omitempty"`
	ReqID   *uint32         `json:"req_id,omitempty"`
	Msg     string          `json:"msg,omitempty"`
	Code    *uint16         `json:"code,omitempty"`
	Cat     EventCategory   `json:"cat,omitempty"`
	TS      *time.Time      `json:"ts,omitempty"`
	MsgData json.RawMessage `json:"msg_data,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// messageFields has the wire fields of Message without its JSON methods.
type messageFields struct {
	Kind    Kind            `json:"kind,omitempty"`
	ID      *uint32         `json:"id,omitempty"`
	ReqID   *uint32         `json:"req_id,omitempty"`
	Msg     string          `json:"msg,omitempty"`
	Code    *uint16         `json:"code,omitempty"`
	Cat     EventCategory   `json:"cat,omitempty"`
	TS      *time.Time      `json:"ts,omitempty"`
	MsgData json.RawMessage `json:"msg_data,omitempty"`
}

var messageKeys = []string{"kind", "id", "req_id", "msg", "code", "cat", "ts", "msg_data"}

// WireShape describes the declared envelope fields to the structural checker.
func (*Message) WireShape(map[string]json.RawMessage) codec.Shape {
	return codec.Shape{Of: (*messageFields)(nil)}
}

// MarshalJSON writes the declared fields followed by Extra in key order.
// Extra keys that collide with a declared field are dropped.
func (m Message) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(messageFields{
		Kind: m.Kind, ID: m.ID, ReqID: m.ReqID, Msg: m.Msg,
		Code: m.Code, Cat: m.Cat, TS: m.TS, MsgData: m.MsgData,
	})
	if err != nil || len(m.Extra) == 0 {
		return data, err
	}

	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		if !slices.Contains(messageKeys, k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	first := len(data) == 2
	for _, k := range keys {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		var compact bytes.Buffer
		if err := json.Compact(&compact, m.Extra[k]); err != nil {
			return nil, fmt.Errorf("extra field %q: %w", k, err)
		}
		buf.Write(compact.Bytes())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the declared fields and collects the rest into Extra.
func (m *Message) UnmarshalJSON(data []byte) error {
	var f messageFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	*m = Message{
		Kind: f.Kind, ID: f.ID, ReqID: f.ReqID, Msg: f.Msg,
		Code: f.Code, Cat: f.Cat, TS: f.TS, MsgData: f.MsgData,
	}
	for k, v := range all {
		if slices.Contains(messageKeys, k) {
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]json.RawMessage)
		}
		m.Extra[k] = v
	}
	return nil
}

// Validate checks the correlation rules of the message kind: a request has an
// id and no req_id, a response has a req_id and a code, and an event has
// neither id.
func (m Message) Validate() error {
	c := validate.New()
	c.Token("kind", m.Kind)
	c.OptionalToken("cat", m.Cat)

	switch m.Kind {
	case KindRequest:
		c.Required("id", m.ID != nil)
		if m.ReqID != nil {
			c.Add("req_id", validate.ConstraintConsistency, "not allowed in a request")
		}
		c.Rule("msg", "msg", m.Msg)
	case KindResponse:
		c.Required("req_id", m.ReqID != nil)
		c.Required("code", m.Code != nil)
		if m.ID != nil {
			c.Add("id", validate.ConstraintConsistency, "not allowed in a response")
		}
	case KindEvent:
		if m.ID != nil {
			c.Add("id", validate.ConstraintConsistency, "not allowed in an event")
		}
		if m.ReqID != nil {
			c.Add("req_id", validate.ConstraintConsistency, "not allowed in an event")
		}
		c.Rule("msg", "msg", m.Msg)
	}
	return c.Err()
}

// Request returns the message as a typed request.
func (m Message) Request() (Request, error) {
	if m.Kind != KindRequest {
		return Request{}, fmt.Errorf("%w: message kind is %q", ErrWrongKind, m.Kind)
	}
	if err := m.Validate(); err != nil {
		return Request{}, err
	}
	return Request{Kind: m.Kind, ID: *m.ID, Msg: m.Msg, MsgData: m.MsgData}, nil
}

// Response returns the message as a typed response.
func (m Message) Response() (Response, error) {
	if m.Kind != KindResponse {
		return Response{}, fmt.Errorf("%w: message kind is %q", ErrWrongKind, m.Kind)
	}
	if err := m.Validate(); err != nil {
		return Response{}, err
	}
	return Response{Kind: m.Kind, ReqID: *m.ReqID, Msg: m.Msg, Code: *m.Code, MsgData: m.MsgData}, nil
}

// Event returns the message as a typed event.
func (m Message) Event() (Event, error) {
	if m.Kind != KindEvent {
		return Event{}, fmt.Errorf("%w: message kind is %q", ErrWrongKind, m.Kind)
	}
	if err := m.Validate(); err != nil {
		return Event{}, err
	}
	return Event{Kind: m.Kind, Msg: m.Msg, Cat: m.Cat, TS: m.TS, MsgData: m.MsgData}, nil
}

// DecodeData decodes msg_data into v. A missing payload decodes as an empty
// object, so a target without required fields still succeeds.
func DecodeData(data json.RawMessage, v any) error {
	return codec.Unmarshal(emptyAsObject(data), v)
}

// DecodeDataPolicy is DecodeData with an explicit decode policy.
func DecodeDataPolicy(data json.RawMessage, v any, p codec.Policy) error {
	return codec.UnmarshalPolicy(emptyAsObject(data), v, p)
}

func emptyAsObject(data json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage("{}")
	}
	return data
}
