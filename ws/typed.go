package ws

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/validate"
)

// ErrWrongKind is returned when a Message is converted to a typed form of a
// different kind.
var ErrWrongKind = errors.New("ws: wrong message kind")

// Request is a request message. Every request is answered by exactly one
// response with the same correlation id.
type Request struct {
	Kind    Kind            `json:"kind"`
	ID      uint32          `json:"id"`
	Msg     string          `json:"msg"`
	MsgData json.RawMessage `json:"msg_data,omitempty"`
}

// NewRequest builds a request with data encoded as msg_data. A nil data
// leaves msg_data out.
func NewRequest(id uint32, msg string, data any) (Request, error) {
	payload, err := encodeData(data)
	if err != nil {
		return Request{}, err
	}
	return Request{Kind: KindRequest, ID: id, Msg: msg, MsgData: payload}, nil
}

// NewSimpleRequest builds a request without payload.
func NewSimpleRequest(id uint32, msg string) Request {
	return Request{Kind: KindRequest, ID: id, Msg: msg}
}

// Validate checks the kind and the message name.
func (r Request) Validate() error {
	c := validate.New()
	if r.Kind != KindRequest {
		c.Add("kind", validate.ConstraintEnum, "must be %q", KindRequest)
	}
	c.Rule("msg", "msg", r.Msg)
	return c.Err()
}

// Message returns the request as a generic envelope.
func (r Request) Message() Message {
	id := r.ID
	return Message{Kind: r.Kind, ID: &id, Msg: r.Msg, MsgData: r.MsgData}
}

// Response answers the request with the same correlation id.
type Response struct {
	Kind    Kind            `json:"kind"`
	ReqID   uint32          `json:"req_id"`
	Msg     string          `json:"msg"`
	Code    uint16          `json:"code"`
	MsgData json.RawMessage `json:"msg_data,omitempty"`
}

// NewResponse builds a 200 response with data encoded as msg_data. If data
// cannot be encoded the response becomes a 500 result instead.
func NewResponse(reqID uint32, msg string, data any) Response {
	payload, err := encodeData(data)
	if err != nil {
		return NewErrorResponse(reqID, 500, ResultMsgData{
			Code:    ResultInternalError,
			Message: "Error serializing result",
		})
	}
	return Response{Kind: KindResponse, ReqID: reqID, Msg: msg, Code: 200, MsgData: payload}
}

// NewErrorResponse builds a result response carrying an error code and text.
func NewErrorResponse(reqID uint32, code uint16, data ResultMsgData) Response {
	payload, err := json.Marshal(data)
	if err != nil {
		payload = nil
	}
	return Response{Kind: KindResponse, ReqID: reqID, Msg: MsgResult, Code: code, MsgData: payload}
}

// NewResult builds a result response without payload.
func NewResult(reqID uint32, code uint16) Response {
	return Response{Kind: KindResponse, ReqID: reqID, Msg: MsgResult, Code: code}
}

// MissingField builds a 400 result naming a missing request field.
func MissingField(reqID uint32, field string) Response {
	return NewErrorResponse(reqID, 400, ResultMsgData{
		Code:    ResultBadRequest,
		Message: "Missing field: " + field,
	})
}

// NotFound builds a 404 result.
func NotFound(reqID uint32, message string) Response {
	return NewErrorResponse(reqID, 404, ResultMsgData{Code: ResultNotFound, Message: message})
}

// Validate checks the kind and the message name.
func (r Response) Validate() error {
	c := validate.New()
	if r.Kind != KindResponse {
		c.Add("kind", validate.ConstraintEnum, "must be %q", KindResponse)
	}
	c.Rule("msg", "msg", r.Msg)
	return c.Err()
}

// Message returns the response as a generic envelope.
func (r Response) Message() Message {
	reqID, code := r.ReqID, r.Code
	return Message{Kind: r.Kind, ReqID: &reqID, Msg: r.Msg, Code: &code, MsgData: r.MsgData}
}

// Event is an unsolicited message. It has no correlation id.
type Event struct {
	Kind    Kind            `json:"kind"`
	Msg     string          `json:"msg"`
	Cat     EventCategory   `json:"cat,omitempty"`
	TS      *time.Time      `json:"ts,omitempty"`
	MsgData json.RawMessage `json:"msg_data,omitempty"`
}

// NewEvent builds an event stamped with the current time.
func NewEvent(msg string, cat EventCategory, data any) (Event, error) {
	payload, err := encodeData(data)
	if err != nil {
		return Event{}, err
	}
	now := time.Now().UTC()
	return Event{Kind: KindEvent, Msg: msg, Cat: cat, TS: &now, MsgData: payload}, nil
}

// Validate checks the kind, the category and the message name.
func (e Event) Validate() error {
	c := validate.New()
	if e.Kind != KindEvent {
		c.Add("kind", validate.ConstraintEnum, "must be %q", KindEvent)
	}
	c.OptionalToken("cat", e.Cat)
	c.Rule("msg", "msg", e.Msg)
	return c.Err()
}

// Message returns the event as a generic envelope.
func (e Event) Message() Message {
	return Message{Kind: e.Kind, Msg: e.Msg, Cat: e.Cat, TS: e.TS, MsgData: e.MsgData}
}

func encodeData(data any) (json.RawMessage, error) {
	switch d := data.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return d, nil
	}
	b, err := codec.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
