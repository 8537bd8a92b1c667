package ws

import "github.com/nerrad567/ucapi/codec"

// Kind is the envelope kind: request, response or event.
type Kind string

const (
	KindRequest  Kind = "req"
	KindResponse Kind = "resp"
	KindEvent    Kind = "event"
)

var kinds = codec.NewTokens("message kind",
	KindRequest,
	KindResponse,
	KindEvent,
)

// AllKinds returns every message kind in wire order.
func AllKinds() []Kind { return kinds.All() }

func (v Kind) Valid() bool                   { return kinds.Contains(v) }
func (v Kind) MarshalText() ([]byte, error)  { return kinds.Marshal(v) }
func (v *Kind) UnmarshalText(b []byte) error { return kinds.Unmarshal(v, b) }

// EventCategory groups Core API events.
type EventCategory string

const (
	CategoryDevice EventCategory = "DEVICE"
	CategoryEntity EventCategory = "ENTITY"
	CategoryRemote EventCategory = "REMOTE"
	CategoryUI     EventCategory = "UI"
)

var eventCategories = codec.NewTokens("event category",
	CategoryDevice,
	CategoryEntity,
	CategoryRemote,
	CategoryUI,
)

// AllEventCategories returns every event category in wire order.
func AllEventCategories() []EventCategory { return eventCategories.All() }

func (v EventCategory) Valid() bool                   { return eventCategories.Contains(v) }
func (v EventCategory) MarshalText() ([]byte, error)  { return eventCategories.Marshal(v) }
func (v *EventCategory) UnmarshalText(b []byte) error { return eventCategories.Unmarshal(v, b) }

// Authentication is how a WebSocket client authenticates.
type Authentication string

const (
	AuthHeader  Authentication = "HEADER"
	AuthMessage Authentication = "MESSAGE"
)

var authentications = codec.NewTokens("authentication method",
	AuthHeader,
	AuthMessage,
)

// AllAuthentications returns every authentication method in wire order.
func AllAuthentications() []Authentication { return authentications.All() }

func (v Authentication) Valid() bool                   { return authentications.Contains(v) }
func (v Authentication) MarshalText() ([]byte, error)  { return authentications.Marshal(v) }
func (v *Authentication) UnmarshalText(b []byte) error { return authentications.Unmarshal(v, b) }
