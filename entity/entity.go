// Package entity defines the entity types of the Remote API together with,
// per type, the wire tokens of its features, commands, attributes, options
// and device classes, and the typed option set an integration may announce.
//
// Option sets form a closed sum type: Options is implemented by exactly one
// struct per EntityType, selected by the entity's entity_type discriminant.
package entity

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"

	"github.com/nerrad567/ucapi/codec"
)

// EntityType is the discriminator of an entity. It selects the feature,
// command and option vocabulary that applies to the entity.
type EntityType string

// Entity types.
const (
	TypeButton      EntityType = "button"
	TypeSwitch      EntityType = "switch"
	TypeClimate     EntityType = "climate"
	TypeCover       EntityType = "cover"
	TypeLight       EntityType = "light"
	TypeMediaPlayer EntityType = "media_player"
	TypeSensor      EntityType = "sensor"
	TypeActivity    EntityType = "activity"
	TypeMacro       EntityType = "macro"
	TypeRemote      EntityType = "remote"
)

var entityTypes = codec.NewTokens("entity type",
	TypeButton,
	TypeSwitch,
	TypeClimate,
	TypeCover,
	TypeLight,
	TypeMediaPlayer,
	TypeSensor,
	TypeActivity,
	TypeMacro,
	TypeRemote,
)

// AllEntityTypes returns every entity type in wire order.
func AllEntityTypes() []EntityType { return entityTypes.All() }

func (v EntityType) Valid() bool                   { return entityTypes.Contains(v) }
func (v EntityType) MarshalText() ([]byte, error)  { return entityTypes.Marshal(v) }
func (v *EntityType) UnmarshalText(b []byte) error { return entityTypes.Unmarshal(v, b) }

// Options is the type-specific option set of an entity. It holds a variant
// struct value such as LightOptions; a pointer to one satisfies the interface
// but is rejected by CheckOptions, since decoding always yields a value.
type Options interface {
	EntityType() EntityType
	Validate() error
}

// descriptor is the vocabulary of one entity type.
type descriptor struct {
	features      []string
	commands      []string
	attributes    []string
	options       []string
	deviceClasses []string

	// requiresOptions is set for types whose option set has required fields.
	requiresOptions bool
	zeroOptions     Options
	decodeOptions   func(json.RawMessage) (Options, error)
}

var descriptors map[EntityType]descriptor

func init() {
	descriptors = map[EntityType]descriptor{
		TypeButton: {
			features:      tokens(AllButtonFeatures()),
			commands:      tokens(AllButtonCommands()),
			attributes:    tokens(AllButtonAttributes()),
			zeroOptions:   ButtonOptions{},
			decodeOptions: decodeAs[ButtonOptions],
		},
		TypeSwitch: {
			features:      tokens(AllSwitchFeatures()),
			commands:      tokens(AllSwitchCommands()),
			attributes:    tokens(AllSwitchAttributes()),
			options:       tokens(AllSwitchOptions()),
			deviceClasses: tokens(AllSwitchDeviceClasses()),
			zeroOptions:   SwitchOptions{},
			decodeOptions: decodeAs[SwitchOptions],
		},
		TypeClimate: {
			features:      tokens(AllClimateFeatures()),
			commands:      tokens(AllClimateCommands()),
			attributes:    tokens(AllClimateAttributes()),
			options:       tokens(AllClimateOptions()),
			zeroOptions:   ClimateOptions{},
			decodeOptions: decodeAs[ClimateOptions],
		},
		TypeCover: {
			features:      tokens(AllCoverFeatures()),
			commands:      tokens(AllCoverCommands()),
			attributes:    tokens(AllCoverAttributes()),
			deviceClasses: tokens(AllCoverDeviceClasses()),
			zeroOptions:   CoverOptions{},
			decodeOptions: decodeAs[CoverOptions],
		},
		TypeLight: {
			features:        tokens(AllLightFeatures()),
			commands:        tokens(AllLightCommands()),
			attributes:      tokens(AllLightAttributes()),
			options:         tokens(AllLightOptions()),
			requiresOptions: true,
			zeroOptions:     LightOptions{},
			decodeOptions:   decodeAs[LightOptions],
		},
		TypeMediaPlayer: {
			features:      tokens(AllMediaPlayerFeatures()),
			commands:      tokens(AllMediaPlayerCommands()),
			attributes:    tokens(AllMediaPlayerAttributes()),
			options:       tokens(AllMediaPlayerOptions()),
			deviceClasses: tokens(AllMediaPlayerDeviceClasses()),
			zeroOptions:   MediaPlayerOptions{},
			decodeOptions: decodeAs[MediaPlayerOptions],
		},
		TypeSensor: {
			attributes:    tokens(AllSensorAttributes()),
			options:       tokens(AllSensorOptions()),
			deviceClasses: tokens(AllSensorDeviceClasses()),
			zeroOptions:   SensorOptions{},
			decodeOptions: decodeAs[SensorOptions],
		},
		TypeActivity: {
			features:      tokens(AllActivityFeatures()),
			commands:      tokens(AllActivityCommands()),
			zeroOptions:   ActivityOptions{},
			decodeOptions: decodeAs[ActivityOptions],
		},
		TypeMacro: {
			features:      tokens(AllMacroFeatures()),
			commands:      tokens(AllMacroCommands()),
			zeroOptions:   MacroOptions{},
			decodeOptions: decodeAs[MacroOptions],
		},
		TypeRemote: {
			features:      tokens(AllRemoteFeatures()),
			commands:      tokens(AllRemoteCommands()),
			options:       tokens(AllRemoteOptions()),
			zeroOptions:   RemoteOptions{},
			decodeOptions: decodeAs[RemoteOptions],
		},
	}
}

func tokens[T ~string](all []T) []string {
	out := make([]string, len(all))
	for i, v := range all {
		out[i] = string(v)
	}
	return out
}

func decodeAs[T Options](raw json.RawMessage) (Options, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func lookup(t EntityType) (descriptor, error) {
	d, ok := descriptors[t]
	if !ok {
		return descriptor{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, t)
	}
	return d, nil
}

// ZeroOptions returns the empty option set of t. The codec uses its type to
// check option payloads before decoding them.
func ZeroOptions(t EntityType) (Options, error) {
	d, err := lookup(t)
	if err != nil {
		return nil, err
	}
	return d.zeroOptions, nil
}

// DecodeOptions decodes an option payload into the variant belonging to t.
// The returned Options holds a struct value, never a pointer.
func DecodeOptions(t EntityType, raw json.RawMessage) (Options, error) {
	d, err := lookup(t)
	if err != nil {
		return nil, err
	}
	return d.decodeOptions(raw)
}

// OptionsRequired reports whether an entity of type t must carry options.
func OptionsRequired(t EntityType) bool {
	return descriptors[t].requiresOptions
}

// Features returns the feature tokens of t.
func Features(t EntityType) []string { return slices.Clone(descriptors[t].features) }

// Commands returns the command tokens of t.
func Commands(t EntityType) []string { return slices.Clone(descriptors[t].commands) }

// Attributes returns the attribute tokens of t.
func Attributes(t EntityType) []string { return slices.Clone(descriptors[t].attributes) }

// OptionNames returns the option field names of t.
func OptionNames(t EntityType) []string { return slices.Clone(descriptors[t].options) }

// DeviceClasses returns the device class tokens of t. Types without a
// device class vocabulary return nil.
func DeviceClasses(t EntityType) []string { return slices.Clone(descriptors[t].deviceClasses) }

// ValidFeature reports whether feature is defined for t.
func ValidFeature(t EntityType, feature string) bool {
	return slices.Contains(descriptors[t].features, feature)
}

// ValidCommand reports whether cmd is defined for t.
func ValidCommand(t EntityType, cmd string) bool {
	return slices.Contains(descriptors[t].commands, cmd)
}

// AcceptsDeviceClass reports whether class may be announced for t. Types
// without a device class vocabulary accept any value.
func AcceptsDeviceClass(t EntityType, class string) bool {
	classes := descriptors[t].deviceClasses
	return len(classes) == 0 || slices.Contains(classes, class)
}

// CheckOptions verifies that opts is the variant belonging to t, held as a
// value.
func CheckOptions(t EntityType, opts Options) error {
	if opts == nil {
		return nil
	}
	if reflect.ValueOf(opts).Kind() == reflect.Pointer {
		return fmt.Errorf("%w: got %T", ErrOptionsPointer, opts)
	}
	if opts.EntityType() != t {
		return fmt.Errorf("%w: %s options on %s entity", ErrOptionsMismatch, opts.EntityType(), t)
	}
	return nil
}
