package entity

import (
	"github.com/nerrad567/ucapi/codec"
)

// CoverFeature is a capability of a cover entity.
type CoverFeature string

const (
	CoverFeatureOpen     CoverFeature = "open"
	CoverFeatureClose    CoverFeature = "close"
	CoverFeatureStop     CoverFeature = "stop"
	CoverFeaturePosition CoverFeature = "position"
)

var coverFeatures = codec.NewTokens("cover feature",
	CoverFeatureOpen,
	CoverFeatureClose,
	CoverFeatureStop,
	CoverFeaturePosition,
)

// AllCoverFeatures returns every cover feature in wire order.
func AllCoverFeatures() []CoverFeature { return coverFeatures.All() }

func (v CoverFeature) Valid() bool                   { return coverFeatures.Contains(v) }
func (v CoverFeature) MarshalText() ([]byte, error)  { return coverFeatures.Marshal(v) }
func (v *CoverFeature) UnmarshalText(b []byte) error { return coverFeatures.Unmarshal(v, b) }

// CoverCommand is a command accepted by a cover entity.
type CoverCommand string

const (
	CoverCommandOpen     CoverCommand = "open"
	CoverCommandClose    CoverCommand = "close"
	CoverCommandStop     CoverCommand = "stop"
	CoverCommandPosition CoverCommand = "position"
)

var coverCommands = codec.NewTokens("cover command",
	CoverCommandOpen,
	CoverCommandClose,
	CoverCommandStop,
	CoverCommandPosition,
)

// AllCoverCommands returns every cover command in wire order.
func AllCoverCommands() []CoverCommand { return coverCommands.All() }

func (v CoverCommand) Valid() bool                   { return coverCommands.Contains(v) }
func (v CoverCommand) MarshalText() ([]byte, error)  { return coverCommands.Marshal(v) }
func (v *CoverCommand) UnmarshalText(b []byte) error { return coverCommands.Unmarshal(v, b) }

// CoverDeviceClass refines how the UI presents a cover.
type CoverDeviceClass string

const (
	CoverDeviceClassBlind   CoverDeviceClass = "blind"
	CoverDeviceClassCurtain CoverDeviceClass = "curtain"
	CoverDeviceClassGarage  CoverDeviceClass = "garage"
	CoverDeviceClassShade   CoverDeviceClass = "shade"
)

var coverDeviceClasses = codec.NewTokens("cover device class",
	CoverDeviceClassBlind,
	CoverDeviceClassCurtain,
	CoverDeviceClassGarage,
	CoverDeviceClassShade,
)

// AllCoverDeviceClasses returns every cover device class in wire order.
func AllCoverDeviceClasses() []CoverDeviceClass { return coverDeviceClasses.All() }

func (v CoverDeviceClass) Valid() bool                   { return coverDeviceClasses.Contains(v) }
func (v CoverDeviceClass) MarshalText() ([]byte, error)  { return coverDeviceClasses.Marshal(v) }
func (v *CoverDeviceClass) UnmarshalText(b []byte) error { return coverDeviceClasses.Unmarshal(v, b) }

// CoverAttribute is a state attribute reported by a cover entity.
type CoverAttribute string

const (
	CoverAttributeState        CoverAttribute = "state"
	CoverAttributePosition     CoverAttribute = "position"
	CoverAttributeTiltPosition CoverAttribute = "tilt_position"
)

var coverAttributes = codec.NewTokens("cover attribute",
	CoverAttributeState,
	CoverAttributePosition,
	CoverAttributeTiltPosition,
)

// AllCoverAttributes returns every cover attribute in wire order.
func AllCoverAttributes() []CoverAttribute { return coverAttributes.All() }

func (v CoverAttribute) Valid() bool                   { return coverAttributes.Contains(v) }
func (v CoverAttribute) MarshalText() ([]byte, error)  { return coverAttributes.Marshal(v) }
func (v *CoverAttribute) UnmarshalText(b []byte) error { return coverAttributes.Unmarshal(v, b) }

// CoverOptions is the option set of a cover entity. Covers have no options.
type CoverOptions struct{}

// EntityType returns TypeCover.
func (CoverOptions) EntityType() EntityType { return TypeCover }

// Validate always succeeds.
func (CoverOptions) Validate() error { return nil }
