package entity

import (
	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/validate"
)

// MediaPlayerFeature is a capability of a media player entity.
type MediaPlayerFeature string

const (
	MediaPlayerFeatureOnOff         MediaPlayerFeature = "on_off"
	MediaPlayerFeatureToggle        MediaPlayerFeature = "toggle"
	MediaPlayerFeatureVolume        MediaPlayerFeature = "volume"
	MediaPlayerFeatureVolumeUpDown  MediaPlayerFeature = "volume_up_down"
	MediaPlayerFeatureMuteToggle    MediaPlayerFeature = "mute_toggle"
	MediaPlayerFeatureMute          MediaPlayerFeature = "mute"
	MediaPlayerFeatureUnmute        MediaPlayerFeature = "unmute"
	MediaPlayerFeaturePlayPause     MediaPlayerFeature = "play_pause"
	MediaPlayerFeatureStop          MediaPlayerFeature = "stop"
	MediaPlayerFeatureNext          MediaPlayerFeature = "next"
	MediaPlayerFeaturePrevious      MediaPlayerFeature = "previous"
	MediaPlayerFeatureFastForward   MediaPlayerFeature = "fast_forward"
	MediaPlayerFeatureRewind        MediaPlayerFeature = "rewind"
	MediaPlayerFeatureRepeat        MediaPlayerFeature = "repeat"
	MediaPlayerFeatureShuffle       MediaPlayerFeature = "shuffle"
	MediaPlayerFeatureSeek          MediaPlayerFeature = "seek"
	MediaPlayerFeatureMediaDuration MediaPlayerFeature = "media_duration"
	MediaPlayerFeatureMediaPosition MediaPlayerFeature = "media_position"
	MediaPlayerFeatureMediaTitle    MediaPlayerFeature = "media_title"
	MediaPlayerFeatureMediaArtist   MediaPlayerFeature = "media_artist"
	MediaPlayerFeatureMediaAlbum    MediaPlayerFeature = "media_album"
	MediaPlayerFeatureMediaImageURL MediaPlayerFeature = "media_image_url"
	MediaPlayerFeatureMediaType     MediaPlayerFeature = "media_type"
)

var mediaPlayerFeatures = codec.NewTokens("media player feature",
	MediaPlayerFeatureOnOff,
	MediaPlayerFeatureToggle,
	MediaPlayerFeatureVolume,
	MediaPlayerFeatureVolumeUpDown,
	MediaPlayerFeatureMuteToggle,
	MediaPlayerFeatureMute,
	MediaPlayerFeatureUnmute,
	MediaPlayerFeaturePlayPause,
	MediaPlayerFeatureStop,
	MediaPlayerFeatureNext,
	MediaPlayerFeaturePrevious,
	MediaPlayerFeatureFastForward,
	MediaPlayerFeatureRewind,
	MediaPlayerFeatureRepeat,
	MediaPlayerFeatureShuffle,
	MediaPlayerFeatureSeek,
	MediaPlayerFeatureMediaDuration,
	MediaPlayerFeatureMediaPosition,
	MediaPlayerFeatureMediaTitle,
	MediaPlayerFeatureMediaArtist,
	MediaPlayerFeatureMediaAlbum,
	MediaPlayerFeatureMediaImageURL,
	MediaPlayerFeatureMediaType,
)

// AllMediaPlayerFeatures returns every media player feature in wire order.
func AllMediaPlayerFeatures() []MediaPlayerFeature { return mediaPlayerFeatures.All() }

func (v MediaPlayerFeature) Valid() bool                   { return mediaPlayerFeatures.Contains(v) }
func (v MediaPlayerFeature) MarshalText() ([]byte, error)  { return mediaPlayerFeatures.Marshal(v) }
func (v *MediaPlayerFeature) UnmarshalText(b []byte) error { return mediaPlayerFeatures.Unmarshal(v, b) }

// MediaPlayerCommand is a command accepted by a media player entity.
type MediaPlayerCommand string

const (
	MediaPlayerCommandOn          MediaPlayerCommand = "on"
	MediaPlayerCommandOff         MediaPlayerCommand = "off"
	MediaPlayerCommandToggle      MediaPlayerCommand = "toggle"
	MediaPlayerCommandPlayPause   MediaPlayerCommand = "play_pause"
	MediaPlayerCommandStop        MediaPlayerCommand = "stop"
	MediaPlayerCommandPrevious    MediaPlayerCommand = "previous"
	MediaPlayerCommandNext        MediaPlayerCommand = "next"
	MediaPlayerCommandFastForward MediaPlayerCommand = "fast_forward"
	MediaPlayerCommandRewind      MediaPlayerCommand = "rewind"
	MediaPlayerCommandSeek        MediaPlayerCommand = "seek"
	MediaPlayerCommandVolume      MediaPlayerCommand = "volume"
	MediaPlayerCommandVolumeUp    MediaPlayerCommand = "volume_up"
	MediaPlayerCommandVolumeDown  MediaPlayerCommand = "volume_down"
	MediaPlayerCommandMuteToggle  MediaPlayerCommand = "mute_toggle"
	MediaPlayerCommandMute        MediaPlayerCommand = "mute"
	MediaPlayerCommandUnmute      MediaPlayerCommand = "unmute"
	MediaPlayerCommandRepeat      MediaPlayerCommand = "repeat"
	MediaPlayerCommandShuffle     MediaPlayerCommand = "shuffle"
)

var mediaPlayerCommands = codec.NewTokens("media player command",
	MediaPlayerCommandOn,
	MediaPlayerCommandOff,
	MediaPlayerCommandToggle,
	MediaPlayerCommandPlayPause,
	MediaPlayerCommandStop,
	MediaPlayerCommandPrevious,
	MediaPlayerCommandNext,
	MediaPlayerCommandFastForward,
	MediaPlayerCommandRewind,
	MediaPlayerCommandSeek,
	MediaPlayerCommandVolume,
	MediaPlayerCommandVolumeUp,
	MediaPlayerCommandVolumeDown,
	MediaPlayerCommandMuteToggle,
	MediaPlayerCommandMute,
	MediaPlayerCommandUnmute,
	MediaPlayerCommandRepeat,
	MediaPlayerCommandShuffle,
)

// AllMediaPlayerCommands returns every media player command in wire order.
func AllMediaPlayerCommands() []MediaPlayerCommand { return mediaPlayerCommands.All() }

func (v MediaPlayerCommand) Valid() bool                   { return mediaPlayerCommands.Contains(v) }
func (v MediaPlayerCommand) MarshalText() ([]byte, error)  { return mediaPlayerCommands.Marshal(v) }
func (v *MediaPlayerCommand) UnmarshalText(b []byte) error { return mediaPlayerCommands.Unmarshal(v, b) }

// MediaPlayerDeviceClass refines how the UI presents a media player.
type MediaPlayerDeviceClass string

const (
	MediaPlayerDeviceClassReceiver MediaPlayerDeviceClass = "receiver"
	MediaPlayerDeviceClassSpeaker  MediaPlayerDeviceClass = "speaker"
)

var mediaPlayerDeviceClasses = codec.NewTokens("media player device class",
	MediaPlayerDeviceClassReceiver,
	MediaPlayerDeviceClassSpeaker,
)

// AllMediaPlayerDeviceClasses returns every media player device class in wire order.
func AllMediaPlayerDeviceClasses() []MediaPlayerDeviceClass { return mediaPlayerDeviceClasses.All() }

func (v MediaPlayerDeviceClass) Valid() bool                   { return mediaPlayerDeviceClasses.Contains(v) }
func (v MediaPlayerDeviceClass) MarshalText() ([]byte, error)  { return mediaPlayerDeviceClasses.Marshal(v) }
func (v *MediaPlayerDeviceClass) UnmarshalText(b []byte) error { return mediaPlayerDeviceClasses.Unmarshal(v, b) }

// MediaPlayerOption names a field of MediaPlayerOptions.
type MediaPlayerOption string

const (
	MediaPlayerOptionVolumeSteps MediaPlayerOption = "volume_steps"
)

var mediaPlayerOptions = codec.NewTokens("media player option",
	MediaPlayerOptionVolumeSteps,
)

// AllMediaPlayerOptions returns every media player option in wire order.
func AllMediaPlayerOptions() []MediaPlayerOption { return mediaPlayerOptions.All() }

func (v MediaPlayerOption) Valid() bool                   { return mediaPlayerOptions.Contains(v) }
func (v MediaPlayerOption) MarshalText() ([]byte, error)  { return mediaPlayerOptions.Marshal(v) }
func (v *MediaPlayerOption) UnmarshalText(b []byte) error { return mediaPlayerOptions.Unmarshal(v, b) }

// MediaPlayerAttribute is a state attribute reported by a media player entity.
type MediaPlayerAttribute string

const (
	MediaPlayerAttributeState               MediaPlayerAttribute = "state"
	MediaPlayerAttributeVolume              MediaPlayerAttribute = "volume"
	MediaPlayerAttributeMuted               MediaPlayerAttribute = "muted"
	MediaPlayerAttributeMediaPosition       MediaPlayerAttribute = "media_position"
	MediaPlayerAttributeMediaDuration       MediaPlayerAttribute = "media_duration"
	MediaPlayerAttributeMediaTitle          MediaPlayerAttribute = "media_title"
	MediaPlayerAttributeMediaArtist         MediaPlayerAttribute = "media_artist"
	MediaPlayerAttributeMediaAlbum          MediaPlayerAttribute = "media_album"
	MediaPlayerAttributeMediaImageURL       MediaPlayerAttribute = "media_image_url"
	MediaPlayerAttributeMediaImageURLSmall  MediaPlayerAttribute = "media_image_url_small"
	MediaPlayerAttributeMediaImageURLMedium MediaPlayerAttribute = "media_image_url_medium"
	MediaPlayerAttributeMediaImageURLLarge  MediaPlayerAttribute = "media_image_url_large"
	MediaPlayerAttributeMediaType           MediaPlayerAttribute = "media_type"
	MediaPlayerAttributeRepeat              MediaPlayerAttribute = "repeat"
	MediaPlayerAttributeShuffle             MediaPlayerAttribute = "shuffle"
	MediaPlayerAttributeSource              MediaPlayerAttribute = "source"
	MediaPlayerAttributeSourceMode          MediaPlayerAttribute = "source_mode"
)

var mediaPlayerAttributes = codec.NewTokens("media player attribute",
	MediaPlayerAttributeState,
	MediaPlayerAttributeVolume,
	MediaPlayerAttributeMuted,
	MediaPlayerAttributeMediaPosition,
	MediaPlayerAttributeMediaDuration,
	MediaPlayerAttributeMediaTitle,
	MediaPlayerAttributeMediaArtist,
	MediaPlayerAttributeMediaAlbum,
	MediaPlayerAttributeMediaImageURL,
	MediaPlayerAttributeMediaImageURLSmall,
	MediaPlayerAttributeMediaImageURLMedium,
	MediaPlayerAttributeMediaImageURLLarge,
	MediaPlayerAttributeMediaType,
	MediaPlayerAttributeRepeat,
	MediaPlayerAttributeShuffle,
	MediaPlayerAttributeSource,
	MediaPlayerAttributeSourceMode,
)

// AllMediaPlayerAttributes returns every media player attribute in wire order.
func AllMediaPlayerAttributes() []MediaPlayerAttribute { return mediaPlayerAttributes.All() }

func (v MediaPlayerAttribute) Valid() bool                   { return mediaPlayerAttributes.Contains(v) }
func (v MediaPlayerAttribute) MarshalText() ([]byte, error)  { return mediaPlayerAttributes.Marshal(v) }
func (v *MediaPlayerAttribute) UnmarshalText(b []byte) error { return mediaPlayerAttributes.Unmarshal(v, b) }

const (
	minVolumeSteps = 2
	maxVolumeSteps = 100
)

// MediaPlayerOptions is the option set of a media player entity.
type MediaPlayerOptions struct {
	// VolumeSteps is the number of discrete volume levels the device supports.
	VolumeSteps *int `json:"volume_steps,omitempty"`
}

// EntityType returns TypeMediaPlayer.
func (MediaPlayerOptions) EntityType() EntityType { return TypeMediaPlayer }

// Validate checks the volume step count.
func (o MediaPlayerOptions) Validate() error {
	c := validate.New()
	if o.VolumeSteps != nil {
		c.Range("volume_steps", float64(*o.VolumeSteps), minVolumeSteps, maxVolumeSteps)
	}
	return c.Err()
}
