package intg

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/model"
	"github.com/nerrad567/ucapi/validate"
	"github.com/nerrad567/ucapi/ws"
)

// IntegrationDriver describes how the remote connects to an integration
// driver. One driver can provide several Integration instances.
type IntegrationDriver struct {
	// DriverID is provided by the user or during registration, otherwise a
	// generated UUID.
	DriverID   string             `json:"driver_id"`
	Name       model.LanguageText `json:"name"`
	DriverType DriverType         `json:"driver_type"`
	// DriverURL is the WebSocket URL of the driver.
	DriverURL string `json:"driver_url"`
	// Token is never returned to external clients; see Public.
	Token           string             `json:"token,omitempty"`
	AuthMethod      ws.Authentication  `json:"auth_method,omitempty"`
	PwdProtected    *bool              `json:"pwd_protected,omitempty"`
	Version         string             `json:"version"`
	MinCoreAPI      string             `json:"min_core_api,omitempty"`
	Icon            string             `json:"icon,omitempty"`
	Enabled         bool               `json:"enabled"`
	Description     model.LanguageText `json:"description,omitempty"`
	Developer       *DriverDeveloper   `json:"developer,omitempty"`
	HomePage        string             `json:"home_page,omitempty"`
	DeviceDiscovery bool               `json:"device_discovery"`
	InstanceCount   *uint16            `json:"instance_count,omitempty"`
	SetupDataSchema json.RawMessage    `json:"setup_data_schema,omitempty"`
	ReleaseDate     *Date              `json:"release_date,omitempty"`
	DriverState     DriverState        `json:"driver_state,omitempty"`
}

// Validate checks a complete driver record.
func (d IntegrationDriver) Validate() error {
	c := validate.New()
	c.Rule("driver_id", "driver_id", d.DriverID)
	c.Required("name", len(d.Name) > 0)
	c.Nested("name", d.Name.Validate())
	c.Token("driver_type", d.DriverType)
	c.Required("driver_url", d.DriverURL != "")
	c.Rule("driver_url", "driver_url", d.DriverURL)
	c.RuleIfSet("token", "driver_token", d.Token)
	c.OptionalToken("auth_method", d.AuthMethod)
	c.Required("version", d.Version != "")
	c.RuleIfSet("version", "driver_version", d.Version)
	c.RuleIfSet("min_core_api", "min_core_api", d.MinCoreAPI)
	c.RuleIfSet("icon", "driver_icon", d.Icon)
	c.Nested("description", d.Description.Validate())
	if d.Developer != nil {
		c.Nested("developer", d.Developer.Validate())
	}
	c.RuleIfSet("home_page", "home_page", d.HomePage)
	c.OptionalToken("driver_state", d.DriverState)
	return c.Err()
}

// Public returns a copy suitable for external clients: the token is removed
// and pwd_protected tells whether one is configured.
func (d IntegrationDriver) Public() IntegrationDriver {
	if d.Token != "" {
		protected := true
		d.PwdProtected = &protected
	}
	d.Token = ""
	return d
}

// Info returns the overview record of the driver.
func (d IntegrationDriver) Info() IntegrationDriverInfo {
	info := IntegrationDriverInfo{
		DriverID:        d.DriverID,
		Name:            d.Name,
		DriverType:      d.DriverType,
		DriverURL:       d.DriverURL,
		Version:         d.Version,
		Icon:            d.Icon,
		Enabled:         d.Enabled,
		DeviceDiscovery: d.DeviceDiscovery,
		DriverState:     d.DriverState,
	}
	if d.Developer != nil {
		info.DeveloperName = d.Developer.Name
	}
	if d.InstanceCount != nil {
		info.InstanceCount = *d.InstanceCount
	}
	return info
}

// Apply merges the fields set in u into d. The driver id cannot change and
// the manifest is only accepted when registering a driver.
func (d *IntegrationDriver) Apply(u IntegrationDriverUpdate) error {
	if u.DriverID != nil && *u.DriverID != d.DriverID {
		return immutable("driver_id")
	}
	if u.Manifest != nil {
		return immutable("manifest")
	}
	if u.Name != nil {
		d.Name = u.Name
	}
	setString(&d.DriverURL, u.DriverURL)
	setString(&d.Token, u.Token)
	if u.AuthMethod != nil {
		d.AuthMethod = *u.AuthMethod
	}
	if u.PwdProtected != nil {
		d.PwdProtected = u.PwdProtected
	}
	setString(&d.Version, u.Version)
	setString(&d.MinCoreAPI, u.MinCoreAPI)
	setString(&d.Icon, u.Icon)
	if u.Enabled != nil {
		d.Enabled = *u.Enabled
	}
	if u.Description != nil {
		d.Description = u.Description
	}
	if u.Developer != nil {
		d.Developer = u.Developer
	}
	setString(&d.HomePage, u.HomePage)
	if u.DeviceDiscovery != nil {
		d.DeviceDiscovery = *u.DeviceDiscovery
	}
	if u.SetupDataSchema != nil {
		d.SetupDataSchema = u.SetupDataSchema
	}
	if u.ReleaseDate != nil {
		d.ReleaseDate = u.ReleaseDate
	}
	return nil
}

// IntegrationDriverUpdate is the create and patch model of IntegrationDriver.
// Unset fields are left unchanged by Apply.
type IntegrationDriverUpdate struct {
	DriverID        *string            `json:"driver_id,omitempty"`
	Name            model.LanguageText `json:"name,omitempty"`
	DriverURL       *string            `json:"driver_url,omitempty"`
	Token           *string            `json:"token,omitempty"`
	AuthMethod      *ws.Authentication `json:"auth_method,omitempty"`
	PwdProtected    *bool              `json:"pwd_protected,omitempty"`
	Version         *string            `json:"version,omitempty"`
	MinCoreAPI      *string            `json:"min_core_api,omitempty"`
	Icon            *string            `json:"icon,omitempty"`
	Enabled         *bool              `json:"enabled,omitempty"`
	Description     model.LanguageText `json:"description,omitempty"`
	Developer       *DriverDeveloper   `json:"developer,omitempty"`
	HomePage        *string            `json:"home_page,omitempty"`
	DeviceDiscovery *bool              `json:"device_discovery,omitempty"`
	SetupDataSchema json.RawMessage    `json:"setup_data_schema,omitempty"`
	// Manifest is only used when registering an external driver.
	Manifest    *DriverManifest `json:"manifest,omitempty"`
	ReleaseDate *Date           `json:"release_date,omitempty"`
}

// DecodePolicy rejects unknown fields.
func (IntegrationDriverUpdate) DecodePolicy() codec.Policy { return codec.Strict }

// Validate checks the constraints of every field that is set.
func (u IntegrationDriverUpdate) Validate() error {
	c := validate.New()
	c.OptionalRule("driver_id", "driver_id", u.DriverID)
	c.Nested("name", u.Name.Validate())
	c.OptionalRule("driver_url", "driver_url", u.DriverURL)
	c.OptionalRule("token", "driver_token", u.Token)
	if u.AuthMethod != nil {
		c.Token("auth_method", *u.AuthMethod)
	}
	c.OptionalRule("version", "driver_version", u.Version)
	c.OptionalRule("min_core_api", "min_core_api", u.MinCoreAPI)
	c.OptionalRule("icon", "driver_icon", u.Icon)
	c.Nested("description", u.Description.Validate())
	if u.Developer != nil {
		c.Nested("developer", u.Developer.Validate())
	}
	c.OptionalRule("home_page", "home_page", u.HomePage)
	if u.Manifest != nil {
		c.Nested("manifest", u.Manifest.Validate())
	}
	return c.Err()
}

// FromDriver returns an update that sets every field of d. The manifest is
// not part of a stored driver and stays unset.
func FromDriver(d IntegrationDriver) IntegrationDriverUpdate {
	u := IntegrationDriverUpdate{
		DriverID:        &d.DriverID,
		Name:            d.Name,
		DriverURL:       &d.DriverURL,
		PwdProtected:    d.PwdProtected,
		Version:         &d.Version,
		Enabled:         &d.Enabled,
		Description:     d.Description,
		Developer:       d.Developer,
		DeviceDiscovery: &d.DeviceDiscovery,
		SetupDataSchema: d.SetupDataSchema,
		ReleaseDate:     d.ReleaseDate,
	}
	u.Token = optString(d.Token)
	if d.AuthMethod != "" {
		u.AuthMethod = &d.AuthMethod
	}
	u.MinCoreAPI = optString(d.MinCoreAPI)
	u.Icon = optString(d.Icon)
	u.HomePage = optString(d.HomePage)
	return u
}

// NewDriver creates an external driver record from a registration request.
// Name, driver_url and version are required. A missing driver_id is
// generated, a missing enabled flag defaults to true.
func (u IntegrationDriverUpdate) NewDriver() (IntegrationDriver, error) {
	c := validate.New()
	c.Nested("", u.Validate())
	c.Required("name", len(u.Name) > 0)
	c.Required("driver_url", u.DriverURL != nil && *u.DriverURL != "")
	c.Required("version", u.Version != nil && *u.Version != "")
	if err := c.Err(); err != nil {
		return IntegrationDriver{}, err
	}

	d := IntegrationDriver{
		DriverID:   uuid.NewString(),
		DriverType: DriverExternal,
		Enabled:    true,
	}
	if u.DriverID != nil && *u.DriverID != "" {
		d.DriverID = *u.DriverID
	}
	u.DriverID = nil
	u.Manifest = nil
	if err := d.Apply(u); err != nil {
		return IntegrationDriver{}, err
	}
	return d, nil
}

// IntegrationDriverInfo is the short form of a driver used on overview pages.
type IntegrationDriverInfo struct {
	DriverID        string             `json:"driver_id"`
	Name            model.LanguageText `json:"name"`
	DeveloperName   string             `json:"developer_name,omitempty"`
	DriverType      DriverType         `json:"driver_type"`
	DriverURL       string             `json:"driver_url"`
	Version         string             `json:"version"`
	Icon            string             `json:"icon,omitempty"`
	Enabled         bool               `json:"enabled"`
	DeviceDiscovery bool               `json:"device_discovery"`
	InstanceCount   uint16             `json:"instance_count"`
	DriverState     DriverState        `json:"driver_state,omitempty"`
}

// DriverDeveloper is contact information of a driver developer.
type DriverDeveloper struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// Validate checks lengths and the URL and email formats.
func (d DriverDeveloper) Validate() error {
	c := validate.New()
	c.RuleIfSet("name", "developer_name", d.Name)
	c.RuleIfSet("url", "developer_url", d.URL)
	c.RuleIfSet("email", "developer_email", d.Email)
	return c.Err()
}

// DriverManifest lists the features a driver needs from the remote. It may
// carry extra metadata for the core, such as OAuth2 endpoints, that is never
// exposed through the driver management API.
type DriverManifest struct {
	Features []DriverFeature `json:"features,omitempty"`
	IotClass IotClass        `json:"iot_class,omitempty"`
}

// Validate requires at least one feature when the list is present.
func (m DriverManifest) Validate() error {
	c := validate.New()
	if m.Features != nil && len(m.Features) == 0 {
		c.Add("features", validate.ConstraintLength, "must contain at least one feature")
	}
	for i, f := range m.Features {
		c.Nested(indexed("features", i), f.Validate())
	}
	c.OptionalToken("iot_class", m.IotClass)
	return c.Err()
}

// DriverFeature is a hardware or software feature used by a driver.
type DriverFeature struct {
	Name string `json:"name"`
	// Required defaults to true: the driver cannot work without the feature.
	Required *bool           `json:"required,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// IsRequired reports whether the driver needs the feature to work.
func (f DriverFeature) IsRequired() bool {
	return f.Required == nil || *f.Required
}

// Validate checks the feature name length.
func (f DriverFeature) Validate() error {
	c := validate.New()
	c.Rule("name", "feature_name", f.Name)
	return c.Err()
}
