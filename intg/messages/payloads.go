package messages

import (
	"fmt"
	"maps"

	"github.com/nerrad567/ucapi/entity"
	"github.com/nerrad567/ucapi/intg"
	"github.com/nerrad567/ucapi/model"
	"github.com/nerrad567/ucapi/validate"
)

// DriverVersionMsgData is the payload of driver_version.
type DriverVersionMsgData struct {
	Name    string                   `json:"name,omitempty"`
	Version *intg.IntegrationVersion `json:"version,omitempty"`
}

// DeviceStateMsgData is the payload of the device_state event.
type DeviceStateMsgData struct {
	// DeviceID is only used by multi-device drivers.
	DeviceID string           `json:"device_id,omitempty"`
	State    intg.DeviceState `json:"state"`
}

// EntityAvailableMsgData is the payload of the entity_available event.
type EntityAvailableMsgData struct {
	DeviceID   string             `json:"device_id,omitempty"`
	EntityType entity.EntityType  `json:"entity_type"`
	EntityID   string             `json:"entity_id"`
	Features   []string           `json:"features,omitempty"`
	Name       model.LanguageText `json:"name"`
	Area       string             `json:"area,omitempty"`
}

// Validate checks the identifiers and features.
func (m EntityAvailableMsgData) Validate() error {
	c := validate.New()
	c.RuleIfSet("device_id", "device_id", m.DeviceID)
	c.Rule("entity_id", "entity_id", m.EntityID)
	c.RuleIfSet("area", "area", m.Area)
	if m.EntityType.Valid() {
		for i, f := range m.Features {
			if !entity.ValidFeature(m.EntityType, f) {
				c.Add(fmt.Sprintf("features[%d]", i), validate.ConstraintEnum, "%q is not a %s feature", f, m.EntityType)
			}
		}
	}
	return c.Err()
}

// EntityRemovedMsgData is the payload of the entity_removed event.
type EntityRemovedMsgData struct {
	DeviceID   string            `json:"device_id,omitempty"`
	EntityType entity.EntityType `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
}

// AvailableEntitiesFilter restricts get_available_entities.
type AvailableEntitiesFilter struct {
	DeviceID   string            `json:"device_id,omitempty"`
	EntityType entity.EntityType `json:"entity_type,omitempty"`
}

// Match reports whether e passes the filter. Unset filter fields match
// everything.
func (f AvailableEntitiesFilter) Match(e intg.AvailableEntity) bool {
	if f.DeviceID != "" && f.DeviceID != e.DeviceID {
		return false
	}
	return f.EntityType == "" || f.EntityType == e.EntityType
}

// GetAvailableEntitiesMsgData is the payload of get_available_entities.
type GetAvailableEntitiesMsgData struct {
	Filter *AvailableEntitiesFilter `json:"filter,omitempty"`
}

// AvailableEntitiesMsgData is the payload of available_entities.
type AvailableEntitiesMsgData struct {
	Filter            *AvailableEntitiesFilter `json:"filter,omitempty"`
	AvailableEntities []intg.AvailableEntity   `json:"available_entities"`
}

// Validate checks every entity and that entity ids are unique per device.
func (m AvailableEntitiesMsgData) Validate() error {
	c := validate.New()
	c.Required("available_entities", m.AvailableEntities != nil)
	seen := make(map[[2]string]struct{}, len(m.AvailableEntities))
	for i, e := range m.AvailableEntities {
		field := fmt.Sprintf("available_entities[%d]", i)
		c.Nested(field, e.Validate())
		key := [2]string{e.DeviceID, e.EntityID}
		if _, dup := seen[key]; dup {
			c.Add(field+".entity_id", validate.ConstraintConsistency, "duplicate entity id %q", e.EntityID)
		}
		seen[key] = struct{}{}
	}
	return c.Err()
}

// RuntimeInfoMsgData is the payload of runtime_info.
type RuntimeInfoMsgData struct {
	DriverID string   `json:"driver_id"`
	IntgIDs  []string `json:"intg_ids"`
	LogID    string   `json:"log_id,omitempty"`
}

// Client data keys the core sets in an OAuth2 authorization request. Values
// a driver sets for them are overwritten.
const (
	ClientDataIntegration = "intg"
	ClientDataAccount     = "acc"
	ClientDataDevice      = "dev"
)

// GenerateOauth2AuthURLMsgData is the payload of generate_oauth2_auth_url.
// ClientData is encoded into the state parameter of the authorization
// request and returned in the oauth2_authorization event.
type GenerateOauth2AuthURLMsgData struct {
	ClientData map[string]string `json:"client_data"`
}

// WithCoreData returns the client data with the core's own keys set.
func (m GenerateOauth2AuthURLMsgData) WithCoreData(driverID, account, device string) map[string]string {
	data := maps.Clone(m.ClientData)
	if data == nil {
		data = make(map[string]string, 3)
	}
	data[ClientDataIntegration] = driverID
	data[ClientDataAccount] = account
	data[ClientDataDevice] = device
	return data
}

// Oauth2AuthURLMsgData is the payload of oauth2_auth_url.
type Oauth2AuthURLMsgData struct {
	AuthURL string `json:"auth_url"`
}

// Validate requires an absolute URL.
func (m Oauth2AuthURLMsgData) Validate() error {
	c := validate.New()
	c.Rule("auth_url", "oauth2_auth_url", m.AuthURL)
	return c.Err()
}

// CreateOauth2CfgMsgData is the payload of create_oauth2_cfg.
type CreateOauth2CfgMsgData struct {
	TokenID string            `json:"token_id"`
	Name    string            `json:"name"`
	Token   model.Oauth2Token `json:"token"`
}

// Validate checks the token id and name lengths.
func (m CreateOauth2CfgMsgData) Validate() error {
	c := validate.New()
	c.Rule("token_id", "oauth2_token_id", m.TokenID)
	c.Rule("name", "oauth2_name", m.Name)
	return c.Err()
}

// GetOauth2TokenMsgData is the payload of get_oauth2_token.
type GetOauth2TokenMsgData struct {
	TokenID string `json:"token_id"`
	// ForceRefresh refreshes the token even if it is still valid.
	ForceRefresh *bool `json:"force_refresh,omitempty"`
}

// Validate checks the token id length.
func (m GetOauth2TokenMsgData) Validate() error {
	c := validate.New()
	c.Rule("token_id", "oauth2_token_id", m.TokenID)
	return c.Err()
}

// Oauth2TokenMsgData is the payload of oauth2_token.
type Oauth2TokenMsgData struct {
	TokenID string            `json:"token_id"`
	Token   model.Oauth2Token `json:"token"`
}

// DeleteOauth2TokenMsgData is the payload of delete_oauth2_token.
type DeleteOauth2TokenMsgData struct {
	TokenID string `json:"token_id"`
}

// Oauth2AuthorizationMsgData is the payload of the oauth2_authorization
// event. It carries either a token or an error code.
type Oauth2AuthorizationMsgData struct {
	// ClientData holds the key-value pairs of the authorization request.
	ClientData       map[string]string  `json:"client_data"`
	ErrorCode        string             `json:"error_code,omitempty"`
	ErrorDescription string             `json:"error_description,omitempty"`
	Token            *model.Oauth2Token `json:"token,omitempty"`
}

// Oauth2AuthorizationOK reports a successful authorization.
func Oauth2AuthorizationOK(clientData map[string]string, token model.Oauth2Token) Oauth2AuthorizationMsgData {
	return Oauth2AuthorizationMsgData{ClientData: clientData, Token: &token}
}

// Oauth2AuthorizationError reports a failed authorization.
func Oauth2AuthorizationError(clientData map[string]string, code, description string) Oauth2AuthorizationMsgData {
	return Oauth2AuthorizationMsgData{ClientData: clientData, ErrorCode: code, ErrorDescription: description}
}

// Validate checks that exactly one of token and error code is set.
func (m Oauth2AuthorizationMsgData) Validate() error {
	c := validate.New()
	c.Required("client_data", m.ClientData != nil)
	switch {
	case m.Token == nil && m.ErrorCode == "":
		c.Add("token", validate.ConstraintRequired, "token or error_code is required")
	case m.Token != nil && m.ErrorCode != "":
		c.Add("error_code", validate.ConstraintConsistency, "not allowed together with a token")
	}
	return c.Err()
}

// Succeeded reports whether the authorization returned a token.
func (m Oauth2AuthorizationMsgData) Succeeded() bool {
	return m.Token != nil && m.ErrorCode == ""
}
