package entity

import "errors"

// Domain errors for the entity package.
var (
	// ErrUnknownEntityType is returned for an entity_type outside the known set.
	ErrUnknownEntityType = errors.New("entity: unknown entity type")

	// ErrOptionsMismatch is returned when an option set belongs to a different
	// entity type than the entity carrying it.
	ErrOptionsMismatch = errors.New("entity: options do not match entity type")

	// ErrOptionsPointer is returned for an option set held by pointer.
	ErrOptionsPointer = errors.New("entity: options must be a struct value")
)
