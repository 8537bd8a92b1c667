package store

import "errors"

// Errors returned by the repository. Check them with errors.Is:
//
//	if errors.Is(err, store.ErrDriverNotFound) {
//	    // answer 404
//	}
var (
	// ErrDriverNotFound is returned when a driver id does not exist.
	ErrDriverNotFound = errors.New("store: driver not found")

	// ErrDriverExists is returned when creating a driver with an id in use.
	ErrDriverExists = errors.New("store: driver already exists")

	// ErrIntegrationNotFound is returned when an integration id does not exist.
	ErrIntegrationNotFound = errors.New("store: integration not found")

	// ErrIntegrationExists is returned when creating an integration with an id in use.
	ErrIntegrationExists = errors.New("store: integration already exists")
)
