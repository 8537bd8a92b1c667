// Package store persists integration drivers and integration instances in
// SQLite.
//
// The model types know nothing about storage. This package maps them to the
// integration_drivers and integrations tables created by the migrations
// package: scalar fields become columns, nested objects (localised names,
// developer, setup data) are stored as their canonical wire JSON.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/intg"
)

// Repository is the persistence port for drivers and integrations.
type Repository interface {
	// GetDriver returns ErrDriverNotFound if id does not exist.
	GetDriver(ctx context.Context, id string) (*intg.IntegrationDriver, error)
	ListDrivers(ctx context.Context) ([]intg.IntegrationDriver, error)
	// CreateDriver returns ErrDriverExists if the id is taken.
	CreateDriver(ctx context.Context, d *intg.IntegrationDriver) error
	UpdateDriver(ctx context.Context, d *intg.IntegrationDriver) error
	// PatchDriver applies u to the stored driver and returns the result.
	PatchDriver(ctx context.Context, id string, u intg.IntegrationDriverUpdate) (*intg.IntegrationDriver, error)
	SetDriverState(ctx context.Context, id string, state intg.DriverState) error
	// DeleteDriver also deletes the driver's integrations.
	DeleteDriver(ctx context.Context, id string) error

	// GetIntegration returns ErrIntegrationNotFound if id does not exist.
	GetIntegration(ctx context.Context, id string) (*intg.Integration, error)
	// ListIntegrations lists the integrations of driverID, or all of them
	// when driverID is empty.
	ListIntegrations(ctx context.Context, driverID string) ([]intg.Integration, error)
	// CreateIntegration returns ErrDriverNotFound if the driver does not exist.
	CreateIntegration(ctx context.Context, in *intg.Integration) error
	UpdateIntegration(ctx context.Context, in *intg.Integration) error
	PatchIntegration(ctx context.Context, id string, u intg.IntegrationUpdate) (*intg.Integration, error)
	SetDeviceState(ctx context.Context, id string, state intg.DeviceState) error
	DeleteIntegration(ctx context.Context, id string) error
}

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// SQLiteRepository implements Repository on a migrated SQLite database.
type SQLiteRepository struct {
	db     *sql.DB
	logger Logger
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository returns a repository using db. Foreign keys must be
// enabled on db for cascading deletes.
//
// Parameters:
//   - db: Migrated database connection
//
// Returns:
//   - *SQLiteRepository: Repository logging to a no-op logger until SetLogger is called
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, logger: noopLogger{}}
}

// SetLogger sets the logger used for write operations.
func (r *SQLiteRepository) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	r.logger = logger
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// checkAffected maps zero affected rows to notFound.
func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func isConstraint(err error, code sqlite3.ErrNoExtended) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == code
}

func isDuplicate(err error) bool {
	return isConstraint(err, sqlite3.ErrConstraintPrimaryKey) || isConstraint(err, sqlite3.ErrConstraintUnique)
}

// encodeJSON returns the wire JSON of v, or NULL when empty is true.
func encodeJSON(v any, empty bool) (sql.NullString, error) {
	if empty {
		return sql.NullString{}, nil
	}
	data, err := codec.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// decodeJSON decodes a JSON column into v. NULL leaves v untouched.
func decodeJSON(col string, s sql.NullString, v any) error {
	if !s.Valid || s.String == "" {
		return nil
	}
	if err := codec.Unmarshal([]byte(s.String), v); err != nil {
		return fmt.Errorf("decoding %s: %w", col, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
