package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nerrad567/ucapi/intg"
	"github.com/nerrad567/ucapi/model"
	"github.com/nerrad567/ucapi/ws"
)

const driverColumns = `driver_id, name, driver_type, driver_url, token, auth_method, pwd_protected,
	version, min_core_api, icon, enabled, description, developer, home_page,
	device_discovery, instance_count, setup_data_schema, release_date, driver_state`

// driverRow holds the column values of one integration_drivers row.
type driverRow struct {
	name, description, developer, schema sql.NullString
	pwdProtected, instanceCount          sql.NullInt64
	releaseDate                          sql.NullString
}

func driverArgs(d *intg.IntegrationDriver) ([]any, error) {
	name, err := encodeJSON(d.Name, false)
	if err != nil {
		return nil, fmt.Errorf("encoding name: %w", err)
	}
	description, err := encodeJSON(d.Description, len(d.Description) == 0)
	if err != nil {
		return nil, fmt.Errorf("encoding description: %w", err)
	}
	developer, err := encodeJSON(d.Developer, d.Developer == nil)
	if err != nil {
		return nil, fmt.Errorf("encoding developer: %w", err)
	}

	var pwd, count sql.NullInt64
	if d.PwdProtected != nil {
		pwd = sql.NullInt64{Int64: int64(boolToInt(*d.PwdProtected)), Valid: true}
	}
	if d.InstanceCount != nil {
		count = sql.NullInt64{Int64: int64(*d.InstanceCount), Valid: true}
	}
	var release sql.NullString
	if d.ReleaseDate != nil {
		release = nullString(d.ReleaseDate.String())
	}

	return []any{
		d.DriverID,
		name,
		string(d.DriverType),
		d.DriverURL,
		nullString(d.Token),
		nullString(string(d.AuthMethod)),
		pwd,
		d.Version,
		nullString(d.MinCoreAPI),
		nullString(d.Icon),
		boolToInt(d.Enabled),
		description,
		developer,
		nullString(d.HomePage),
		boolToInt(d.DeviceDiscovery),
		count,
		nullString(string(d.SetupDataSchema)),
		release,
		nullString(string(d.DriverState)),
	}, nil
}

func scanDriver(s rowScanner) (*intg.IntegrationDriver, error) {
	var d intg.IntegrationDriver
	var row driverRow
	var token, authMethod, minCoreAPI, icon, homePage, driverState sql.NullString
	var driverType string
	var enabled, discovery int

	err := s.Scan(
		&d.DriverID,
		&row.name,
		&driverType,
		&d.DriverURL,
		&token,
		&authMethod,
		&row.pwdProtected,
		&d.Version,
		&minCoreAPI,
		&icon,
		&enabled,
		&row.description,
		&row.developer,
		&homePage,
		&discovery,
		&row.instanceCount,
		&row.schema,
		&row.releaseDate,
		&driverState,
	)
	if err != nil {
		return nil, err
	}

	d.DriverType = intg.DriverType(driverType)
	d.Token = token.String
	d.AuthMethod = ws.Authentication(authMethod.String)
	d.MinCoreAPI = minCoreAPI.String
	d.Icon = icon.String
	d.Enabled = enabled != 0
	d.HomePage = homePage.String
	d.DeviceDiscovery = discovery != 0
	d.DriverState = intg.DriverState(driverState.String)

	if row.pwdProtected.Valid {
		protected := row.pwdProtected.Int64 != 0
		d.PwdProtected = &protected
	}
	if row.instanceCount.Valid {
		count := uint16(row.instanceCount.Int64)
		d.InstanceCount = &count
	}
	if row.schema.Valid {
		d.SetupDataSchema = json.RawMessage(row.schema.String)
	}
	if row.releaseDate.Valid {
		date, err := intg.ParseDate(row.releaseDate.String)
		if err != nil {
			return nil, fmt.Errorf("parsing release_date: %w", err)
		}
		d.ReleaseDate = &date
	}

	if err := decodeJSON("name", row.name, &d.Name); err != nil {
		return nil, err
	}
	if row.description.Valid {
		var desc model.LanguageText
		if err := decodeJSON("description", row.description, &desc); err != nil {
			return nil, err
		}
		d.Description = desc
	}
	if row.developer.Valid {
		var dev intg.DriverDeveloper
		if err := decodeJSON("developer", row.developer, &dev); err != nil {
			return nil, err
		}
		d.Developer = &dev
	}
	return &d, nil
}

// GetDriver returns the driver with the given id.
func (r *SQLiteRepository) GetDriver(ctx context.Context, id string) (*intg.IntegrationDriver, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+driverColumns+" FROM integration_drivers WHERE driver_id = ?", id)
	d, err := scanDriver(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("querying driver by id: %w", err)
	}
	return d, nil
}

// ListDrivers returns every driver ordered by id.
func (r *SQLiteRepository) ListDrivers(ctx context.Context) ([]intg.IntegrationDriver, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+driverColumns+" FROM integration_drivers ORDER BY driver_id")
	if err != nil {
		return nil, fmt.Errorf("querying drivers: %w", err)
	}
	defer rows.Close()

	var drivers []intg.IntegrationDriver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning driver: %w", err)
		}
		drivers = append(drivers, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drivers: %w", err)
	}
	return drivers, nil
}

// CreateDriver validates and inserts d.
func (r *SQLiteRepository) CreateDriver(ctx context.Context, d *intg.IntegrationDriver) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid driver: %w", err)
	}
	args, err := driverArgs(d)
	if err != nil {
		return err
	}

	query := `INSERT INTO integration_drivers (` + driverColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isDuplicate(err) {
			return ErrDriverExists
		}
		return fmt.Errorf("inserting driver: %w", err)
	}

	r.logger.Debug("driver created", "driver_id", d.DriverID, "driver_type", d.DriverType)
	return nil
}

// UpdateDriver validates d and replaces the stored row.
func (r *SQLiteRepository) UpdateDriver(ctx context.Context, d *intg.IntegrationDriver) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid driver: %w", err)
	}
	return r.updateDriver(ctx, r.db, d)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLiteRepository) updateDriver(ctx context.Context, db execer, d *intg.IntegrationDriver) error {
	args, err := driverArgs(d)
	if err != nil {
		return err
	}

	query := `
		UPDATE integration_drivers SET
			name = ?, driver_type = ?, driver_url = ?, token = ?, auth_method = ?,
			pwd_protected = ?, version = ?, min_core_api = ?, icon = ?, enabled = ?,
			description = ?, developer = ?, home_page = ?, device_discovery = ?,
			instance_count = ?, setup_data_schema = ?, release_date = ?, driver_state = ?,
			updated_at = ?
		WHERE driver_id = ?`
	args = append(args[1:], now(), d.DriverID)

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating driver: %w", err)
	}
	if err := checkAffected(res, ErrDriverNotFound); err != nil {
		return err
	}

	r.logger.Debug("driver updated", "driver_id", d.DriverID)
	return nil
}

// PatchDriver loads the driver, applies u and stores the result in one
// transaction.
func (r *SQLiteRepository) PatchDriver(ctx context.Context, id string, u intg.IntegrationDriverUpdate) (*intg.IntegrationDriver, error) {
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("invalid driver update: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	d, err := scanDriver(tx.QueryRowContext(ctx, "SELECT "+driverColumns+" FROM integration_drivers WHERE driver_id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("querying driver by id: %w", err)
	}
	if err := d.Apply(u); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid driver: %w", err)
	}
	if err := r.updateDriver(ctx, tx, d); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing driver patch: %w", err)
	}
	return d, nil
}

// SetDriverState updates only the driver state.
func (r *SQLiteRepository) SetDriverState(ctx context.Context, id string, state intg.DriverState) error {
	if !state.Valid() {
		return fmt.Errorf("invalid driver state %q", state)
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE integration_drivers SET driver_state = ?, updated_at = ? WHERE driver_id = ?",
		string(state), now(), id,
	)
	if err != nil {
		return fmt.Errorf("updating driver state: %w", err)
	}
	return checkAffected(res, ErrDriverNotFound)
}

// DeleteDriver removes the driver and, by cascade, its integrations.
func (r *SQLiteRepository) DeleteDriver(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM integration_drivers WHERE driver_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting driver: %w", err)
	}
	if err := checkAffected(res, ErrDriverNotFound); err != nil {
		return err
	}

	r.logger.Debug("driver deleted", "driver_id", id)
	return nil
}
