package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/nerrad567/ucapi/intg"
)

const integrationColumns = `integration_id, driver_id, device_id, name, icon, enabled, setup_data, device_state`

func scanIntegration(s rowScanner) (*intg.Integration, error) {
	var in intg.Integration
	var deviceID, icon, deviceState, name, setupData sql.NullString
	var enabled int

	if err := s.Scan(&in.IntegrationID, &in.DriverID, &deviceID, &name, &icon, &enabled, &setupData, &deviceState); err != nil {
		return nil, err
	}
	in.DeviceID = deviceID.String
	in.Icon = icon.String
	in.Enabled = enabled != 0
	in.DeviceState = intg.DeviceState(deviceState.String)

	if err := decodeJSON("name", name, &in.Name); err != nil {
		return nil, err
	}
	if err := decodeJSON("setup_data", setupData, &in.SetupData); err != nil {
		return nil, err
	}
	if in.SetupData == nil {
		in.SetupData = map[string]any{}
	}
	return &in, nil
}

func integrationArgs(in *intg.Integration) ([]any, error) {
	name, err := encodeJSON(in.Name, false)
	if err != nil {
		return nil, fmt.Errorf("encoding name: %w", err)
	}
	setupData, err := encodeJSON(in.SetupData, false)
	if err != nil {
		return nil, fmt.Errorf("encoding setup_data: %w", err)
	}
	return []any{
		in.IntegrationID,
		in.DriverID,
		nullString(in.DeviceID),
		name,
		nullString(in.Icon),
		boolToInt(in.Enabled),
		setupData,
		nullString(string(in.DeviceState)),
	}, nil
}

// GetIntegration returns the integration with the given id.
func (r *SQLiteRepository) GetIntegration(ctx context.Context, id string) (*intg.Integration, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+integrationColumns+" FROM integrations WHERE integration_id = ?", id)
	in, err := scanIntegration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIntegrationNotFound
		}
		return nil, fmt.Errorf("querying integration by id: %w", err)
	}
	return in, nil
}

// ListIntegrations returns the integrations of driverID ordered by id, or
// every integration when driverID is empty.
func (r *SQLiteRepository) ListIntegrations(ctx context.Context, driverID string) ([]intg.Integration, error) {
	query := "SELECT " + integrationColumns + " FROM integrations"
	var args []any
	if driverID != "" {
		query += " WHERE driver_id = ?"
		args = append(args, driverID)
	}
	query += " ORDER BY integration_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying integrations: %w", err)
	}
	defer rows.Close()

	var list []intg.Integration
	for rows.Next() {
		in, err := scanIntegration(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning integration: %w", err)
		}
		list = append(list, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating integrations: %w", err)
	}
	return list, nil
}

// CreateIntegration validates and inserts in. The driver must exist.
func (r *SQLiteRepository) CreateIntegration(ctx context.Context, in *intg.Integration) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("invalid integration: %w", err)
	}
	args, err := integrationArgs(in)
	if err != nil {
		return err
	}

	query := `INSERT INTO integrations (` + integrationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		switch {
		case isDuplicate(err):
			return ErrIntegrationExists
		case isConstraint(err, sqlite3.ErrConstraintForeignKey):
			return fmt.Errorf("%w: %s", ErrDriverNotFound, in.DriverID)
		}
		return fmt.Errorf("inserting integration: %w", err)
	}

	r.logger.Debug("integration created", "integration_id", in.IntegrationID, "driver_id", in.DriverID)
	return nil
}

// UpdateIntegration validates in and replaces the stored row. The driver
// reference cannot change.
func (r *SQLiteRepository) UpdateIntegration(ctx context.Context, in *intg.Integration) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("invalid integration: %w", err)
	}
	return r.updateIntegration(ctx, r.db, in)
}

func (r *SQLiteRepository) updateIntegration(ctx context.Context, db execer, in *intg.Integration) error {
	args, err := integrationArgs(in)
	if err != nil {
		return err
	}

	query := `
		UPDATE integrations SET
			device_id = ?, name = ?, icon = ?, enabled = ?, setup_data = ?, device_state = ?,
			updated_at = ?
		WHERE integration_id = ? AND driver_id = ?`
	args = append(args[2:], now(), in.IntegrationID, in.DriverID)

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating integration: %w", err)
	}
	if err := checkAffected(res, ErrIntegrationNotFound); err != nil {
		return err
	}

	r.logger.Debug("integration updated", "integration_id", in.IntegrationID)
	return nil
}

// PatchIntegration loads the integration, applies u and stores the result in
// one transaction.
func (r *SQLiteRepository) PatchIntegration(ctx context.Context, id string, u intg.IntegrationUpdate) (*intg.Integration, error) {
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("invalid integration update: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	in, err := scanIntegration(tx.QueryRowContext(ctx, "SELECT "+integrationColumns+" FROM integrations WHERE integration_id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIntegrationNotFound
		}
		return nil, fmt.Errorf("querying integration by id: %w", err)
	}
	if err := in.Apply(u); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid integration: %w", err)
	}
	if err := r.updateIntegration(ctx, tx, in); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing integration patch: %w", err)
	}
	return in, nil
}

// SetDeviceState updates only the device state of an integration.
func (r *SQLiteRepository) SetDeviceState(ctx context.Context, id string, state intg.DeviceState) error {
	if !state.Valid() {
		return fmt.Errorf("invalid device state %q", state)
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE integrations SET device_state = ?, updated_at = ? WHERE integration_id = ?",
		string(state), now(), id,
	)
	if err != nil {
		return fmt.Errorf("updating device state: %w", err)
	}
	return checkAffected(res, ErrIntegrationNotFound)
}

// DeleteIntegration removes one integration.
func (r *SQLiteRepository) DeleteIntegration(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM integrations WHERE integration_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting integration: %w", err)
	}
	if err := checkAffected(res, ErrIntegrationNotFound); err != nil {
		return err
	}

	r.logger.Debug("integration deleted", "integration_id", id)
	return nil
}
