package sqlite

import (
	"context"
	"fmt"

	"github.com/wrenlock-labs/tabsync/internal/core/domain"
	"github.com/wrenlock-labs/tabsync/internal/core/ports/driven"
)

// remoteDevicesStore implements driven.RemoteDevicesStore.
type remoteDevicesStore struct {
	store *Store
}

var _ driven.RemoteDevicesStore = (*remoteDevicesStore)(nil)

// ReplaceRemoteDevices atomically replaces all non-current registry rows.
// The current device's row is owned by account management, not by sync, so
// it is neither deleted nor re-inserted here.
func (s *remoteDevicesStore) ReplaceRemoteDevices(ctx context.Context, devices []domain.RemoteDevice) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM remote_devices WHERE is_current_device = 0"); err != nil {
		return fmt.Errorf("deleting remote devices: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO remote_devices (guid, name, type, is_current_device, last_access_time)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, device := range devices {
		if device.IsCurrentDevice {
			continue
		}
		if _, err := stmt.ExecContext(ctx, device.GUID, device.Name,
			nullString(device.Type), boolToInt(device.IsCurrentDevice),
			int64(device.LastAccessTime)); err != nil {
			return fmt.Errorf("inserting remote device: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetRemoteDevices returns all registry rows.
func (s *remoteDevicesStore) GetRemoteDevices(ctx context.Context) ([]domain.RemoteDevice, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT guid, name, type, is_current_device, last_access_time
		FROM remote_devices
	`)
	if err != nil {
		return nil, fmt.Errorf("querying remote devices: %w", err)
	}
	defer rows.Close()

	var devices []domain.RemoteDevice //nolint:prealloc // size unknown from query
	for rows.Next() {
		device, err := scanRemoteDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, *device)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating remote devices: %w", err)
	}
	return devices, nil
}
