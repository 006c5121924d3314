package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/wrenlock-labs/tabsync/internal/core/domain"
	"github.com/wrenlock-labs/tabsync/internal/core/ports/driven"
)

// clientsAndTabsStore implements driven.ClientsAndTabsStore and
// driven.ResettableStore.
type clientsAndTabsStore struct {
	store *Store
}

var (
	_ driven.ClientsAndTabsStore = (*clientsAndTabsStore)(nil)
	_ driven.ResettableStore     = (*clientsAndTabsStore)(nil)
)

// ==================== Writer ====================

// ReplaceTabs atomically replaces the stored tabs for one client.
// The delete uses an IS comparison so a nil clientGUID scopes the operation
// to rows where client_guid is NULL (local tabs) and nothing else.
func (s *clientsAndTabsStore) ReplaceTabs(ctx context.Context, clientGUID *string, tabs []domain.Tab) (int, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM tabs WHERE client_guid IS ?", nullStringPtr(clientGUID)); err != nil {
		return 0, fmt.Errorf("deleting tabs: %w", err)
	}

	// Baseline for the insert-confirmation check below. An insert only
	// counts if it moved the table's last rowid past this mark.
	var lastRowID int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(rowid), 0) FROM tabs").Scan(&lastRowID); err != nil {
		return 0, fmt.Errorf("reading last tab rowid: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tabs (client_guid, url, title, history, last_used)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, tab := range tabs {
		res, err := stmt.ExecContext(ctx,
			nullStringPtr(tab.ClientGUID), tab.URL, tab.Title,
			encodeHistory(tab.History), int64(tab.LastUsed))
		if err != nil {
			return 0, fmt.Errorf("inserting tab: %w", err)
		}

		rowID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading insert rowid: %w", err)
		}
		if rowID == lastRowID {
			// Silent non-effect: not counted, not an error.
			s.store.log.Warn("tab insert had no effect",
				slog.String("url", tab.URL))
			continue
		}
		lastRowID = rowID
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return inserted, nil
}

// UpsertClients updates each client by GUID, inserting those that do not
// exist, all in one transaction. Clients are processed one at a time — a
// known round-trip inefficiency, kept because the observable count semantics
// (clients iterated, not rows changed) must not change.
func (s *clientsAndTabsStore) UpsertClients(ctx context.Context, clients []domain.Client) (int, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	processed := 0
	for _, client := range clients {
		res, err := tx.ExecContext(ctx, `
			UPDATE clients
			SET name = ?, modified = ?, type = ?, formfactor = ?, os = ?, version = ?, fxaDeviceId = ?
			WHERE guid = ?
		`, client.Name, int64(client.Modified), nullString(client.Type),
			nullString(client.FormFactor), nullString(client.OS),
			nullString(client.Version), nullString(client.FxADeviceID),
			nullString(client.GUID))
		if err != nil {
			return 0, fmt.Errorf("updating client: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("reading rows affected: %w", err)
		}
		if affected == 0 {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO clients (guid, name, modified, type, formfactor, os, version, fxaDeviceId)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, nullString(client.GUID), client.Name, int64(client.Modified),
				nullString(client.Type), nullString(client.FormFactor),
				nullString(client.OS), nullString(client.Version),
				nullString(client.FxADeviceID)); err != nil {
				return 0, fmt.Errorf("inserting client: %w", err)
			}
		}
		processed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return processed, nil
}

// UpsertClient stores or updates a single client.
func (s *clientsAndTabsStore) UpsertClient(ctx context.Context, client domain.Client) (int, error) {
	return s.UpsertClients(ctx, []domain.Client{client})
}

// ==================== Reader ====================

// GetClient retrieves a client by GUID.
func (s *clientsAndTabsStore) GetClient(ctx context.Context, guid string) (*domain.Client, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE guid = ? LIMIT 1", guid)
	return scanClient(row)
}

// GetClientByFxADeviceID retrieves a client by its device registry link.
func (s *clientsAndTabsStore) GetClientByFxADeviceID(ctx context.Context, fxaDeviceID string) (*domain.Client, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE fxaDeviceId = ? LIMIT 1", fxaDeviceID)
	return scanClient(row)
}

// GetClientGUIDs returns the set of non-null client GUIDs.
func (s *clientsAndTabsStore) GetClientGUIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT DISTINCT guid FROM clients WHERE guid IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("querying client guids: %w", err)
	}
	defer rows.Close()

	guids := make(map[string]struct{})
	for rows.Next() {
		var guid string
		if err := rows.Scan(&guid); err != nil {
			return nil, fmt.Errorf("scanning client guid: %w", err)
		}
		guids[guid] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client guids: %w", err)
	}
	return guids, nil
}

// GetTabsForClient returns the tabs owned by the given client, or the local
// tabs when clientGUID is nil.
func (s *clientsAndTabsStore) GetTabsForClient(ctx context.Context, clientGUID *string) ([]domain.Tab, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+tabColumns+" FROM tabs WHERE client_guid IS ?", nullStringPtr(clientGUID))
	if err != nil {
		return nil, fmt.Errorf("querying tabs: %w", err)
	}
	defer rows.Close()

	return collectTabs(rows, s.store.log)
}

// GetClientsAndTabs reconstructs the client/tab aggregate: two reads over one
// held connection, not wrapped in a transaction. A concurrent write can land
// between the two reads; acceptable for eventually-consistent sync metadata.
func (s *clientsAndTabsStore) GetClientsAndTabs(ctx context.Context) ([]domain.ClientAndTabs, error) {
	conn, err := s.store.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	// Only clients currently known to the remote device registry are
	// included, most recently modified first.
	clientRows, err := conn.QueryContext(ctx, `
		SELECT `+clientColumns+` FROM clients
		WHERE EXISTS (SELECT 1 FROM remote_devices rd WHERE rd.guid = fxaDeviceId)
		ORDER BY modified DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}

	var clients []domain.Client //nolint:prealloc // size unknown from query
	for clientRows.Next() {
		client, err := scanClientRows(clientRows)
		if err != nil {
			clientRows.Close()
			return nil, err
		}
		clients = append(clients, *client)
	}
	if err := clientRows.Err(); err != nil {
		clientRows.Close()
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	clientRows.Close()

	// The guid-descending order groups rows per client; last_used descending
	// gives the per-client tab order the aggregate preserves.
	tabRows, err := conn.QueryContext(ctx, `
		SELECT `+tabColumns+` FROM tabs
		WHERE client_guid IS NOT NULL
		ORDER BY client_guid DESC, last_used DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tabs: %w", err)
	}

	tabsByClient := make(map[string][]domain.Tab)
	for tabRows.Next() {
		tab, err := scanTabRows(tabRows, s.store.log)
		if err != nil {
			tabRows.Close()
			return nil, err
		}
		if tab.ClientGUID == nil {
			// Filtered by the query; anomalous rows are dropped here.
			continue
		}
		guid := *tab.ClientGUID
		tabsByClient[guid] = append(tabsByClient[guid], *tab)
	}
	if err := tabRows.Err(); err != nil {
		tabRows.Close()
		return nil, fmt.Errorf("iterating tabs: %w", err)
	}
	tabRows.Close()

	result := make([]domain.ClientAndTabs, 0, len(clients))
	for _, client := range clients {
		tabs := tabsByClient[client.GUID]
		if tabs == nil {
			tabs = []domain.Tab{}
		}
		result = append(result, domain.ClientAndTabs{Client: client, Tabs: tabs})
	}
	return result, nil
}

// ==================== Lifecycle ====================

// DeleteClient removes the client row and all tabs it owns, atomically.
func (s *clientsAndTabsStore) DeleteClient(ctx context.Context, guid string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM tabs WHERE client_guid = ?", guid); err != nil {
		return fmt.Errorf("deleting client tabs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM clients WHERE guid = ?", guid); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// WipeRemoteTabs deletes all tabs owned by remote clients.
func (s *clientsAndTabsStore) WipeRemoteTabs(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx,
		"DELETE FROM tabs WHERE client_guid IS NOT NULL"); err != nil {
		return fmt.Errorf("wiping remote tabs: %w", err)
	}
	return nil
}

// WipeTabs deletes all tabs unconditionally.
func (s *clientsAndTabsStore) WipeTabs(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM tabs"); err != nil {
		return fmt.Errorf("wiping tabs: %w", err)
	}
	return nil
}

// Clear atomically deletes all remote tabs and all client rows. Local tabs
// survive.
func (s *clientsAndTabsStore) Clear(ctx context.Context) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM tabs WHERE client_guid IS NOT NULL"); err != nil {
		return fmt.Errorf("clearing remote tabs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM clients"); err != nil {
		return fmt.Errorf("clearing clients: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ResetClient discards all remote sync state ahead of a fresh sync.
func (s *clientsAndTabsStore) ResetClient(ctx context.Context) error {
	return s.Clear(ctx)
}

// collectTabs drains a tab cursor into a slice.
func collectTabs(rows *sql.Rows, log *slog.Logger) ([]domain.Tab, error) {
	var tabs []domain.Tab //nolint:prealloc // size unknown from query
	for rows.Next() {
		tab, err := scanTabRows(rows, log)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, *tab)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tabs: %w", err)
	}
	return tabs, nil
}
