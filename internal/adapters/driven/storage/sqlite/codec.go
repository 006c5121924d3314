package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"unicode/utf8"

	"github.com/wrenlock-labs/tabsync/internal/core/domain"
)

// Column lists shared by the client queries and their scan helpers.
const clientColumns = "guid, name, modified, type, formfactor, os, version, fxaDeviceId"

const tabColumns = "client_guid, url, title, history, last_used"

// scanClient maps a client row to a domain.Client. A missing or malformed
// required field (name, modified) yields an error wrapping
// domain.ErrMalformedRow; callers choose whether to skip the row or abort.
func scanClient(row *sql.Row) (*domain.Client, error) {
	var guid, name, typ, formFactor, osName, version, fxaDeviceID sql.NullString
	var modified sql.NullInt64

	if err := row.Scan(&guid, &name, &modified, &typ, &formFactor, &osName, &version, &fxaDeviceID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}

	return buildClient(guid, name, modified, typ, formFactor, osName, version, fxaDeviceID)
}

// scanClientRows is scanClient for *sql.Rows.
func scanClientRows(rows *sql.Rows) (*domain.Client, error) {
	var guid, name, typ, formFactor, osName, version, fxaDeviceID sql.NullString
	var modified sql.NullInt64

	if err := rows.Scan(&guid, &name, &modified, &typ, &formFactor, &osName, &version, &fxaDeviceID); err != nil {
		return nil, fmt.Errorf("scanning client: %w", err)
	}

	return buildClient(guid, name, modified, typ, formFactor, osName, version, fxaDeviceID)
}

func buildClient(guid, name sql.NullString, modified sql.NullInt64, typ, formFactor, osName, version, fxaDeviceID sql.NullString) (*domain.Client, error) {
	if !name.Valid {
		return nil, fmt.Errorf("client name: %w", domain.ErrMalformedRow)
	}
	if !modified.Valid || modified.Int64 < 0 {
		return nil, fmt.Errorf("client modified: %w", domain.ErrMalformedRow)
	}

	return &domain.Client{
		GUID:        guid.String,
		Name:        name.String,
		Modified:    uint64(modified.Int64),
		Type:        typ.String,
		FormFactor:  formFactor.String,
		OS:          osName.String,
		Version:     version.String,
		FxADeviceID: fxaDeviceID.String,
	}, nil
}

// scanTabRows maps a tab row to a domain.Tab. url and title are required and
// url must parse as an absolute URL; violations yield an error wrapping
// domain.ErrMalformedRow. A missing or malformed history column degrades to
// an empty history instead of failing the decode.
func scanTabRows(rows *sql.Rows, log *slog.Logger) (*domain.Tab, error) {
	var clientGUID, rawURL, title, history sql.NullString
	var lastUsed sql.NullInt64

	if err := rows.Scan(&clientGUID, &rawURL, &title, &history, &lastUsed); err != nil {
		return nil, fmt.Errorf("scanning tab: %w", err)
	}

	if !rawURL.Valid || !isAbsoluteURL(rawURL.String) {
		return nil, fmt.Errorf("tab url: %w", domain.ErrMalformedRow)
	}
	if !title.Valid {
		return nil, fmt.Errorf("tab title: %w", domain.ErrMalformedRow)
	}
	if !lastUsed.Valid || lastUsed.Int64 < 0 {
		return nil, fmt.Errorf("tab last_used: %w", domain.ErrMalformedRow)
	}

	tab := &domain.Tab{
		URL:      rawURL.String,
		Title:    title.String,
		History:  decodeHistory(history, log),
		LastUsed: uint64(lastUsed.Int64),
	}
	if clientGUID.Valid {
		guid := clientGUID.String
		tab.ClientGUID = &guid
	}
	return tab, nil
}

// scanRemoteDevice maps a registry row to a domain.RemoteDevice.
func scanRemoteDevice(rows *sql.Rows) (*domain.RemoteDevice, error) {
	var guid, name string
	var typ sql.NullString
	var isCurrent int
	var lastAccess sql.NullInt64

	if err := rows.Scan(&guid, &name, &typ, &isCurrent, &lastAccess); err != nil {
		return nil, fmt.Errorf("scanning remote device: %w", err)
	}

	device := &domain.RemoteDevice{
		GUID:            guid,
		Name:            name,
		Type:            typ.String,
		IsCurrentDevice: isCurrent == 1,
	}
	if lastAccess.Valid && lastAccess.Int64 > 0 {
		device.LastAccessTime = uint64(lastAccess.Int64)
	}
	return device, nil
}

// encodeHistory serializes a tab's visited-history list for storage. Empty
// and non-absolute entries are dropped rather than rejected. Returns a value
// suitable for statement binding: a JSON string, or nil (SQL NULL) if
// serialization fails.
func encodeHistory(history []string) any {
	urls := make([]string, 0, len(history))
	for _, entry := range history {
		if entry == "" || !isAbsoluteURL(entry) {
			continue
		}
		urls = append(urls, entry)
	}

	data, err := json.Marshal(urls)
	if err != nil {
		return nil
	}
	return string(data)
}

// decodeHistory is the inverse of encodeHistory. NULL, non-UTF-8, or
// non-JSON-array input degrades to an empty history; individual entries that
// fail URL parsing are dropped, not fatal.
func decodeHistory(raw sql.NullString, log *slog.Logger) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	if !utf8.ValidString(raw.String) {
		log.Debug("dropping tab history", slog.String("reason", "not valid UTF-8"))
		return nil
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw.String), &entries); err != nil {
		log.Debug("dropping tab history", slog.String("reason", "not a JSON string array"))
		return nil
	}

	history := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !isAbsoluteURL(entry) {
			log.Debug("dropping history entry", slog.String("url", entry))
			continue
		}
		history = append(history, entry)
	}
	return history
}

// isAbsoluteURL reports whether s parses as a URL with a scheme.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullStringPtr returns nil for nil pointers, otherwise the pointed-to string.
func nullStringPtr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
