package sqlite

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestEncodeHistory(t *testing.T) {
	tests := []struct {
		name    string
		history []string
		want    any
	}{
		{
			name:    "nil history encodes as empty array",
			history: nil,
			want:    "[]",
		},
		{
			name:    "absolute urls preserved in order",
			history: []string{"https://a.example.com", "https://b.example.com"},
			want:    `["https://a.example.com","https://b.example.com"]`,
		},
		{
			name:    "empty and relative entries dropped",
			history: []string{"", "/relative/path", "https://kept.example.com"},
			want:    `["https://kept.example.com"]`,
		},
		{
			name:    "duplicates preserved",
			history: []string{"https://a.example.com", "https://a.example.com"},
			want:    `["https://a.example.com","https://a.example.com"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encodeHistory(tt.history))
		})
	}
}

func TestDecodeHistory(t *testing.T) {
	tests := []struct {
		name string
		raw  sql.NullString
		want []string
	}{
		{
			name: "null column degrades to empty",
			raw:  sql.NullString{},
			want: nil,
		},
		{
			name: "empty string degrades to empty",
			raw:  sql.NullString{String: "", Valid: true},
			want: nil,
		},
		{
			name: "invalid utf8 degrades to empty",
			raw:  sql.NullString{String: "\xff\xfe", Valid: true},
			want: nil,
		},
		{
			name: "non-json degrades to empty",
			raw:  sql.NullString{String: "not json at all", Valid: true},
			want: nil,
		},
		{
			name: "json object degrades to empty",
			raw:  sql.NullString{String: `{"url": "https://a.example.com"}`, Valid: true},
			want: nil,
		},
		{
			name: "valid array round-trips in order",
			raw:  sql.NullString{String: `["https://a.example.com","https://b.example.com"]`, Valid: true},
			want: []string{"https://a.example.com", "https://b.example.com"},
		},
		{
			name: "non-absolute entries dropped others kept",
			raw:  sql.NullString{String: `["https://kept.example.com","relative","https://also.example.com"]`, Valid: true},
			want: []string{"https://kept.example.com", "https://also.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeHistory(tt.raw, discardLogger())
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEncodeDecodeHistory_RoundTrip(t *testing.T) {
	history := []string{
		"https://first.example.com/page",
		"https://second.example.com/page?q=1",
		"https://first.example.com/page", // revisits survive
	}

	encoded := encodeHistory(history)
	raw, ok := encoded.(string)
	assert.True(t, ok)

	decoded := decodeHistory(sql.NullString{String: raw, Valid: true}, discardLogger())
	assert.Equal(t, history, decoded)
}

func TestIsAbsoluteURL(t *testing.T) {
	assert.True(t, isAbsoluteURL("https://example.com"))
	assert.True(t, isAbsoluteURL("about:home"))
	assert.False(t, isAbsoluteURL("/relative/path"))
	assert.False(t, isAbsoluteURL(""))
	assert.False(t, isAbsoluteURL("://missing-scheme"))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "value", nullString("value"))
}

func TestNullStringPtr(t *testing.T) {
	assert.Nil(t, nullStringPtr(nil))
	s := "value"
	assert.Equal(t, "value", nullStringPtr(&s))
}

func TestBoolToInt(t *testing.T) {
	assert.Equal(t, 1, boolToInt(true))
	assert.Equal(t, 0, boolToInt(false))
}
