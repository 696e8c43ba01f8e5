package storage_test

import (
	"testing"
	"time"

	"handlescan/pkg/domain"
	"handlescan/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestHistoryCursor_RoundTrip(t *testing.T) {
	c := storage.HistoryCursor{
		CreatedAt: time.Date(2025, 4, 1, 9, 30, 0, 123456000, time.UTC),
		ID:        domain.ScanID(uuid.MustParse("6f1c1f4e-2f0e-4a52-9d8a-8a1b2c3d4e5f")),
	}
	require.Equal(t, "2025-04-01T09:30:00.123456Z_6f1c1f4e-2f0e-4a52-9d8a-8a1b2c3d4e5f", c.String())

	parsed, err := storage.ParseHistoryCursor(c.String())
	require.NoError(t, err)
	require.True(t, c.CreatedAt.Equal(parsed.CreatedAt))
	require.Equal(t, c.ID, parsed.ID)
	require.False(t, parsed.IsZero())
	require.True(t, storage.HistoryCursor{}.IsZero())
}

func TestParseHistoryCursor_Invalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"2025-04-01T09:30:00Z",
		"yesterday_6f1c1f4e-2f0e-4a52-9d8a-8a1b2c3d4e5f",
		"2025-04-01T09:30:00Z_nope",
	} {
		_, err := storage.ParseHistoryCursor(raw)
		require.ErrorIs(t, err, storage.ErrInvalidCursor, raw)
	}
}
