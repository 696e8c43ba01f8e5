package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"handlescan/pkg/domain"

	"github.com/google/uuid"
)

// HistoryCursor is the keyset position of a scan record in the history order
// (created_at DESC, id DESC). The zero value starts from the newest record.
type HistoryCursor struct {
	CreatedAt time.Time
	ID        domain.ScanID
}

// CursorOf returns the cursor positioned at rec.
func CursorOf(rec domain.ScanRecord) HistoryCursor {
	return HistoryCursor{CreatedAt: rec.CreatedAt, ID: rec.ID}
}

// IsZero reports whether c is the start of the history.
func (c HistoryCursor) IsZero() bool {
	return c.CreatedAt.IsZero() && uuid.UUID(c.ID) == uuid.Nil
}

// String renders the cursor as "<RFC 3339 time>_<record id>".
func (c HistoryCursor) String() string {
	return c.CreatedAt.UTC().Format(time.RFC3339Nano) + "_" + uuid.UUID(c.ID).String()
}

// ParseHistoryCursor parses the output of HistoryCursor.String.
func ParseHistoryCursor(s string) (HistoryCursor, error) {
	ts, id, ok := strings.Cut(s, "_")
	if !ok {
		return HistoryCursor{}, fmt.Errorf("%w: missing record id", ErrInvalidCursor)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return HistoryCursor{}, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return HistoryCursor{}, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}

	return HistoryCursor{CreatedAt: createdAt, ID: domain.ScanID(parsed)}, nil
}

// ScanHistory groups a page of scan records returned for an identifier
// together with an optional NextCursor used for pagination.
type ScanHistory struct {
	// Records contains the current page, newest first.
	Records []domain.ScanRecord
	// NextCursor is the position of the last record of the page. It is nil
	// when there is no next page.
	NextCursor *HistoryCursor
}

// ScanStorage persists scan results and queries the scan history.
type ScanStorage interface {
	// StoreScans inserts one or more scan results and returns the stored
	// records including generated fields.
	StoreScans(ctx context.Context, results ...domain.ScanResult) ([]domain.ScanRecord, error)
	// ScansByIdentifier returns a page of records for the identifier that come
	// after cursor in history order, limited by the given limit.
	ScansByIdentifier(ctx context.Context, identifier string, cursor HistoryCursor, limit uint) (ScanHistory, error)
	// LastScanByIdentifier returns the most recent record for the identifier,
	// or nil when the identifier was never scanned.
	LastScanByIdentifier(ctx context.Context, identifier string) (*domain.ScanRecord, error)
}
