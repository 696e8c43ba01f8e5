package postgres

import (
	"context"
	"fmt"

	"handlescan/pkg/domain"
	"handlescan/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	scansTable = "scans"
)

// StoreScans inserts the results and returns the stored records.
func (p *PgSQL) StoreScans(ctx context.Context, results ...domain.ScanResult) ([]domain.ScanRecord, error) {
	if len(results) == 0 {
		return nil, nil
	}

	pgScans, err := domainResultsToPg(results)
	if err != nil {
		return nil, err
	}

	var rows []PgScan
	if err := p.Builder.Insert(scansTable).
		Rows(pgScans).
		Returning(&PgScan{}).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not store scans into pg: %w", err)
	}

	return pgScansToDomain(rows)
}

// ScansByIdentifier returns scans of an identifier positioned after the
// cursor. Results are ordered by created_at DESC, id DESC and the cursor
// compares on both columns, so records sharing a timestamp are never skipped.
func (p *PgSQL) ScansByIdentifier(ctx context.Context,
	identifier string,
	cursor storage.HistoryCursor,
	limit uint) (storage.ScanHistory, error) {
	w := []goqu.Expression{
		goqu.I("identifier").Eq(identifier),
	}
	if !cursor.IsZero() {
		w = append(w, goqu.Or(
			goqu.I("created_at").Lt(cursor.CreatedAt),
			goqu.And(
				goqu.I("created_at").Eq(cursor.CreatedAt),
				goqu.I("id").Lt(uuid.UUID(cursor.ID).String()),
			),
		))
	}

	// fetch one extra to determine if there is a next page
	ds := p.Builder.From(scansTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit + 1)

	var rows []PgScan
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.ScanHistory{}, fmt.Errorf("could not fetch scans by identifier from pg: %w", err)
	}

	hasMore := uint(len(rows)) > limit
	if hasMore {
		rows = rows[:limit]
	}

	records, err := pgScansToDomain(rows)
	if err != nil {
		return storage.ScanHistory{}, err
	}

	var nextCursor *storage.HistoryCursor
	if hasMore {
		c := storage.CursorOf(records[len(records)-1])
		nextCursor = &c
	}

	return storage.ScanHistory{
		Records:    records,
		NextCursor: nextCursor,
	}, nil
}

// LastScanByIdentifier returns the newest scan of an identifier or nil.
func (p *PgSQL) LastScanByIdentifier(ctx context.Context, identifier string) (*domain.ScanRecord, error) {
	var row PgScan
	found, err := p.Builder.From(scansTable).
		Where(goqu.I("identifier").Eq(identifier)).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(1).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch last scan by identifier: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
