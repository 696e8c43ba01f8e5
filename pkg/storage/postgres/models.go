package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"handlescan/pkg/domain"

	"github.com/google/uuid"
)

// PgScan is a row of the scans table.
type PgScan struct {
	ID         uuid.UUID       `db:"id"         goqu:"skipinsert"`
	Identifier string          `db:"identifier"`
	Hits       int             `db:"hits"`
	Result     json.RawMessage `db:"result"`
	ScannedAt  time.Time       `db:"scanned_at"`
	CreatedAt  time.Time       `db:"created_at" goqu:"skipinsert"`
}

func (p *PgScan) ToDomain() (*domain.ScanRecord, error) {
	var result domain.ScanResult
	if err := json.Unmarshal(p.Result, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal scan result: %w", err)
	}

	return &domain.ScanRecord{
		ID:        domain.ScanID(p.ID),
		Result:    result,
		CreatedAt: p.CreatedAt,
	}, nil
}

func (p *PgScan) FromDomain(result domain.ScanResult) error {
	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal scan result: %w", err)
	}

	*p = PgScan{
		Identifier: result.Identifier,
		Hits:       result.Hits,
		Result:     b,
		ScannedAt:  result.ScannedAt,
	}

	return nil
}

func domainResultsToPg(results []domain.ScanResult) ([]PgScan, error) {
	out := make([]PgScan, len(results))
	for i := range out {
		if err := out[i].FromDomain(results[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgScansToDomain(scans []PgScan) ([]domain.ScanRecord, error) {
	out := make([]domain.ScanRecord, 0, len(scans))
	for _, scan := range scans {
		d, err := scan.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
