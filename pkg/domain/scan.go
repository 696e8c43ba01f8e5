package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// ScanID uniquely identifies a persisted scan record.
// It wraps uuid.UUID to provide type safety at the domain layer.
type ScanID uuid.UUID

// UserID identifies the caller of the HTTP API (the JWT subject).
type UserID uuid.UUID

// ScanResult is the aggregate outcome of scanning one identifier across all
// configured providers.
type ScanResult struct {
	// Identifier is the scanned handle.
	Identifier string `json:"identifier"`
	// Hits is the number of providers where the identifier was found.
	Hits int `json:"hits"`
	// Platforms lists providers with a HIT, in configured provider order.
	Platforms []string `json:"platforms"`
	// Emails is reserved for enrichment and always empty.
	Emails []string `json:"emails"`
	// Reports holds one entry per probed provider, in configured provider order.
	Reports []ProviderReport `json:"reports"`
	// ScannedAt is when the scan finished.
	ScannedAt time.Time `json:"scannedAt"`
}

// NewScanResult aggregates provider reports, which must already be in
// configured provider order.
func NewScanResult(identifier string, reports []ProviderReport, scannedAt time.Time) ScanResult {
	res := ScanResult{
		Identifier: identifier,
		Platforms:  []string{},
		Emails:     []string{},
		Reports:    reports,
		ScannedAt:  scannedAt,
	}
	if res.Reports == nil {
		res.Reports = []ProviderReport{}
	}
	for _, r := range reports {
		if r.Outcome == OutcomeHit {
			res.Platforms = append(res.Platforms, r.Provider)
		}
	}
	res.Hits = len(res.Platforms)

	return res
}

// Clone returns a deep copy of the result.
func (r ScanResult) Clone() ScanResult {
	out := r
	out.Platforms = slices.Clone(r.Platforms)
	out.Emails = slices.Clone(r.Emails)
	out.Reports = slices.Clone(r.Reports)

	return out
}

// Failed returns the number of providers whose outcome could not be determined.
func (r ScanResult) Failed() int {
	n := 0
	for _, rep := range r.Reports {
		if rep.Outcome == OutcomeFailed {
			n++
		}
	}

	return n
}

// ScanRecord is a persisted scan result.
type ScanRecord struct {
	// ID is the unique identifier of the record.
	ID ScanID `json:"id"`
	// Result is the stored scan result.
	Result ScanResult `json:"result"`
	// CreatedAt is the time the record was stored.
	CreatedAt time.Time `json:"createdAt"`
}
