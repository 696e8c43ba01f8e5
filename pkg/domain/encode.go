package domain

import (
	"time"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
)

// Encode writes the report as a JSON object.
func (r ProviderReport) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("provider", func(e *jx.Encoder) { e.Str(r.Provider) })
		e.Field("outcome", func(e *jx.Encoder) { e.Str(string(r.Outcome)) })
		if r.Reason != "" {
			e.Field("reason", func(e *jx.Encoder) { e.Str(r.Reason) })
		}
		e.Field("attempts", func(e *jx.Encoder) { e.Int(r.Attempts) })
	})
}

// Encode writes the result as a JSON object. Slices are always written as
// arrays, never null.
func (r ScanResult) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("identifier", func(e *jx.Encoder) { e.Str(r.Identifier) })
		e.Field("hits", func(e *jx.Encoder) { e.Int(r.Hits) })
		e.Field("platforms", func(e *jx.Encoder) { encodeStrings(e, r.Platforms) })
		e.Field("emails", func(e *jx.Encoder) { encodeStrings(e, r.Emails) })
		e.Field("reports", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, rep := range r.Reports {
					rep.Encode(e)
				}
			})
		})
		e.Field("scannedAt", func(e *jx.Encoder) { e.Str(r.ScannedAt.UTC().Format(time.RFC3339Nano)) })
	})
}

// Encode writes the record as a JSON object.
func (r ScanRecord) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(uuid.UUID(r.ID).String()) })
		e.Field("result", r.Result.Encode)
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(r.CreatedAt.UTC().Format(time.RFC3339Nano)) })
	})
}

func encodeStrings(e *jx.Encoder, values []string) {
	e.Arr(func(e *jx.Encoder) {
		for _, v := range values {
			e.Str(v)
		}
	})
}
