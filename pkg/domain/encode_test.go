package domain_test

import (
	"testing"
	"time"

	"handlescan/pkg/domain"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestScanResult_Encode(t *testing.T) {
	res := domain.NewScanResult("alice", []domain.ProviderReport{
		{Provider: "GitHub", Outcome: domain.OutcomeHit, Attempts: 1},
		{Provider: "Steam", Outcome: domain.OutcomeFailed, Reason: "timeout", Attempts: 3},
	}, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))

	var e jx.Encoder
	res.Encode(&e)

	require.JSONEq(t, `{
		"identifier": "alice",
		"hits": 1,
		"platforms": ["GitHub"],
		"emails": [],
		"reports": [
			{"provider": "GitHub", "outcome": "HIT", "attempts": 1},
			{"provider": "Steam", "outcome": "FAILED", "reason": "timeout", "attempts": 3}
		],
		"scannedAt": "2025-01-02T03:04:05Z"
	}`, e.String())
}

func TestScanResult_EncodeEmpty(t *testing.T) {
	var e jx.Encoder
	domain.ScanResult{Identifier: "bob"}.Encode(&e)

	require.JSONEq(t, `{
		"identifier": "bob",
		"hits": 0,
		"platforms": [],
		"emails": [],
		"reports": [],
		"scannedAt": "0001-01-01T00:00:00Z"
	}`, e.String())
}

func TestScanRecord_Encode(t *testing.T) {
	id := uuid.MustParse("0b7e5e4c-8d9a-4f5e-9a51-3f0c7c0e9b11")
	rec := domain.ScanRecord{
		ID:        domain.ScanID(id),
		Result:    domain.NewScanResult("carol", nil, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)),
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 6, 0, time.UTC),
	}

	var e jx.Encoder
	rec.Encode(&e)

	require.True(t, jx.Valid(e.Bytes()))
	d := jx.DecodeBytes(e.Bytes())
	fields := map[string]bool{}
	require.NoError(t, d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		fields[string(key)] = true
		if string(key) == "id" {
			v, err := d.Str()
			require.Equal(t, id.String(), v)

			return err
		}

		return d.Skip()
	}))
	require.Equal(t, map[string]bool{"id": true, "result": true, "createdAt": true}, fields)
}
