package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background scan jobs. Backends insert the job in the
// same transaction as other writes when one is open, so a job only becomes
// visible to workers after commit.
//
//	added, err := tx.AddJob(ctx, scanner.JobArgs{Identifier: "alice"}, nil)
type JobStorage interface {
	// AddJob enqueues a job with the given arguments. It reports false when a
	// unique job with the same arguments already exists.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
