package scanner

import (
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// JobArgs contains the arguments for a background scan job submitted to River.
// The struct is used as the unique key for jobs to prevent duplicate work per identifier.
type JobArgs struct {
	// Identifier is the handle to scan. It is marked as unique so River can enforce
	// one job per identifier according to InsertOpts.UniqueOpts.
	Identifier string `json:"identifier" river:"unique"`

	// maxAttempts configures the maximum number of times River should retry the job.
	maxAttempts int
	// uniqueJobPeriod defines the lookback window during which a job with the
	// same arguments is considered a duplicate across the specified states.
	uniqueJobPeriod time.Duration
}

// Kind returns the River job kind used to register and dispatch the scan worker.
func (args JobArgs) Kind() string { return "ScanIdentifierJob" }

// InsertOpts returns the River options that control how the job is enqueued,
// including the maximum retry attempts and uniqueness constraints to prevent
// duplicate jobs for the same identifier across multiple job states.
func (args JobArgs) InsertOpts() river.InsertOpts {
	opts := river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		// one unfinished job per identifier
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
	// a completed job blocks duplicates only while its result is fresh in the
	// cache, so without a period it must not count at all
	if args.uniqueJobPeriod > 0 {
		opts.UniqueOpts.ByPeriod = args.uniqueJobPeriod
		opts.UniqueOpts.ByState = append(opts.UniqueOpts.ByState, rivertype.JobStateCompleted)
	}

	return opts
}
