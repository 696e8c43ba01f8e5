package domain

// Outcome is the classified result of a single probe.
type Outcome string

const (
	// OutcomeHit means the provider confirmed the identifier exists.
	OutcomeHit Outcome = "HIT"
	// OutcomeMiss means the provider answered and the identifier was not found.
	OutcomeMiss Outcome = "MISS"
	// OutcomeRateLimited means the provider refused to answer because of rate limiting.
	OutcomeRateLimited Outcome = "RATE_LIMITED"
	// OutcomeRestricted means the provider denied access to the profile.
	OutcomeRestricted Outcome = "RESTRICTED"
	// OutcomeFailed means presence could not be determined (transport failure after retries).
	OutcomeFailed Outcome = "FAILED"
)

// ProviderReport is the outcome of probing a single provider during a scan.
type ProviderReport struct {
	// Provider is the provider name.
	Provider string `json:"provider"`
	// Outcome is the classified result.
	Outcome Outcome `json:"outcome"`
	// Reason holds the last error for FAILED outcomes.
	Reason string `json:"reason,omitempty"`
	// Attempts is the number of probe attempts made.
	Attempts int `json:"attempts"`
}
