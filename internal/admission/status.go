package admission

// Status is the submission outcome reported to polling callers.
type Status string

const (
	// StatusSuccess means the bundle is admitted (or was confirmed).
	StatusSuccess Status = "SUCCESS"
	// StatusPending means the bundle was not admitted now but may be
	// worth resubmitting, e.g. once the pool minimum fee rate drops.
	StatusPending Status = "PENDING"
	// StatusFailed is a terminal rejection.
	StatusFailed Status = "FAILED"
)

// Result pairs a status with a human-readable reason.
// Reason is empty for a plain success.
type Result struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}
