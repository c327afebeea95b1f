package core

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// IMPORTANT: DecisionResult should only be constructed using the provided factory methods:
// IdempotentDecision(err), SuccessDecision(event), or ErrorDecision(err).
type DecisionResult struct {
	Outcome string      // "idempotent", "success", or "error"
	Event   DomainEvent // nil unless the outcome is "success"
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult for a request that is already satisfied or already undone.
// The refusal err is still reported to the caller, but nothing changes.
func IdempotentDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: idempotentOutcome,
		Err:     err,
	}
}

// SuccessDecision creates a DecisionResult indicating a state change described by event.
func SuccessDecision(event DomainEvent) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Event:   event,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// HasEventToApply returns true if there is a change to apply to the catalog store.
func (r DecisionResult) HasEventToApply() bool {
	return r.Outcome == successOutcome
}

// IsIdempotent returns true for idempotent refusals.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the refusal if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == successOutcome {
		return nil
	}

	return r.Err
}
