package payroll

// BatchStatus enum
type BatchStatus string

const (
	BatchStatusDraft     BatchStatus = "draft"
	BatchStatusSubmitted BatchStatus = "submitted"
	BatchStatusApproved  BatchStatus = "approved"
	BatchStatusRejected  BatchStatus = "rejected"
	BatchStatusPaid      BatchStatus = "paid"
)

// allowedBatchTransitions is the closed transition graph:
// draft -> submitted -> approved -> paid, with submitted -> rejected
// and rejected -> draft (resubmission) as the only back-edges.
// Paid is terminal; any change after payment requires a new batch.
var allowedBatchTransitions = map[BatchStatus][]BatchStatus{
	BatchStatusDraft:     {BatchStatusSubmitted},
	BatchStatusSubmitted: {BatchStatusApproved, BatchStatusRejected},
	BatchStatusRejected:  {BatchStatusDraft},
	BatchStatusApproved:  {BatchStatusPaid},
}

// Valid reports whether s is one of the known statuses.
func (s BatchStatus) Valid() bool {
	switch s {
	case BatchStatusDraft, BatchStatusSubmitted, BatchStatusApproved, BatchStatusRejected, BatchStatusPaid:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to target is allowed.
func (s BatchStatus) CanTransition(target BatchStatus) bool {
	for _, next := range allowedBatchTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Transition validates a batch move, returning InvalidStateTransition
// when the edge is not in the graph.
func (s BatchStatus) Transition(target BatchStatus) error {
	if !s.CanTransition(target) {
		return &InvalidStateTransitionError{From: s, To: target}
	}
	return nil
}

// Mutable reports whether batch lines may still change (regeneration
// in draft, corrections in draft and submitted). Totals are frozen
// once the batch leaves these states.
func (s BatchStatus) Mutable() bool {
	return s == BatchStatusDraft || s == BatchStatusSubmitted
}

// Deletable reports whether the batch may be deleted. Only drafts.
func (s BatchStatus) Deletable() bool {
	return s == BatchStatusDraft
}
