// Package errors provides the optimiser's error taxonomy: a coded error
// type carrying structured fields, composed into per-unit outcomes rather
// than aborting a run (spec §7).
package errors

import "fmt"

// Kind enumerates the optimiser's error taxonomy (spec §7).
type Kind string

const (
	KindNoUnits                     Kind = "no_units"
	KindCancelled                   Kind = "cancelled"
	KindSlotHasNoCandidates         Kind = "slot_has_no_candidates"
	KindNoAttributeArtifact         Kind = "no_attribute_artifact"
	KindNoTypeArtifact              Kind = "no_type_artifact"
	KindMainstatUnavailable         Kind = "mainstat_unavailable"
	KindArtifactFilterUnsatisfiable Kind = "artifact_filter_unsatisfiable"
	KindSetOptionUnsatisfiable      Kind = "set_option_unsatisfiable"
	KindMinStatUnreachable          Kind = "min_stat_unreachable"
	KindGlobalTimeLimit             Kind = "global_time_limit"
	KindArenaOpeningOrderViolated   Kind = "arena_opening_order_violated"
	KindSolverException             Kind = "solver_exception"
)

// CodedError represents an error with a structured kind, a short code and
// a human-readable message, consolidating what the teacher split across
// duplicate per-package error types.
type CodedError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *CodedError) Error() string {
	return e.Message
}

// New creates a CodedError with an explicit kind.
func New(kind Kind, code, message string) *CodedError {
	return &CodedError{Kind: kind, Code: code, Message: message}
}

// NoUnits reports an empty optimisation request.
func NoUnits() *CodedError {
	return New(KindNoUnits, "no_units", "request contains no monsters to optimise")
}

// Cancelled reports a user- or deadline-triggered cancellation.
func Cancelled() *CodedError {
	return New(KindCancelled, "cancelled", "cancelled")
}

// SlotHasNoCandidates reports an empty rune slot in the pruned pool.
func SlotHasNoCandidates(slot int) *CodedError {
	return New(KindSlotHasNoCandidates, "slot_has_no_candidates",
		fmt.Sprintf("no candidate runes for slot %d", slot))
}

// NoAttributeArtifact reports an empty type-1 (attribute) artifact pool.
func NoAttributeArtifact() *CodedError {
	return New(KindNoAttributeArtifact, "no_attribute_artifact", "no attribute artifact available")
}

// NoTypeArtifact reports an empty type-2 (type) artifact pool.
func NoTypeArtifact() *CodedError {
	return New(KindNoTypeArtifact, "no_type_artifact", "no type artifact available")
}

// MainstatUnavailable reports a slot restriction no candidate rune satisfies.
func MainstatUnavailable(slot int, allowedKeys []string) *CodedError {
	return New(KindMainstatUnavailable, "mainstat_unavailable",
		fmt.Sprintf("no candidate for slot %d with main-stat in %v", slot, allowedKeys))
}

// ArtifactFilterUnsatisfiable reports no artifact of a type satisfying the
// build's focus/substat filter.
func ArtifactFilterUnsatisfiable(kind string, focus string, subs []string) *CodedError {
	return New(KindArtifactFilterUnsatisfiable, "artifact_filter_unsatisfiable",
		fmt.Sprintf("no %s artifact matching focus=%q substats=%v", kind, focus, subs))
}

// SetOptionUnsatisfiable reports a set requirement no inventory subset can
// cover, including after intangible-replacement accounting.
func SetOptionUnsatisfiable(setID int, required, available int) *CodedError {
	return New(KindSetOptionUnsatisfiable, "set_option_unsatisfiable",
		fmt.Sprintf("set %d needs %d pieces, only %d available", setID, required, available))
}

// MinStatUnreachable reports a stat floor no feasible assignment can reach.
func MinStatUnreachable(stat string, threshold int) *CodedError {
	return New(KindMinStatUnreachable, "min_stat_unreachable",
		fmt.Sprintf("%s floor of %d is unreachable with available inventory", stat, threshold))
}

// GlobalTimeLimit reports the global model hitting its wall-clock budget.
func GlobalTimeLimit() *CodedError {
	return New(KindGlobalTimeLimit, "global_time_limit", "global model exceeded its time budget")
}

// ArenaOpeningOrderViolated reports a simulated opening order that
// diverges from the expected one after exhausting repair attempts.
func ArenaOpeningOrderViolated(penalty int) *CodedError {
	return New(KindArenaOpeningOrderViolated, "arena_opening_order_violated",
		fmt.Sprintf("opening order diverged from expected, penalty=%d", penalty))
}

// SolverException wraps a CP backend failure as an infeasibility for the
// affected unit, embedding the backend's status string.
func SolverException(status string) *CodedError {
	return New(KindSolverException, "solver_exception",
		fmt.Sprintf("solver backend failed: %s", status))
}
