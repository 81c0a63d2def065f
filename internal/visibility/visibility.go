// Package visibility is the single authority for which listings the public
// may see and for the owner-facing status label. Every list endpoint goes
// through Filter so the results cannot drift apart.
package visibility

import "github.com/mightytheif/sakany/pkg/models"

// IsPubliclyVisible reports whether a listing is eligible for public display:
// the owner published it, an admin verified it, and its lifecycle status is
// active or approved. Missing fields count as false.
func IsPubliclyVisible(p models.Property) bool {
	if !p.Published || !p.Verified {
		return false
	}
	return p.Status == models.StatusActive || p.Status == models.StatusApproved
}

// Filter returns the publicly visible subset of props, preserving order.
// Filtering an already filtered list is a no-op.
func Filter(props []models.Property) []models.Property {
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if IsPubliclyVisible(p) {
			out = append(out, p)
		}
	}
	return out
}

// DisplayStatus derives the label shown on the owner's listings view. The raw
// status field alone is not enough: "active" means both admin-approved-live
// and awaiting-verification depending on the verified flag.
func DisplayStatus(p models.Property) string {
	switch {
	case p.Status == models.StatusRejected:
		// Rejection is always honored regardless of the other flags.
		return models.StatusRejected
	case p.Status == models.StatusActive && p.Verified:
		return models.StatusApproved
	case p.Status == models.StatusActive && !p.Verified:
		return models.StatusPending
	case p.Published && !p.Verified:
		return models.StatusPending
	default:
		return p.Status
	}
}

// Decision is the field set an admin moderation action writes back to a
// listing. The write itself happens in the repository layer; deciding which
// fields to set is the gate's job.
type Decision struct {
	Verified bool
	Status   string
}

// Approve marks the listing admin-verified and live.
func Approve() Decision {
	return Decision{Verified: true, Status: models.StatusActive}
}

// Reject marks the listing rejected. The record is retained, not deleted,
// and there is currently no reinstatement path.
func Reject() Decision {
	return Decision{Verified: false, Status: models.StatusRejected}
}

// ownerStates are the lateral statuses an owner may move an approved listing
// between.
var ownerStates = map[string]bool{
	models.StatusActive:   true,
	models.StatusSold:     true,
	models.StatusRented:   true,
	models.StatusInactive: true,
}

// CanOwnerTransition reports whether the owner may move the listing to the
// target status. Lateral moves among active/sold/rented/inactive are allowed
// only once the listing has been verified; pending and rejected listings
// cannot be moved by their owner at all.
func CanOwnerTransition(p models.Property, target string) bool {
	if !p.Verified {
		return false
	}
	current := p.Status
	if current == models.StatusApproved {
		current = models.StatusActive
	}
	return ownerStates[current] && ownerStates[target]
}
