package visibility_test

import (
	"reflect"
	"testing"

	"github.com/mightytheif/sakany/internal/visibility"
	"github.com/mightytheif/sakany/pkg/models"
)

func TestIsPubliclyVisible(t *testing.T) {
	tests := []struct {
		name string
		prop models.Property
		want bool
	}{
		{"VerifiedPublishedActive", models.Property{Verified: true, Published: true, Status: models.StatusActive}, true},
		{"VerifiedPublishedApproved", models.Property{Verified: true, Published: true, Status: models.StatusApproved}, true},
		{"UnverifiedPublishedActive", models.Property{Verified: false, Published: true, Status: models.StatusActive}, false},
		{"VerifiedUnpublishedActive", models.Property{Verified: true, Published: false, Status: models.StatusActive}, false},
		{"VerifiedPublishedPending", models.Property{Verified: true, Published: true, Status: models.StatusPending}, false},
		{"VerifiedPublishedRejected", models.Property{Verified: true, Published: true, Status: models.StatusRejected}, false},
		{"VerifiedPublishedSold", models.Property{Verified: true, Published: true, Status: models.StatusSold}, false},
		{"ZeroValue", models.Property{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visibility.IsPubliclyVisible(tt.prop); got != tt.want {
				t.Fatalf("IsPubliclyVisible(%+v) = %v, want %v", tt.prop, got, tt.want)
			}
		})
	}
}

func TestDisplayStatus(t *testing.T) {
	tests := []struct {
		name string
		prop models.Property
		want string
	}{
		{"ActiveVerified", models.Property{Verified: true, Published: true, Status: models.StatusActive}, models.StatusApproved},
		{"ActiveUnverified", models.Property{Verified: false, Published: true, Status: models.StatusActive}, models.StatusPending},
		{"RejectedAlwaysHonored", models.Property{Verified: false, Published: true, Status: models.StatusRejected}, models.StatusRejected},
		{"RejectedEvenIfVerified", models.Property{Verified: true, Published: true, Status: models.StatusRejected}, models.StatusRejected},
		{"PublishedUnverifiedPending", models.Property{Verified: false, Published: true, Status: models.StatusPending}, models.StatusPending},
		{"SoldPassThrough", models.Property{Verified: true, Published: true, Status: models.StatusSold}, models.StatusSold},
		{"RentedPassThrough", models.Property{Verified: true, Published: true, Status: models.StatusRented}, models.StatusRented},
		{"UnpublishedInactive", models.Property{Verified: true, Published: false, Status: models.StatusInactive}, models.StatusInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visibility.DisplayStatus(tt.prop); got != tt.want {
				t.Fatalf("DisplayStatus(%+v) = %q, want %q", tt.prop, got, tt.want)
			}
		})
	}
}

// A publicly visible listing must never show as pending or rejected to its
// owner.
func TestVisibleNeverPendingOrRejected(t *testing.T) {
	statuses := []string{
		models.StatusPending, models.StatusActive, models.StatusApproved,
		models.StatusRejected, models.StatusInactive, models.StatusSold, models.StatusRented,
	}
	for _, status := range statuses {
		for _, verified := range []bool{true, false} {
			for _, published := range []bool{true, false} {
				p := models.Property{Verified: verified, Published: published, Status: status}
				if !visibility.IsPubliclyVisible(p) {
					continue
				}
				got := visibility.DisplayStatus(p)
				if got == models.StatusPending || got == models.StatusRejected {
					t.Fatalf("visible listing %+v derives display status %q", p, got)
				}
			}
		}
	}
}

func TestFilterIdempotent(t *testing.T) {
	props := []models.Property{
		{ID: 1, Verified: true, Published: true, Status: models.StatusActive},
		{ID: 2, Verified: false, Published: true, Status: models.StatusActive},
		{ID: 3, Verified: true, Published: true, Status: models.StatusApproved},
		{ID: 4, Verified: true, Published: false, Status: models.StatusActive},
		{ID: 5, Verified: true, Published: true, Status: models.StatusRejected},
	}

	once := visibility.Filter(props)
	twice := visibility.Filter(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter not idempotent: %v vs %v", once, twice)
	}
	if len(once) != 2 || once[0].ID != 1 || once[1].ID != 3 {
		t.Fatalf("unexpected filter result: %v", once)
	}
}

func TestModerationDecisions(t *testing.T) {
	if d := visibility.Approve(); !d.Verified || d.Status != models.StatusActive {
		t.Fatalf("approve decision: %+v", d)
	}
	if d := visibility.Reject(); d.Verified || d.Status != models.StatusRejected {
		t.Fatalf("reject decision: %+v", d)
	}
}

func TestCanOwnerTransition(t *testing.T) {
	approved := models.Property{Verified: true, Published: true, Status: models.StatusActive}
	pending := models.Property{Verified: false, Published: true, Status: models.StatusPending}
	rejected := models.Property{Verified: false, Published: true, Status: models.StatusRejected}
	sold := models.Property{Verified: true, Published: true, Status: models.StatusSold}

	tests := []struct {
		name   string
		prop   models.Property
		target string
		want   bool
	}{
		{"ApprovedToSold", approved, models.StatusSold, true},
		{"ApprovedToRented", approved, models.StatusRented, true},
		{"ApprovedToInactive", approved, models.StatusInactive, true},
		{"SoldBackToActive", sold, models.StatusActive, true},
		{"ApprovedToRejected", approved, models.StatusRejected, false},
		{"ApprovedToPending", approved, models.StatusPending, false},
		{"PendingToActive", pending, models.StatusActive, false},
		{"RejectedIsTerminal", rejected, models.StatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visibility.CanOwnerTransition(tt.prop, tt.target); got != tt.want {
				t.Fatalf("CanOwnerTransition(%+v, %q) = %v, want %v", tt.prop, tt.target, got, tt.want)
			}
		})
	}
}
