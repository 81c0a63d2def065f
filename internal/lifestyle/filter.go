package lifestyle

import (
	"strings"

	"github.com/mightytheif/sakany/pkg/models"
)

// FilterProperties applies the simplified quiz's strict conjunctive filter:
// every set preference must match exactly, unset preferences pass everything
// through. Results are not ranked. The input order is preserved and the
// function never fails.
func FilterProperties(prefs models.SimpleQuizPreferences, props []models.Property) []models.Property {
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if matchesSimple(prefs, p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesSimple(prefs models.SimpleQuizPreferences, p models.Property) bool {
	if prefs.ResidenceType != "" && !strings.EqualFold(prefs.ResidenceType, p.PropertyType) {
		return false
	}

	switch prefs.FamilyStatus {
	case "family_with_children":
		if p.Bedrooms < 2 {
			return false
		}
	case "single", "married":
		// Exact equality, not a minimum: singles and couples get
		// one-bedroom listings only.
		if p.Bedrooms != 1 {
			return false
		}
	}

	if prefs.Budget > 0 && p.Price > prefs.Budget {
		return false
	}

	return true
}
