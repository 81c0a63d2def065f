// Package lifestyle maps questionnaire answers to a housing archetype.
//
// The full quiz variant builds a six-dimensional score vector from fixed
// point-weight rules and classifies the respondent as urban, suburban or
// rural. The simplified variant builds a strict conjunctive property filter
// instead. Both are pure functions over their inputs: no clock, no
// randomness, no shared state, and no error paths. Missing answers simply
// contribute nothing.
package lifestyle

import (
	"strings"

	"github.com/mightytheif/sakany/pkg/models"
)

// Archetype labels returned by Classify.
const (
	ArchetypeUrban    = "urban"
	ArchetypeSuburban = "suburban"
	ArchetypeRural    = "rural"
)

// luxuryBudget is the budget ceiling above which answers start signalling
// the luxury segment.
const luxuryBudget = 750_000

// maxPriorities caps the derived priority list.
const maxPriorities = 3

// Matcher scores quiz answers. The zero value is not usable; construct with
// NewMatcher.
type Matcher struct {
	defaultArchetype string
}

// NewMatcher returns a Matcher that falls back to defaultArchetype when no
// location score is strictly greatest. An empty string selects urban, which
// matches the historical behavior.
func NewMatcher(defaultArchetype string) *Matcher {
	if defaultArchetype == "" {
		defaultArchetype = ArchetypeUrban
	}
	return &Matcher{defaultArchetype: defaultArchetype}
}

// ComputeScores sums the fixed point-weight contributions for each of the six
// accumulators. Every rule is an independent boolean condition over the
// answers; unset fields fail every condition they guard.
func (m *Matcher) ComputeScores(p models.QuizPreferences) models.LifestyleScores {
	var s models.LifestyleScores

	amenity := toSet(p.Amenities)
	priority := toSet(p.Priorities)

	// family
	switch {
	case p.FamilyStatus == "couple_planning_children":
		s.Family += 20
	case strings.Contains(p.FamilyStatus, "children"):
		s.Family += 30
	}
	if p.Pets != nil && *p.Pets {
		s.Family += 10
	}
	if p.Bedrooms >= 3 {
		s.Family += 15
	}
	if amenity["parks"] {
		s.Family += 10
	}
	if amenity["schools"] {
		s.Family += 15
	}
	if priority["space"] {
		s.Family += 10
	}
	if priority["safety"] {
		s.Family += 10
	}

	// luxury
	if p.Budget > luxuryBudget {
		s.Luxury += 25
	}
	for _, a := range []string{"gym", "pool", "restaurants"} {
		if amenity[a] {
			s.Luxury += 10
		}
	}
	if priority["quality"] {
		s.Luxury += 15
	}
	if priority["prestige"] {
		s.Luxury += 20
	}
	if p.ResidenceType == "villa" {
		s.Luxury += 10
	}

	// investment
	if priority["investment"] {
		s.Investment += 30
	}
	if priority["value"] {
		s.Investment += 20
	}
	if p.ResidenceType == "apartment" {
		s.Investment += 10
	}
	if p.LocationTrend == "growing" {
		s.Investment += 15
	}
	if p.WorkStyle == "rental" {
		s.Investment += 25
	}

	// urban
	if p.Environment == "urban" {
		s.Urban += 25
	}
	if p.Commute == "public_transport" || p.Commute == "walking" {
		s.Urban += 15
	}
	for _, a := range []string{"restaurants", "cafes", "shopping"} {
		if amenity[a] {
			s.Urban += 10
		}
	}
	if amenity["nightlife"] {
		s.Urban += 15
	}
	if p.ResidenceType == "apartment" {
		s.Urban += 10
	}
	if p.OutdoorSpace >= 1 && p.OutdoorSpace <= 2 {
		s.Urban += 10
	}
	if p.WorkStyle == "office" {
		s.Urban += 10
	}

	// suburban
	if p.Environment == "suburban" {
		s.Suburban += 25
	}
	if p.Commute == "car" {
		s.Suburban += 15
	}
	if p.ResidenceType == "house" {
		s.Suburban += 15
	}
	if strings.Contains(p.FamilyStatus, "couple") {
		s.Suburban += 10
	}
	if p.OutdoorSpace == 3 || p.OutdoorSpace == 4 {
		s.Suburban += 15
	}
	if amenity["parks"] {
		s.Suburban += 10
	}
	if amenity["shopping"] {
		s.Suburban += 5
	}
	if priority["community"] {
		s.Suburban += 10
	}

	// rural
	if p.Environment == "rural" {
		s.Rural += 30
	}
	if p.Commute == "car" {
		s.Rural += 10
	}
	if p.OutdoorSpace >= 5 {
		s.Rural += 20
	}
	if p.ResidenceType == "house" {
		s.Rural += 10
	}
	if p.ResidenceType == "farm" {
		s.Rural += 20
	}
	if amenity["nature"] {
		s.Rural += 15
	}
	if priority["space"] {
		s.Rural += 15
	}
	if priority["privacy"] {
		s.Rural += 15
	}
	if p.WorkStyle == "remote" {
		s.Rural += 10
	}

	return s
}

// Classify compares the three location accumulators and returns the label of
// the strictly greatest one. Ties and all-zero vectors resolve to the
// matcher's default archetype.
func (m *Matcher) Classify(s models.LifestyleScores) string {
	switch {
	case s.Urban > s.Suburban && s.Urban > s.Rural:
		return ArchetypeUrban
	case s.Suburban > s.Urban && s.Suburban > s.Rural:
		return ArchetypeSuburban
	case s.Rural > s.Urban && s.Rural > s.Suburban:
		return ArchetypeRural
	default:
		return m.defaultArchetype
	}
}

// DerivePriorities returns the user's explicit priorities in selection order,
// extended with implicit ones their answers imply, capped at three entries.
func (m *Matcher) DerivePriorities(p models.QuizPreferences) []string {
	out := make([]string, 0, maxPriorities)
	seen := map[string]bool{}

	add := func(v string) {
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	for _, pr := range p.Priorities {
		add(pr)
	}
	if strings.Contains(p.FamilyStatus, "children") {
		add("family")
	}
	if p.Budget > luxuryBudget || p.ResidenceType == "villa" {
		add("luxury")
	}
	if p.WorkStyle == "rental" || seen["value"] {
		add("investment")
	}

	if len(out) > maxPriorities {
		out = out[:maxPriorities]
	}
	return out
}

// Result runs the full scoring pipeline over one answer set.
func (m *Matcher) Result(p models.QuizPreferences) models.QuizResult {
	scores := m.ComputeScores(p)
	return models.QuizResult{
		Completed:      true,
		Lifestyle:      m.Classify(scores),
		Priorities:     m.DerivePriorities(p),
		LifestyleScore: scores,
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[strings.ToLower(strings.TrimSpace(it))] = true
	}
	return set
}
