// Package search implements the in-memory directory filter: a pure,
// stable selection over an already-fetched profile list. It performs
// no I/O and assumes well-typed input; criteria validation belongs to
// the delivery layer.
package search

import (
	"sort"
	"strings"

	"graduate-showcase-backend/internal/domain"
)

// Filter returns the profiles matching every active criterion, in
// their original relative order. An empty criterion never excludes a
// record. All-wildcard criteria return the input slice unchanged.
func Filter(profiles []domain.GraduateProfile, criteria domain.FilterCriteria) []domain.GraduateProfile {
	if criteria.IsZero() {
		return profiles
	}
	out := make([]domain.GraduateProfile, 0, len(profiles))
	for _, p := range profiles {
		if Matches(p, criteria) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether a single profile satisfies every active
// criterion (logical AND across fields). Absent record fields match as
// empty strings, never as errors.
func Matches(p domain.GraduateProfile, c domain.FilterCriteria) bool {
	return matchesKeyword(p, c.Keyword) &&
		matchesTechStack(p.SkillTags, c.TechStack) &&
		matchesSubstring(p.Location, c.Location) &&
		matchesRole(p.Role, c.Role) &&
		matchesSubstring(p.GraduationCohort, c.GraduationCohort)
}

// matchesKeyword is a case-insensitive substring match against the
// union of name, role, location and each skill tag; any hit matches.
func matchesKeyword(p domain.GraduateProfile, keyword string) bool {
	if keyword == "" {
		return true
	}
	kw := strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(p.Name), kw) ||
		strings.Contains(strings.ToLower(p.Role), kw) ||
		strings.Contains(strings.ToLower(p.Location), kw) {
		return true
	}
	for _, tag := range p.SkillTags {
		if strings.Contains(strings.ToLower(tag), kw) {
			return true
		}
	}
	return false
}

// matchesTechStack requires every requested skill to match (AND
// semantics). A requested skill matches when at least one of the
// profile's tags contains it as a substring or is contained by it,
// case-insensitively. The loose bidirectional containment tolerates
// naming variants such as "Node" vs "Node.js".
func matchesTechStack(tags []string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, want := range wanted {
		w := strings.ToLower(want)
		found := false
		for _, tag := range tags {
			t := strings.ToLower(tag)
			if strings.Contains(t, w) || strings.Contains(w, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchesRole is a case-insensitive exact match; role is a
// controlled-vocabulary field, so "Frontend" must not match
// "Frontend Developer".
func matchesRole(role, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.EqualFold(role, filter)
}

// matchesSubstring checks that the filter value occurs inside the
// stored value, case-insensitively. Used for location and cohort, so a
// "2024" filter matches a stored "2024 Spring".
func matchesSubstring(stored, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(stored), strings.ToLower(filter))
}

// Facets derives the distinct values available for the filter UI from
// the full unfiltered listing. Roles, skills and locations sort
// ascending; cohorts sort descending so the newest class comes first.
// Empty values are skipped.
func Facets(profiles []domain.GraduateProfile) domain.Facets {
	roles := map[string]struct{}{}
	cohorts := map[string]struct{}{}
	skills := map[string]struct{}{}
	locations := map[string]struct{}{}

	for _, p := range profiles {
		if p.Role != "" {
			roles[p.Role] = struct{}{}
		}
		if p.GraduationCohort != "" {
			cohorts[p.GraduationCohort] = struct{}{}
		}
		if p.Location != "" {
			locations[p.Location] = struct{}{}
		}
		for _, tag := range p.SkillTags {
			if tag != "" {
				skills[tag] = struct{}{}
			}
		}
	}

	f := domain.Facets{
		Roles:     sortedKeys(roles),
		Cohorts:   sortedKeys(cohorts),
		Skills:    sortedKeys(skills),
		Locations: sortedKeys(locations),
	}
	// Newest cohorts first.
	sort.Sort(sort.Reverse(sort.StringSlice(f.Cohorts)))
	return f
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
