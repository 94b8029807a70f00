package search_test

import (
	"testing"

	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/internal/search"

	"github.com/stretchr/testify/assert"
)

func sampleProfiles() []domain.GraduateProfile {
	return []domain.GraduateProfile{
		{ID: "1", Name: "Ann", Role: "Backend Developer", Location: "Charleston, SC", GraduationCohort: "2024 Spring", SkillTags: []string{"Go", "Docker"}},
		{ID: "2", Name: "Ben", Role: "Frontend Developer", Location: "Columbia, SC", GraduationCohort: "2023 Fall", SkillTags: []string{"React"}},
		{ID: "3", Name: "Cara", Role: "Full Stack Developer", Location: "Greenville, SC", GraduationCohort: "2024 Fall", SkillTags: []string{"Node.js", "React", "PostgreSQL"}},
	}
}

func ids(profiles []domain.GraduateProfile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterWildcardIdentity(t *testing.T) {
	profiles := sampleProfiles()
	got := search.Filter(profiles, domain.FilterCriteria{})
	assert.Equal(t, profiles, got)

	t.Run("empty input stays empty", func(t *testing.T) {
		got := search.Filter(nil, domain.FilterCriteria{Keyword: "go"})
		assert.Empty(t, got)
	})
}

func TestFilterIdempotence(t *testing.T) {
	profiles := sampleProfiles()
	criteria := domain.FilterCriteria{Keyword: "developer", TechStack: []string{"react"}}

	once := search.Filter(profiles, criteria)
	twice := search.Filter(once, criteria)
	assert.Equal(t, once, twice)
}

func TestFilterStability(t *testing.T) {
	profiles := sampleProfiles()
	got := search.Filter(profiles, domain.FilterCriteria{TechStack: []string{"react"}})
	// Ben before Cara, as in the input.
	assert.Equal(t, []string{"2", "3"}, ids(got))
}

func TestFilterKeyword(t *testing.T) {
	profiles := sampleProfiles()

	t.Run("matches name", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{Keyword: "ann"})
		assert.Equal(t, []string{"1"}, ids(got))
	})

	t.Run("matches skill tag", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{Keyword: "docker"})
		assert.Equal(t, []string{"1"}, ids(got))
	})

	t.Run("matches location", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{Keyword: "greenville"})
		assert.Equal(t, []string{"3"}, ids(got))
	})

	t.Run("substring of role", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{Keyword: "front"})
		assert.Equal(t, []string{"2"}, ids(got))
	})

	t.Run("no hit", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{Keyword: "haskell"})
		assert.Empty(t, got)
	})
}

func TestFilterTechStack(t *testing.T) {
	profiles := sampleProfiles()

	t.Run("case-insensitive substring on tag", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{TechStack: []string{"react"}})
		assert.Equal(t, []string{"2", "3"}, ids(got))
	})

	t.Run("AND across requested skills", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{TechStack: []string{"react", "node"}})
		assert.Equal(t, []string{"3"}, ids(got))
	})

	t.Run("bidirectional containment tolerates variants", func(t *testing.T) {
		// Requested "node" is contained by the tag "Node.js".
		got := search.Filter(profiles, domain.FilterCriteria{TechStack: []string{"node"}})
		assert.Equal(t, []string{"3"}, ids(got))

		// Requested "node.js runtime" contains the tag "Node.js".
		got = search.Filter(profiles, domain.FilterCriteria{TechStack: []string{"node.js runtime"}})
		assert.Equal(t, []string{"3"}, ids(got))
	})
}

func TestFilterRoleExactness(t *testing.T) {
	profiles := sampleProfiles()

	t.Run("prefix must not match", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{Role: "Frontend"})
		assert.Empty(t, got)
	})

	t.Run("exact match, any case", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{Role: "frontend developer"})
		assert.Equal(t, []string{"2"}, ids(got))
	})
}

func TestFilterCohortSubstring(t *testing.T) {
	profiles := sampleProfiles()

	t.Run("filter value contained in stored value", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{GraduationCohort: "2024"})
		assert.Equal(t, []string{"1", "3"}, ids(got))
	})

	t.Run("filter longer than stored value must not match", func(t *testing.T) {
		bare := []domain.GraduateProfile{{ID: "9", Name: "Dee", GraduationCohort: "2024", SkillTags: []string{"Go"}}}
		got := search.Filter(bare, domain.FilterCriteria{GraduationCohort: "2024 Spring"})
		assert.Empty(t, got)
	})
}

func TestFilterANDSemanticsAcrossFields(t *testing.T) {
	profiles := sampleProfiles()
	criteria := domain.FilterCriteria{Role: "Full Stack Developer", TechStack: []string{"react"}}

	combined := search.Filter(profiles, criteria)
	byRole := search.Filter(profiles, domain.FilterCriteria{Role: criteria.Role})
	byStack := search.Filter(profiles, domain.FilterCriteria{TechStack: criteria.TechStack})

	// Combined result is the identity intersection of the per-field results.
	inBoth := map[string]bool{}
	for _, p := range byRole {
		inBoth[p.ID] = true
	}
	var intersection []string
	for _, p := range byStack {
		if inBoth[p.ID] {
			intersection = append(intersection, p.ID)
		}
	}
	assert.Equal(t, intersection, ids(combined))
}

func TestFilterMissingFieldsMatchAsEmpty(t *testing.T) {
	profiles := []domain.GraduateProfile{{ID: "1", Name: "Eve", SkillTags: []string{"Go"}}}

	got := search.Filter(profiles, domain.FilterCriteria{Role: "Backend Developer"})
	assert.Empty(t, got)

	got = search.Filter(profiles, domain.FilterCriteria{Keyword: "eve"})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilterSpecScenarios(t *testing.T) {
	profiles := []domain.GraduateProfile{
		{ID: "a", Name: "Ann", Role: "Backend Developer", SkillTags: []string{"Go", "Docker"}},
		{ID: "b", Name: "Ben", Role: "Frontend Developer", SkillTags: []string{"React"}},
	}

	t.Run("tech stack react selects Ben", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{TechStack: []string{"react"}})
		assert.Equal(t, []string{"b"}, ids(got))
	})

	t.Run("role Backend Developer selects Ann", func(t *testing.T) {
		got := search.Filter(profiles, domain.FilterCriteria{Role: "Backend Developer"})
		assert.Equal(t, []string{"a"}, ids(got))
	})
}

func TestFacets(t *testing.T) {
	profiles := sampleProfiles()
	f := search.Facets(profiles)

	assert.Equal(t, []string{"Backend Developer", "Frontend Developer", "Full Stack Developer"}, f.Roles)
	// Newest cohort first.
	assert.Equal(t, []string{"2024 Spring", "2024 Fall", "2023 Fall"}, f.Cohorts)
	assert.Equal(t, []string{"Docker", "Go", "Node.js", "PostgreSQL", "React"}, f.Skills)
	assert.Equal(t, []string{"Charleston, SC", "Columbia, SC", "Greenville, SC"}, f.Locations)

	t.Run("skips empty values", func(t *testing.T) {
		f := search.Facets([]domain.GraduateProfile{{Name: "Anon", SkillTags: []string{""}}})
		assert.Empty(t, f.Roles)
		assert.Empty(t, f.Cohorts)
		assert.Empty(t, f.Skills)
		assert.Empty(t, f.Locations)
	})
}
