package search_test

import (
	"testing"

	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/internal/search"

	"github.com/stretchr/testify/assert"
)

func TestInferRole(t *testing.T) {
	t.Run("first matching group wins", func(t *testing.T) {
		// "frontend" appears before "backend" in the rule order.
		role := search.InferRole("I do frontend and backend work")
		assert.Equal(t, "Frontend Developer", role)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		assert.Equal(t, "DevOps Engineer", search.InferRole("DEVOPS enthusiast"))
	})

	t.Run("hyphenated variants", func(t *testing.T) {
		assert.Equal(t, "Full Stack Developer", search.InferRole("Aspiring full-stack engineer"))
	})

	t.Run("fallback title", func(t *testing.T) {
		assert.Equal(t, "Software Developer", search.InferRole("I like solving problems."))
	})
}

func TestInferSkillTags(t *testing.T) {
	t.Run("extracts known technologies", func(t *testing.T) {
		tags := search.InferSkillTags("Built apps with React and Node.js on AWS")
		assert.Contains(t, tags, "React")
		assert.Contains(t, tags, "Node.js")
		assert.Contains(t, tags, "AWS")
	})

	t.Run("caps at five tags", func(t *testing.T) {
		tags := search.InferSkillTags("react vue angular javascript typescript python java docker")
		assert.Len(t, tags, 5)
	})

	t.Run("sentinel when nothing matches", func(t *testing.T) {
		tags := search.InferSkillTags("I enjoy hiking and photography")
		assert.Equal(t, []string{"Software Development"}, tags)
	})
}

func TestNormalize(t *testing.T) {
	legacy := domain.GraduateProfile{
		ID:  "1",
		Bio: "Backend developer working with Go and Docker",
	}

	got := search.Normalize(legacy)
	assert.Equal(t, "Backend Developer", got.Role)
	assert.Equal(t, []string{"Go", "Docker"}, got.SkillTags)

	t.Run("stored record untouched", func(t *testing.T) {
		assert.Empty(t, legacy.Role)
		assert.Empty(t, legacy.SkillTags)
	})

	t.Run("structured fields win", func(t *testing.T) {
		p := domain.GraduateProfile{Role: "QA Engineer", SkillTags: []string{"Cypress"}, Bio: "frontend react"}
		got := search.Normalize(p)
		assert.Equal(t, "QA Engineer", got.Role)
		assert.Equal(t, []string{"Cypress"}, got.SkillTags)
	})
}
