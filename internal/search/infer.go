package search

import (
	"strings"

	"graduate-showcase-backend/internal/domain"
)

// Display-time fallbacks for legacy records created before the role
// and skill tag fields existed. Inference reads the bio only and never
// mutates stored data.

// techVocabulary is the fixed list of recognisable technologies.
var techVocabulary = []string{
	"React", "Vue", "Angular", "JavaScript", "TypeScript", "Node.js",
	"Python", "Java", "C++", "C#", "PHP", "Ruby", "Go", "Rust",
	"HTML", "CSS", "Tailwind", "Bootstrap", "SASS", "SCSS",
	"MongoDB", "PostgreSQL", "MySQL", "Firebase", "AWS", "Docker",
	"GraphQL", "REST", "API", "Git", "Linux", "Ubuntu",
}

// maxInferredTags caps how many tags a bio may produce.
const maxInferredTags = 5

// FallbackSkillTag is used when the bio mentions nothing recognisable.
const FallbackSkillTag = "Software Development"

// roleRules map bio keyword groups to titles, tested in order; the
// first group with any hit wins.
var roleRules = []struct {
	keywords []string
	title    string
}{
	{[]string{"frontend", "front-end", "front end"}, "Frontend Developer"},
	{[]string{"backend", "back-end", "back end"}, "Backend Developer"},
	{[]string{"fullstack", "full-stack", "full stack"}, "Full Stack Developer"},
	{[]string{"mobile", "ios", "android"}, "Mobile Developer"},
	{[]string{"data", "analyst", "science"}, "Data Analyst"},
	{[]string{"devops", "cloud"}, "DevOps Engineer"},
	{[]string{"ui", "ux", "design"}, "UI/UX Designer"},
	{[]string{"qa", "test", "quality"}, "QA Engineer"},
}

// FallbackRole is used when no keyword group matches the bio.
const FallbackRole = "Software Developer"

// InferRole derives a display title from free bio text.
func InferRole(bio string) string {
	lower := strings.ToLower(bio)
	for _, rule := range roleRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.title
			}
		}
	}
	return FallbackRole
}

// InferSkillTags derives up to maxInferredTags display tags from free
// bio text, falling back to the sentinel tag when nothing matches.
func InferSkillTags(bio string) []string {
	lower := strings.ToLower(bio)
	var found []string
	for _, tech := range techVocabulary {
		if strings.Contains(lower, strings.ToLower(tech)) {
			found = append(found, tech)
			if len(found) == maxInferredTags {
				break
			}
		}
	}
	if len(found) == 0 {
		return []string{FallbackSkillTag}
	}
	return found
}

// Normalize returns a copy of p with the display fallbacks filled in
// where the structured fields are missing. The stored record is left
// untouched.
func Normalize(p domain.GraduateProfile) domain.GraduateProfile {
	if p.Role == "" {
		p.Role = InferRole(p.Bio)
	}
	if len(p.SkillTags) == 0 {
		p.SkillTags = InferSkillTags(p.Bio)
	}
	return p
}
