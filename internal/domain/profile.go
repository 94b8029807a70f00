package domain

import (
	"context"
	"time"

	"graduate-showcase-backend/internal/moderation"
)

// DefaultProfileImage is shown for profiles without an uploaded picture.
const DefaultProfileImage = "https://images.unsplash.com/photo-1507679799987-c73779587ccf"

// ProfileLinks are the optional external links on a graduate profile.
// Each one is independently optional.
type ProfileLinks struct {
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub   string `json:"github,omitempty" validate:"omitempty,url"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
}

// GraduateProfile is a graduate's directory record. One profile per
// authenticated account (UserID is unique). The moderation fields are
// only ever written through the moderation state machine.
type GraduateProfile struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id" validate:"required"`
	Name             string            `json:"name" validate:"required,min=2,max=100,valid_name,no_emoji"`
	Bio              string            `json:"bio" validate:"max=1000"`
	Location         string            `json:"location" validate:"max=100"`
	Email            string            `json:"email" validate:"required,email"`
	Role             string            `json:"role" validate:"max=100"`
	GraduationCohort string            `json:"graduation_cohort" validate:"max=50"`
	SkillTags        []string          `json:"skill_tags" validate:"required,min=1,dive,min=1"`
	Links            ProfileLinks      `json:"links"`
	ProfileImage     string            `json:"profile_image,omitempty" validate:"omitempty,url"`
	ModerationStatus moderation.Status `json:"moderation_status"`
	IsVerified       bool              `json:"is_verified"`
	IsArchived       bool              `json:"is_archived"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	VerifiedAt       *time.Time        `json:"verified_at,omitempty"`
	ArchivedAt       *time.Time        `json:"archived_at,omitempty"`
}

// ModerationSnapshot extracts the fields the state machine operates on.
func (p *GraduateProfile) ModerationSnapshot() moderation.Snapshot {
	return moderation.Snapshot{
		Status:     p.ModerationStatus,
		IsVerified: p.IsVerified,
		IsArchived: p.IsArchived,
		VerifiedAt: p.VerifiedAt,
		ArchivedAt: p.ArchivedAt,
	}
}

// ApplyModeration copies a persisted snapshot back onto the record.
func (p *GraduateProfile) ApplyModeration(s moderation.Snapshot, updatedAt time.Time) {
	p.ModerationStatus = s.Status
	p.IsVerified = s.IsVerified
	p.IsArchived = s.IsArchived
	p.VerifiedAt = s.VerifiedAt
	p.ArchivedAt = s.ArchivedAt
	p.UpdatedAt = updatedAt
}

// FilterCriteria describes the active search fields of one directory
// query. Zero values are wildcards; the struct is never persisted.
type FilterCriteria struct {
	Keyword          string   `json:"keyword,omitempty"`
	TechStack        []string `json:"tech_stack,omitempty"`
	Location         string   `json:"location,omitempty"`
	Role             string   `json:"role,omitempty"`
	GraduationCohort string   `json:"graduation_cohort,omitempty"`
}

// IsZero reports whether every criterion is a wildcard.
func (c FilterCriteria) IsZero() bool {
	return c.Keyword == "" && len(c.TechStack) == 0 && c.Location == "" &&
		c.Role == "" && c.GraduationCohort == ""
}

// Facets are the distinct values available to the filter UI, derived
// from the full unfiltered listing.
type Facets struct {
	Roles     []string `json:"roles"`
	Cohorts   []string `json:"cohorts"`
	Skills    []string `json:"skills"`
	Locations []string `json:"locations"`
}

// GraduateCard is the public directory projection of a profile. Title
// and TechStack fall back to bio-derived values for legacy records.
type GraduateCard struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Title            string   `json:"title"`
	Location         string   `json:"location"`
	ImageURL         string   `json:"image_url"`
	TechStack        []string `json:"tech_stack"`
	GitHubURL        string   `json:"github_url,omitempty"`
	LinkedInURL      string   `json:"linkedin_url,omitempty"`
	WebsiteURL       string   `json:"website_url,omitempty"`
	Email            string   `json:"email"`
	GraduationCohort string   `json:"graduation_cohort,omitempty"`
}

// ReviewQuery narrows the administrative dashboard listing. Archived
// toggles between the active and the archived set; Status and
// GraduationCohort are optional extra filters.
type ReviewQuery struct {
	Archived         bool
	Status           moderation.Status
	GraduationCohort string
}

// DirectoryStats are the admin dashboard counters.
type DirectoryStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Verified int64 `json:"verified"`
	Archived int64 `json:"archived"`
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *GraduateProfile) error
	GetByID(ctx context.Context, id string) (*GraduateProfile, error)
	GetByUserID(ctx context.Context, userID string) (*GraduateProfile, error)
	// ListAll returns every profile, newest update first.
	ListAll(ctx context.Context) ([]GraduateProfile, error)
	// ListVisible returns the public candidate set: approved and not
	// archived, newest update first. Per-query filtering happens in
	// memory afterwards.
	ListVisible(ctx context.Context) ([]GraduateProfile, error)
	Update(ctx context.Context, profile *GraduateProfile) error
	// UpdateModeration persists a moderation snapshot as one atomic
	// row update against the given profile id.
	UpdateModeration(ctx context.Context, id string, snap moderation.Snapshot, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*DirectoryStats, error)
}

type ProfileUsecase interface {
	GetMyProfile(ctx context.Context) (*GraduateProfile, error)
	CreateProfile(ctx context.Context, profile *GraduateProfile) (*GraduateProfile, error)
	UpdateMyProfile(ctx context.Context, profile *GraduateProfile) (*GraduateProfile, error)
	SetProfileImage(ctx context.Context, imageURL string) error
}

type DirectoryUsecase interface {
	Browse(ctx context.Context, criteria FilterCriteria) ([]GraduateCard, error)
	Facets(ctx context.Context) (*Facets, error)
}

type ModerationUsecase interface {
	Transition(ctx context.Context, profileID string, action moderation.Action) (*GraduateProfile, error)
	Delete(ctx context.Context, profileID string) error
	ListForReview(ctx context.Context, q ReviewQuery) ([]GraduateProfile, error)
	Stats(ctx context.Context) (*DirectoryStats, error)
}
