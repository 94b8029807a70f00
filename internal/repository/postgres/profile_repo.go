package postgres

import (
	"context"
	"errors"
	"time"

	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/internal/moderation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, name, bio, COALESCE(location, ''), email,
	COALESCE(role, ''), COALESCE(graduation_cohort, ''), skill_tags,
	COALESCE(linkedin_url, ''), COALESCE(github_url, ''), COALESCE(website_url, ''),
	COALESCE(profile_image, ''), moderation_status, is_verified, is_archived,
	created_at, updated_at, verified_at, archived_at`

func scanProfile(row pgx.Row) (*domain.GraduateProfile, error) {
	var p domain.GraduateProfile
	var tags []string
	var status string

	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Bio, &p.Location, &p.Email,
		&p.Role, &p.GraduationCohort, pq.Array(&tags),
		&p.Links.LinkedIn, &p.Links.GitHub, &p.Links.Website,
		&p.ProfileImage, &status, &p.IsVerified, &p.IsArchived,
		&p.CreatedAt, &p.UpdatedAt, &p.VerifiedAt, &p.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}
	p.SkillTags = tags
	p.ModerationStatus = moderation.Status(status)
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.GraduateProfile) error {
	// The persistence layer assigns the identifier.
	profile.ID = uuid.NewString()

	query := `
		INSERT INTO graduate_profiles (
			id, user_id, name, bio, location, email, role, graduation_cohort,
			skill_tags, linkedin_url, github_url, website_url, profile_image,
			moderation_status, is_verified, is_archived, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.UserID, profile.Name, profile.Bio, profile.Location,
		profile.Email, profile.Role, profile.GraduationCohort,
		pq.Array(profile.SkillTags),
		profile.Links.LinkedIn, profile.Links.GitHub, profile.Links.Website,
		profile.ProfileImage,
		string(profile.ModerationStatus), profile.IsVerified, profile.IsArchived,
		profile.CreatedAt, profile.UpdatedAt,
	)
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.GraduateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM graduate_profiles WHERE id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.GraduateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM graduate_profiles WHERE user_id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) ListAll(ctx context.Context) ([]domain.GraduateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM graduate_profiles ORDER BY updated_at DESC`
	return r.list(ctx, query)
}

func (r *profileRepository) ListVisible(ctx context.Context) ([]domain.GraduateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM graduate_profiles
		WHERE moderation_status = 'approved' AND is_archived = FALSE
		ORDER BY updated_at DESC`
	return r.list(ctx, query)
}

func (r *profileRepository) list(ctx context.Context, query string, args ...any) ([]domain.GraduateProfile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.GraduateProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.GraduateProfile) error {
	query := `
		UPDATE graduate_profiles SET
			name = $1, bio = $2, location = $3, email = $4, role = $5,
			graduation_cohort = $6, skill_tags = $7,
			linkedin_url = $8, github_url = $9, website_url = $10,
			profile_image = $11, updated_at = $12
		WHERE id = $13`

	tag, err := r.db.Exec(ctx, query,
		profile.Name, profile.Bio, profile.Location, profile.Email, profile.Role,
		profile.GraduationCohort, pq.Array(profile.SkillTags),
		profile.Links.LinkedIn, profile.Links.GitHub, profile.Links.Website,
		profile.ProfileImage, profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateModeration writes the full moderation column set in one
// statement, so a transition either lands completely or not at all.
func (r *profileRepository) UpdateModeration(ctx context.Context, id string, snap moderation.Snapshot, updatedAt time.Time) error {
	query := `
		UPDATE graduate_profiles SET
			moderation_status = $1, is_verified = $2, is_archived = $3,
			verified_at = $4, archived_at = $5, updated_at = $6
		WHERE id = $7`

	tag, err := r.db.Exec(ctx, query,
		string(snap.Status), snap.IsVerified, snap.IsArchived,
		snap.VerifiedAt, snap.ArchivedAt, updatedAt,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM graduate_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) Stats(ctx context.Context) (*domain.DirectoryStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE moderation_status = 'pending'),
			COUNT(*) FILTER (WHERE moderation_status = 'approved'),
			COUNT(*) FILTER (WHERE moderation_status = 'rejected'),
			COUNT(*) FILTER (WHERE is_verified),
			COUNT(*) FILTER (WHERE is_archived)
		FROM graduate_profiles`

	var s domain.DirectoryStats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.Total, &s.Pending, &s.Approved, &s.Rejected, &s.Verified, &s.Archived,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
