package usecase

import (
	"context"
	"time"

	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/internal/moderation"
	"graduate-showcase-backend/pkg/apperror"
	"graduate-showcase-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	validate    *validator.Validate
	cache       *goredis.Client // nil when Redis is not configured
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, validate *validator.Validate, cache *goredis.Client) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		validate:    validate,
		cache:       cache,
	}
}

func (u *profileUsecase) GetMyProfile(ctx context.Context) (*domain.GraduateProfile, error) {
	userID, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Graduate profile not found")
	}
	return profile, nil
}

// CreateProfile registers the calling account's directory record. One
// profile per account; the moderation state starts at pending.
func (u *profileUsecase) CreateProfile(ctx context.Context, profile *domain.GraduateProfile) (*domain.GraduateProfile, error) {
	userID, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	// Ownership is taken from the verified identity, never the payload.
	profile.UserID = userID

	if err := u.validate.Struct(profile); err != nil {
		return nil, apperror.BadRequest(validation.FriendlyMessage(err))
	}

	existing, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("A profile already exists for this account")
	}

	now := time.Now()
	snap := moderation.NewSnapshot()
	profile.ApplyModeration(snap, now)
	profile.CreatedAt = now

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateMyProfile edits the owner's record. Moderation fields are
// never writable here; field edits leave the review status untouched.
func (u *profileUsecase) UpdateMyProfile(ctx context.Context, profile *domain.GraduateProfile) (*domain.GraduateProfile, error) {
	userID, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	profile.UserID = userID

	if err := u.validate.Struct(profile); err != nil {
		return nil, apperror.BadRequest(validation.FriendlyMessage(err))
	}

	existing, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NotFound("Graduate profile not found")
	}

	existing.Name = profile.Name
	existing.Bio = profile.Bio
	existing.Location = profile.Location
	existing.Email = profile.Email
	existing.Role = profile.Role
	existing.GraduationCohort = profile.GraduationCohort
	existing.SkillTags = profile.SkillTags
	existing.Links = profile.Links
	existing.UpdatedAt = time.Now()

	if err := u.profileRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	invalidateDirectoryCache(ctx, u.cache)
	return existing, nil
}

// SetProfileImage stores the uploaded picture URL on the owner's record.
func (u *profileUsecase) SetProfileImage(ctx context.Context, imageURL string) error {
	userID, err := requireIdentity(ctx)
	if err != nil {
		return err
	}

	existing, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NotFound("Graduate profile not found")
	}

	existing.ProfileImage = imageURL
	existing.UpdatedAt = time.Now()

	if err := u.profileRepo.Update(ctx, existing); err != nil {
		return err
	}

	invalidateDirectoryCache(ctx, u.cache)
	return nil
}

// requireIdentity extracts the authenticated account id supplied by
// the auth middleware.
func requireIdentity(ctx context.Context) (string, error) {
	var userID string
	if id, ok := ctx.Value(string(domain.KeyUserID)).(string); ok {
		userID = id
	}
	if userID == "" {
		if id, ok := ctx.Value(domain.KeyUserID).(string); ok {
			userID = id
		}
	}
	if userID == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	return userID, nil
}
