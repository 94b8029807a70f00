package usecase

import (
	"context"
	"errors"
	"time"

	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/internal/moderation"
	"graduate-showcase-backend/internal/search"
	"graduate-showcase-backend/pkg/apperror"
	"graduate-showcase-backend/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

type moderationUsecase struct {
	profileRepo domain.ProfileRepository
	cache       *goredis.Client // nil when Redis is not configured
}

func NewModerationUsecase(profileRepo domain.ProfileRepository, cache *goredis.Client) domain.ModerationUsecase {
	return &moderationUsecase{profileRepo: profileRepo, cache: cache}
}

// Transition applies one administrative action to a profile. The
// in-memory record is only updated after the persistence write
// succeeds; a failed write surfaces unchanged and the administrator
// re-issues the action.
func (u *moderationUsecase) Transition(ctx context.Context, profileID string, action moderation.Action) (*domain.GraduateProfile, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Graduate profile not found")
	}

	now := time.Now()
	next, err := moderation.Apply(profile.ModerationSnapshot(), action, now)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if err := u.profileRepo.UpdateModeration(ctx, profileID, next, now); err != nil {
		return nil, err
	}
	profile.ApplyModeration(next, now)

	invalidateDirectoryCache(ctx, u.cache)
	logger.Log.Info("Moderation transition applied",
		"profile_id", profileID, "action", string(action), "status", string(next.Status))

	return profile, nil
}

// Delete permanently removes a profile. The explicit confirmation step
// lives at the HTTP boundary, not here.
func (u *moderationUsecase) Delete(ctx context.Context, profileID string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	profile, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperror.NotFound("Graduate profile not found")
	}

	if err := u.profileRepo.Delete(ctx, profileID); err != nil {
		return err
	}

	invalidateDirectoryCache(ctx, u.cache)
	logger.Log.Info("Graduate profile deleted", "profile_id", profileID)
	return nil
}

// ListForReview returns the dashboard listing: active or archived set,
// optionally narrowed by review status and cohort. Cohort narrowing
// reuses the directory's substring rule.
func (u *moderationUsecase) ListForReview(ctx context.Context, q domain.ReviewQuery) ([]domain.GraduateProfile, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if q.Status != "" && !q.Status.IsValid() {
		return nil, apperror.BadRequest("Unknown moderation status: " + string(q.Status))
	}

	all, err := u.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(errors.New("Failed to fetch profiles: " + err.Error()))
	}

	out := make([]domain.GraduateProfile, 0, len(all))
	for _, p := range all {
		if p.IsArchived != q.Archived {
			continue
		}
		if q.Status != "" && p.ModerationStatus != q.Status {
			continue
		}
		if !search.Matches(p, domain.FilterCriteria{GraduationCohort: q.GraduationCohort}) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (u *moderationUsecase) Stats(ctx context.Context) (*domain.DirectoryStats, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	stats, err := u.profileRepo.Stats(ctx)
	if err != nil {
		return nil, apperror.Internal(errors.New("Failed to fetch statistics: " + err.Error()))
	}
	return stats, nil
}

// requireAdmin checks the capability flag supplied by the identity
// provider via the request context.
func requireAdmin(ctx context.Context) error {
	var role string

	// Gin sets values under string keys via c.Set.
	if r, ok := ctx.Value(string(domain.KeyUserRole)).(string); ok {
		role = r
	}
	if role == "" {
		if r, ok := ctx.Value(domain.KeyUserRole).(string); ok {
			role = r
		}
	}

	if role != domain.RoleAdmin {
		return apperror.Forbidden("Administrator access required")
	}
	return nil
}
