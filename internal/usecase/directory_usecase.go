package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/internal/search"
	"graduate-showcase-backend/pkg/apperror"
	"graduate-showcase-backend/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

// directoryCacheKey holds the serialized public candidate set. The
// entry is short-lived and dropped eagerly on every write that could
// change directory visibility.
const directoryCacheKey = "cache:directory:visible"

type directoryUsecase struct {
	profileRepo domain.ProfileRepository
	cache       *goredis.Client // nil when Redis is not configured
	cacheTTL    time.Duration
}

func NewDirectoryUsecase(profileRepo domain.ProfileRepository, cache *goredis.Client, cacheTTL time.Duration) domain.DirectoryUsecase {
	return &directoryUsecase{
		profileRepo: profileRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// Browse fetches the full visible candidate set, applies the filter
// engine in memory, and projects the result into public cards. Legacy
// records get display fallbacks before matching so that bio-only
// profiles remain searchable by role and skill.
func (u *directoryUsecase) Browse(ctx context.Context, criteria domain.FilterCriteria) ([]domain.GraduateCard, error) {
	profiles, err := u.visibleProfiles(ctx)
	if err != nil {
		return nil, err
	}

	filtered := search.Filter(profiles, criteria)

	cards := make([]domain.GraduateCard, 0, len(filtered))
	for _, p := range filtered {
		cards = append(cards, toCard(p))
	}
	return cards, nil
}

// Facets derives the filter UI options from the full unfiltered
// visible set.
func (u *directoryUsecase) Facets(ctx context.Context) (*domain.Facets, error) {
	profiles, err := u.visibleProfiles(ctx)
	if err != nil {
		return nil, err
	}
	f := search.Facets(profiles)
	return &f, nil
}

// visibleProfiles returns the normalized public candidate set,
// consulting the Redis cache first. Cache failures degrade to the
// database silently.
func (u *directoryUsecase) visibleProfiles(ctx context.Context) ([]domain.GraduateProfile, error) {
	if u.cache != nil {
		if raw, err := u.cache.Get(ctx, directoryCacheKey).Bytes(); err == nil {
			var cached []domain.GraduateProfile
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	profiles, err := u.profileRepo.ListVisible(ctx)
	if err != nil {
		return nil, apperror.Internal(errors.New("Failed to fetch directory: " + err.Error()))
	}

	for i := range profiles {
		profiles[i] = search.Normalize(profiles[i])
	}

	if u.cache != nil && u.cacheTTL > 0 {
		if raw, err := json.Marshal(profiles); err == nil {
			if err := u.cache.Set(ctx, directoryCacheKey, raw, u.cacheTTL).Err(); err != nil {
				logger.Log.Warn("Directory cache write failed", "error", err)
			}
		}
	}

	return profiles, nil
}

func toCard(p domain.GraduateProfile) domain.GraduateCard {
	image := p.ProfileImage
	if image == "" {
		image = domain.DefaultProfileImage
	}
	return domain.GraduateCard{
		ID:               p.ID,
		Name:             p.Name,
		Title:            p.Role,
		Location:         p.Location,
		ImageURL:         image,
		TechStack:        p.SkillTags,
		GitHubURL:        p.Links.GitHub,
		LinkedInURL:      p.Links.LinkedIn,
		WebsiteURL:       p.Links.Website,
		Email:            p.Email,
		GraduationCohort: p.GraduationCohort,
	}
}

// invalidateDirectoryCache drops the cached candidate set. Shared by
// every usecase that changes what the public directory shows.
func invalidateDirectoryCache(ctx context.Context, cache *goredis.Client) {
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, directoryCacheKey).Err(); err != nil {
		logger.Log.Warn("Directory cache invalidation failed", "error", err)
	}
}
