package usecase_test

import (
	"context"
	"testing"
	"time"

	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/internal/moderation"
	"graduate-showcase-backend/internal/usecase"
	"graduate-showcase-backend/pkg/logger"
	"graduate-showcase-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

// Mock Repositories
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.GraduateProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.GraduateProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GraduateProfile), args.Error(1)
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.GraduateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GraduateProfile), args.Error(1)
}

func (m *MockProfileRepo) ListAll(ctx context.Context) ([]domain.GraduateProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GraduateProfile), args.Error(1)
}

func (m *MockProfileRepo) ListVisible(ctx context.Context) ([]domain.GraduateProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GraduateProfile), args.Error(1)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.GraduateProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) UpdateModeration(ctx context.Context, id string, snap moderation.Snapshot, updatedAt time.Time) error {
	return m.Called(ctx, id, snap, updatedAt).Error(0)
}

func (m *MockProfileRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProfileRepo) Stats(ctx context.Context) (*domain.DirectoryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectoryStats), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, "admin-1")
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleAdmin)
}

func graduateCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, userID)
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleGraduate)
}

func pendingProfile(id, userID string) *domain.GraduateProfile {
	return &domain.GraduateProfile{
		ID:               id,
		UserID:           userID,
		Name:             "Dana Fields",
		Email:            "dana@example.com",
		Role:             "Backend Developer",
		SkillTags:        []string{"Go", "PostgreSQL"},
		ModerationStatus: moderation.StatusPending,
	}
}

func TestModerationRequiresAdmin(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewModerationUsecase(mockRepo, nil)

	t.Run("Should fail when caller is a graduate", func(t *testing.T) {
		_, err := uc.Transition(graduateCtx("user-1"), "p1", moderation.ActionApprove)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Administrator access required")
	})

	t.Run("Should fail safely when identity keys are missing", func(t *testing.T) {
		_, err := uc.Transition(context.Background(), "p1", moderation.ActionApprove)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Administrator access required")
	})

	t.Run("Delete is gated the same way", func(t *testing.T) {
		err := uc.Delete(graduateCtx("user-1"), "p1")
		assert.Error(t, err)
	})

	mockRepo.AssertNotCalled(t, "UpdateModeration", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTransitionUnknownProfile(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewModerationUsecase(mockRepo, nil)

	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	_, err := uc.Transition(adminCtx(), "missing", moderation.ActionApprove)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertNotCalled(t, "UpdateModeration", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionApprove(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewModerationUsecase(mockRepo, nil)

	profile := pendingProfile("p1", "user-1")
	mockRepo.On("GetByID", mock.Anything, "p1").Return(profile, nil)
	mockRepo.On("UpdateModeration", mock.Anything, "p1", mock.Anything, mock.Anything).Return(nil)

	updated, err := uc.Transition(adminCtx(), "p1", moderation.ActionApprove)
	assert.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, updated.ModerationStatus)
	assert.True(t, updated.IsVerified)
	assert.NotNil(t, updated.VerifiedAt)
	assert.False(t, updated.IsArchived)
	mockRepo.AssertExpectations(t)
}

func TestTransitionArchiveKeepsStatus(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewModerationUsecase(mockRepo, nil)

	profile := pendingProfile("p1", "user-1")
	profile.ModerationStatus = moderation.StatusApproved
	profile.IsVerified = true
	verifiedAt := time.Now().Add(-time.Hour)
	profile.VerifiedAt = &verifiedAt

	mockRepo.On("GetByID", mock.Anything, "p1").Return(profile, nil)
	mockRepo.On("UpdateModeration", mock.Anything, "p1", mock.Anything, mock.Anything).Return(nil)

	updated, err := uc.Transition(adminCtx(), "p1", moderation.ActionArchive)
	assert.NoError(t, err)
	assert.True(t, updated.IsArchived)
	assert.NotNil(t, updated.ArchivedAt)
	// Archiving must not disturb the review outcome.
	assert.Equal(t, moderation.StatusApproved, updated.ModerationStatus)
	assert.True(t, updated.IsVerified)
}

func TestTransitionPersistFailureLeavesRecord(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewModerationUsecase(mockRepo, nil)

	profile := pendingProfile("p1", "user-1")
	mockRepo.On("GetByID", mock.Anything, "p1").Return(profile, nil)
	mockRepo.On("UpdateModeration", mock.Anything, "p1", mock.Anything, mock.Anything).
		Return(assert.AnError)

	_, err := uc.Transition(adminCtx(), "p1", moderation.ActionApprove)
	assert.Error(t, err)
	// The loaded record is untouched when the write fails.
	assert.Equal(t, moderation.StatusPending, profile.ModerationStatus)
	assert.False(t, profile.IsVerified)
}

func TestDeleteUnknownProfile(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewModerationUsecase(mockRepo, nil)

	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	err := uc.Delete(adminCtx(), "missing")
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListForReviewArchivedToggle(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewModerationUsecase(mockRepo, nil)

	active := *pendingProfile("p1", "user-1")
	archived := *pendingProfile("p2", "user-2")
	archived.IsArchived = true
	mockRepo.On("ListAll", mock.Anything).Return([]domain.GraduateProfile{active, archived}, nil)

	got, err := uc.ListForReview(adminCtx(), domain.ReviewQuery{})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)

	got, err = uc.ListForReview(adminCtx(), domain.ReviewQuery{Archived: true})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestListForReviewRejectsUnknownStatus(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewModerationUsecase(mockRepo, nil)

	_, err := uc.ListForReview(adminCtx(), domain.ReviewQuery{Status: "published"})
	assert.Error(t, err)
}

func TestCreateProfileForcesIdentity(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewProfileUsecase(mockRepo, newValidator(), nil)

	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	input := pendingProfile("", "spoofed-owner")
	created, err := uc.CreateProfile(graduateCtx("user-1"), input)
	assert.NoError(t, err)
	// Ownership comes from the verified token, never the payload.
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, moderation.StatusPending, created.ModerationStatus)
	assert.False(t, created.IsVerified)
	mockRepo.AssertExpectations(t)
}

func TestCreateProfileConflict(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewProfileUsecase(mockRepo, newValidator(), nil)

	existing := pendingProfile("p1", "user-1")
	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(existing, nil)

	_, err := uc.CreateProfile(graduateCtx("user-1"), pendingProfile("", "user-1"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProfileUnauthenticated(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewProfileUsecase(mockRepo, newValidator(), nil)

	_, err := uc.CreateProfile(context.Background(), pendingProfile("", "user-1"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

func TestUpdateMyProfileLeavesModerationAlone(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewProfileUsecase(mockRepo, newValidator(), nil)

	existing := pendingProfile("p1", "user-1")
	existing.ModerationStatus = moderation.StatusApproved
	existing.IsVerified = true

	mockRepo.On("GetByUserID", mock.Anything, "user-1").Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	input := pendingProfile("", "user-1")
	input.Name = "Dana F. Updated"
	updated, err := uc.UpdateMyProfile(graduateCtx("user-1"), input)
	assert.NoError(t, err)
	assert.Equal(t, "Dana F. Updated", updated.Name)
	assert.Equal(t, moderation.StatusApproved, updated.ModerationStatus)
	assert.True(t, updated.IsVerified)
}

func TestBrowseProjectsCards(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewDirectoryUsecase(mockRepo, nil, time.Minute)

	structured := *pendingProfile("p1", "user-1")
	structured.ModerationStatus = moderation.StatusApproved

	legacy := domain.GraduateProfile{
		ID:               "p2",
		UserID:           "user-2",
		Name:             "Evan Lee",
		Email:            "evan@example.com",
		Bio:              "Frontend developer working with React and TypeScript",
		ModerationStatus: moderation.StatusApproved,
	}

	mockRepo.On("ListVisible", mock.Anything).Return([]domain.GraduateProfile{structured, legacy}, nil)

	cards, err := uc.Browse(context.Background(), domain.FilterCriteria{})
	assert.NoError(t, err)
	assert.Len(t, cards, 2)

	byID := map[string]domain.GraduateCard{}
	for _, c := range cards {
		byID[c.ID] = c
	}
	assert.Equal(t, "Backend Developer", byID["p1"].Title)
	// Legacy record without a stored role gets a bio-derived title.
	assert.Equal(t, "Frontend Developer", byID["p2"].Title)
	assert.Contains(t, byID["p2"].TechStack, "React")
	assert.NotEmpty(t, byID["p2"].ImageURL)
}

func TestBrowseFiltersByCriteria(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewDirectoryUsecase(mockRepo, nil, time.Minute)

	a := *pendingProfile("p1", "user-1")
	a.ModerationStatus = moderation.StatusApproved
	b := *pendingProfile("p2", "user-2")
	b.ModerationStatus = moderation.StatusApproved
	b.Name = "Frank Moss"
	b.Role = "Data Analyst"
	b.SkillTags = []string{"Python", "SQL"}

	mockRepo.On("ListVisible", mock.Anything).Return([]domain.GraduateProfile{a, b}, nil)

	cards, err := uc.Browse(context.Background(), domain.FilterCriteria{TechStack: []string{"Go"}})
	assert.NoError(t, err)
	assert.Len(t, cards, 1)
	assert.Equal(t, "p1", cards[0].ID)
}

func TestAssignRole(t *testing.T) {
	mockUsers := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockUsers)

	t.Run("Graduates cannot assign roles", func(t *testing.T) {
		err := uc.AssignRole(graduateCtx("user-1"), "user-2", domain.RoleAdmin)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only admins")
	})

	t.Run("Unknown roles are rejected", func(t *testing.T) {
		err := uc.AssignRole(adminCtx(), "user-2", "superuser")
		assert.Error(t, err)
	})

	t.Run("Admin promotes a graduate", func(t *testing.T) {
		mockUsers.On("GetByID", mock.Anything, "user-2").
			Return(&domain.User{ID: "user-2", Role: domain.RoleGraduate}, nil)
		mockUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleAdmin
		})).Return(nil)

		err := uc.AssignRole(adminCtx(), "user-2", domain.RoleAdmin)
		assert.NoError(t, err)
		mockUsers.AssertExpectations(t)
	})
}

func TestEnsureUserExists(t *testing.T) {
	t.Run("Creates missing users with the graduate role", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockUsers)

		mockUsers.On("GetByID", mock.Anything, "user-9").Return(nil, nil)
		mockUsers.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleGraduate
		})).Return(nil)

		err := uc.EnsureUserExists(context.Background(), &domain.User{ID: "user-9", Email: "nine@example.com"})
		assert.NoError(t, err)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Keeps the stored role when the caller supplies none", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockUsers)

		mockUsers.On("GetByID", mock.Anything, "user-9").
			Return(&domain.User{ID: "user-9", Role: domain.RoleAdmin}, nil)

		err := uc.EnsureUserExists(context.Background(), &domain.User{ID: "user-9"})
		assert.NoError(t, err)
		mockUsers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
