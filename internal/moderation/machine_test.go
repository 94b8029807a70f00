package moderation_test

import (
	"testing"
	"time"

	"graduate-showcase-backend/internal/moderation"

	"github.com/stretchr/testify/assert"
)

func TestApprove(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	next, err := moderation.Apply(moderation.NewSnapshot(), moderation.ActionApprove, now)
	assert.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, next.Status)
	assert.True(t, next.IsVerified)
	assert.NotNil(t, next.VerifiedAt)
	assert.Equal(t, now, *next.VerifiedAt)
	assert.False(t, next.IsArchived)

	t.Run("re-approve is an idempotent assignment", func(t *testing.T) {
		later := now.Add(time.Hour)
		again, err := moderation.Apply(next, moderation.ActionApprove, later)
		assert.NoError(t, err)
		assert.Equal(t, moderation.StatusApproved, again.Status)
		assert.True(t, again.IsVerified)
		assert.Equal(t, later, *again.VerifiedAt)
	})
}

func TestReject(t *testing.T) {
	now := time.Now()

	next, err := moderation.Apply(moderation.NewSnapshot(), moderation.ActionReject, now)
	assert.NoError(t, err)
	assert.Equal(t, moderation.StatusRejected, next.Status)
	assert.False(t, next.IsVerified)
	assert.Nil(t, next.VerifiedAt)

	t.Run("rejecting an approved profile clears verification", func(t *testing.T) {
		approved, _ := moderation.Apply(moderation.NewSnapshot(), moderation.ActionApprove, now)
		rejected, err := moderation.Apply(approved, moderation.ActionReject, now)
		assert.NoError(t, err)
		assert.Equal(t, moderation.StatusRejected, rejected.Status)
		assert.False(t, rejected.IsVerified)
		assert.Nil(t, rejected.VerifiedAt)
	})
}

func TestArchiveOrthogonality(t *testing.T) {
	now := time.Now()
	approved, _ := moderation.Apply(moderation.NewSnapshot(), moderation.ActionApprove, now)

	archived, err := moderation.Apply(approved, moderation.ActionArchive, now)
	assert.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, archived.Status)
	assert.True(t, archived.IsVerified)
	assert.True(t, archived.IsArchived)
	assert.NotNil(t, archived.ArchivedAt)

	t.Run("unarchive restores the same review status", func(t *testing.T) {
		restored, err := moderation.Apply(archived, moderation.ActionUnarchive, now)
		assert.NoError(t, err)
		assert.Equal(t, moderation.StatusApproved, restored.Status)
		assert.True(t, restored.IsVerified)
		assert.False(t, restored.IsArchived)
		assert.Nil(t, restored.ArchivedAt)
	})

	t.Run("rejected profiles can be archived too", func(t *testing.T) {
		rejected, _ := moderation.Apply(moderation.NewSnapshot(), moderation.ActionReject, now)
		archived, err := moderation.Apply(rejected, moderation.ActionArchive, now)
		assert.NoError(t, err)
		assert.Equal(t, moderation.StatusRejected, archived.Status)
		assert.True(t, archived.IsArchived)
	})
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	cur := moderation.NewSnapshot()

	_, err := moderation.Apply(cur, moderation.ActionApprove, now)
	assert.NoError(t, err)
	assert.Equal(t, moderation.StatusPending, cur.Status)
	assert.False(t, cur.IsVerified)
	assert.Nil(t, cur.VerifiedAt)
}

func TestApplyUnknownAction(t *testing.T) {
	cur := moderation.NewSnapshot()
	next, err := moderation.Apply(cur, moderation.Action("promote"), time.Now())
	assert.Error(t, err)
	assert.Equal(t, cur, next)
}

func TestSpecScenarioApproveArchiveUnarchive(t *testing.T) {
	now := time.Now()
	s := moderation.NewSnapshot()

	s, err := moderation.Apply(s, moderation.ActionApprove, now)
	assert.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, s.Status)
	assert.True(t, s.IsVerified)

	s, err = moderation.Apply(s, moderation.ActionArchive, now)
	assert.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, s.Status)
	assert.True(t, s.IsVerified)
	assert.True(t, s.IsArchived)

	s, err = moderation.Apply(s, moderation.ActionUnarchive, now)
	assert.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, s.Status)
	assert.True(t, s.IsVerified)
	assert.False(t, s.IsArchived)
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, moderation.StatusPending.IsValid())
	assert.True(t, moderation.StatusApproved.IsValid())
	assert.True(t, moderation.StatusRejected.IsValid())
	assert.False(t, moderation.Status("banned").IsValid())
}
