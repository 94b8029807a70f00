// Package moderation implements the review lifecycle of a graduate
// profile: the pending/approved/rejected status axis plus the
// orthogonal archived flag. The transition function is pure; persisting
// the resulting snapshot is the caller's job.
package moderation

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid reports whether s is one of the known review statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Action string

const (
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionArchive   Action = "archive"
	ActionUnarchive Action = "unarchive"
)

// Snapshot is the moderation-relevant slice of a profile record. It is
// both the input and the output of Apply: the caller persists the
// returned snapshot (plus updated_at) as a single row update.
type Snapshot struct {
	Status     Status
	IsVerified bool
	IsArchived bool
	VerifiedAt *time.Time
	ArchivedAt *time.Time
}

// NewSnapshot is the state assigned to a freshly created profile.
func NewSnapshot() Snapshot {
	return Snapshot{Status: StatusPending}
}

// Apply computes the next snapshot for an administrative action.
//
// Approve and reject are idempotent assignments, not guarded
// transitions: re-approving an approved profile simply re-assigns the
// same status (and a fresh verified timestamp). Archive and unarchive
// only touch the archived axis and leave the review status alone.
//
// Apply never mutates cur and performs no I/O. An unknown action is
// the only error case.
func Apply(cur Snapshot, action Action, now time.Time) (Snapshot, error) {
	next := cur
	switch action {
	case ActionApprove:
		next.Status = StatusApproved
		next.IsVerified = true
		t := now
		next.VerifiedAt = &t
	case ActionReject:
		next.Status = StatusRejected
		next.IsVerified = false
		next.VerifiedAt = nil
	case ActionArchive:
		next.IsArchived = true
		t := now
		next.ArchivedAt = &t
	case ActionUnarchive:
		next.IsArchived = false
		next.ArchivedAt = nil
	default:
		return cur, fmt.Errorf("moderation: unknown action %q", action)
	}
	return next, nil
}
