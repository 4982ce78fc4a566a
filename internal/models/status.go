package models

import (
	"fmt"
	"strings"
)

type MessStatus string

const (
	StatusPending  MessStatus = "PENDING"
	StatusApproved MessStatus = "APPROVED"
	StatusRejected MessStatus = "REJECTED"
)

// statusTargets lists the states the moderation endpoint may move a Mess to.
// The source state never restricts a transition.
var statusTargets = map[MessStatus]bool{
	StatusApproved: true,
	StatusRejected: true,
}

func (s MessStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus accepts an empty value, which callers resolve with ListingStatus.
func ParseStatus(raw string) (MessStatus, error) {
	s := MessStatus(strings.TrimSpace(raw))
	if s == "" || s.IsValid() {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q (expected PENDING, APPROVED or REJECTED)", ErrInvalidStatus, raw)
}

// ListingStatus is the visibility policy for listing and search: unless a
// status is requested explicitly, only approved messes are returned.
func ListingStatus(requested MessStatus) MessStatus {
	if requested == "" {
		return StatusApproved
	}
	return requested
}

// InitialStatus is the status a newly created Mess starts in.
func InitialStatus(asAdmin bool) MessStatus {
	if asAdmin {
		return StatusApproved
	}
	return StatusPending
}

// IsTransitionTarget reports whether status may be requested through the
// moderation endpoint. PENDING is only ever an initial status.
func IsTransitionTarget(status MessStatus) bool {
	return statusTargets[status]
}

// CanTransition reports whether a Mess in status from may be moved to to.
func CanTransition(from, to MessStatus) error {
	if !IsTransitionTarget(to) {
		return fmt.Errorf("%w: cannot move %s to %q, allowed targets are APPROVED and REJECTED", ErrInvalidStatus, from, to)
	}
	return nil
}
